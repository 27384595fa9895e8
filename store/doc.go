// Package store defines thread-keyed session persistence for pipelines.
//
// A Session is a snapshot of pipeline state taken after one step, keyed by an
// opaque thread ID. The pipeline treats the store as an external
// collaborator: save state by key, load state by key. Backends live in
// subpackages:
//
//   - memory: in-process map, for tests and single-run demos
//   - redis: go-redis backed, with optional TTL
//   - sqlite: mattn/go-sqlite3 backed, upsert per thread and step
//   - postgres: pgx backed, JSONB state column
//
// All backends implement SessionStore:
//
//	st := memory.NewMemorySessionStore()
//	err := st.Save(ctx, &store.Session{ThreadID: "t-1", Pipeline: "supervisor", Step: 1, State: data})
//	latest, err := st.Load(ctx, "t-1")
package store
