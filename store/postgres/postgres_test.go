package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/swarmgraph/store"
)

func newMockStore(t *testing.T) (*PostgresSessionStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresSessionStoreWithPool(mock, ""), mock
}

func sessionColumns() []string {
	return []string{"thread_id", "step", "pipeline", "state", "updated_at"}
}

func TestPostgresStoreInitSchema(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS sessions").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, st.InitSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreSave(t *testing.T) {
	st, mock := newMockStore(t)
	now := time.Now()

	session := &store.Session{
		ThreadID:  "t1",
		Pipeline:  "swarm",
		Step:      1,
		State:     json.RawMessage(`{"step":1}`),
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs("t1", 1, "swarm", []byte(`{"step":1}`), now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, st.Save(context.Background(), session))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreLoad(t *testing.T) {
	st, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery("SELECT thread_id, step, pipeline, state, updated_at").
		WithArgs("t1").
		WillReturnRows(pgxmock.NewRows(sessionColumns()).
			AddRow("t1", 2, "swarm", []byte(`{"step":2}`), now))

	session, err := st.Load(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", session.ThreadID)
	assert.Equal(t, 2, session.Step)
	assert.Equal(t, "swarm", session.Pipeline)
	assert.JSONEq(t, `{"step":2}`, string(session.State))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreLoadNotFound(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery("SELECT thread_id, step, pipeline, state, updated_at").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := st.Load(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrSessionNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreHistory(t *testing.T) {
	st, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery("SELECT thread_id, step, pipeline, state, updated_at").
		WithArgs("t1").
		WillReturnRows(pgxmock.NewRows(sessionColumns()).
			AddRow("t1", 1, "swarm", []byte(`{"step":1}`), now).
			AddRow("t1", 2, "swarm", []byte(`{"step":2}`), now))

	history, err := st.History(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 1, history[0].Step)
	assert.Equal(t, 2, history[1].Step)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreHistoryEmpty(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery("SELECT thread_id, step, pipeline, state, updated_at").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(sessionColumns()))

	history, err := st.History(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, history)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreDelete(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM sessions").
		WithArgs("t1").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	require.NoError(t, st.Delete(context.Background(), "t1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreCustomTableName(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	st := NewPostgresSessionStoreWithPool(mock, "pipeline_sessions")

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS pipeline_sessions").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, st.InitSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
