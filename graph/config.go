package graph

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/smallnest/swarmgraph/log"
	"github.com/smallnest/swarmgraph/store"
)

// Config carries per-invocation settings. It is passed explicitly; the graph
// reads no ambient environment.
type Config struct {
	// ThreadID identifies the conversation thread. Required for persistence.
	ThreadID string

	// Store persists a state snapshot after every step when set together
	// with ThreadID.
	Store store.SessionStore

	// Logger receives step-level execution logs. Defaults to the package
	// logger in the log package.
	Logger log.Logger
}

func (c *Config) logger() log.Logger {
	if c != nil && c.Logger != nil {
		return c.Logger
	}
	return log.GetDefaultLogger()
}

// LoadState loads the latest persisted state for a thread and unmarshals it
// into S. The returned int is the step the snapshot was taken at.
func LoadState[S any](ctx context.Context, st store.SessionStore, threadID string) (S, int, error) {
	var state S

	session, err := st.Load(ctx, threadID)
	if err != nil {
		return state, 0, err
	}

	if err := json.Unmarshal(session.State, &state); err != nil {
		return state, 0, fmt.Errorf("failed to unmarshal session state: %w", err)
	}
	return state, session.Step, nil
}
