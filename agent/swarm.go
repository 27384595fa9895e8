package agent

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/smallnest/swarmgraph/graph"
)

// Swarm runs the fan-out -> consensus pipeline: every worker answers the same
// request, then one more model call merges the four views into one answer.
type Swarm struct {
	cfg     Config
	workers map[TaskKind]Worker
	app     *graph.Runnable[SwarmState]
}

// NewSwarm builds the swarm pipeline from the config.
func NewSwarm(cfg Config) (*Swarm, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	s := &Swarm{
		cfg:     cfg,
		workers: newWorkers(cfg),
	}

	g := graph.NewStateGraph[SwarmState]("swarm")
	g.AddNode("parallel", "Fan the request out to all workers", s.fanOut)
	g.AddNode("consensus", "Synthesize one answer from all worker results", s.consensus)
	g.AddEdge("parallel", "consensus")
	g.AddEdge("consensus", graph.END)
	g.SetEntryPoint("parallel")

	app, err := g.Compile()
	if err != nil {
		return nil, err
	}
	s.app = app
	return s, nil
}

// fanOut invokes all four workers with the same input, concurrently unless
// Sequential is set. Results are keyed by kind, so the mapping is identical
// regardless of completion order. Each branch writes only its own slot.
func (s *Swarm) fanOut(ctx context.Context, state SwarmState) (SwarmState, error) {
	out := make([]string, len(DispatchKinds))

	if s.cfg.Sequential {
		for i, kind := range DispatchKinds {
			out[i] = s.runWorker(ctx, kind, state.Input)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		for i, kind := range DispatchKinds {
			g.Go(func() error {
				out[i] = s.runWorker(gctx, kind, state.Input)
				return nil
			})
		}
		// Barrier: all four branches resolved or failed. runWorker never
		// returns an error, so Wait only joins.
		_ = g.Wait()
	}

	results := make(map[TaskKind]string, len(DispatchKinds))
	for i, kind := range DispatchKinds {
		results[kind] = out[i]
	}

	state.ParallelResults = results
	state.Step++
	return state, nil
}

// runWorker runs one branch, degrading a failure to a placeholder so the
// other branches and the join still proceed.
func (s *Swarm) runWorker(ctx context.Context, kind TaskKind, input string) string {
	result, err := s.workers[kind].Run(ctx, input)
	if err != nil {
		s.cfg.Logger.Warn("swarm: %s worker failed: %v", kind, err)
		return failurePlaceholder(kind, err)
	}
	return result
}

// consensus concatenates the four results into one composite prompt and asks
// the model for a synthesized answer. A model failure here aborts the whole
// request; no partial answer is produced.
func (s *Swarm) consensus(ctx context.Context, state SwarmState) (SwarmState, error) {
	prompt := fmt.Sprintf(consensusTemplate,
		state.Input,
		state.ParallelResults[TaskResearch],
		state.ParallelResults[TaskAnalysis],
		state.ParallelResults[TaskCreative],
		state.ParallelResults[TaskTechnical],
	)

	reply, err := generateText(ctx, s.cfg.Model, prompt)
	if err != nil {
		return state, fmt.Errorf("consensus failed: %w", err)
	}

	state.Consensus = reply
	state.Step++
	state.Done = true
	return state, nil
}

// Run executes the pipeline for one request using the configured thread ID.
func (s *Swarm) Run(ctx context.Context, input string) (SwarmState, error) {
	return s.RunWithThread(ctx, input, s.cfg.ThreadID)
}

// RunWithThread executes the pipeline for one request, persisting state under
// the given thread ID when a store is configured.
func (s *Swarm) RunWithThread(ctx context.Context, input, threadID string) (SwarmState, error) {
	if threadID == "" && s.cfg.Store != nil {
		threadID = uuid.NewString()
	}

	return s.app.InvokeWithConfig(ctx, SwarmState{Input: input}, &graph.Config{
		ThreadID: threadID,
		Store:    s.cfg.Store,
		Logger:   s.cfg.Logger,
	})
}
