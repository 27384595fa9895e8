package agent

import (
	"context"

	"github.com/google/uuid"

	"github.com/smallnest/swarmgraph/graph"
)

// Supervisor runs the classify -> route -> assign pipeline: one model call to
// pick a task kind, then one hop to the matching worker, or straight to the
// end when the request could not be classified.
type Supervisor struct {
	cfg        Config
	classifier *Classifier
	workers    map[TaskKind]Worker
	app        *graph.Runnable[TaskState]
}

// NewSupervisor builds the supervisor pipeline from the config.
func NewSupervisor(cfg Config) (*Supervisor, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	s := &Supervisor{
		cfg:        cfg,
		classifier: NewClassifier(cfg.Model),
		workers:    newWorkers(cfg),
	}

	g := graph.NewStateGraph[TaskState]("supervisor")
	g.AddNode("classify", "Classify the request into a task kind", s.classify)
	g.AddNode("assign", "Dispatch the request to the classified worker", s.assign)
	g.AddConditionalEdge("classify", s.route)
	g.AddEdge("assign", graph.END)
	g.SetEntryPoint("classify")

	app, err := g.Compile()
	if err != nil {
		return nil, err
	}
	s.app = app
	return s, nil
}

// classify sets Kind and AssignedWorker from one classifier call. A model
// failure here aborts the whole request.
func (s *Supervisor) classify(ctx context.Context, state TaskState) (TaskState, error) {
	kind, err := s.classifier.Classify(ctx, state.Input)
	if err != nil {
		return state, err
	}

	s.cfg.Logger.Debug("supervisor: classified request as %s", kind)

	state.Kind = kind
	state.AssignedWorker = kind
	state.Step++
	return state, nil
}

// route sends classified requests to assign, everything else to the end.
// Terminal either way after one hop.
func (s *Supervisor) route(_ context.Context, state TaskState) string {
	if state.Kind.Dispatchable() {
		return "assign"
	}
	s.cfg.Logger.Debug("supervisor: request unclassified, finishing without dispatch")
	return graph.END
}

// assign invokes exactly the worker registered for the assigned kind. A
// worker failure degrades to a placeholder result instead of propagating.
func (s *Supervisor) assign(ctx context.Context, state TaskState) (TaskState, error) {
	worker := s.workers[state.AssignedWorker]

	result, err := worker.Run(ctx, state.Input)
	if err != nil {
		s.cfg.Logger.Warn("supervisor: %s worker failed: %v", state.AssignedWorker, err)
		result = failurePlaceholder(state.AssignedWorker, err)
	}

	state.WorkerResult = result
	state.Done = true
	return state, nil
}

// Run executes the pipeline for one request using the configured thread ID.
func (s *Supervisor) Run(ctx context.Context, input string) (TaskState, error) {
	return s.RunWithThread(ctx, input, s.cfg.ThreadID)
}

// RunWithThread executes the pipeline for one request, persisting state under
// the given thread ID when a store is configured.
func (s *Supervisor) RunWithThread(ctx context.Context, input, threadID string) (TaskState, error) {
	if threadID == "" && s.cfg.Store != nil {
		threadID = uuid.NewString()
	}

	return s.app.InvokeWithConfig(ctx, TaskState{Input: input}, &graph.Config{
		ThreadID: threadID,
		Store:    s.cfg.Store,
		Logger:   s.cfg.Logger,
	})
}
