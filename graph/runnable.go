package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/smallnest/swarmgraph/store"
)

// Runnable represents a compiled state graph that can be invoked.
type Runnable[S any] struct {
	graph *StateGraph[S]
}

// Invoke executes the compiled state graph with the given input state.
func (r *Runnable[S]) Invoke(ctx context.Context, initialState S) (S, error) {
	return r.InvokeWithConfig(ctx, initialState, nil)
}

// InvokeWithConfig executes the compiled state graph with the given input
// state and config. Execution walks from the entry point until every active
// branch reaches END. A node error aborts the whole invocation.
func (r *Runnable[S]) InvokeWithConfig(ctx context.Context, initialState S, config *Config) (S, error) {
	state := initialState
	currentNodes := []string{r.graph.entryPoint}
	logger := config.logger()
	step := 0

	for len(currentNodes) > 0 {
		// Filter out END nodes
		activeNodes := make([]string, 0, len(currentNodes))
		for _, node := range currentNodes {
			if node != END {
				activeNodes = append(activeNodes, node)
			}
		}
		currentNodes = activeNodes

		if len(currentNodes) == 0 {
			break
		}

		logger.Debug("graph %s step %d: %v", r.graph.name, step, currentNodes)

		results, err := r.executeNodes(ctx, currentNodes, state)
		if err != nil {
			var zero S
			return zero, err
		}

		state, err = r.mergeState(ctx, state, results)
		if err != nil {
			var zero S
			return zero, err
		}

		step++
		r.saveSession(ctx, config, state, step)

		currentNodes, err = r.nextNodes(ctx, currentNodes, state)
		if err != nil {
			var zero S
			return zero, err
		}
	}

	return state, nil
}

// executeNodes runs the active nodes of one step. A single node runs inline;
// several run in parallel, each recovered from panics.
func (r *Runnable[S]) executeNodes(ctx context.Context, nodes []string, state S) ([]S, error) {
	if len(nodes) == 1 {
		node, ok := r.graph.nodes[nodes[0]]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, nodes[0])
		}
		res, err := runNode(ctx, node, state)
		if err != nil {
			return nil, err
		}
		return []S{res}, nil
	}

	var wg sync.WaitGroup
	results := make([]S, len(nodes))
	errs := make([]error, len(nodes))

	for i, nodeName := range nodes {
		node, ok := r.graph.nodes[nodeName]
		if !ok {
			errs[i] = fmt.Errorf("%w: %s", ErrNodeNotFound, nodeName)
			continue
		}

		wg.Add(1)
		go func(idx int, n Node[S]) {
			defer wg.Done()
			results[idx], errs[idx] = runNode(ctx, n, state)
		}(i, node)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// runNode executes one node function, converting panics into errors.
func runNode[S any](ctx context.Context, node Node[S], state S) (result S, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in node %s: %v", node.Name, rec)
		}
	}()

	result, err = node.Function(ctx, state)
	if err != nil {
		err = fmt.Errorf("error in node %s: %w", node.Name, err)
	}
	return result, err
}

// mergeState folds the step results into the current state.
func (r *Runnable[S]) mergeState(ctx context.Context, current S, results []S) (S, error) {
	if r.graph.merger != nil {
		merged, err := r.graph.merger(ctx, current, results)
		if err != nil {
			var zero S
			return zero, fmt.Errorf("state merge failed: %w", err)
		}
		return merged, nil
	}

	if len(results) > 0 {
		return results[len(results)-1], nil
	}
	return current, nil
}

// nextNodes determines the next nodes based on conditional and static edges.
func (r *Runnable[S]) nextNodes(ctx context.Context, currentNodes []string, state S) ([]string, error) {
	nextSet := make(map[string]bool)

	for _, nodeName := range currentNodes {
		if condition, ok := r.graph.conditionalEdges[nodeName]; ok {
			next := condition(ctx, state)
			if next == "" {
				return nil, fmt.Errorf("conditional edge returned empty next node from %s", nodeName)
			}
			nextSet[next] = true
			continue
		}

		found := false
		for _, edge := range r.graph.edges {
			if edge.From == nodeName {
				nextSet[edge.To] = true
				found = true
				// No break, to allow fan-out from one node.
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrNoOutgoingEdge, nodeName)
		}
	}

	next := make([]string, 0, len(nextSet))
	for node := range nextSet {
		next = append(next, node)
	}
	return next, nil
}

// saveSession persists a snapshot when a store and thread ID are configured.
// Persistence failures do not abort the pipeline.
func (r *Runnable[S]) saveSession(ctx context.Context, config *Config, state S, step int) {
	if config == nil || config.Store == nil || config.ThreadID == "" {
		return
	}

	data, err := json.Marshal(state)
	if err != nil {
		config.logger().Warn("graph %s: failed to marshal state for thread %s: %v", r.graph.name, config.ThreadID, err)
		return
	}

	session := &store.Session{
		ThreadID:  config.ThreadID,
		Pipeline:  r.graph.name,
		Step:      step,
		State:     data,
		UpdatedAt: time.Now(),
	}
	if err := config.Store.Save(ctx, session); err != nil {
		config.logger().Warn("graph %s: failed to save session for thread %s: %v", r.graph.name, config.ThreadID, err)
	}
}
