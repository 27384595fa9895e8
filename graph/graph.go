package graph

import (
	"context"
	"errors"
)

// END is a special constant used to represent the end node in the graph.
const END = "END"

var (
	// ErrEntryPointNotSet is returned when the entry point of the graph is not set.
	ErrEntryPointNotSet = errors.New("entry point not set")

	// ErrNodeNotFound is returned when a node is not found in the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrNoOutgoingEdge is returned when no outgoing edge is found for a node.
	ErrNoOutgoingEdge = errors.New("no outgoing edge found for node")
)

// NodeFunc is the function executed by a node. It receives the current state
// and returns the updated state.
type NodeFunc[S any] func(ctx context.Context, state S) (S, error)

// Node represents a node in the graph.
type Node[S any] struct {
	// Name is the unique identifier for the node.
	Name string

	// Description describes the functionality of the node.
	Description string

	// Function is the function associated with the node.
	Function NodeFunc[S]
}

// Edge represents a static edge between two nodes.
type Edge struct {
	From string
	To   string
}

// StateMerger merges the updates produced by a parallel step into one state.
type StateMerger[S any] func(ctx context.Context, current S, updates []S) (S, error)

// StateGraph is a typed state-machine-shaped workflow. Nodes transform the
// state; edges (static or conditional) decide what runs next.
type StateGraph[S any] struct {
	name             string
	nodes            map[string]Node[S]
	edges            []Edge
	conditionalEdges map[string]func(ctx context.Context, state S) string
	entryPoint       string
	merger           StateMerger[S]
}

// NewStateGraph creates a new named StateGraph. The name identifies the
// pipeline in logs and persisted sessions.
func NewStateGraph[S any](name string) *StateGraph[S] {
	return &StateGraph[S]{
		name:             name,
		nodes:            make(map[string]Node[S]),
		conditionalEdges: make(map[string]func(ctx context.Context, state S) string),
	}
}

// AddNode adds a new node to the state graph with the given name, description and function.
func (g *StateGraph[S]) AddNode(name string, description string, fn NodeFunc[S]) {
	g.nodes[name] = Node[S]{
		Name:        name,
		Description: description,
		Function:    fn,
	}
}

// AddEdge adds a static edge between the "from" and "to" nodes.
func (g *StateGraph[S]) AddEdge(from, to string) {
	g.edges = append(g.edges, Edge{From: from, To: to})
}

// AddConditionalEdge adds an edge whose target node is determined at runtime.
func (g *StateGraph[S]) AddConditionalEdge(from string, condition func(ctx context.Context, state S) string) {
	g.conditionalEdges[from] = condition
}

// SetEntryPoint sets the entry point node name for the state graph.
func (g *StateGraph[S]) SetEntryPoint(name string) {
	g.entryPoint = name
}

// SetStateMerger sets the merge function used when a step runs several nodes.
// Without one, the last node's result wins.
func (g *StateGraph[S]) SetStateMerger(merger StateMerger[S]) {
	g.merger = merger
}

// Compile validates the graph and returns a Runnable instance.
func (g *StateGraph[S]) Compile() (*Runnable[S], error) {
	if g.entryPoint == "" {
		return nil, ErrEntryPointNotSet
	}
	return &Runnable[S]{graph: g}, nil
}
