// Package graph provides a small typed state graph for agent pipelines.
//
// A StateGraph is built from named nodes and edges, compiled into a Runnable,
// and invoked with an initial state. Each step runs the currently active
// nodes (in parallel when a node fans out to several), merges their results
// into the state, then follows static or conditional edges until END.
//
//	g := graph.NewStateGraph[MyState]("pipeline")
//	g.AddNode("classify", "classify the request", classifyFn)
//	g.AddNode("assign", "dispatch to a worker", assignFn)
//	g.AddConditionalEdge("classify", routeFn)
//	g.AddEdge("assign", graph.END)
//	g.SetEntryPoint("classify")
//
//	app, err := g.Compile()
//	result, err := app.Invoke(ctx, MyState{Input: "..."})
//
// With a Config carrying a store.SessionStore and a thread ID, the runnable
// saves a snapshot of the state after every step; LoadState retrieves the
// latest snapshot for a thread.
package graph
