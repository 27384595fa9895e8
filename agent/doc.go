// Package agent provides the supervisor and swarm pipelines.
//
// The supervisor classifies a request into one of four task kinds and
// dispatches it to the one worker registered for that kind:
//
//	classify -> (assign | END)
//	assign   -> END
//
// A request the classifier cannot place finishes without dispatch. The swarm
// sends the same request to all four workers at once and synthesizes their
// results into one consensus answer:
//
//	parallel -> consensus -> END
//
// A failing worker branch is recorded as a placeholder result and does not
// stop the others. Both pipelines are driven by an explicit Config; nothing
// is read from the process environment.
package agent
