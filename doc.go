// Swarmgraph - Supervisor and Swarm Multi-Agent Pipelines in Go
//
// Swarmgraph provides two small multi-agent orchestration patterns built on a
// typed state graph:
//
//   - Supervisor: classify a user request into one of four task kinds
//     (research, analysis, creative, technical), then dispatch it to the one
//     worker registered for that kind. Requests the classifier cannot place
//     finish without dispatch.
//   - Swarm: fan the request out to all four workers at once, wait for every
//     branch, then synthesize a single consensus answer from their results.
//
// # Quick Start
//
// Install the package:
//
//	go get github.com/smallnest/swarmgraph
//
// Basic example:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//
//		"github.com/smallnest/swarmgraph/agent"
//		"github.com/tmc/langchaingo/llms/openai"
//	)
//
//	func main() {
//		model, _ := openai.New()
//
//		sup, _ := agent.NewSupervisor(agent.Config{Model: model})
//
//		res, _ := sup.Run(context.Background(), "Compare the pros and cons of A and B")
//		fmt.Println(res.WorkerResult)
//	}
//
// The graph package contains the execution engine, the agent package the two
// pipelines, the tool package the web search boundary, and the store package
// thread-keyed session persistence (memory, Redis, SQLite, Postgres).
package swarmgraph
