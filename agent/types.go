package agent

import "strings"

// TaskKind is the closed set of task categories the classifier can assign.
// The zero value is TaskUnclassified.
type TaskKind string

const (
	// TaskResearch covers information search and data gathering.
	TaskResearch TaskKind = "research"
	// TaskAnalysis covers analysis, comparison and evaluation.
	TaskAnalysis TaskKind = "analysis"
	// TaskCreative covers content creation and writing.
	TaskCreative TaskKind = "creative"
	// TaskTechnical covers technical solutions and programming.
	TaskTechnical TaskKind = "technical"
	// TaskUnclassified marks a request the classifier could not place.
	TaskUnclassified TaskKind = ""
)

// DispatchKinds lists the four dispatchable kinds in their fixed order.
var DispatchKinds = []TaskKind{TaskResearch, TaskAnalysis, TaskCreative, TaskTechnical}

// ParseTaskKind maps a free-text classifier reply to a TaskKind. The reply is
// trimmed and lower-cased; anything outside the four labels becomes
// TaskUnclassified. That is a defined outcome, not an error.
func ParseTaskKind(s string) TaskKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "research":
		return TaskResearch
	case "analysis":
		return TaskAnalysis
	case "creative":
		return TaskCreative
	case "technical":
		return TaskTechnical
	default:
		return TaskUnclassified
	}
}

// Dispatchable reports whether a worker is registered for this kind.
func (k TaskKind) Dispatchable() bool {
	switch k {
	case TaskResearch, TaskAnalysis, TaskCreative, TaskTechnical:
		return true
	default:
		return false
	}
}

// String returns the kind's label, or "unclassified" for the zero value.
func (k TaskKind) String() string {
	if k == TaskUnclassified {
		return "unclassified"
	}
	return string(k)
}

// TaskState is the supervisor pipeline state. Fields fill in pipeline order:
// classify sets Kind and AssignedWorker, assign sets WorkerResult and Done.
// The state lives for one request and is discarded afterwards.
type TaskState struct {
	Input          string   `json:"user_input"`
	Kind           TaskKind `json:"task_type"`
	AssignedWorker TaskKind `json:"assigned_worker"`
	WorkerResult   string   `json:"worker_result"`
	Step           int      `json:"step"`
	Done           bool     `json:"done"`
}

// SwarmState is the swarm pipeline state. ParallelResults is written exactly
// once, by the fan-out stage, before the consensus stage reads it.
type SwarmState struct {
	Input           string              `json:"user_input"`
	ParallelResults map[TaskKind]string `json:"parallel_results"`
	Consensus       string              `json:"consensus_result"`
	Step            int                 `json:"step"`
	Done            bool                `json:"done"`
}
