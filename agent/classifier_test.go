package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskKind(t *testing.T) {
	assert.Equal(t, TaskResearch, ParseTaskKind("research"))
	assert.Equal(t, TaskAnalysis, ParseTaskKind("analysis"))
	assert.Equal(t, TaskCreative, ParseTaskKind("creative"))
	assert.Equal(t, TaskTechnical, ParseTaskKind("technical"))

	// Replies are trimmed and lower-cased before matching.
	assert.Equal(t, TaskAnalysis, ParseTaskKind("  Analysis \n"))
	assert.Equal(t, TaskResearch, ParseTaskKind("RESEARCH"))

	// Anything else is unclassified, not an error.
	assert.Equal(t, TaskUnclassified, ParseTaskKind("unknown"))
	assert.Equal(t, TaskUnclassified, ParseTaskKind(""))
	assert.Equal(t, TaskUnclassified, ParseTaskKind("research please"))
}

func TestTaskKindDispatchable(t *testing.T) {
	for _, kind := range DispatchKinds {
		assert.True(t, kind.Dispatchable(), "kind %s", kind)
	}
	assert.False(t, TaskUnclassified.Dispatchable())
	assert.False(t, TaskKind("unknown").Dispatchable())
}

func TestClassifier(t *testing.T) {
	model := &mockModel{classifyReply: "creative"}
	classifier := NewClassifier(model)

	kind, err := classifier.Classify(context.Background(), "write me a poem about spring")
	require.NoError(t, err)
	assert.Equal(t, TaskCreative, kind)

	// The classification prompt contains the raw input.
	calls := model.callsContaining("write me a poem about spring")
	assert.Len(t, calls, 1)
}

func TestClassifierUnrecognizedReply(t *testing.T) {
	model := &mockModel{classifyReply: "I would say this is a research task."}
	classifier := NewClassifier(model)

	kind, err := classifier.Classify(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, TaskUnclassified, kind)
}

func TestClassifierModelError(t *testing.T) {
	model := &mockModel{err: errors.New("connection refused")}
	classifier := NewClassifier(model)

	_, err := classifier.Classify(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "classification failed")
}
