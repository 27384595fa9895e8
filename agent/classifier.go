package agent

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
)

// Classifier maps a free-text request to a TaskKind with one model call.
type Classifier struct {
	model llms.Model
}

// NewClassifier creates a classifier over the given model.
func NewClassifier(model llms.Model) *Classifier {
	return &Classifier{model: model}
}

// Classify asks the model for one of the four labels. The reply is taken as
// the label after trimming and lower-casing; there is no validation loop. An
// out-of-set reply yields TaskUnclassified, which the router treats as
// finish-without-dispatch.
func (c *Classifier) Classify(ctx context.Context, input string) (TaskKind, error) {
	prompt := fmt.Sprintf(classifyTemplate, input)

	reply, err := generateText(ctx, c.model, prompt)
	if err != nil {
		return TaskUnclassified, fmt.Errorf("classification failed: %w", err)
	}
	return ParseTaskKind(reply), nil
}
