package agent

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"github.com/smallnest/swarmgraph/log"
	"github.com/smallnest/swarmgraph/store"
	"github.com/smallnest/swarmgraph/tool"
)

// Config carries everything a pipeline needs, passed explicitly to the
// constructors. Nothing is read from the process environment.
type Config struct {
	// Model is the chat-completion backend. Required.
	Model llms.Model

	// Search is the web search backend used by the research worker.
	// Optional; without it the research worker works from the request alone.
	Search tool.Search

	// Pages expands the top search hit into full page text when set.
	Pages *tool.Page

	// Prompts overrides the built-in worker templates per kind.
	Prompts map[TaskKind]string

	// Logger defaults to the package-level logger in the log package.
	Logger log.Logger

	// Store persists pipeline state per thread when set.
	Store store.SessionStore

	// ThreadID keys persisted state. Generated per run when empty and a
	// Store is set.
	ThreadID string

	// Sequential makes the swarm fan-out run workers one by one instead of
	// concurrently. The resulting map is identical either way.
	Sequential bool
}

func (c Config) validate() error {
	if c.Model == nil {
		return fmt.Errorf("config: model is required")
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = log.GetDefaultLogger()
	}
	return c
}

// generateText sends a single user message to the model and returns the
// reply text.
func generateText(ctx context.Context, model llms.Model, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return resp.Choices[0].Content, nil
}
