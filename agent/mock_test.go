package agent

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/smallnest/swarmgraph/tool"
)

// mockModel fakes the chat backend by keyword-matching the prompt, the same
// way each stage's template is recognizable by its role line. Optional
// per-keyword delays simulate arbitrary completion order, and errOn injects
// a failure for one stage only.
type mockModel struct {
	mu            sync.Mutex
	classifyReply string
	err           error
	errOn         string                   // inject err only when the prompt contains this
	delays        map[string]time.Duration // keyword -> delay before replying
	calls         []string
}

func (m *mockModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	prompt := promptText(messages)

	m.mu.Lock()
	m.calls = append(m.calls, prompt)
	delays := m.delays
	m.mu.Unlock()

	for keyword, delay := range delays {
		if strings.Contains(prompt, keyword) {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	if m.err != nil && (m.errOn == "" || strings.Contains(prompt, m.errOn)) {
		return nil, m.err
	}

	var reply string
	switch {
	case strings.Contains(prompt, "task dispatcher"):
		reply = m.classifyReply
	case strings.Contains(prompt, "research assistant"):
		reply = "mock research report"
	case strings.Contains(prompt, "professional analyst"):
		reply = "mock analysis report"
	case strings.Contains(prompt, "creative expert"):
		reply = "mock creative piece"
	case strings.Contains(prompt, "technical expert"):
		reply = "mock technical plan"
	case strings.Contains(prompt, "swarm coordinator"):
		reply = "mock consensus answer"
	default:
		reply = "mock reply"
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{
			{Content: reply},
		},
	}, nil
}

func (m *mockModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", nil
}

// callsContaining returns the recorded prompts containing the keyword.
func (m *mockModel) callsContaining(keyword string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []string
	for _, call := range m.calls {
		if strings.Contains(call, keyword) {
			matched = append(matched, call)
		}
	}
	return matched
}

func (m *mockModel) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockSearch echoes the query, in the manner of a cached search fixture.
type mockSearch struct {
	err     error
	queries []string
}

func (s *mockSearch) Name() string {
	return "mock"
}

func (s *mockSearch) Search(ctx context.Context, query string) ([]tool.Result, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	return []tool.Result{
		{Title: "Result for " + query, URL: "https://example.com", Content: "search result: " + query},
	}, nil
}

func promptText(messages []llms.MessageContent) string {
	if len(messages) == 0 || len(messages[0].Parts) == 0 {
		return ""
	}
	if text, ok := messages[0].Parts[0].(llms.TextContent); ok {
		return text.Text
	}
	return ""
}
