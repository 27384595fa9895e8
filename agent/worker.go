package agent

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"github.com/smallnest/swarmgraph/tool"
)

// Worker produces a domain-specific text result for one task kind.
type Worker interface {
	// Kind returns the task kind this worker serves.
	Kind() TaskKind

	// Run formats the worker's prompt with the raw input, forwards it to
	// the model and returns the reply verbatim.
	Run(ctx context.Context, input string) (string, error)
}

// promptWorker serves the analysis, creative and technical kinds: one
// template, one model call, no tools.
type promptWorker struct {
	kind     TaskKind
	model    llms.Model
	template string
}

func (w *promptWorker) Kind() TaskKind {
	return w.kind
}

func (w *promptWorker) Run(ctx context.Context, input string) (string, error) {
	return generateText(ctx, w.model, fmt.Sprintf(w.template, input))
}

// researchWorker performs a blocking search call first and folds the results
// into its prompt. With a page fetcher configured it also expands the top
// hit into full page text.
type researchWorker struct {
	model    llms.Model
	search   tool.Search
	pages    *tool.Page
	template string
}

func (w *researchWorker) Kind() TaskKind {
	return TaskResearch
}

func (w *researchWorker) Run(ctx context.Context, input string) (string, error) {
	searchText := "No search backend configured"

	if w.search != nil {
		results, err := w.search.Search(ctx, input)
		if err != nil {
			return "", fmt.Errorf("search failed: %w", err)
		}
		searchText = tool.FormatResults(results)

		if w.pages != nil && len(results) > 0 {
			// Page fetch is best effort; the snippet alone is enough.
			if text, err := w.pages.Fetch(ctx, results[0].URL); err == nil && text != "" {
				searchText += "\nTop result content: " + text
			}
		}
	}

	return generateText(ctx, w.model, fmt.Sprintf(w.template, input, searchText))
}

// newWorkers builds the fixed worker set, one per dispatchable kind, applying
// any template overrides from the config.
func newWorkers(cfg Config) map[TaskKind]Worker {
	template := func(kind TaskKind) string {
		if t, ok := cfg.Prompts[kind]; ok && t != "" {
			return t
		}
		return defaultTemplate(kind)
	}

	workers := make(map[TaskKind]Worker, len(DispatchKinds))
	workers[TaskResearch] = &researchWorker{
		model:    cfg.Model,
		search:   cfg.Search,
		pages:    cfg.Pages,
		template: template(TaskResearch),
	}
	for _, kind := range []TaskKind{TaskAnalysis, TaskCreative, TaskTechnical} {
		workers[kind] = &promptWorker{
			kind:     kind,
			model:    cfg.Model,
			template: template(kind),
		}
	}
	return workers
}

// failurePlaceholder is recorded for a worker whose invocation failed. The
// failure does not propagate; the pipeline proceeds with the placeholder.
func failurePlaceholder(kind TaskKind, err error) string {
	return fmt.Sprintf("%s worker failed: %v", kind, err)
}
