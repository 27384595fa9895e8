package agent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options is the YAML-loadable part of a pipeline setup: model selection and
// prompt overrides. Credentials stay out of the file; callers pass them to
// the client constructors directly.
type Options struct {
	// Model is the chat model name, e.g. "deepseek-chat".
	Model string `yaml:"model"`

	// BaseURL overrides the chat API endpoint.
	BaseURL string `yaml:"base_url"`

	// MaxResults caps search hits for the research worker.
	MaxResults int `yaml:"max_results"`

	// Sequential switches the swarm fan-out to one-by-one execution.
	Sequential bool `yaml:"sequential"`

	// Prompts maps a task kind label to a template override.
	Prompts map[string]string `yaml:"prompts"`
}

// LoadOptions reads pipeline options from a YAML file.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file: %w", err)
	}

	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal options: %w", err)
	}
	return &opts, nil
}

// PromptOverrides converts the label-keyed prompt map to TaskKind keys.
// Labels outside the four kinds are rejected.
func (o *Options) PromptOverrides() (map[TaskKind]string, error) {
	if len(o.Prompts) == 0 {
		return nil, nil
	}

	prompts := make(map[TaskKind]string, len(o.Prompts))
	for label, template := range o.Prompts {
		kind := ParseTaskKind(label)
		if !kind.Dispatchable() {
			return nil, fmt.Errorf("unknown worker label in prompts: %q", label)
		}
		prompts[kind] = template
	}
	return prompts, nil
}
