package agent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOptionsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "options.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOptions(t *testing.T) {
	path := writeOptionsFile(t, `
model: deepseek-chat
base_url: https://api.deepseek.com/v1
max_results: 3
sequential: true
prompts:
  creative: "As a creative expert, write a haiku only.\n\nUser request: %s"
`)

	opts, err := LoadOptions(path)
	require.NoError(t, err)

	assert.Equal(t, "deepseek-chat", opts.Model)
	assert.Equal(t, "https://api.deepseek.com/v1", opts.BaseURL)
	assert.Equal(t, 3, opts.MaxResults)
	assert.True(t, opts.Sequential)
	assert.Len(t, opts.Prompts, 1)
}

func TestLoadOptionsMissingFile(t *testing.T) {
	_, err := LoadOptions(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read options file")
}

func TestLoadOptionsBadYAML(t *testing.T) {
	path := writeOptionsFile(t, "model: [unclosed")

	_, err := LoadOptions(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal options")
}

func TestPromptOverrides(t *testing.T) {
	opts := &Options{Prompts: map[string]string{
		"creative":  "creative template %s",
		"Technical": "technical template %s",
	}}

	prompts, err := opts.PromptOverrides()
	require.NoError(t, err)
	assert.Equal(t, map[TaskKind]string{
		TaskCreative:  "creative template %s",
		TaskTechnical: "technical template %s",
	}, prompts)
}

func TestPromptOverridesUnknownLabel(t *testing.T) {
	opts := &Options{Prompts: map[string]string{"poet": "nope"}}

	_, err := opts.PromptOverrides()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown worker label in prompts: "poet"`)
}

func TestPromptOverridesEmpty(t *testing.T) {
	prompts, err := (&Options{}).PromptOverrides()
	require.NoError(t, err)
	assert.Nil(t, prompts)
}
