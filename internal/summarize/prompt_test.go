package summarize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voice-diary/voicediary/internal/config"
)

func promptList(items ...config.Prompt) *config.PromptList {
	return &config.PromptList{Items: items}
}

func TestActivePromptSingle(t *testing.T) {
	t.Parallel()

	p, err := ActivePrompt(promptList(
		config.Prompt{Name: "daily", Template: "a"},
		config.Prompt{Name: "weekly", Template: "b", Active: true},
	))

	require.NoError(t, err)
	assert.Equal(t, "weekly", p.Name)
}

func TestActivePromptMultipleActivesFirstWins(t *testing.T) {
	t.Parallel()

	p, err := ActivePrompt(promptList(
		config.Prompt{Name: "daily", Template: "a", Active: true},
		config.Prompt{Name: "weekly", Template: "b", Active: true},
	))

	require.NoError(t, err)
	assert.Equal(t, "daily", p.Name)
}

func TestActivePromptNoneActiveFallsBackToFirst(t *testing.T) {
	t.Parallel()

	p, err := ActivePrompt(promptList(
		config.Prompt{Name: "daily", Template: "a"},
		config.Prompt{Name: "weekly", Template: "b"},
	))

	require.NoError(t, err)
	assert.Equal(t, "daily", p.Name)
}

func TestActivePromptEmpty(t *testing.T) {
	t.Parallel()

	_, err := ActivePrompt(&config.PromptList{})
	require.Error(t, err)

	_, err = ActivePrompt(nil)
	require.Error(t, err)
}

func TestRenderPrompt(t *testing.T) {
	t.Parallel()

	got := RenderPrompt("Summarize my day:\n{journal_content}\nKeep it short.", "walked the dog")

	assert.Equal(t, "Summarize my day:\nwalked the dog\nKeep it short.", got)
}

func TestRenderPromptWithoutPlaceholder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "no placeholder here", RenderPrompt("no placeholder here", "walked the dog"))
}
