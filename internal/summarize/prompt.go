package summarize

import (
	"fmt"
	"strings"

	"github.com/voice-diary/voicediary/internal/config"
	"github.com/voice-diary/voicediary/pkg/log"
)

// journalPlaceholder is the substitution target inside prompt templates.
const journalPlaceholder = "{journal_content}"

// ActivePrompt selects the prompt template to run. Exactly one active
// entry is the normal case; several actives fall back to the first of
// them and none at all falls back to the first entry, each with a
// warning.
func ActivePrompt(prompts *config.PromptList) (config.Prompt, error) {
	if prompts == nil || len(prompts.Items) == 0 {
		return config.Prompt{}, fmt.Errorf("no prompt templates configured")
	}

	var active []config.Prompt
	for _, p := range prompts.Items {
		if p.Active {
			active = append(active, p)
		}
	}

	switch {
	case len(active) == 1:
		log.Info("Using active prompt: %s", active[0].Name)
		return active[0], nil
	case len(active) > 1:
		names := make([]string, len(active))
		for i, p := range active {
			names[i] = p.Name
		}
		log.Warn("Multiple active prompts found: %s. Using the first one: %s", strings.Join(names, ", "), names[0])
		return active[0], nil
	default:
		log.Warn("No active prompt found, using the first one: %s", prompts.Items[0].Name)
		return prompts.Items[0], nil
	}
}

// RenderPrompt substitutes the formatted journal block into a template.
// A template without the placeholder comes back unchanged.
func RenderPrompt(template, journal string) string {
	return strings.ReplaceAll(template, journalPlaceholder, journal)
}
