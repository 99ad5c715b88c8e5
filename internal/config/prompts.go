package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const promptsFile = "prompts.yaml"

// Prompt is one named template from prompts.yaml. The {journal_content}
// placeholder is substituted with the formatted diary entries.
type Prompt struct {
	Name     string
	Template string
	Active   bool
}

// PromptList preserves the file order of the prompt entries, which
// matters because active-prompt selection is first-match-wins.
type PromptList struct {
	Items []Prompt
}

func (l *PromptList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("prompts must be a mapping of name to template")
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valNode := value.Content[i+1]

		var body struct {
			Template string `yaml:"template"`
			Active   bool   `yaml:"active"`
		}
		if err := valNode.Decode(&body); err != nil {
			return fmt.Errorf("prompt %q: %w", keyNode.Value, err)
		}
		l.Items = append(l.Items, Prompt{
			Name:     keyNode.Value,
			Template: body.Template,
			Active:   body.Active,
		})
	}
	return nil
}

// ByName looks a template up by its key.
func (l *PromptList) ByName(name string) (Prompt, bool) {
	for _, p := range l.Items {
		if p.Name == name {
			return p, true
		}
	}
	return Prompt{}, false
}

type promptsFileShape struct {
	Prompts PromptList `yaml:"prompts"`
}

// LoadPrompts reads the prompt templates from path, or from the default
// location when path is empty.
func LoadPrompts(path string) (*PromptList, error) {
	data, err := os.ReadFile(defaultPath(path, promptsFile))
	if err != nil {
		return nil, err
	}
	var f promptsFileShape
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid prompts file: %w", err)
	}
	return &f.Prompts, nil
}
