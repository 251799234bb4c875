package material

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed prompt.yml
var promptDocument []byte

type Prompt struct {
	Model    string `yaml:"model"`
	Template string `yaml:"template"`
}

// DefaultPrompt is the embedded learning-material prompt.
var DefaultPrompt = mustLoadPrompt(promptDocument)

func LoadPrompt(data []byte) (*Prompt, error) {
	var prompt Prompt
	if err := yaml.Unmarshal(data, &prompt); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if strings.TrimSpace(prompt.Template) == "" {
		return nil, fmt.Errorf("prompt template is required")
	}
	if prompt.Model == "" {
		return nil, fmt.Errorf("prompt model is required")
	}

	return &prompt, nil
}

func mustLoadPrompt(data []byte) *Prompt {
	prompt, err := LoadPrompt(data)
	if err != nil {
		panic(fmt.Sprintf("invalid embedded prompt: %v", err))
	}
	return prompt
}

// Build appends the article text verbatim after the instructions.
func (p *Prompt) Build(articleText string) string {
	return strings.TrimRight(p.Template, "\n") + "\n\n" + articleText + "\n"
}
