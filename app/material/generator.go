package material

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/bbz662/english-teacher/app/cfg"
)

// FailedGeneration is returned in place of material whenever the completion
// call fails.
const FailedGeneration = "Failed to generate output."

// Completer is a single-turn text completion service.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

type Generator struct {
	completer Completer
	prompt    *Prompt
}

func NewGenerator(completer Completer, prompt *Prompt) *Generator {
	if prompt == nil {
		prompt = DefaultPrompt
	}
	return &Generator{
		completer: completer,
		prompt:    prompt,
	}
}

// NewFromConfig wires the completer selected by the configuration.
func NewFromConfig(c *cfg.Cfg, httpClient *http.Client) *Generator {
	var completer Completer

	switch c.AIProvider {
	case cfg.ProviderOpenAI:
		completer = NewOpenAIClient(httpClient, c.OpenAIBaseURL, c.OpenAIAPIKey, c.OpenAIModel)
	default:
		model := c.GeminiModel
		if model == "" {
			model = DefaultPrompt.Model
		}
		completer = NewGeminiClient(httpClient, c.GeminiBaseURL, c.GeminiAPIKey, model)
	}

	return NewGenerator(completer, DefaultPrompt)
}

// Run never fails: any completion error is logged and FailedGeneration is
// returned.
func (g *Generator) Run(ctx context.Context, articleText string) string {
	start := time.Now()

	output, err := g.completer.Complete(ctx, g.prompt.Build(articleText))
	if err != nil {
		slog.Error("Failed to generate learning material",
			"provider", g.completer.Name(),
			"duration", time.Since(start),
			"error", err)
		return FailedGeneration
	}

	slog.Debug("Learning material generated",
		"provider", g.completer.Name(),
		"duration", time.Since(start),
		"input_length", len(articleText),
		"output_length", len(output))

	return output
}
