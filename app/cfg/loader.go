package cfg

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	ParserRegex  = "regex"
	ParserGofeed = "gofeed"
)

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Notification sink
	DiscordWebhook string `long:"discord-webhook" env:"DISCORD_WEBHOOK" description:"Discord webhook URL notifications are posted to (required)" required:"true"`

	// Completion service
	AIProvider    string `long:"ai-provider" env:"AI_PROVIDER" default:"gemini" choice:"gemini" choice:"openai" description:"Completion service used to generate learning material"`
	GeminiAPIKey  string `long:"gemini-api-key" env:"GEMINI_API_KEY" description:"Gemini API key"`
	GeminiBaseURL string `long:"gemini-base-url" env:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com" description:"Gemini API base URL"`
	GeminiModel   string `long:"gemini-model" env:"GEMINI_MODEL" description:"Gemini model (defaults to the prompt document's model)"`
	OpenAIAPIKey  string `long:"openai-api-key" env:"OPENAI_API_KEY" description:"OpenAI API key"`
	OpenAIBaseURL string `long:"openai-base-url" env:"OPENAI_BASE_URL" description:"OpenAI-compatible API base URL (optional)"`
	OpenAIModel   string `long:"openai-model" env:"OPENAI_MODEL" default:"gpt-4o-mini" description:"OpenAI model"`

	// Feed and article sources
	FeedURL             string `long:"feed-url" env:"FEED_URL" default:"https://www.technologyreview.com/topic/artificial-intelligence/feed" description:"RSS feed to watch"`
	FeedParser          string `long:"feed-parser" env:"FEED_PARSER" default:"regex" choice:"regex" choice:"gofeed" description:"Feed parser implementation"`
	StateVariable       string `long:"state-variable" env:"STATE_VARIABLE" default:"__PRELOADED_STATE__" description:"Global variable holding the article page state"`
	ReadabilityFallback bool   `long:"readability-fallback" env:"READABILITY_FALLBACK" description:"Fall back to readability extraction when the page state has no content"`

	// Triggers
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"86400" description:"Scheduler interval in seconds (0 disables scheduled checks)"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"1" description:"Number of background workers running feed checks"`
	TaskTimeout       int    `long:"task-timeout" env:"TASK_TIMEOUT" default:"300" description:"Upper bound for a scheduled feed check in seconds"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"English Teacher/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses command-line arguments and environment variables. It returns
// nil, nil when help was requested.
func Load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DiscordWebhook:      strings.TrimSpace(raw.DiscordWebhook),
		AIProvider:          raw.AIProvider,
		GeminiAPIKey:        strings.TrimSpace(raw.GeminiAPIKey),
		GeminiBaseURL:       strings.TrimRight(raw.GeminiBaseURL, "/"),
		GeminiModel:         raw.GeminiModel,
		OpenAIAPIKey:        strings.TrimSpace(raw.OpenAIAPIKey),
		OpenAIBaseURL:       strings.TrimRight(raw.OpenAIBaseURL, "/"),
		OpenAIModel:         raw.OpenAIModel,
		FeedURL:             raw.FeedURL,
		FeedParser:          raw.FeedParser,
		StateVariable:       raw.StateVariable,
		ReadabilityFallback: raw.ReadabilityFallback,
		Port:                raw.Port,
		SchedulerInterval:   raw.SchedulerInterval,
		WorkerCount:         raw.WorkerCount,
		TaskTimeout:         raw.TaskTimeout,
		UserAgent:           raw.UserAgent,
		Debug:               raw.Debug,
		Version:             GetVersion(),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Cfg) validate() error {
	if c.DiscordWebhook == "" {
		return fmt.Errorf("discord webhook URL is required")
	}
	if c.FeedURL == "" {
		return fmt.Errorf("feed URL is required")
	}
	if c.StateVariable == "" {
		return fmt.Errorf("state variable name is required")
	}
	if c.SchedulerInterval < 0 {
		return fmt.Errorf("scheduler interval must be non-negative")
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("worker count must be at least 1")
	}

	switch c.AIProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown ai provider: %s", c.AIProvider)
	}

	switch c.FeedParser {
	case ParserRegex, ParserGofeed:
	default:
		return fmt.Errorf("unknown feed parser: %s", c.FeedParser)
	}

	return nil
}
