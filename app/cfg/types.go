package cfg

import "time"

type Cfg struct {
	// Notification sink
	DiscordWebhook string

	// Completion service
	AIProvider    string
	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Feed and article sources
	FeedURL             string
	FeedParser          string
	StateVariable       string
	ReadabilityFallback bool

	// Triggers
	Port              string
	SchedulerInterval int
	WorkerCount       int
	TaskTimeout       int

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}

func (c *Cfg) GetSchedulerInterval() time.Duration {
	return time.Duration(c.SchedulerInterval) * time.Second
}

func (c *Cfg) GetTaskTimeout() time.Duration {
	if c.TaskTimeout <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.TaskTimeout) * time.Second
}
