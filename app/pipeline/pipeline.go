package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bbz662/english-teacher/app/article"
	"github.com/bbz662/english-teacher/app/cfg"
	"github.com/bbz662/english-teacher/app/feed"
	"github.com/bbz662/english-teacher/app/fetch"
	"github.com/bbz662/english-teacher/app/material"
	"github.com/bbz662/english-teacher/app/metrics"
	"github.com/bbz662/english-teacher/app/notify"
	"github.com/google/uuid"
)

const (
	ErrorCardTitle = "Error Processing RSS Feed"
	ErrorCardColor = 0xFF0000

	maxTitleLength            = 256
	maxMaterialLength         = 4096
	maxErrorDescriptionLength = 2048

	errorNotificationTimeout = 30 * time.Second
)

type Pipeline struct {
	feedURL   string
	fetcher   Fetcher
	parser    FeedParser
	extractor ArticleExtractor
	generator MaterialGenerator
	notifier  Notifier
	now       func() time.Time
}

func NewPipeline(feedURL string, fetcher Fetcher, parser FeedParser, extractor ArticleExtractor, generator MaterialGenerator, notifier Notifier) *Pipeline {
	return &Pipeline{
		feedURL:   feedURL,
		fetcher:   fetcher,
		parser:    parser,
		extractor: extractor,
		generator: generator,
		notifier:  notifier,
		now:       time.Now,
	}
}

// New wires a pipeline from configuration. Every call builds fresh stages, so
// concurrent runs share nothing but the HTTP client.
func New(c *cfg.Cfg, httpClient *http.Client) *Pipeline {
	fetcher := fetch.NewClient(httpClient, c.UserAgent)

	var parser FeedParser = feed.NewParser()
	if c.FeedParser == cfg.ParserGofeed {
		parser = feed.NewGofeedParser()
	}

	return NewPipeline(
		c.FeedURL,
		fetcher,
		parser,
		article.NewExtractor(fetcher, c.StateVariable, c.ReadabilityFallback),
		material.NewFromConfig(c, httpClient),
		notify.NewNotifier(httpClient, c.DiscordWebhook),
	)
}

// Run processes the newest feed item and posts the result. Any failure is
// reported with a single error card instead; Run itself never fails.
func (p *Pipeline) Run(ctx context.Context) Outcome {
	start := p.now()
	outcome := Outcome{RunID: uuid.NewString(), States: []State{StateIdle}}
	logger := slog.With("run_id", outcome.RunID)

	logger.Info("Feed check started", "feed_url", p.feedURL)

	outcome.Err = guard(func() error {
		return p.process(ctx, &outcome, logger)
	})

	if outcome.Err != nil {
		logger.Error("Failed to process feed", "feed_url", p.feedURL, "error", outcome.Err)
		p.enter(&outcome, logger, StateNotifyingError)

		outcome.NotifyErr = p.sendErrorCard(ctx, outcome.Err)
		metrics.RecordNotification(metrics.NotificationError, outcome.NotifyErr)
		if outcome.NotifyErr != nil {
			logger.Error("Failed to send error notification", "error", outcome.NotifyErr)
		}
	}

	p.enter(&outcome, logger, StateDone)

	result := metrics.OutcomeSuccess
	if outcome.Err != nil {
		result = metrics.OutcomeFailure
	}
	duration := p.now().Sub(start)
	metrics.PipelineRunsTotal.WithLabelValues(result).Inc()
	metrics.PipelineRunDuration.Observe(duration.Seconds())

	logger.Info("Feed check finished", "outcome", result, "duration", duration)

	return outcome
}

func (p *Pipeline) process(ctx context.Context, outcome *Outcome, logger *slog.Logger) error {
	p.enter(outcome, logger, StateFetchingFeed)

	data, err := p.fetcher.Get(ctx, p.feedURL)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	_, items, err := p.parser.Run(data)
	if err != nil {
		return fmt.Errorf("failed to parse feed: %w", err)
	}
	if len(items) == 0 {
		return feed.ErrNoItems
	}

	item := items[0]
	outcome.Item = &item
	logger.Debug("Processing newest feed item", "title", item.Title, "link", item.Link, "total", len(items))

	p.enter(outcome, logger, StateExtractingArticle)
	text := p.extractor.Run(ctx, item.Link)

	p.enter(outcome, logger, StateGenerating)
	output := p.generator.Run(ctx, text)

	p.enter(outcome, logger, StateNotifyingSuccess)
	err = p.notifier.Send(ctx, notify.Batch{Cards: []notify.Card{
		{Title: notify.Truncate(item.Title, maxTitleLength), URL: item.Link},
		{Description: notify.Truncate(output, maxMaterialLength)},
	}})
	metrics.RecordNotification(metrics.NotificationMaterial, err)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	return nil
}

// sendErrorCard outlives the run's context so a timed out run can still
// report itself.
func (p *Pipeline) sendErrorCard(ctx context.Context, cause error) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), errorNotificationTimeout)
	defer cancel()

	card := ErrorCard(cause, p.now())

	return guard(func() error {
		return p.notifier.Send(ctx, notify.Batch{Cards: []notify.Card{card}})
	})
}

func (p *Pipeline) enter(outcome *Outcome, logger *slog.Logger, state State) {
	outcome.States = append(outcome.States, state)
	logger.Debug("Pipeline state changed", "state", state)
}

// ErrorCard renders a failure as the card posted on the error path.
func ErrorCard(err error, now time.Time) notify.Card {
	return notify.Card{
		Title:       ErrorCardTitle,
		Description: notify.Truncate(err.Error(), maxErrorDescriptionLength),
		Color:       ErrorCardColor,
		Timestamp:   now.UTC().Format(notify.TimestampLayout),
	}
}

func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered from panic: %v", r)
		}
	}()

	return fn()
}
