package pipeline

import (
	"context"

	"github.com/bbz662/english-teacher/app/feed"
	"github.com/bbz662/english-teacher/app/notify"
)

type State string

const (
	StateIdle              State = "Idle"
	StateFetchingFeed      State = "FetchingFeed"
	StateExtractingArticle State = "ExtractingArticle"
	StateGenerating        State = "Generating"
	StateNotifyingSuccess  State = "NotifyingSuccess"
	StateNotifyingError    State = "NotifyingError"
	StateDone              State = "Done"
)

type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

type FeedParser interface {
	Run(data []byte) (*feed.Channel, []feed.Item, error)
}

type ArticleExtractor interface {
	Run(ctx context.Context, articleURL string) string
}

type MaterialGenerator interface {
	Run(ctx context.Context, articleText string) string
}

type Notifier interface {
	Send(ctx context.Context, batch notify.Batch) error
}

// Outcome describes a finished run. Err is the failure that sent the run
// down the error path; NotifyErr is set when the error card itself could not
// be delivered.
type Outcome struct {
	RunID     string
	States    []State
	Item      *feed.Item
	Err       error
	NotifyErr error
}

func (o Outcome) Succeeded() bool {
	return o.Err == nil
}
