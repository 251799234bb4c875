package notify

import (
	"errors"
	"fmt"
)

// MaxCards is the number of cards the sink accepts in a single message.
const MaxCards = 10

const (
	maxFieldNameLength  = 256
	maxFieldValueLength = 1024
)

var (
	ErrEmptyCard    = errors.New("card must have a title or a description")
	ErrTooManyCards = fmt.Errorf("a message may carry at most %d cards", MaxCards)
)

// Card is one visual block of a webhook message.
type Card struct {
	Title       string
	Description string
	URL         string
	Color       int
	Fields      []Field
	Timestamp   string
}

type Field struct {
	Name   string
	Value  string
	Inline bool
}

type Batch struct {
	Content string
	Cards   []Card
}

// DeliveryError is returned when the webhook answers with a non-2xx status.
type DeliveryError struct {
	StatusCode int
	Body       string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("webhook responded with status %d: %s", e.StatusCode, e.Body)
}
