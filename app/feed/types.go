package feed

import "errors"

// ErrNoItems is returned by callers that need at least one item.
var ErrNoItems = errors.New("feed contains no items")

type Channel struct {
	Title       string
	Description string
	Link        string
}

type Item struct {
	Title       string
	Link        string
	Description string
	PubDate     string // raw text, not parsed
	GUID        string // falls back to Link
}
