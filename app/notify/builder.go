package notify

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/araddon/dateparse"
)

// TimestampLayout is the ISO-8601 form the sink expects.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Build validates cards and returns normalized copies. The input slice and
// the cards' field slices are left untouched.
func Build(cards []Card) ([]Card, error) {
	if len(cards) > MaxCards {
		return nil, fmt.Errorf("%w: got %d", ErrTooManyCards, len(cards))
	}

	built := make([]Card, 0, len(cards))
	for i, card := range cards {
		if card.Title == "" && card.Description == "" {
			return nil, fmt.Errorf("card %d: %w", i, ErrEmptyCard)
		}

		if card.Timestamp != "" {
			timestamp, err := NormalizeTimestamp(card.Timestamp)
			if err != nil {
				slog.Warn("Dropping unparseable card timestamp", "card", i, "timestamp", card.Timestamp, "error", err)
			}
			card.Timestamp = timestamp
		}

		if card.Fields != nil {
			fields := make([]Field, len(card.Fields))
			for j, field := range card.Fields {
				fields[j] = Field{
					Name:   Truncate(field.Name, maxFieldNameLength),
					Value:  Truncate(field.Value, maxFieldValueLength),
					Inline: field.Inline,
				}
			}
			card.Fields = fields
		}

		built = append(built, card)
	}

	return built, nil
}

// NormalizeTimestamp renders any recognizable date as a UTC instant. Input
// without a zone is read as UTC. On failure it returns an empty string.
func NormalizeTimestamp(value string) (string, error) {
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return "", fmt.Errorf("failed to parse timestamp: %w", err)
	}

	return t.UTC().Format(TimestampLayout), nil
}

// Truncate cuts s to at most n characters.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}

	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}

	return s
}
