package feed

import (
	"bytes"
	"cmp"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// GofeedParser reads the feed with gofeed. Unlike Parser it decodes entities
// and CDATA, understands Atom and JSON feeds, and fails on unparseable input.
type GofeedParser struct {
	gofeedParser *gofeed.Parser
}

func NewGofeedParser() *GofeedParser {
	return &GofeedParser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *GofeedParser) Run(data []byte) (*Channel, []Item, error) {
	parsed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	channel := &Channel{
		Title:       parsed.Title,
		Description: parsed.Description,
		Link:        parsed.Link,
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		items = append(items, Item{
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			PubDate:     item.Published,
			GUID:        cmp.Or(item.GUID, item.Link),
		})
	}

	return channel, items, nil
}
