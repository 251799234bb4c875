package feed

import (
	"cmp"
	"regexp"
	"strings"
)

// Parser is a pattern-based RSS reader for one known feed shape. It performs
// no entity decoding, CDATA unwrapping or namespace handling. Non-greedy
// matches mis-bound on nested tags of the same name; that is accepted.
type Parser struct{}

var (
	channelPattern = regexp.MustCompile(`(?s)<channel>(.*?)</channel>`)
	itemPattern    = regexp.MustCompile(`(?s)<item>(.*?)</item>`)

	tagPatterns = map[string]*regexp.Regexp{}
)

func init() {
	for _, tag := range []string{"title", "link", "description", "pubDate", "guid"} {
		tagPatterns[tag] = compileTag(tag)
	}
}

func compileTag(tag string) *regexp.Regexp {
	name := regexp.QuoteMeta(tag)
	return regexp.MustCompile(`(?s)<` + name + `>(.*?)</` + name + `>`)
}

func NewParser() *Parser {
	return &Parser{}
}

// Run never fails; malformed input yields empty or partial fields.
func (p *Parser) Run(data []byte) (*Channel, []Item, error) {
	text := string(data)

	var channelContent string
	if match := channelPattern.FindStringSubmatch(text); match != nil {
		channelContent = match[1]
	}

	channel := &Channel{
		Title:       extractTag(channelContent, "title"),
		Description: extractTag(channelContent, "description"),
		Link:        extractTag(channelContent, "link"),
	}

	matches := itemPattern.FindAllStringSubmatch(text, -1)
	items := make([]Item, 0, len(matches))
	for _, match := range matches {
		items = append(items, p.parseItem(match[1]))
	}

	return channel, items, nil
}

func (p *Parser) parseItem(content string) Item {
	link := extractTag(content, "link")

	return Item{
		Title:       extractTag(content, "title"),
		Link:        link,
		Description: extractTag(content, "description"),
		PubDate:     extractTag(content, "pubDate"),
		GUID:        cmp.Or(extractTag(content, "guid"), link),
	}
}

// extractTag returns the trimmed inner text of the first <tag>…</tag>, or "".
func extractTag(content, tag string) string {
	pattern, ok := tagPatterns[tag]
	if !ok {
		pattern = compileTag(tag)
	}

	match := pattern.FindStringSubmatch(content)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}
