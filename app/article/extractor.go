package article

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-shiori/go-readability"
)

// FailedExtraction is returned in place of article text whenever extraction
// fails. Later stages treat it as ordinary text.
const FailedExtraction = "Failed to extract article content."

var (
	errNoStateAssignment = errors.New("no page state assignment found")
	errNoPageData        = errors.New("page data not found in page state")
	errNoContent         = errors.New("no content found in page data")
)

type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Extractor recovers article text from the JSON state object an article page
// assigns to a global variable. The assignment is located with a reluctant
// pattern that ends at the first "};", so a literal containing "};" inside a
// string is cut short. That is accepted.
type Extractor struct {
	fetcher             Fetcher
	statePattern        *regexp.Regexp
	readabilityFallback bool
}

func NewExtractor(fetcher Fetcher, stateVariable string, readabilityFallback bool) *Extractor {
	pattern := `(?s)window\.` + regexp.QuoteMeta(stateVariable) + `\s*=\s*(\{.*?\});`

	return &Extractor{
		fetcher:             fetcher,
		statePattern:        regexp.MustCompile(pattern),
		readabilityFallback: readabilityFallback,
	}
}

// Run never fails: any problem is logged and FailedExtraction is returned.
func (e *Extractor) Run(ctx context.Context, articleURL string) string {
	parsedURL, err := url.Parse(articleURL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		slog.Error("Invalid article URL", "url", articleURL, "error", err)
		return FailedExtraction
	}

	html, err := e.fetcher.Get(ctx, articleURL)
	if err != nil {
		slog.Error("Failed to fetch article page", "url", articleURL, "error", err)
		return FailedExtraction
	}

	text, err := e.extractFromState(html, pagePath(parsedURL))
	if err == nil {
		slog.Debug("Article content extracted", "url", articleURL, "content_length", len(text))
		return text
	}

	slog.Error("Failed to extract article from page state", "url", articleURL, "error", err)

	if e.readabilityFallback {
		text, err = extractWithReadability(html, parsedURL)
		if err == nil {
			slog.Info("Article content extracted with readability fallback", "url", articleURL, "content_length", len(text))
			return text
		}
		slog.Error("Readability fallback failed", "url", articleURL, "error", err)
	}

	return FailedExtraction
}

func (e *Extractor) extractFromState(html []byte, path string) (string, error) {
	match := e.statePattern.FindSubmatch(html)
	if match == nil {
		return "", errNoStateAssignment
	}

	state, err := ParseState(match[1])
	if err != nil {
		return "", err
	}

	pageData := state.Get("components").Get("page").Get(path)
	if pageData == nil {
		return "", fmt.Errorf("%w: %s", errNoPageData, path)
	}

	content, ok := FindContent(pageData)
	if !ok {
		return "", errNoContent
	}

	return ToPlainText(content), nil
}

// pagePath is the key the page state uses for an article: the percent-encoded
// path, with "/" for a bare host.
func pagePath(u *url.URL) string {
	if path := u.EscapedPath(); path != "" {
		return path
	}
	return "/"
}

func extractWithReadability(html []byte, pageURL *url.URL) (string, error) {
	article, err := readability.FromReader(bytes.NewReader(html), pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	text := strings.TrimSpace(whitespacePattern.ReplaceAllString(article.TextContent, " "))
	if text == "" {
		return "", fmt.Errorf("no content extracted from HTML data")
	}

	return text, nil
}
