// Package search finds candidate conference pages on the open web.
package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ppiankov/cfpwatch/internal/fetch"
)

// Result is one organic search hit
type Result struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet,omitempty"`
	Rank    int    `json:"rank"` // 1-based position in the result page
}

// Searcher runs a web search query
type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// DuckDuckGo queries the DuckDuckGo HTML endpoint, which needs no API key
type DuckDuckGo struct {
	fetcher    *fetch.Fetcher
	endpoint   string
	maxResults int
}

// NewDuckDuckGo creates a DuckDuckGo searcher. The fetcher should not enforce
// robots.txt; the endpoint is a search API, not a crawled page.
func NewDuckDuckGo(fetcher *fetch.Fetcher, endpoint string, maxResults int) *DuckDuckGo {
	if endpoint == "" {
		endpoint = "https://html.duckduckgo.com/html/"
	}
	if maxResults <= 0 {
		maxResults = 10
	}
	return &DuckDuckGo{
		fetcher:    fetcher,
		endpoint:   endpoint,
		maxResults: maxResults,
	}
}

// Search runs the query and returns organic results in rank order
func (d *DuckDuckGo) Search(ctx context.Context, query string) ([]Result, error) {
	sep := "?"
	if strings.Contains(d.endpoint, "?") {
		sep = "&"
	}
	searchURL := d.endpoint + sep + "q=" + url.QueryEscape(query)

	page, err := d.fetcher.FetchWithRetry(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	return ParseResults(page.HTML, d.maxResults)
}

// ParseResults extracts organic results from a DuckDuckGo HTML result page
func ParseResults(html string, maxResults int) ([]Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse search results: %w", err)
	}

	var results []Result
	seen := make(map[string]bool)

	doc.Find(".result").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if s.HasClass("result--ad") {
			return true
		}

		link := s.Find("a.result__a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}

		target, ok := decodeResultURL(href)
		if !ok || seen[target] {
			return true
		}
		seen[target] = true

		results = append(results, Result{
			URL:     target,
			Title:   strings.TrimSpace(link.Text()),
			Snippet: strings.Join(strings.Fields(s.Find(".result__snippet").First().Text()), " "),
			Rank:    len(results) + 1,
		})

		return maxResults <= 0 || len(results) < maxResults
	})

	return results, nil
}

// decodeResultURL unwraps DuckDuckGo redirect links ("//duckduckgo.com/l/?uddg=...")
// and drops ad redirects
func decodeResultURL(href string) (string, bool) {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	if strings.HasSuffix(parsed.Host, "duckduckgo.com") {
		if strings.HasPrefix(parsed.Path, "/y.js") {
			return "", false
		}
		target := parsed.Query().Get("uddg")
		if target == "" {
			return "", false
		}
		parsed, err = url.Parse(target)
		if err != nil {
			return "", false
		}
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", false
	}
	return parsed.String(), true
}
