// Package extract turns a conference web page into a candidate deadline record.
package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// Page is a parsed document shared by all strategies
type Page struct {
	URL   string
	Title string
	Text  string // NFKC-normalized visible text, one block per line
	Doc   *goquery.Document
	base  *url.URL
}

// blockElements start a new line in the visible text
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true, "table": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "header": true, "footer": true, "nav": true,
	"ul": true, "ol": true, "dl": true, "dt": true, "dd": true, "blockquote": true,
	"pre": true, "hr": true, "main": true, "aside": true, "tbody": true, "thead": true,
}

var strikeElements = []string{"s", "del", "strike"}

// NewPage parses HTML and extracts visible text, truncated to maxText runes (0 = unlimited)
func NewPage(htmlContent, pageURL string, maxText int) (*Page, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	// struck-out dates are superseded ones ("<s>Nov 10</s> Nov 17 (extended)")
	doc.Find(strings.Join(strikeElements, ", ")).Remove()

	text := ""
	if len(doc.Nodes) > 0 {
		text = extractVisibleText(doc.Nodes[0])
	}
	if maxText > 0 {
		text = truncateRunes(text, maxText)
	}

	return &Page{
		URL:   pageURL,
		Title: strings.Join(strings.Fields(norm.NFKC.String(doc.Find("title").First().Text())), " "),
		Text:  text,
		Doc:   doc,
		base:  base,
	}, nil
}

// extractVisibleText extracts text nodes from HTML, skipping scripts, styles
// and struck-out text.
// Block elements end a line so table rows and list items stay separate.
func extractVisibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "svg", "template", "head", "s", "del", "strike":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		block := n.Type == html.ElementNode && blockElements[n.Data]
		if block {
			buf.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			buf.WriteString("\n")
		}
	}

	walk(n)
	return normalizeText(buf.String())
}

// normalizeText applies NFKC, collapses spaces within lines and drops blank lines
func normalizeText(s string) string {
	s = norm.NFKC.String(s)

	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
