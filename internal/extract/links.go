package extract

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Link is an anchor found on a page
type Link struct {
	URL      string
	Text     string
	SameHost bool
}

// Words in an href or anchor text that point at deadline information
var subpageHints = []string{
	"important-dates", "important_dates", "importantdates", "important dates",
	"call-for-papers", "call_for_papers", "callforpapers", "call for papers",
	"cfp", "submission", "dates", "deadlines",
}

// Conventional deadline paths tried after discovered links
var conventionalPaths = []string{"cfp", "call-for-papers", "important-dates", "submissions"}

// Links extracts anchors from the page, resolved against the page URL
func (p *Page) Links() []Link {
	if len(p.Doc.Nodes) == 0 {
		return nil
	}

	var links []Link
	var walk func(*html.Node)

	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			href := ""
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					href = strings.TrimSpace(attr.Val)
				}
			}

			if resolved := resolveURL(p.base, href); resolved != nil {
				links = append(links, Link{
					URL:      resolved.String(),
					Text:     strings.Join(strings.Fields(nodeText(n)), " "),
					SameHost: strings.EqualFold(resolved.Host, p.base.Host),
				})
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(p.Doc.Nodes[0])

	return dedupeLinks(links)
}

// Subpages returns up to max same-site URLs likely to carry deadlines:
// discovered links first, then conventional paths under the page
func (p *Page) Subpages(max int) []string {
	if max <= 0 {
		return nil
	}

	seen := map[string]bool{canonicalLink(p.URL): true}
	var out []string
	add := func(u string) {
		key := canonicalLink(u)
		if len(out) >= max || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, u)
	}

	for _, l := range p.Links() {
		if !l.SameHost {
			continue
		}
		lower := strings.ToLower(l.URL + " " + l.Text)
		if strings.HasSuffix(strings.ToLower(l.URL), ".pdf") {
			continue
		}
		for _, hint := range subpageHints {
			if strings.Contains(lower, hint) {
				add(l.URL)
				break
			}
		}
	}

	dir := *p.base
	dir.RawQuery = ""
	dir.Fragment = ""
	if !strings.HasSuffix(dir.Path, "/") {
		last := dir.Path[strings.LastIndex(dir.Path, "/")+1:]
		if strings.Contains(last, ".") {
			dir.Path = strings.TrimSuffix(dir.Path, last)
		} else {
			dir.Path += "/"
		}
	}
	for _, path := range conventionalPaths {
		if ref, err := url.Parse(path); err == nil {
			add(dir.ResolveReference(ref).String())
		}
	}

	return out
}

// resolveURL resolves a relative URL against a base URL
func resolveURL(base *url.URL, href string) *url.URL {
	// Skip anchors
	if href == "" || strings.HasPrefix(href, "#") {
		return nil
	}

	// Skip javascript: and mailto: links
	lower := strings.ToLower(href)
	if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "mailto:") {
		return nil
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return nil
	}

	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""

	// Only keep http/https URLs
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil
	}

	return resolved
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		buf.WriteString(nodeText(c))
		buf.WriteString(" ")
	}
	return buf.String()
}

func canonicalLink(u string) string {
	return strings.TrimSuffix(strings.ToLower(u), "/")
}

// dedupeLinks removes duplicate links
func dedupeLinks(links []Link) []Link {
	seen := make(map[string]bool)
	var unique []Link

	for _, l := range links {
		key := canonicalLink(l.URL)
		if !seen[key] {
			seen[key] = true
			unique = append(unique, l)
		}
	}

	return unique
}
