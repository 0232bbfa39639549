package extract

import (
	"reflect"
	"strings"
	"testing"
)

func TestPage_Links(t *testing.T) {
	htmlContent := `<body>
<a href="/isca2026/dates.html#top">Important Dates</a>
<a href="cfp.html">Call for Papers</a>
<a href="https://www.iscaconf.org/isca2026/cfp.html">CFP (www)</a>
<a href="https://twitter.com/isca">Twitter</a>
<a href="#program">Program</a>
<a href="mailto:chairs@iscaconf.org">Mail</a>
<a href="javascript:void(0)">Menu</a>
</body>`

	page, err := NewPage(htmlContent, "https://iscaconf.org/isca2026/index.html", 0)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}

	links := page.Links()
	got := make(map[string]bool)
	for _, l := range links {
		got[l.URL] = l.SameHost
	}

	want := map[string]bool{
		"https://iscaconf.org/isca2026/dates.html": true,
		"https://iscaconf.org/isca2026/cfp.html":   true,
		"https://twitter.com/isca":                 false,
	}
	for u, same := range want {
		s, ok := got[u]
		if !ok {
			t.Errorf("missing link %s in %+v", u, links)
			continue
		}
		if s != same {
			t.Errorf("SameHost(%s) = %v, want %v", u, s, same)
		}
	}
	for u := range got {
		if !strings.HasPrefix(u, "http") {
			t.Errorf("unexpected link %q", u)
		}
	}
}

func TestPage_Subpages(t *testing.T) {
	htmlContent := `<body>
<a href="/isca2026/program.html">Program</a>
<a href="/isca2026/dates.html">Important Dates</a>
<a href="/isca2026/cfp.pdf">CFP (PDF)</a>
<a href="https://other.org/cfp">Other CFP</a>
</body>`

	page, err := NewPage(htmlContent, "https://iscaconf.org/isca2026/index.html", 0)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}

	got := page.Subpages(4)
	want := []string{
		"https://iscaconf.org/isca2026/dates.html",
		"https://iscaconf.org/isca2026/cfp",
		"https://iscaconf.org/isca2026/call-for-papers",
		"https://iscaconf.org/isca2026/important-dates",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Subpages() = %v\nwant %v", got, want)
	}

	if page.Subpages(0) != nil {
		t.Error("max 0 should return nil")
	}
}

func TestPage_SubpagesDirectoryPath(t *testing.T) {
	page, err := NewPage("<body></body>", "https://hpca-conf.org/2026", 0)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}

	got := page.Subpages(1)
	if len(got) != 1 || got[0] != "https://hpca-conf.org/2026/cfp" {
		t.Errorf("Subpages() = %v, want [https://hpca-conf.org/2026/cfp]", got)
	}
}
