package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/cfpwatch/internal/fetch"
)

const resultPage = `<html><body>
<div class="result results_links result--ad">
  <h2 class="result__title"><a class="result__a" href="//duckduckgo.com/y.js?ad_domain=conf-alerts.example&u3=x">Sponsored conferences</a></h2>
</div>
<div class="result results_links results_links_deep web-result">
  <h2 class="result__title"><a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fiscaconf.org%2Fisca2026%2F&amp;rut=abc">ISCA 2026: International Symposium on Computer Architecture</a></h2>
  <a class="result__snippet" href="#">The 53rd  ISCA will be held in
   Raleigh, NC.</a>
</div>
<div class="result results_links web-result">
  <h2 class="result__title"><a class="result__a" href="https://www.wikicfp.com/cfp/servlet/event.showcfp?eventid=1">ISCA 2026 - WikiCFP</a></h2>
</div>
<div class="result results_links web-result">
  <h2 class="result__title"><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fiscaconf.org%2Fisca2026%2F&amp;rut=dup">duplicate</a></h2>
</div>
<div class="result results_links web-result">
  <h2 class="result__title"><a class="result__a" href="javascript:void(0)">bad</a></h2>
</div>
</body></html>`

func TestParseResults(t *testing.T) {
	results, err := ParseResults(resultPage, 10)
	if err != nil {
		t.Fatalf("ParseResults failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 organic results, got %d: %+v", len(results), results)
	}

	first := results[0]
	if first.URL != "https://iscaconf.org/isca2026/" {
		t.Errorf("unexpected URL: %s", first.URL)
	}
	if first.Rank != 1 || results[1].Rank != 2 {
		t.Errorf("unexpected ranks: %d, %d", first.Rank, results[1].Rank)
	}
	if !strings.HasPrefix(first.Title, "ISCA 2026") {
		t.Errorf("unexpected title: %s", first.Title)
	}
	if first.Snippet != "The 53rd ISCA will be held in Raleigh, NC." {
		t.Errorf("snippet whitespace should be collapsed, got %q", first.Snippet)
	}
}

func TestParseResults_MaxResults(t *testing.T) {
	results, err := ParseResults(resultPage, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}

func TestDecodeResultURL(t *testing.T) {
	tests := []struct {
		href string
		want string
		ok   bool
	}{
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Fhpca-conf.org%2F2026%2F&rut=x", "https://hpca-conf.org/2026/", true},
		{"https://microarch.org/micro59/", "https://microarch.org/micro59/", true},
		{"//duckduckgo.com/y.js?ad=1", "", false},
		{"//duckduckgo.com/l/?rut=x", "", false},
		{"mailto:chair@example.org", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			got, ok := decodeResultURL(tt.href)
			if ok != tt.ok || got != tt.want {
				t.Errorf("decodeResultURL(%q) = %q, %v; want %q, %v", tt.href, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDuckDuckGo_Search(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_, _ = fmt.Fprint(w, resultPage)
	}))
	defer server.Close()

	fetcher := fetch.NewFetcher(5*time.Second, "test-agent", 1<<20, false, "", "", "")
	ddg := NewDuckDuckGo(fetcher, server.URL+"/html/", 5)

	results, err := ddg.Search(context.Background(), `"ISCA 2026" call for papers`)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if gotQuery != `"ISCA 2026" call for papers` {
		t.Errorf("query not passed through: %q", gotQuery)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}

func TestDuckDuckGo_SearchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fetcher := fetch.NewFetcher(5*time.Second, "test-agent", 1<<20, false, "", "", "")
	if _, err := NewDuckDuckGo(fetcher, server.URL, 5).Search(context.Background(), "x"); err == nil {
		t.Error("expected error for 403 search response")
	}
}
