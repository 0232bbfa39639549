package resolve

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/cfpwatch/internal/catalog"
	"github.com/ppiankov/cfpwatch/internal/model"
	"github.com/ppiankov/cfpwatch/internal/search"
)

type searchFunc func(ctx context.Context, query string) ([]search.Result, error)

func (f searchFunc) Search(ctx context.Context, query string) ([]search.Result, error) {
	return f(ctx, query)
}

func staticSearch(results ...search.Result) search.Searcher {
	return searchFunc(func(ctx context.Context, query string) ([]search.Result, error) {
		return results, nil
	})
}

func testCatalog() *catalog.Catalog {
	c := catalog.New()
	c.Merge(&catalog.File{GlobalBlocklist: []string{"wikicfp.com", "wikipedia.org"}})
	return c
}

func newTestResolver(s search.Searcher, c *catalog.Catalog) *Resolver {
	return New(s, c, model.ResolverConfig{YearWindow: 30, ShortAcronymLen: 5}, 3)
}

func TestResolve_RejectsUnrelatedMicrobiologyPage(t *testing.T) {
	s := staticSearch(search.Result{
		URL:     "https://www.microbiology2026.com/",
		Title:   "Microbiology 2026 | Food Science Conference",
		Snippet: "Join microbiologists at Microbiology 2026",
		Rank:    1,
	})

	r := newTestResolver(s, testCatalog())
	_, err := r.Resolve(context.Background(), "MICRO", 2026)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolve_MicroFallsBackToCatalogSeed(t *testing.T) {
	s := staticSearch(search.Result{
		URL:   "https://www.microbiology2026.com/",
		Title: "MICRO 2026 Microbiology",
		Rank:  1,
	})

	r := newTestResolver(s, catalog.Default())
	res, err := r.Investigate(context.Background(), "MICRO", 2026)
	if err != nil {
		t.Fatalf("Investigate failed: %v", err)
	}

	for _, c := range res.Candidates {
		if strings.Contains(c.URL, "microbiology") && !c.IsBlocklisted {
			t.Errorf("microbiology page should be blocklisted: %+v", c)
		}
	}

	ranked := res.Ranked()
	if len(ranked) == 0 {
		t.Fatal("expected the catalog seed to survive")
	}
	if ranked[0].URL != "https://microarch.org/micro59/" {
		t.Errorf("expected MICRO seed, got %s", ranked[0].URL)
	}
	if ranked[0].Source != model.SourceCatalog {
		t.Errorf("expected catalog source, got %s", ranked[0].Source)
	}
}

func TestResolve_ExactTokenSoundness(t *testing.T) {
	results := []search.Result{
		{URL: "https://iscas2026.org/", Title: "ISCAS 2026 IEEE International Symposium on Circuits and Systems", Rank: 1},
		{URL: "https://iscaconf.org/isca2026/", Title: "ISCA 2026: International Symposium on Computer Architecture", Rank: 2},
	}
	r := newTestResolver(staticSearch(results...), testCatalog())

	best, err := r.Resolve(context.Background(), "ISCA", 2026)
	if err != nil {
		t.Fatalf("Resolve(ISCA) failed: %v", err)
	}
	if best.URL != "https://iscaconf.org/isca2026/" {
		t.Errorf("ISCA resolved to %s", best.URL)
	}

	best, err = r.Resolve(context.Background(), "ISCAS", 2026)
	if err != nil {
		t.Fatalf("Resolve(ISCAS) failed: %v", err)
	}
	if best.URL != "https://iscas2026.org/" {
		t.Errorf("ISCAS resolved to %s", best.URL)
	}
}

func TestResolve_ShortAcronymNeedsYear(t *testing.T) {
	s := staticSearch(search.Result{
		URL:   "https://www.dac.com/",
		Title: "DAC - Design Automation Conference",
		Rank:  1,
	})

	r := newTestResolver(s, testCatalog())
	res, err := r.Investigate(context.Background(), "DAC", 2026)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].RejectReason != ReasonNoYear {
		t.Errorf("expected year rejection, got %+v", res.Candidates)
	}
}

func TestResolve_LongAcronymSkipsYearWindow(t *testing.T) {
	s := staticSearch(search.Result{
		URL:   "https://www.esscirc-essderc.org/",
		Title: "ESSCIRC / ESSDERC",
		Rank:  1,
	})

	r := New(s, testCatalog(), model.ResolverConfig{YearWindow: 30, ShortAcronymLen: 5}, 3)
	if _, err := r.Resolve(context.Background(), "ESSCIRC", 2026); err != nil {
		t.Errorf("expected acronym longer than 5 to resolve without year, got %v", err)
	}
}

func TestResolve_RejectsAggregatorsAndPDFs(t *testing.T) {
	s := staticSearch(
		search.Result{URL: "http://www.wikicfp.com/cfp/servlet/event.showcfp?eventid=1&isca=2026", Title: "ISCA 2026 : WikiCFP", Rank: 1},
		search.Result{URL: "https://iscaconf.org/isca2026/cfp-isca2026.pdf", Title: "ISCA 2026 CFP", Rank: 2},
		search.Result{URL: "https://en.wikipedia.org/wiki/ISCA_2026", Title: "ISCA 2026 - Wikipedia", Rank: 3},
	)

	r := newTestResolver(s, testCatalog())
	res, err := r.Investigate(context.Background(), "ISCA", 2026)
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range res.Candidates {
		if !c.Rejected() {
			t.Errorf("expected %s to be rejected", c.URL)
		}
	}
	if !res.Candidates[0].IsBlocklisted || !res.Candidates[2].IsBlocklisted {
		t.Error("aggregator and wiki hosts should be marked blocklisted")
	}
	if res.Candidates[1].RejectReason != ReasonPDF {
		t.Errorf("expected pdf rejection, got %q", res.Candidates[1].RejectReason)
	}
}

func TestResolve_TieBreakPrefersOfficialHost(t *testing.T) {
	s := staticSearch(
		search.Result{URL: "https://isca2026.com/", Title: "ISCA 2026", Rank: 1},
		search.Result{URL: "https://isca2026.org/", Title: "ISCA 2026", Rank: 2},
	)

	r := newTestResolver(s, testCatalog())
	ranked, err := r.ResolveAll(context.Background(), "ISCA", 2026)
	if err != nil {
		t.Fatal(err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(ranked))
	}
	if ranked[0].Score.Total != ranked[1].Score.Total {
		t.Fatalf("test setup expects equal scores, got %d and %d", ranked[0].Score.Total, ranked[1].Score.Total)
	}
	if ranked[0].URL != "https://isca2026.org/" {
		t.Errorf("expected .org to win the tie, got %s", ranked[0].URL)
	}
}

func TestResolve_SearchErrorsBecomeNotFound(t *testing.T) {
	s := searchFunc(func(ctx context.Context, query string) ([]search.Result, error) {
		return nil, errors.New("unexpected status: 503 Service Unavailable")
	})

	r := newTestResolver(s, testCatalog())
	_, err := r.Resolve(context.Background(), "ISCA", 2026)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("expected search error detail, got %v", err)
	}
}

func TestResolve_DeduplicatesSeedAndSearchHit(t *testing.T) {
	cat := testCatalog()
	cat.Add(&catalog.Entry{
		Acronym:     "HPCA",
		FullName:    "International Symposium on High-Performance Computer Architecture",
		URLPatterns: []string{"https://hpca-conf.org/{year}/"},
	})

	s := staticSearch(search.Result{
		URL:   "https://hpca-conf.org/2026",
		Title: "HPCA 2026 | International Symposium on High-Performance Computer Architecture",
		Rank:  1,
	})

	r := newTestResolver(s, cat)
	res, err := r.Investigate(context.Background(), "HPCA", 2026)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Candidates) != 1 {
		t.Fatalf("expected 1 candidate after dedup, got %d", len(res.Candidates))
	}

	c := res.Candidates[0]
	if c.Source != model.SourceCatalog || c.Title == "" {
		t.Errorf("expected seed enriched with search title, got %+v", c)
	}
	if c.Rejected() {
		t.Errorf("unexpected rejection: %s", c.RejectReason)
	}
	if !c.ProximityToYear {
		t.Error("expected year proximity from URL")
	}
}

func TestQueries(t *testing.T) {
	cat := testCatalog()
	cat.Add(&catalog.Entry{Acronym: "ISCA", FullName: "International Symposium on Computer Architecture"})

	r := newTestResolver(nil, cat)
	queries := r.Queries("ISCA", 2026)

	want := []string{
		`"ISCA 2026"`,
		`"ISCA 2026" "International Symposium on Computer Architecture"`,
		`"ISCA 2026" call for papers`,
	}
	if len(queries) != len(want) {
		t.Fatalf("expected %d queries, got %v", len(want), queries)
	}
	for i := range want {
		if queries[i] != want[i] {
			t.Errorf("query %d = %s, want %s", i, queries[i], want[i])
		}
	}

	limited := New(nil, cat, model.ResolverConfig{}, 1).Queries("ISCA", 2026)
	if len(limited) != 1 {
		t.Errorf("expected max_queries to cap the list, got %v", limited)
	}
}
