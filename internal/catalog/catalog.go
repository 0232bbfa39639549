// Package catalog holds curated knowledge about tracked conferences: expanded
// names, official URL patterns and known acronym confusions.
package catalog

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Entry describes one known conference series
type Entry struct {
	Acronym     string   `toml:"-"`
	FullName    string   `toml:"full_name"`
	Category    string   `toml:"category"`
	URLPatterns []string `toml:"url_patterns"`
	Blocklist   []string `toml:"blocklist"`
	EditionBase int      `toml:"edition_base"` // edition = year - base, for {edition}
}

// Catalog maps upper-cased acronyms to entries, plus the global aggregator blocklist
type Catalog struct {
	entries         map[string]*Entry
	globalBlocklist []string
}

// File is the on-disk TOML layout of a catalog overlay
type File struct {
	GlobalBlocklist []string          `toml:"global_blocklist"`
	Conferences     map[string]*Entry `toml:"conferences"`
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{entries: make(map[string]*Entry)}
}

// Default returns the built-in catalog
func Default() *Catalog {
	c := New()
	c.globalBlocklist = append(c.globalBlocklist, defaultGlobalBlocklist...)
	for _, e := range defaultEntries {
		entry := e
		c.Add(&entry)
	}
	return c
}

// LoadFile reads a TOML overlay and merges it over base. A nil base starts from Default().
func LoadFile(path string, base *Catalog) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	if base == nil {
		base = Default()
	}
	base.Merge(&f)
	return base, nil
}

// Merge overrides entries per acronym and unions the global blocklist
func (c *Catalog) Merge(f *File) {
	seen := make(map[string]bool, len(c.globalBlocklist))
	for _, d := range c.globalBlocklist {
		seen[d] = true
	}
	for _, d := range f.GlobalBlocklist {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" && !seen[d] {
			seen[d] = true
			c.globalBlocklist = append(c.globalBlocklist, d)
		}
	}

	for acronym, e := range f.Conferences {
		if e == nil {
			continue
		}
		e.Acronym = acronym
		c.Add(e)
	}
}

// Add registers or replaces an entry
func (c *Catalog) Add(e *Entry) {
	e.Acronym = strings.TrimSpace(e.Acronym)
	blocklist := make([]string, 0, len(e.Blocklist))
	for _, b := range e.Blocklist {
		blocklist = append(blocklist, strings.ToLower(strings.TrimSpace(b)))
	}
	e.Blocklist = blocklist
	c.entries[strings.ToUpper(e.Acronym)] = e
}

// Lookup finds an entry by acronym, case-insensitively
func (c *Catalog) Lookup(acronym string) (*Entry, bool) {
	e, ok := c.entries[strings.ToUpper(strings.TrimSpace(acronym))]
	return e, ok
}

// FullName returns the expanded name or "" when unknown
func (c *Catalog) FullName(acronym string) string {
	if e, ok := c.Lookup(acronym); ok {
		return e.FullName
	}
	return ""
}

// Blocklist returns the per-acronym host blocklist
func (c *Catalog) Blocklist(acronym string) []string {
	if e, ok := c.Lookup(acronym); ok {
		return e.Blocklist
	}
	return nil
}

// GlobalBlocklist returns aggregator and social hosts rejected for every acronym
func (c *Catalog) GlobalBlocklist() []string {
	return c.globalBlocklist
}

// SeedURLs expands the entry's URL patterns for a year
func (c *Catalog) SeedURLs(acronym string, year int) []string {
	e, ok := c.Lookup(acronym)
	if !ok {
		return nil
	}

	replacements := []string{
		"{year}", strconv.Itoa(year),
		"{yy}", fmt.Sprintf("%02d", year%100),
		"{acronym}", strings.ToLower(e.Acronym),
	}
	if e.EditionBase > 0 {
		replacements = append(replacements, "{edition}", strconv.Itoa(year-e.EditionBase))
	}
	r := strings.NewReplacer(replacements...)

	var urls []string
	for _, p := range e.URLPatterns {
		u := r.Replace(p)
		if strings.Contains(u, "{") {
			continue
		}
		urls = append(urls, u)
	}
	return urls
}

// Acronyms returns every known acronym, sorted
func (c *Catalog) Acronyms() []string {
	out := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.Acronym)
	}
	sort.Strings(out)
	return out
}
