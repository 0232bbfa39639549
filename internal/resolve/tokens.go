package resolve

import (
	"strconv"
	"strings"
	"unicode"
)

// Affixes that still count as an exact acronym token ("iscaconf", "ieeevts")
var (
	tokenSuffixes = []string{"conf", "conference", "symposium", "symp"}
	tokenPrefixes = []string{"ieee", "acm"}
)

// span is one token with its byte offsets in the lowercased field
type span struct {
	text       string
	start, end int
}

// hit is one acronym occurrence; last is the index of its final token
type hit struct {
	start, end int
	last       int
}

// field is a lowercased, tokenized piece of a candidate (URL, title or snippet)
type field struct {
	text  string
	spans []span
}

// acronymPattern is the compact acronym plus the byte offsets where the
// acronym itself breaks: punctuation, letter/digit changes and camel case
// ("A-SSCC" cuts at 1, "HotChips" at 3). Multi-token matches may only join there.
type acronymPattern struct {
	compact string
	cuts    map[int]bool
}

func newAcronymPattern(acronym string) acronymPattern {
	p := acronymPattern{cuts: make(map[int]bool)}
	var b strings.Builder
	var prev rune
	for _, r := range strings.TrimSpace(acronym) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			if b.Len() > 0 {
				p.cuts[b.Len()] = true
			}
			prev = r
			continue
		}
		if b.Len() > 0 && (unicode.IsDigit(r) != unicode.IsDigit(prev) || (unicode.IsUpper(r) && unicode.IsLower(prev))) {
			p.cuts[b.Len()] = true
		}
		b.WriteString(strings.ToLower(string(r)))
		prev = r
	}
	p.compact = b.String()
	return p
}

// compactAcronym lowercases the acronym and drops punctuation ("A-SSCC" -> "asscc")
func compactAcronym(acronym string) string {
	return newAcronymPattern(acronym).compact
}

// newField lowercases s and splits it on non-alphanumerics and letter/digit boundaries
func newField(s string) field {
	s = strings.ToLower(s)

	var spans []span
	start := -1
	prevDigit := false

	for i, r := range s {
		digit := unicode.IsDigit(r)
		if !digit && !unicode.IsLetter(r) {
			if start >= 0 {
				spans = append(spans, span{text: s[start:i], start: start, end: i})
				start = -1
			}
			continue
		}
		if start >= 0 && digit != prevDigit {
			spans = append(spans, span{text: s[start:i], start: start, end: i})
			start = -1
		}
		if start < 0 {
			start = i
		}
		prevDigit = digit
	}
	if start >= 0 {
		spans = append(spans, span{text: s[start:], start: start, end: len(s)})
	}

	return field{text: s, spans: spans}
}

// find returns every exact occurrence of the acronym. A multi-token
// occurrence ("a-sscc") may only be joined by a single non-space separator,
// and only where the acronym itself breaks, so "is-ca" is not ISCA.
func (f field) find(p acronymPattern) []hit {
	compact := p.compact
	if compact == "" {
		return nil
	}

	var hits []hit
	for i := 0; i < len(f.spans); i++ {
		if affixed(f.spans[i].text, compact) {
			hits = append(hits, hit{start: f.spans[i].start, end: f.spans[i].end, last: i})
			continue
		}

		joined := ""
		for j := i; j < len(f.spans); j++ {
			if j > i && (!f.joinable(j-1, j) || !p.cuts[len(joined)]) {
				break
			}
			joined += f.spans[j].text
			if joined == compact {
				hits = append(hits, hit{start: f.spans[i].start, end: f.spans[j].end, last: j})
				break
			}
			if !strings.HasPrefix(compact, joined) {
				break
			}
		}
	}
	return hits
}

// nearYear reports whether the year appears within window characters of any
// hit, or its two-digit form directly follows one ("osdi26")
func (f field) nearYear(hits []hit, year, window int) bool {
	full := strconv.Itoa(year)
	short := full[len(full)-2:]

	for _, h := range hits {
		if next := h.last + 1; next < len(f.spans) && f.spans[next].text == short && f.joinable(h.last, next) {
			return true
		}
		for _, s := range f.spans {
			if s.text != full {
				continue
			}
			gap := s.start - h.end
			if s.start < h.start {
				gap = h.start - s.end
			}
			if gap >= 0 && gap <= window {
				return true
			}
		}
	}
	return false
}

// joinable reports whether tokens a and b are adjacent or split by one non-space rune
func (f field) joinable(a, b int) bool {
	gap := f.spans[b].start - f.spans[a].end
	if gap == 0 {
		return true
	}
	if gap != 1 {
		return false
	}
	return !unicode.IsSpace(rune(f.text[f.spans[a].end]))
}

func affixed(token, compact string) bool {
	for _, s := range tokenSuffixes {
		if token == compact+s {
			return true
		}
	}
	for _, p := range tokenPrefixes {
		if token == p+compact {
			return true
		}
	}
	return false
}

// containsPhrase reports whether the field contains phrase as a whole-token sequence
func (f field) containsPhrase(phrase string) bool {
	words := newField(phrase).spans
	if len(words) == 0 {
		return false
	}
	for i := 0; i+len(words) <= len(f.spans); i++ {
		match := true
		for k, w := range words {
			if f.spans[i+k].text != w.text {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
