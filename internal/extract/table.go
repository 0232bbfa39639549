package extract

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ppiankov/cfpwatch/internal/dates"
	"github.com/ppiankov/cfpwatch/internal/model"
)

// Track names that count as the main submission track
var primaryTracks = []string{"main", "regular", "research", "full paper", "technical"}

// TableStrategy reads deadlines from HTML tables. It understands milestone
// rows with one date column per track, and track rows with a date column.
type TableStrategy struct{}

// NewTableStrategy creates the structured-table strategy
func NewTableStrategy() *TableStrategy {
	return &TableStrategy{}
}

// Name returns the strategy name
func (s *TableStrategy) Name() string {
	return StrategyTable
}

// tableEntry is one dated cell: which milestone, which track
type tableEntry struct {
	milestone string
	track     string
	date      string
	abstract  bool
}

// Extract implements Strategy
func (s *TableStrategy) Extract(ctx context.Context, page *Page, target Target) (*Candidate, bool) {
	var cand *Candidate
	found := false

	page.Doc.Find("table").EachWithBreak(func(i int, table *goquery.Selection) bool {
		cand, found = pickTableEntries(parseTable(table))
		return !found
	})

	return cand, found
}

// parseTable returns paper and abstract entries from one table, or nil when
// the table does not look like a deadline table
func parseTable(table *goquery.Selection) []tableEntry {
	var rows [][]string
	var headerIsTH bool

	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(j int, cell *goquery.Selection) {
			cells = append(cells, strings.Join(strings.Fields(cell.Text()), " "))
		})
		if len(cells) > 0 {
			if len(rows) == 0 {
				headerIsTH = tr.Find("th").Length() > 0
			}
			rows = append(rows, cells)
		}
	})
	if len(rows) == 0 {
		return nil
	}

	// The first row is a header unless it already carries a date
	var header []string
	body := rows
	if headerIsTH || !rowHasDate(rows[0]) {
		header = rows[0]
		body = rows[1:]
	}

	if header != nil && !isDeadlineHeader(header) && !bodyHasMilestones(body) {
		return nil
	}

	if col := trackRowsDateColumn(header, body); col > 0 {
		return parseTrackRows(header, body, col)
	}
	return parseMilestoneRows(header, body)
}

// parseMilestoneRows handles "| Paper deadline | Main date | Industry date |"
func parseMilestoneRows(header []string, body [][]string) []tableEntry {
	var entries []tableEntry
	for _, row := range body {
		if len(row) < 2 {
			continue
		}
		label := row[0]
		kind, ok := deadlineKind(label)
		if !ok {
			continue
		}
		for j := 1; j < len(row); j++ {
			m, found := dates.FindFirst(row[j])
			if !found {
				continue
			}
			track := ""
			if j < len(header) {
				track = header[j]
			}
			entries = append(entries, tableEntry{milestone: label, track: track, date: m.Text, abstract: kind})
		}
	}
	return entries
}

// parseTrackRows handles "| Track | Paper deadline |" with one row per track
func parseTrackRows(header []string, body [][]string, col int) []tableEntry {
	abstract := strings.Contains(strings.ToLower(header[col]), "abstract")

	var entries []tableEntry
	for _, row := range body {
		if len(row) <= col {
			continue
		}
		m, found := dates.FindFirst(row[col])
		if !found {
			continue
		}
		entries = append(entries, tableEntry{milestone: header[col], track: row[0], date: m.Text, abstract: abstract})
	}
	return entries
}

// trackRowsDateColumn returns the index of a deadline column when rows are
// tracks, or -1 when rows are milestones
func trackRowsDateColumn(header []string, body [][]string) int {
	if header == nil || bodyHasMilestones(body) {
		return -1
	}
	for i, h := range header {
		if i == 0 {
			continue
		}
		if _, ok := deadlineKind(h); ok {
			return i
		}
		lower := strings.ToLower(h)
		if strings.Contains(lower, "deadline") || strings.Contains(lower, "due") {
			return i
		}
	}
	return -1
}

// pickTableEntries chooses the primary paper deadline; other tracks become supplementary
func pickTableEntries(entries []tableEntry) (*Candidate, bool) {
	var papers, abstracts []tableEntry
	for _, e := range entries {
		if e.abstract {
			abstracts = append(abstracts, e)
		} else {
			papers = append(papers, e)
		}
	}
	if len(papers) == 0 {
		return nil, false
	}

	primary := 0
	for i, e := range papers {
		if isPrimaryTrack(e.track) {
			primary = i
			break
		}
	}

	p := papers[primary]
	cand := &Candidate{
		PaperDeadline:  p.date,
		SubmissionType: classify(p.milestone+" "+p.track, model.SubmissionRegularPaper),
		Evidence:       strings.TrimSpace(p.milestone + " " + p.track + " " + p.date),
	}

	for i, e := range papers {
		if i == primary {
			continue
		}
		addSupplementary(cand, entryLabel(e), e.date)
	}

	for _, e := range abstracts {
		if e.track == p.track || isPrimaryTrack(e.track) {
			cand.Abstract = e.date
			break
		}
	}

	return cand, true
}

func entryLabel(e tableEntry) string {
	if e.track == "" {
		return e.milestone
	}
	if isPrimaryTrack(e.track) {
		return e.milestone
	}
	return e.track
}

// deadlineKind reports whether a label names a submission deadline, and whether it is an abstract one
func deadlineKind(label string) (abstract bool, ok bool) {
	lower := strings.ToLower(label)
	if isMilestone(lower) {
		return false, false
	}
	if strings.Contains(lower, "abstract") {
		return true, true
	}
	if strings.Contains(lower, "paper") || strings.Contains(lower, "submission") {
		return false, true
	}
	return false, false
}

func isPrimaryTrack(track string) bool {
	lower := strings.ToLower(strings.TrimSpace(track))
	if lower == "" || lower == "date" || lower == "deadline" || lower == "dates" {
		return true
	}
	if classify(lower, model.SubmissionRegularPaper) != model.SubmissionRegularPaper {
		return false
	}
	for _, t := range primaryTracks {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

func isDeadlineHeader(header []string) bool {
	for _, h := range header {
		lower := strings.ToLower(h)
		if strings.Contains(lower, "deadline") || strings.Contains(lower, "date") || strings.Contains(lower, "due") {
			return true
		}
	}
	return false
}

func bodyHasMilestones(body [][]string) bool {
	for _, row := range body {
		if len(row) < 2 {
			continue
		}
		if _, ok := deadlineKind(row[0]); ok && rowHasDate(row[1:]) {
			return true
		}
	}
	return false
}

func rowHasDate(cells []string) bool {
	for _, c := range cells {
		if _, ok := dates.FindFirst(c); ok {
			return true
		}
	}
	return false
}
