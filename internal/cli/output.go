package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ppiankov/cfpwatch/internal/model"
	"github.com/ppiankov/cfpwatch/internal/pipeline"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// renderSummary prints a run summary as a table or JSON
func renderSummary(w io.Writer, s *pipeline.RunSummary, format string) error {
	if format == "json" {
		return writeJSON(w, s)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CONFERENCE\tSTATUS\tDEADLINE\tTYPE\tURL")
	for _, u := range s.Units {
		deadline, kind, url := "-", "-", "-"
		if u.Record != nil {
			deadline = u.Record.PaperDeadline
			kind = string(u.Record.SubmissionType)
			url = u.Record.URL
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.Key.Name(), u.Status, deadline, kind, url)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	var changes []string
	for _, e := range s.Events {
		if e.Loggable() {
			changes = append(changes, describeEvent(e))
		}
	}
	if len(changes) > 0 {
		fmt.Fprintf(w, "\nChanges:\n")
		for _, c := range changes {
			fmt.Fprintf(w, "  %s\n", c)
		}
	}

	_, err := fmt.Fprintf(w, "\n%s\n", s)
	return err
}

func describeEvent(e model.ChangeEvent) string {
	switch e.Kind {
	case model.ChangeNewConference:
		return fmt.Sprintf("%s: new, deadline %s", e.Key.Name(), e.New)
	case model.ChangeURLChanged:
		return fmt.Sprintf("%s: site moved %s -> %s", e.Key.Name(), e.Old, e.New)
	default:
		line := fmt.Sprintf("%s: deadline %s -> %s", e.Key.Name(), e.Old, e.New)
		if e.Direction != model.DirectionNone {
			line += fmt.Sprintf(" (%s)", e.Direction)
		}
		return line
	}
}

// renderSite prints the winning candidate and its scoring signals
func renderSite(w io.Writer, name string, c *model.CandidateSite) {
	fmt.Fprintf(w, "%s: %s\n", name, c.URL)
	fmt.Fprintf(w, "  source: %s  tier: %s  score: %d\n", c.Source, c.Tier, c.Score.Total)
	if c.Title != "" {
		fmt.Fprintf(w, "  title: %s\n", c.Title)
	}
	for _, sig := range c.Score.Signals {
		fmt.Fprintf(w, "  %+4d  %-16s %s\n", sig.Points, sig.Type, sig.Description)
	}
}

func renderCandidates(w io.Writer, candidates []model.CandidateSite) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tSOURCE\tURL\tMATCHES\tREJECTED")
	for _, c := range candidates {
		var matches []string
		for _, m := range c.MatchedTokens {
			matches = append(matches, string(m.Location))
		}
		reason := "-"
		if c.Rejected() {
			reason = c.RejectReason
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.Score.Total, c.Source, c.URL, strings.Join(matches, ","), reason)
	}
	_ = tw.Flush()
}
