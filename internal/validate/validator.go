// Package validate enforces the year-proximity rule and basic consistency on
// extracted deadline records.
package validate

import (
	"fmt"
	"time"

	"github.com/ppiankov/cfpwatch/internal/dates"
	"github.com/ppiankov/cfpwatch/internal/model"
)

// Report describes what the validator changed. Rejected is set when the
// paper deadline was forced to TBD.
type Report struct {
	Rejected bool     `json:"rejected"`
	Issues   []string `json:"issues,omitempty"`
}

func (r *Report) addIssue(format string, args ...interface{}) {
	r.Issues = append(r.Issues, fmt.Sprintf(format, args...))
}

// YearTolerance is the fixed distance, in years, a deadline may sit from the
// edition year. It is not configurable.
const YearTolerance = 1

// Validator sanity-checks deadline records against their target year
type Validator struct {
	minLeadDays int
}

func New(cfg model.ValidationConfig) *Validator {
	return &Validator{minLeadDays: cfg.MinLeadDays}
}

// Validate returns a checked copy of rec for the given target year. Name, URL
// and location are never touched; untrustworthy dates are downgraded.
func (v *Validator) Validate(rec model.DeadlineRecord, year int) (model.DeadlineRecord, Report) {
	out := rec
	var report Report

	paper, paperOK := v.checkPaper(&out, year, &report)

	if out.Abstract != "" {
		abstract, ok := dates.Parse(out.Abstract)
		switch {
		case !ok:
			report.addIssue("unparseable abstract deadline %q cleared", out.Abstract)
			out.Abstract = ""
		case !v.nearYear(abstract.Year(), year):
			report.addIssue("abstract deadline year %d outside %d±%d, cleared", abstract.Year(), year, YearTolerance)
			out.Abstract = ""
		case paperOK && abstract.After(paper):
			report.addIssue("abstract deadline %s after paper deadline %s, cleared", abstract.Format(dates.Layout), out.PaperDeadline)
			out.Abstract = ""
		default:
			out.Abstract = abstract.Format(dates.Layout)
		}
	}

	if out.ConferenceDate != "" {
		if start, ok := dates.RangeStart(out.ConferenceDate); ok {
			switch {
			case !v.nearYear(start.Year(), year):
				report.addIssue("conference date %q does not belong to %d, cleared", out.ConferenceDate, year)
				out.ConferenceDate = ""
			case paperOK && !paper.Before(start):
				report.Rejected = true
				report.addIssue("paper deadline %s not before conference start %s", out.PaperDeadline, start.Format(dates.Layout))
				demote(&out)
			case paperOK && v.minLeadDays > 0:
				if lead := int(start.Sub(paper) / (24 * time.Hour)); lead < v.minLeadDays {
					report.addIssue("only %d days between paper deadline and conference start", lead)
				}
			}
		}
	}

	out.Supplementary = v.checkSupplementary(rec.Supplementary, year, &report)

	return out, report
}

// checkPaper applies the hard year rule to the paper deadline
func (v *Validator) checkPaper(out *model.DeadlineRecord, year int, report *Report) (time.Time, bool) {
	if dates.IsTBD(out.PaperDeadline) {
		demote(out)
		return time.Time{}, false
	}

	paper, ok := dates.Parse(out.PaperDeadline)
	if !ok {
		report.Rejected = true
		report.addIssue("unparseable paper deadline %q", out.PaperDeadline)
		demote(out)
		return time.Time{}, false
	}

	if !v.nearYear(paper.Year(), year) {
		report.Rejected = true
		report.addIssue("paper deadline year %d outside %d±%d", paper.Year(), year, YearTolerance)
		demote(out)
		return time.Time{}, false
	}

	out.PaperDeadline = paper.Format(dates.Layout)
	if out.SubmissionType == "" {
		out.SubmissionType = model.SubmissionUnknown
	}
	return paper, true
}

func (v *Validator) checkSupplementary(in map[string]string, year int, report *Report) map[string]string {
	if len(in) == 0 {
		return nil
	}

	out := make(map[string]string, len(in))
	for label, d := range in {
		t, ok := dates.Parse(d)
		if !ok || !v.nearYear(t.Year(), year) {
			report.addIssue("supplementary deadline %q (%s) dropped", label, d)
			continue
		}
		out[label] = t.Format(dates.Layout)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (v *Validator) nearYear(got, want int) bool {
	diff := got - want
	return diff >= -YearTolerance && diff <= YearTolerance
}

// demote forces the record into the "awaiting information" state
func demote(rec *model.DeadlineRecord) {
	rec.PaperDeadline = model.TBD
	rec.SubmissionType = model.SubmissionUnknown
}
