package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/ppiankov/cfpwatch/internal/model"
)

func TestFullScanStrategy_NearestEligibleDate(t *testing.T) {
	page := mustPage(t, `<p>Submissions are due by 2025-11-20.</p>
<p>Notification of acceptance: March 1, 2026</p>`)

	cand, ok := NewFullScanStrategy(200).Extract(context.Background(), page, target2026)
	if !ok {
		t.Fatal("expected a candidate")
	}
	if cand.PaperDeadline != "2025-11-20" {
		t.Errorf("PaperDeadline = %q, want 2025-11-20", cand.PaperDeadline)
	}
	if cand.SubmissionType != model.SubmissionRegularPaper {
		t.Errorf("SubmissionType = %q, want Regular Paper", cand.SubmissionType)
	}
}

func TestFullScanStrategy_Radius(t *testing.T) {
	page := mustPage(t, "<p>Deadline</p><p>"+strings.Repeat("x", 250)+"</p><p>June 1, 2026</p>")
	if cand, ok := NewFullScanStrategy(200).Extract(context.Background(), page, target2026); ok {
		t.Errorf("date beyond radius should not match, got %+v", cand)
	}
}

func TestFullScanStrategy_OnlyMilestones(t *testing.T) {
	page := mustPage(t, `<p>Deadlines</p><p>Notification: Jan 10, 2026</p><p>Camera-ready due: Feb 1, 2026</p>`)
	if cand, ok := NewFullScanStrategy(200).Extract(context.Background(), page, target2026); ok {
		t.Errorf("milestone dates should be excluded, got %+v", cand)
	}
}

func TestLabeledMilestone(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Notification: Jan 10, 2026", true},
		{"Camera ready version Jan 10, 2026", true},
		{"Submission deadline: Jan 10, 2026", false},
		{"Notification extended; abstract submission Jan 10, 2026", false},
		{"Jan 10, 2026", false},
	}

	for _, tt := range tests {
		m := findDate(t, tt.text)
		if got := labeledMilestone(tt.text, m); got != tt.want {
			t.Errorf("labeledMilestone(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
