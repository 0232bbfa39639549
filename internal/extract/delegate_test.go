package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/cfpwatch/internal/llm"
	"github.com/ppiankov/cfpwatch/internal/model"
)

type fakeProvider struct {
	resp *llm.ExtractResponse
	err  error
	req  llm.ExtractRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Extract(ctx context.Context, req llm.ExtractRequest) (*llm.ExtractResponse, error) {
	f.req = req
	return f.resp, f.err
}

func (f *fakeProvider) IsAvailable(ctx context.Context) bool { return true }

func TestDelegateStrategy(t *testing.T) {
	pageHTML := `<p>Important dates</p><p>Submission deadline: November 17, 2025 (AoE)</p>`

	tests := []struct {
		name   string
		resp   *llm.ExtractResponse
		err    error
		strict bool
		wantOK bool
	}{
		{
			name: "verified answer",
			resp: &llm.ExtractResponse{
				PaperDeadline: "November 17, 2025", SubmissionType: "full paper",
				SourceText: "Submission deadline: November 17, 2025",
			},
			strict: true,
			wantOK: true,
		},
		{
			name: "invented source rejected in strict mode",
			resp: &llm.ExtractResponse{
				PaperDeadline: "November 24, 2025", SourceText: "Deadline: November 24, 2025",
			},
			strict: true,
		},
		{
			name: "invented source accepted when not strict",
			resp: &llm.ExtractResponse{
				PaperDeadline: "November 24, 2025", SourceText: "Deadline: November 24, 2025",
			},
			wantOK: true,
		},
		{
			name:   "answer without source text",
			resp:   &llm.ExtractResponse{PaperDeadline: "November 17, 2025"},
			strict: true,
			wantOK: true,
		},
		{
			name:   "self rejected",
			resp:   &llm.ExtractResponse{PaperDeadline: model.TBD},
			wantOK: false,
		},
		{
			name: "provider error",
			err:  errors.New("rate limited"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{resp: tt.resp, err: tt.err}
			s := NewDelegateStrategy(provider, 0, tt.strict)

			cand, ok := s.Extract(context.Background(), mustPage(t, pageHTML), target2026)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (cand %+v)", ok, tt.wantOK, cand)
			}
			if provider.req.Acronym != "ISCA" || provider.req.Year != 2026 {
				t.Errorf("request did not carry the target: %+v", provider.req)
			}
			if ok && cand.PaperDeadline != tt.resp.PaperDeadline {
				t.Errorf("PaperDeadline = %q", cand.PaperDeadline)
			}
		})
	}
}

func TestDelegateStrategy_MapsType(t *testing.T) {
	provider := &fakeProvider{resp: &llm.ExtractResponse{PaperDeadline: "Nov 17, 2025", SubmissionType: "LBR", Location: "Seoul"}}
	cand, ok := NewDelegateStrategy(provider, 0, false).Extract(context.Background(), mustPage(t, "<p>x</p>"), target2026)
	if !ok {
		t.Fatal("expected a candidate")
	}
	if cand.SubmissionType != model.SubmissionLateBreaking || cand.Location != "Seoul" {
		t.Errorf("unexpected candidate: %+v", cand)
	}
}

func TestDelegateStrategy_BoundsInput(t *testing.T) {
	provider := &fakeProvider{resp: &llm.ExtractResponse{PaperDeadline: model.TBD}}
	page := mustPage(t, "<p>"+strings.Repeat("a", 500)+"</p>")

	NewDelegateStrategy(provider, 100, true).Extract(context.Background(), page, target2026)
	if n := len([]rune(provider.req.PageText)); n != 100 {
		t.Errorf("page text sent = %d runes, want 100", n)
	}
}
