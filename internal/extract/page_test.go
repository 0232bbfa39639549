package extract

import (
	"strings"
	"testing"
)

func TestNewPage_VisibleText(t *testing.T) {
	htmlContent := `<html><head><title> ISCA 2026 |  Call for Papers </title><style>.x{}</style></head>
<body>
<script>var deadline = "Jan 1, 2020";</script>
<h1>Important Dates</h1>
<p>Paper&nbsp;Deadline: November&nbsp;17, 2025</p>
<ul><li>Notiﬁcation: Feb 1, 2026</li><li>Camera ready: March 1, 2026</li></ul>
<noscript>enable javascript</noscript>
</body></html>`

	page, err := NewPage(htmlContent, "https://iscaconf.org/isca2026/", 0)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}

	if page.Title != "ISCA 2026 | Call for Papers" {
		t.Errorf("Title = %q", page.Title)
	}

	for _, want := range []string{"Paper Deadline: November 17, 2025", "Notification: Feb 1, 2026", "Camera ready: March 1, 2026"} {
		if !strings.Contains(page.Text, want) {
			t.Errorf("text missing %q:\n%s", want, page.Text)
		}
	}
	for _, hidden := range []string{"Jan 1, 2020", "enable javascript", ".x{}"} {
		if strings.Contains(page.Text, hidden) {
			t.Errorf("text should not contain %q", hidden)
		}
	}

	lines := strings.Split(page.Text, "\n")
	if lines[0] != "Important Dates" {
		t.Errorf("block elements should start lines, got first line %q", lines[0])
	}
}

func TestNewPage_DropsStruckText(t *testing.T) {
	page, err := NewPage(`<p>Paper deadline: <s>Nov 10, 2025</s> <del>Nov 12, 2025</del> Nov 17, 2025 (extended)</p>
<table><tr><td>Submission</td><td><strike>Nov 10, 2025</strike> Nov 17, 2025</td></tr></table>`, "https://iscaconf.org/isca2026/", 0)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	for _, old := range []string{"Nov 10, 2025", "Nov 12, 2025"} {
		if strings.Contains(page.Text, old) {
			t.Errorf("text should not contain superseded %q:\n%s", old, page.Text)
		}
	}
	if cells := page.Doc.Find("td").Last().Text(); strings.Contains(cells, "Nov 10") {
		t.Errorf("table cell kept struck date: %q", cells)
	}
	if !strings.Contains(page.Text, "Paper deadline: Nov 17, 2025 (extended)") {
		t.Errorf("current deadline missing:\n%s", page.Text)
	}
}

func TestNewPage_Truncates(t *testing.T) {
	page, err := NewPage("<p>"+strings.Repeat("ü", 100)+"</p>", "https://example.org/", 10)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	if page.Text != strings.Repeat("ü", 10) {
		t.Errorf("Text = %q, want 10 runes", page.Text)
	}
}

func TestNewPage_BadURL(t *testing.T) {
	if _, err := NewPage("<p>x</p>", "http://[::1", 0); err == nil {
		t.Error("expected error for unparseable page URL")
	}
}
