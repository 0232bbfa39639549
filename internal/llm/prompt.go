package llm

import (
	"fmt"
	"strings"

	"github.com/ppiankov/cfpwatch/internal/model"
)

// SystemPrompt frames every delegate call
const SystemPrompt = "You extract academic conference submission deadlines from web page text. You answer with a single JSON object and nothing else."

// BuildPrompt constructs the extraction prompt. Page text is cut to maxChars runes.
func BuildPrompt(req ExtractRequest, maxChars int) string {
	text := req.PageText
	if maxChars > 0 {
		if runes := []rune(text); len(runes) > maxChars {
			text = string(runes[:maxChars])
		}
	}

	types := make([]string, 0, len(model.SubmissionTypes))
	for _, t := range model.SubmissionTypes {
		if t != model.SubmissionUnknown {
			types = append(types, string(t))
		}
	}

	return fmt.Sprintf(`Extract the paper submission deadline of %[1]s %[2]d from this conference web page.

Conference: %[1]s %[2]d
Page URL: %[3]s

Page text:
---
%[4]s
---

Respond ONLY with valid JSON:
{
  "paper_deadline": "main paper submission deadline, e.g. \"November 17, 2025\", or \"TBD\"",
  "submission_type": "one of: %[5]s",
  "abstract_deadline": "abstract deadline if separate, or null",
  "conference_date": "dates of the conference itself, e.g. \"June 20-24, %[2]d\", or null",
  "location": "city and country of the conference, or null",
  "source_text": "the exact sentence or table row of the page text you read the deadline from"
}

Rules:
- The deadline must belong to %[1]s %[2]d. Submission deadlines usually fall in %[6]d or %[2]d. If the only deadline you find belongs to a different edition (for example a %[7]d date on a reused page), answer "TBD".
- Never guess. If no submission deadline is stated, answer "TBD".
- Ignore notification, camera-ready and registration dates.
- Prefer the main or regular track when several tracks are listed.
- source_text must be copied verbatim from the page text.`,
		req.Acronym, req.Year, req.URL, text, strings.Join(types, ", "), req.Year-1, req.Year-2)
}
