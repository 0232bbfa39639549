package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/cfpwatch/internal/model"
)

// ParseResponse pulls the JSON object out of model output, tolerating code
// fences and surrounding prose. Null-ish deadline values become TBD.
func ParseResponse(text string) (*ExtractResponse, error) {
	raw := extractJSONObject(text)
	if raw == "" {
		return nil, fmt.Errorf("no JSON object in response: %s", truncate(text, 200))
	}

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("invalid JSON in response: %w", err)
	}

	resp := &ExtractResponse{
		PaperDeadline:    stringField(fields, "paper_deadline"),
		SubmissionType:   stringField(fields, "submission_type"),
		AbstractDeadline: stringField(fields, "abstract_deadline"),
		ConferenceDate:   stringField(fields, "conference_date"),
		Location:         stringField(fields, "location"),
		SourceText:       stringField(fields, "source_text"),
	}
	if resp.PaperDeadline == "" {
		resp.PaperDeadline = model.TBD
	}
	return resp, nil
}

// VerifySource reports whether the model's source_text occurs on the page,
// ignoring case and whitespace. An empty source_text cannot be verified.
func VerifySource(resp *ExtractResponse, pageText string) bool {
	src := fold(resp.SourceText)
	if src == "" {
		return false
	}
	return strings.Contains(fold(pageText), src)
}

// extractJSONObject returns the first balanced {...} block, skipping braces inside strings
func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case c == '{' && !inString:
			depth++
		case c == '}' && !inString:
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

func stringField(fields map[string]interface{}, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "null", "none", "n/a", "unknown", "not found":
		return ""
	}
	return s
}

func fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
