// Package normalize extracts structured data from raw model output.
//
// Models wrap their JSON in prose and code fences more often than not;
// normalization strips that wrapping and parses what remains. Parse
// failure is a normal, representable outcome, so nothing here ever
// returns an error.
package normalize

import (
	"encoding/json"
	"strings"

	"github.com/maslennikov-ig/coursebench/internal/models"
)

// Normalize strips non-content wrapping from raw text and parses it as
// JSON. The result is Parsed when a structured value was recovered,
// otherwise Unparsable with the parser's reason.
func Normalize(raw string) *models.ParsedArtifact {
	text := strings.TrimSpace(raw)
	if text == "" {
		return &models.ParsedArtifact{Reason: "empty response"}
	}

	text = stripFences(text)
	text = trimToStructure(text)
	if text == "" {
		return &models.ParsedArtifact{Reason: "no JSON object or array found in response"}
	}

	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return &models.ParsedArtifact{Reason: err.Error()}
	}
	return &models.ParsedArtifact{Value: value}
}

// stripFences removes a surrounding fenced code block, with or without
// a language tag.
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	rest := text[3:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		// Drop the opening fence line (possibly "```json").
		rest = rest[nl+1:]
	}
	if idx := strings.LastIndex(rest, "```"); idx >= 0 {
		rest = rest[:idx]
	}
	return strings.TrimSpace(rest)
}

// trimToStructure cuts the text down to the outermost matched structural
// delimiters: first opening brace/bracket through the corresponding last
// closer. Leading prose and trailing commentary fall away.
func trimToStructure(text string) string {
	objStart := strings.IndexByte(text, '{')
	arrStart := strings.IndexByte(text, '[')

	start, closer := objStart, byte('}')
	if start < 0 || (arrStart >= 0 && arrStart < start) {
		start, closer = arrStart, ']'
	}
	if start < 0 {
		return ""
	}

	end := strings.LastIndexByte(text, closer)
	if end <= start {
		return ""
	}
	return text[start : end+1]
}
