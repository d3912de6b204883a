package analyze

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/language"

	"github.com/maslennikov-ig/coursebench/internal/models"
)

const (
	weightScript      = 0.7
	weightPlaceholder = 0.3

	placeholderPenalty = 0.25
)

// placeholderMarkers are filler fragments that indicate the model
// emitted template text instead of real content. Matching is
// case-insensitive.
var placeholderMarkers = []string{
	"lorem ipsum",
	"todo",
	"tbd",
	"fixme",
	"[placeholder]",
	"<placeholder>",
	"{{",
	"xxx",
	"вставьте текст",
}

// Language scores surface-language quality in [0,1]: whether the
// artifact's text is written in the scenario's declared language
// (approximated by script membership) and whether it is free of
// placeholder filler.
func Language(artifact *models.ParsedArtifact, langTag string) (float64, []string) {
	if !artifact.Parsed() {
		return 0, []string{"no parsed artifact to analyze"}
	}

	var sb strings.Builder
	collectText(artifact.Value, &sb)
	text := sb.String()

	var issues []string
	script := scriptScore(&issues, text, langTag)
	filler := placeholderScore(&issues, text)

	return clamp01(weightScript*script + weightPlaceholder*filler), issues
}

// collectText walks the artifact and concatenates every string value.
func collectText(value any, sb *strings.Builder) {
	switch v := value.(type) {
	case string:
		sb.WriteString(v)
		sb.WriteByte(' ')
	case []any:
		for _, item := range v {
			collectText(item, sb)
		}
	case map[string]any:
		for _, item := range v {
			collectText(item, sb)
		}
	}
}

// scriptScore returns the fraction of letters written in the script the
// declared language uses. Text with no letters at all scores zero.
func scriptScore(issues *[]string, text, langTag string) float64 {
	table := scriptTable(langTag)

	letters, inScript := 0, 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.Is(table, r) {
			inScript++
		}
	}
	if letters == 0 {
		*issues = append(*issues, "artifact contains no text")
		return 0
	}

	frac := float64(inScript) / float64(letters)
	if frac < 0.9 {
		*issues = append(*issues, fmt.Sprintf("only %.0f%% of text is in the expected script for %q",
			frac*100, langTag))
	}
	return frac
}

// scriptTable resolves a BCP 47 tag to the Unicode range table of its
// likely script. Unknown tags and Latin-script languages share the
// Latin table.
func scriptTable(langTag string) *unicode.RangeTable {
	tag, err := language.Parse(langTag)
	if err != nil {
		return unicode.Latin
	}
	script, _ := tag.Script()
	switch script.String() {
	case "Cyrl":
		return unicode.Cyrillic
	case "Grek":
		return unicode.Greek
	case "Arab":
		return unicode.Arabic
	case "Hebr":
		return unicode.Hebrew
	case "Hans", "Hant", "Hani":
		return unicode.Han
	default:
		return unicode.Latin
	}
}

// placeholderScore starts at 1.0 and deducts a fixed penalty per
// distinct placeholder marker present in the text.
func placeholderScore(issues *[]string, text string) float64 {
	lower := strings.ToLower(text)
	score := 1.0
	for _, marker := range placeholderMarkers {
		if strings.Contains(lower, marker) {
			score -= placeholderPenalty
			*issues = append(*issues, fmt.Sprintf("placeholder text %q found", marker))
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}
