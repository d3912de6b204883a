// Package analyze scores the pedagogical and surface-language quality
// of parsed artifacts.
//
// Every sub-check is a pure function of the artifact: absent or
// malformed fields score zero on that sub-check and produce an issue
// string, never an error. The heuristics are deliberately coarse; they
// rank backends against each other, they do not grade courses.
package analyze

import (
	"strings"

	"github.com/maslennikov-ig/coursebench/internal/models"
)

// Content dispatches to the scenario-kind-specific analyzer and returns
// a content score in [0,1] plus any issues found.
func Content(artifact *models.ParsedArtifact, scenario models.Scenario) (float64, []string) {
	if !artifact.Parsed() {
		return 0, []string{"no parsed artifact to analyze"}
	}
	switch scenario.Kind {
	case models.KindLesson:
		return lessonScore(artifact, scenario.Content)
	default:
		return metadataScore(artifact, scenario)
	}
}

// actionVerbs marks outcome/objective statements as measurable. The
// benchmark scenarios are bilingual, so both English and Russian stems
// are recognized.
var actionVerbs = []string{
	"analyze", "apply", "build", "calculate", "compare", "configure",
	"create", "demonstrate", "describe", "design", "develop", "evaluate",
	"explain", "identify", "implement", "solve", "use", "write",
	"анализировать", "применять", "создавать", "настраивать",
	"описывать", "разрабатывать", "оценивать", "объяснять",
	"использовать", "писать", "строить", "решать",
}

// genericPhrases flag placeholder-grade topic or audience wording.
var genericPhrases = []string{
	"introduction to", "intro to", "basics of", "overview of",
	"getting started", "fundamentals of", "everything about",
	"введение в", "основы", "обзор", "знакомство с",
}

func hasActionVerb(text string) bool {
	lower := strings.ToLower(text)
	for _, v := range actionVerbs {
		if strings.Contains(lower, v) {
			return true
		}
	}
	return false
}

func isGeneric(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range genericPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// fraction maps hits/total to [0,1], scoring zero when total is zero.
func fraction(hits, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

func inRange(n, lo, hi int) bool {
	return n >= lo && n <= hi
}
