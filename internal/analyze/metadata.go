package analyze

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-viper/mapstructure/v2"

	"github.com/maslennikov-ig/coursebench/internal/models"
)

// Sub-check weights for metadata artifacts. The full rubric sums to
// 1.0; the final score is normalized over whichever sub-checks apply
// to the scenario.
const (
	weightOutcomes   = 0.30
	weightOverview   = 0.20
	weightAudience   = 0.20
	weightPerCount   = 0.10
	defaultMinOvwLen = 400
	minAudienceLen   = 40
)

// Count bounds for the list-valued metadata fields.
const (
	minPrereqs  = 2
	maxPrereqs  = 6
	minOutcomes = 3
	maxOutcomes = 8
	minTags     = 3
	maxTags     = 10
)

type metadataArtifact struct {
	Title            string   `mapstructure:"title"`
	Overview         string   `mapstructure:"overview"`
	TargetAudience   string   `mapstructure:"targetAudience"`
	Prerequisites    []string `mapstructure:"prerequisites"`
	LearningOutcomes []string `mapstructure:"learningOutcomes"`
	Tags             []string `mapstructure:"tags"`
}

// decode unmarshals a parsed JSON object into a typed artifact struct.
// Key matching ignores case and underscores so camelCase and snake_case
// outputs decode identically.
func decode(value any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: target,
		MatchName: func(mapKey, fieldName string) bool {
			return foldKey(mapKey) == foldKey(fieldName)
		},
	})
	if err != nil {
		return err
	}
	return dec.Decode(value)
}

func foldKey(k string) string {
	return strings.ReplaceAll(strings.ToLower(k), "_", "")
}

// metadataScore grades a course-metadata artifact on weighted
// heuristics: measurable learning outcomes, overview depth, list-field
// count bounds, and audience specificity. The tags and audience checks
// run only when the scenario's shape declares those fields; a shape
// that declares nothing gets the full rubric. Scores normalize over
// the applicable weight so every scenario lands on the same [0,1]
// scale.
func metadataScore(artifact *models.ParsedArtifact, scenario models.Scenario) (float64, []string) {
	var md metadataArtifact
	if err := decode(artifact.Value, &md); err != nil {
		return 0, []string{fmt.Sprintf("artifact does not decode as course metadata: %v", err)}
	}

	expect := scenario.Content
	declared := declaredFields(scenario.Shape)
	checkAll := len(declared) == 0

	var issues []string
	score := 0.0
	applicable := weightOutcomes + weightOverview + 2*weightPerCount

	measurable := 0
	for _, outcome := range md.LearningOutcomes {
		if hasActionVerb(outcome) {
			measurable++
		}
	}
	if frac := fraction(measurable, len(md.LearningOutcomes)); frac > 0 {
		score += weightOutcomes * frac
	}
	if measurable < len(md.LearningOutcomes) {
		issues = append(issues, fmt.Sprintf("%d of %d learning outcomes lack a measurable action verb",
			len(md.LearningOutcomes)-measurable, len(md.LearningOutcomes)))
	} else if len(md.LearningOutcomes) == 0 {
		issues = append(issues, "no learning outcomes")
	}

	minLen := expect.MinOverviewLen
	if minLen <= 0 {
		minLen = defaultMinOvwLen
	}
	if utf8.RuneCountInString(md.Overview) >= minLen {
		score += weightOverview
	} else {
		issues = append(issues, fmt.Sprintf("overview is %d chars, expected at least %d",
			utf8.RuneCountInString(md.Overview), minLen))
	}

	score += countCheck(&issues, "prerequisites", len(md.Prerequisites), minPrereqs, maxPrereqs)
	score += countCheck(&issues, "learning outcomes", len(md.LearningOutcomes), minOutcomes, maxOutcomes)

	if checkAll || declared["tags"] {
		applicable += weightPerCount
		score += countCheck(&issues, "tags", len(md.Tags), minTags, maxTags)
	}
	if checkAll || declared["targetaudience"] {
		applicable += weightAudience
		score += weightAudience * audienceScore(&issues, md.TargetAudience)
	}

	return clamp01(score / applicable), issues
}

// declaredFields collects the shape's declared field names, folded for
// naming-style-insensitive lookup.
func declaredFields(shape models.ShapeDescriptor) map[string]bool {
	fields := make(map[string]bool, len(shape.RequiredFields)+len(shape.FieldTypes))
	for _, f := range shape.RequiredFields {
		fields[foldKey(f)] = true
	}
	for f := range shape.FieldTypes {
		fields[foldKey(f)] = true
	}
	return fields
}

func countCheck(issues *[]string, field string, n, lo, hi int) float64 {
	if inRange(n, lo, hi) {
		return weightPerCount
	}
	*issues = append(*issues, fmt.Sprintf("%s count %d outside expected range %d-%d", field, n, lo, hi))
	return 0
}

// audienceScore grades the target-audience description: empty or
// generic scores zero, short-but-specific scores half, and a specific
// description of useful length scores full.
func audienceScore(issues *[]string, audience string) float64 {
	trimmed := strings.TrimSpace(audience)
	switch {
	case trimmed == "":
		*issues = append(*issues, "no target audience")
		return 0
	case isGeneric(trimmed):
		*issues = append(*issues, "target audience is generic")
		return 0
	case utf8.RuneCountInString(trimmed) < minAudienceLen:
		*issues = append(*issues, "target audience description is too short to be specific")
		return 0.5
	default:
		return 1
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
