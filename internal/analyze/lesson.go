package analyze

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/maslennikov-ig/coursebench/internal/models"
)

// Sub-check weights for lesson-plan artifacts. They sum to 1.0. The
// lesson-count check dominates because a degenerate plan (one giant
// lesson) is the most common failure mode worth punishing.
const (
	weightLessonCount   = 0.40
	weightObjectives    = 0.15
	weightMeasurable    = 0.15
	weightSpecificTopic = 0.15
	weightExercises     = 0.15

	defaultMinLessons = 3
	defaultMaxLessons = 5

	minExerciseInstructionLen = 20
)

type lessonPlanArtifact struct {
	Lessons []lessonArtifact `mapstructure:"lessons"`
}

type lessonArtifact struct {
	Title      string   `mapstructure:"title"`
	Topic      string   `mapstructure:"topic"`
	Objectives []string `mapstructure:"objectives"`

	// Exercises may arrive as plain strings or as objects carrying an
	// instruction field; both forms are accepted.
	Exercises []any `mapstructure:"exercises"`
}

// lessonScore grades a lesson-plan artifact: lesson count within the
// expected range, objectives present and measurable, topics specific
// rather than boilerplate, and at least one substantive exercise per
// lesson.
func lessonScore(artifact *models.ParsedArtifact, expect models.ContentExpectations) (float64, []string) {
	var plan lessonPlanArtifact
	if err := decode(artifact.Value, &plan); err != nil {
		return 0, []string{fmt.Sprintf("artifact does not decode as a lesson plan: %v", err)}
	}

	minL, maxL := expect.MinLessons, expect.MaxLessons
	if minL <= 0 {
		minL = defaultMinLessons
	}
	if maxL < minL {
		maxL = defaultMaxLessons
		if maxL < minL {
			maxL = minL
		}
	}

	var issues []string
	score := weightLessonCount * lessonCountScore(&issues, len(plan.Lessons), minL, maxL)
	if len(plan.Lessons) == 0 {
		return clamp01(score), issues
	}

	withObjectives := 0
	measurable := 0
	specific := 0
	withExercise := 0
	for i, lesson := range plan.Lessons {
		if len(lesson.Objectives) > 0 {
			withObjectives++
			if anyActionVerb(lesson.Objectives) {
				measurable++
			}
		} else {
			issues = append(issues, fmt.Sprintf("lesson %d has no objectives", i+1))
		}

		topic := lesson.Topic
		if topic == "" {
			topic = lesson.Title
		}
		if topic != "" && !isGeneric(topic) {
			specific++
		} else {
			issues = append(issues, fmt.Sprintf("lesson %d topic is missing or generic", i+1))
		}

		if hasSubstantiveExercise(lesson.Exercises) {
			withExercise++
		} else {
			issues = append(issues, fmt.Sprintf("lesson %d has no substantive exercise", i+1))
		}
	}

	n := len(plan.Lessons)
	score += weightObjectives * fraction(withObjectives, n)
	score += weightMeasurable * fraction(measurable, n)
	score += weightSpecificTopic * fraction(specific, n)
	score += weightExercises * fraction(withExercise, n)

	return clamp01(score), issues
}

// lessonCountScore maps the lesson count to [0,1]. A single-lesson plan
// is degenerate and scores zero outright; two lessons earn half credit;
// counts outside the expected range are penalized asymmetrically since
// over-splitting is less harmful than under-splitting.
func lessonCountScore(issues *[]string, n, lo, hi int) float64 {
	switch {
	case n == 0:
		*issues = append(*issues, "no lessons")
		return 0
	case n == 1:
		*issues = append(*issues, "single-lesson plan, expected a split course")
		return 0
	case inRange(n, lo, hi):
		return 1
	case n == 2:
		*issues = append(*issues, fmt.Sprintf("only 2 lessons, expected %d-%d", lo, hi))
		return 0.5
	case n < lo:
		*issues = append(*issues, fmt.Sprintf("%d lessons, expected at least %d", n, lo))
		return 0.75
	default:
		*issues = append(*issues, fmt.Sprintf("%d lessons, expected at most %d", n, hi))
		return 0.6
	}
}

func anyActionVerb(texts []string) bool {
	for _, t := range texts {
		if hasActionVerb(t) {
			return true
		}
	}
	return false
}

// hasSubstantiveExercise reports whether any exercise carries an
// instruction long enough to be actionable.
func hasSubstantiveExercise(exercises []any) bool {
	for _, ex := range exercises {
		if utf8.RuneCountInString(exerciseInstruction(ex)) >= minExerciseInstructionLen {
			return true
		}
	}
	return false
}

func exerciseInstruction(ex any) string {
	switch v := ex.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		for _, key := range []string{"instruction", "instructions", "description", "task"} {
			for k, raw := range v {
				if foldKey(k) != key {
					continue
				}
				if s, ok := raw.(string); ok {
					return strings.TrimSpace(s)
				}
			}
		}
	}
	return ""
}
