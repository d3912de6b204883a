package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maslennikov-ig/coursebench/internal/models"
)

func TestLanguageScoreMatchingScript(t *testing.T) {
	tests := []struct {
		name string
		lang string
		text string
	}{
		{name: "english", lang: "en", text: "Goroutines let you run functions concurrently with very little overhead."},
		{name: "russian", lang: "ru", text: "Горутины позволяют выполнять функции параллельно с минимальными затратами."},
		{name: "unknown tag falls back to latin", lang: "zz", text: "Concurrency in practice."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artifact := &models.ParsedArtifact{Value: map[string]any{"overview": tt.text}}
			score, issues := Language(artifact, tt.lang)
			assert.InDelta(t, 1.0, score, 0.05, "issues: %v", issues)
		})
	}
}

func TestLanguageScoreWrongScript(t *testing.T) {
	artifact := &models.ParsedArtifact{Value: map[string]any{
		"overview": "This overview is written entirely in English instead of Russian.",
	}}

	score, issues := Language(artifact, "ru")
	// The placeholder check still passes, so the score lands near the
	// placeholder weight alone.
	assert.InDelta(t, weightPlaceholder, score, 0.05)
	require.NotEmpty(t, issues)
	assert.Contains(t, issues[0], "expected script")
}

func TestLanguageScoreMixedScript(t *testing.T) {
	// Russian text naturally quotes Latin identifiers; a modest amount
	// must not tank the score.
	artifact := &models.ParsedArtifact{Value: map[string]any{
		"overview": "Курс посвящён конкурентности в Go: горутины, каналы и пакет context в реальных сервисах и приложениях.",
	}}

	score, _ := Language(artifact, "ru")
	assert.Greater(t, score, 0.85)
}

func TestLanguageScorePlaceholders(t *testing.T) {
	artifact := &models.ParsedArtifact{Value: map[string]any{
		"overview": "A thorough course about Go services.",
		"notes":    "TODO fill this in later, see {{course_name}}",
	}}

	score, issues := Language(artifact, "en")
	// Two distinct markers cost two penalties off the placeholder
	// component.
	assert.InDelta(t, weightScript+weightPlaceholder*(1-2*placeholderPenalty), score, 0.05)
	assert.Len(t, issues, 2)
}

func TestLanguageScoreNoText(t *testing.T) {
	artifact := &models.ParsedArtifact{Value: map[string]any{"count": 3.0}}
	score, issues := Language(artifact, "en")
	assert.InDelta(t, weightPlaceholder, score, 1e-9)
	require.NotEmpty(t, issues)
	assert.Contains(t, issues[0], "no text")
}

func TestLanguageScoreUnparsed(t *testing.T) {
	score, issues := Language(&models.ParsedArtifact{Reason: "x"}, "en")
	assert.Zero(t, score)
	assert.NotEmpty(t, issues)
}

func TestScriptTable(t *testing.T) {
	assert.Equal(t, scriptTable("en"), scriptTable("de"))
	assert.NotEqual(t, scriptTable("en"), scriptTable("ru"))
	assert.NotEqual(t, scriptTable("ru"), scriptTable("el"))
}
