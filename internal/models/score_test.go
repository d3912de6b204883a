package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreWeightsOverall(t *testing.T) {
	tests := []struct {
		name    string
		weights ScoreWeights
		schema  float64
		content float64
		lang    float64
		want    float64
	}{
		{
			name:    "defaults",
			weights: DefaultScoreWeights(),
			schema:  1.0, content: 0.5, lang: 0.5,
			want: 0.4*1.0 + 0.4*0.5 + 0.2*0.5,
		},
		{
			name:    "all perfect",
			weights: DefaultScoreWeights(),
			schema:  1, content: 1, lang: 1,
			want: 1,
		},
		{
			name:    "unnormalized weights are normalized",
			weights: ScoreWeights{Schema: 2, Content: 2, Language: 1},
			schema:  1, content: 1, lang: 1,
			want: 1,
		},
		{
			name:    "zero weights fall back to defaults",
			weights: ScoreWeights{},
			schema:  1, content: 0, lang: 0,
			want: 0.4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.weights.Overall(tt.schema, tt.content, tt.lang)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestTestCellKey(t *testing.T) {
	cell := TestCell{Model: "gpt-4o-mini", Scenario: "metadata-en", Repetition: 2}
	assert.Equal(t, "gpt-4o-mini__metadata-en__rep2", cell.Key())
	assert.Equal(t, "gpt-4o-mini/metadata-en#2", cell.String())
}

func TestParsedArtifact(t *testing.T) {
	var nilArtifact *ParsedArtifact
	assert.False(t, nilArtifact.Parsed())

	failed := &ParsedArtifact{Reason: "unexpected end of JSON input"}
	assert.False(t, failed.Parsed())

	parsed := &ParsedArtifact{Value: map[string]any{"title": "Go"}}
	assert.True(t, parsed.Parsed())
	obj, ok := parsed.AsObject()
	assert.True(t, ok)
	assert.Equal(t, "Go", obj["title"])

	arr := &ParsedArtifact{Value: []any{1.0}}
	_, ok = arr.AsObject()
	assert.False(t, ok)
}
