// Package models defines the data model shared by the benchmark
// orchestration and scoring pipeline. Everything here is plain data:
// cells are created once per run and never mutated, and all derived
// values (scores, aggregates, rankings) are recomputed fresh each run.
package models

import "fmt"

// ModelDescriptor identifies one candidate generation backend.
type ModelDescriptor struct {
	// Slug is the stable identifier used for artifact keys and rankings.
	// It must be unique across a run.
	Slug string `yaml:"slug" json:"slug"`

	// DisplayName is the human-readable name used in reports.
	DisplayName string `yaml:"display_name" json:"display_name"`

	// Backend is the provider-side model identifier sent on the wire,
	// e.g. "anthropic/claude-sonnet-4" or "gpt-4o-mini".
	Backend string `yaml:"backend" json:"backend"`

	// TimeoutSec overrides the run-level per-call timeout when > 0.
	TimeoutSec int `yaml:"timeout,omitempty" json:"timeout_sec,omitempty"`

	// MaxTokens caps the completion size when > 0.
	MaxTokens int `yaml:"max_tokens,omitempty" json:"max_tokens,omitempty"`

	// PacingMs overrides the run-level inter-request pacing for this
	// model when > 0.
	PacingMs int `yaml:"pacing_ms,omitempty" json:"pacing_ms,omitempty"`
}

// ScenarioKind selects the content-analysis variant for a scenario.
type ScenarioKind string

const (
	KindMetadata ScenarioKind = "metadata"
	KindLesson   ScenarioKind = "lesson"
)

// FieldType is a JSON container/value type expected for a top-level field.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
	FieldArray   FieldType = "array"
	FieldObject  FieldType = "object"
)

// NamingStyle is the key casing convention a scenario expects.
type NamingStyle string

const (
	NamingCamel NamingStyle = "camel"
	NamingSnake NamingStyle = "snake"
)

// ShapeDescriptor declares the expected structure of a scenario's output.
type ShapeDescriptor struct {
	RequiredFields []string             `yaml:"required_fields" json:"required_fields"`
	FieldTypes     map[string]FieldType `yaml:"field_types,omitempty" json:"field_types,omitempty"`
	Naming         NamingStyle          `yaml:"naming,omitempty" json:"naming,omitempty"`

	// JSONSchema optionally carries a raw JSON Schema document. When set,
	// the type-compliance check validates against the compiled schema
	// instead of the FieldTypes table.
	JSONSchema string `yaml:"json_schema,omitempty" json:"json_schema,omitempty"`
}

// ContentExpectations tunes the content-quality heuristics per scenario.
// Zero values fall back to analyzer defaults.
type ContentExpectations struct {
	// MinLessons/MaxLessons is the ideal lesson-count range for lesson
	// scenarios. A single lesson always scores zero on the count check.
	MinLessons int `yaml:"min_lessons,omitempty" json:"min_lessons,omitempty"`
	MaxLessons int `yaml:"max_lessons,omitempty" json:"max_lessons,omitempty"`

	// MinOverviewLen is the minimum overview length (runes) for metadata
	// scenarios.
	MinOverviewLen int `yaml:"min_overview_len,omitempty" json:"min_overview_len,omitempty"`
}

// Scenario is one fixed generation task, used identically across models.
type Scenario struct {
	ID       string              `yaml:"id" json:"id"`
	Kind     ScenarioKind        `yaml:"kind" json:"kind"`
	Language string              `yaml:"language" json:"language"` // BCP 47 tag, e.g. "en", "ru"
	Prompt   string              `yaml:"prompt" json:"prompt"`
	Shape    ShapeDescriptor     `yaml:"shape" json:"shape"`
	Content  ContentExpectations `yaml:"content,omitempty" json:"content,omitempty"`
}

// TestCell is one (model, scenario, repetition) unit of benchmark work.
type TestCell struct {
	Model      string `json:"model"`
	Scenario   string `json:"scenario"`
	Repetition int    `json:"repetition"` // 1-based
}

// Key returns the stable artifact key for this cell. Keys are disjoint
// across cells, so concurrent writers never contend.
func (c TestCell) Key() string {
	return fmt.Sprintf("%s__%s__rep%d", c.Model, c.Scenario, c.Repetition)
}

func (c TestCell) String() string {
	return fmt.Sprintf("%s/%s#%d", c.Model, c.Scenario, c.Repetition)
}

// ErrorKind classifies a per-cell generation failure.
type ErrorKind string

const (
	ErrorNetwork     ErrorKind = "network"
	ErrorTimeout     ErrorKind = "timeout"
	ErrorRateLimited ErrorKind = "rate_limited"
	ErrorProvider    ErrorKind = "provider_error"
)

// TokenUsage records provider-reported token counts for one call.
type TokenUsage struct {
	Prompt     int `json:"prompt"`
	Completion int `json:"completion"`
	Total      int `json:"total"`
}

// GenerationOutcome is the terminal result of attempting one cell.
// Exactly one of the success/failure variants is populated.
type GenerationOutcome struct {
	Cell      TestCell    `json:"cell"`
	Success   bool        `json:"success"`
	RawText   string      `json:"raw_text,omitempty"`
	ElapsedMs int64       `json:"elapsed_ms"`
	Usage     *TokenUsage `json:"usage,omitempty"`
	ErrorKind ErrorKind   `json:"error_kind,omitempty"`
	ErrorMsg  string      `json:"error_msg,omitempty"`
}

// ParsedArtifact is the structured data extracted from a Success outcome.
// Value is nil when the raw text did not parse; Reason then carries the
// parser's error message.
type ParsedArtifact struct {
	Value  any    `json:"value,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Parsed reports whether the artifact holds parsed structured data.
func (a *ParsedArtifact) Parsed() bool {
	return a != nil && a.Value != nil
}

// AsObject returns the artifact value as a JSON object, if it is one.
func (a *ParsedArtifact) AsObject() (map[string]any, bool) {
	if a == nil {
		return nil, false
	}
	obj, ok := a.Value.(map[string]any)
	return obj, ok
}
