// Package schema checks structural compliance of a parsed artifact
// against the scenario's expected shape.
//
// The schema score is an equal-weighted sum of four binary checks:
// well-formed object, required fields present, consistent key naming,
// and declared value types. Violations become issue strings, never
// errors.
package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/maslennikov-ig/coursebench/internal/models"
)

const checkWeight = 0.25

// defaultPrinter formats schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

var (
	camelKeyRe = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
	snakeKeyRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// Validator scores artifacts against shape descriptors. Compiled JSON
// Schemas are cached per descriptor.
type Validator struct {
	compiled map[string]*jsonschema.Schema
}

// New creates a Validator.
func New() *Validator {
	return &Validator{compiled: make(map[string]*jsonschema.Schema)}
}

// Score computes the schema score in [0,1] for one artifact. Each of
// the four checks contributes 0.25 when satisfied; failures are
// reported as issues.
func (v *Validator) Score(artifact *models.ParsedArtifact, shape models.ShapeDescriptor) (float64, []string) {
	var issues []string
	score := 0.0

	obj, isObject := artifact.AsObject()
	if isObject {
		score += checkWeight
	} else {
		issues = append(issues, "artifact is not a JSON object")
	}

	if missing := missingFields(obj, shape.RequiredFields); len(missing) == 0 {
		score += checkWeight
	} else {
		issues = append(issues, fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
	}

	if bad := misnamedKeys(obj, shape.Naming); len(bad) == 0 {
		score += checkWeight
	} else {
		issues = append(issues, fmt.Sprintf("keys violate naming convention: %s", strings.Join(bad, ", ")))
	}

	typeIssues := v.typeIssues(artifact, obj, shape)
	if len(typeIssues) == 0 {
		score += checkWeight
	} else {
		issues = append(issues, typeIssues...)
	}

	return score, issues
}

func missingFields(obj map[string]any, required []string) []string {
	var missing []string
	for _, field := range required {
		if _, ok := obj[field]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

// misnamedKeys returns top-level keys that break the declared naming
// style. Without a declared style, the check demands one consistent
// style across all keys.
func misnamedKeys(obj map[string]any, style models.NamingStyle) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	match := func(re *regexp.Regexp) []string {
		var bad []string
		for _, k := range keys {
			if !re.MatchString(k) {
				bad = append(bad, k)
			}
		}
		return bad
	}

	switch style {
	case models.NamingCamel:
		return match(camelKeyRe)
	case models.NamingSnake:
		return match(snakeKeyRe)
	default:
		// Accept whichever single style covers every key.
		if bad := match(camelKeyRe); len(bad) == 0 {
			return nil
		}
		return match(snakeKeyRe)
	}
}

func (v *Validator) typeIssues(artifact *models.ParsedArtifact, obj map[string]any, shape models.ShapeDescriptor) []string {
	if shape.JSONSchema != "" {
		return v.schemaIssues(artifact.Value, shape.JSONSchema)
	}

	var issues []string
	fields := make([]string, 0, len(shape.FieldTypes))
	for f := range shape.FieldTypes {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, field := range fields {
		value, ok := obj[field]
		if !ok {
			// Absence is the required-fields check's problem.
			continue
		}
		want := shape.FieldTypes[field]
		if got := jsonTypeOf(value); got != want {
			issues = append(issues, fmt.Sprintf("field %q: expected %s, got %s", field, want, got))
		}
	}
	return issues
}

// schemaIssues validates the artifact against a declared JSON Schema.
func (v *Validator) schemaIssues(instance any, rawSchema string) []string {
	sch, err := v.compile(rawSchema)
	if err != nil {
		return []string{fmt.Sprintf("declared schema is invalid: %v", err)}
	}

	err = sch.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var issues []string
	collectSchemaErrors(ve, &issues)
	return issues
}

func (v *Validator) compile(raw string) (*jsonschema.Schema, error) {
	if sch, ok := v.compiled[raw]; ok {
		return sch, nil
	}

	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("shape.schema.json", doc); err != nil {
		return nil, err
	}
	sch, err := compiler.Compile("shape.schema.json")
	if err != nil {
		return nil, err
	}
	v.compiled[raw] = sch
	return sch, nil
}

func collectSchemaErrors(ve *jsonschema.ValidationError, issues *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*issues = append(*issues, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, issues)
	}
}

func jsonTypeOf(value any) models.FieldType {
	switch value.(type) {
	case string:
		return models.FieldString
	case float64, json.Number:
		return models.FieldNumber
	case bool:
		return models.FieldBoolean
	case []any:
		return models.FieldArray
	case map[string]any:
		return models.FieldObject
	default:
		return "null"
	}
}
