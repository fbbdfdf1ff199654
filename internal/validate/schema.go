// Package validate checks finished extraction results: structural schema
// validation, business rules, blended confidence scoring, and anomaly
// detection.
package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/priya-raghavan/statement-parser/constants"
	"github.com/priya-raghavan/statement-parser/internal/common"
	"github.com/priya-raghavan/statement-parser/internal/statement"
)

// SchemaReport is the outcome of structural validation. Missing required
// fields are errors; empty-but-present values and shape mismatches in
// the serialized form are warnings.
type SchemaReport struct {
	Errors       []string
	Warnings     []string
	Completeness float64
}

// BuildResultJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map describing a serialized extraction result.
func BuildResultJSONSchema() map[string]any {
	fieldProp := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":       map[string]any{"type": "string", "minLength": 1},
			"value":      map[string]any{"type": []string{"string", "number"}},
			"raw_text":   map[string]any{"type": "string"},
			"confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"method":     map[string]any{"type": "string", "minLength": 1},
			"page":       map[string]any{"type": "integer", "minimum": 0},
		},
		"required": []string{"name", "value", "confidence", "method"},
	}

	issuers := make([]string, 0, len(constants.Issuers)+1)
	for _, i := range constants.Issuers {
		issuers = append(issuers, string(i))
	}
	issuers = append(issuers, string(constants.IssuerUnknown))

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":     map[string]any{"type": "string", "minLength": 1},
			"issuer": map[string]any{"type": "string", "enum": issuers},
			"issuer_confidence": map[string]any{
				"type": "number", "minimum": 0.0, "maximum": 1.0,
			},
			"fields": map[string]any{
				"type":                 "object",
				"additionalProperties": fieldProp,
			},
			"overall_confidence": map[string]any{
				"type": "number", "minimum": 0.0, "maximum": 1.0,
			},
			"quality_score": map[string]any{
				"type": "number", "minimum": 0.0, "maximum": 1.0,
			},
			"scanned":    map[string]any{"type": "boolean"},
			"is_valid":   map[string]any{"type": "boolean"},
			"created_at": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"id", "issuer", "fields", "overall_confidence", "created_at"},
	}
}

// CheckSchema validates a result's structure and returns the report.
// Validation findings never fail the run; the only error return is a
// result that cannot be serialized at all.
func CheckSchema(res *statement.ExtractionResult) (SchemaReport, error) {
	rep := SchemaReport{Completeness: res.Completeness()}

	for _, ft := range constants.RequiredFields {
		f, ok := res.Get(ft)
		if !ok {
			rep.Errors = append(rep.Errors, fmt.Sprintf("missing required field %s", ft))
			continue
		}
		if s, isStr := f.Value.(string); isStr && strings.TrimSpace(s) == "" {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("required field %s is present but empty", ft))
		}
	}

	if card, ok := res.Text(constants.FieldCardNumber); ok && strings.TrimSpace(card) != "" {
		v := common.NewValidator()
		v.Field(string(constants.FieldCardNumber), card, common.CardLastFour)
		if err := v.Error(); err != nil {
			rep.Errors = append(rep.Errors,
				fmt.Sprintf("%s must be the masked last-four form", constants.FieldCardNumber))
		}
	}

	m, err := res.ToMap()
	if err != nil {
		return rep, common.ValidationError("serialize result", err)
	}
	if err := validateAgainstSchema(BuildResultJSONSchema(), m); err != nil {
		rep.Warnings = append(rep.Warnings, err.Error())
	}
	return rep, nil
}

// validateAgainstSchema validates decoded data against a schema map.
func validateAgainstSchema(schemaMap map[string]any, data any) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(data); err != nil {
		return fmt.Errorf("result does not match schema: %w", err)
	}
	return nil
}
