// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema names for records returned by the text generator.
const (
	SchemaTaskRecords       = "task_records"
	SchemaInitiativeRecords = "initiative_records"
	SchemaRoadblockRecords  = "roadblock_records"
	SchemaRNARecords        = "rna_records"

	SchemaTaskRefinement       = "task_refinement"
	SchemaInitiativeRefinement = "initiative_refinement"
	SchemaRoadblockRefinement  = "roadblock_refinement"
	SchemaRNARefinement        = "rna_refinement"
)

var schemaSources = map[string]string{
	SchemaTaskRecords: `{
		"type": "array",
		"items": {
			"type": "object",
			"required": ["description"],
			"properties": {
				"target_level": {"type": ["integer", "number", "string", "null"]},
				"description": {"type": "string", "minLength": 1}
			}
		}
	}`,
	SchemaInitiativeRecords: `{
		"type": "array",
		"items": {
			"type": "object",
			"required": ["description"],
			"properties": {
				"description": {"type": "string", "minLength": 1},
				"measures": {"type": ["string", "null"]},
				"targets": {"type": ["string", "null"]},
				"remarks": {"type": ["string", "null"]}
			}
		}
	}`,
	SchemaRoadblockRecords: `{
		"type": "array",
		"items": {
			"type": "object",
			"required": ["description", "riskNumber"],
			"properties": {
				"description": {"type": "string", "minLength": 1},
				"fix": {"type": ["string", "null"]},
				"riskNumber": {"type": ["integer", "number", "string"]}
			}
		}
	}`,
	SchemaRNARecords: `{
		"type": "array",
		"items": {
			"type": "object",
			"required": ["readiness_level_type", "rna"],
			"properties": {
				"readiness_level_type": {"type": "string", "minLength": 1},
				"rna": {"type": "string"}
			}
		}
	}`,
	SchemaTaskRefinement: `{
		"type": "object",
		"additionalProperties": false,
		"properties": {
			"refinedDescription": {"type": ["string", "null"]}
		}
	}`,
	SchemaInitiativeRefinement: `{
		"type": "object",
		"additionalProperties": false,
		"properties": {
			"refinedDescription": {"type": ["string", "null"]},
			"refinedMeasures": {"type": ["string", "null"]},
			"refinedTargets": {"type": ["string", "null"]},
			"refinedRemarks": {"type": ["string", "null"]}
		}
	}`,
	SchemaRoadblockRefinement: `{
		"type": "object",
		"additionalProperties": false,
		"properties": {
			"refinedDescription": {"type": ["string", "null"]},
			"refinedFix": {"type": ["string", "null"]}
		}
	}`,
	SchemaRNARefinement: `{
		"type": "object",
		"additionalProperties": false,
		"properties": {
			"refinedRna": {"type": ["string", "null"]}
		}
	}`,
}

var compiled = mustCompile(schemaSources)

func mustCompile(sources map[string]string) map[string]*gojsonschema.Schema {
	out := make(map[string]*gojsonschema.Schema, len(sources))
	for name, src := range sources {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
		if err != nil {
			panic(fmt.Sprintf("validation: compile schema %s: %v", name, err))
		}
		out[name] = schema
	}
	return out
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (r *ValidationResult) Error() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Validate checks doc (any JSON-compatible Go value) against a named schema.
func Validate(schemaName string, doc interface{}) (*ValidationResult, error) {
	schema, ok := compiled[schemaName]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", schemaName)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    desc.Type(),
		})
	}
	return out, nil
}

// ValidateJSON is Validate for raw JSON bytes.
func ValidateJSON(schemaName string, raw []byte) (*ValidationResult, error) {
	schema, ok := compiled[schemaName]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", schemaName)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    desc.Type(),
		})
	}
	return out, nil
}
