// internal/common/genai/records.go
package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/common/validation"
)

var (
	ErrEmptyResponse = errors.New("empty response")
	ErrNoJSONArray   = errors.New("no JSON array in response")
	ErrNoJSONObject  = errors.New("no JSON object in response")
)

// commentaryRule is the line of '=' that separates a JSON body from the
// model's free-text commentary.
var commentaryRule = regexp.MustCompile(`\n?={5,}\n?`)

// ExtractJSONArray returns the text between the first '[' and the last ']'.
func ExtractJSONArray(text string) ([]byte, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyResponse
	}
	start := strings.Index(trimmed, "[")
	end := strings.LastIndex(trimmed, "]")
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoJSONArray
	}
	return []byte(trimmed[start : end+1]), nil
}

// GenerateRecords sends prompt to gen and decodes the reply into records of T
// after validating it against schemaName. Any failure is a GENERATION_FAILED
// error; the raw reply is logged, never returned.
func GenerateRecords[T any](ctx context.Context, gen Generator, log logger.Logger, schemaName, prompt string) ([]T, error) {
	text, err := gen.Generate(ctx, prompt)
	if err != nil {
		return nil, commonerrors.NewGenerationFailedError("generator call failed", err)
	}

	records, err := DecodeRecords[T](text, schemaName)
	if err != nil {
		log.Error("invalid AI response", map[string]interface{}{
			"schema":   schemaName,
			"error":    err.Error(),
			"response": text,
		})
		return nil, commonerrors.NewGenerationFailedError(err.Error(), err)
	}
	return records, nil
}

// DecodeRecords parses a model reply into records of T.
func DecodeRecords[T any](text, schemaName string) ([]T, error) {
	raw, err := ExtractJSONArray(text)
	if err != nil {
		return nil, err
	}

	result, err := validation.ValidateJSON(schemaName, raw)
	if err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("schema %s: %s", schemaName, result.Error())
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

// ExtractJSONObject returns the text between the first '{' and the last '}'.
func ExtractJSONObject(text string) ([]byte, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyResponse
	}
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoJSONObject
	}
	return []byte(trimmed[start : end+1]), nil
}

// SplitCommentary cuts a reply at its first separator rule. Without a rule the
// whole text is the body and commentary is empty.
func SplitCommentary(text string) (body, commentary string) {
	loc := commentaryRule.FindStringIndex(text)
	if loc == nil {
		return strings.TrimSpace(text), ""
	}
	return strings.TrimSpace(text[:loc[0]]), strings.TrimSpace(text[loc[1]:])
}

// DecodeObject parses the JSON object in a model reply into T after
// validating it against schemaName.
func DecodeObject[T any](text, schemaName string) (T, error) {
	var out T
	raw, err := ExtractJSONObject(text)
	if err != nil {
		return out, err
	}

	result, err := validation.ValidateJSON(schemaName, raw)
	if err != nil {
		return out, fmt.Errorf("malformed JSON: %w", err)
	}
	if !result.Valid {
		return out, fmt.Errorf("schema %s: %s", schemaName, result.Error())
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode object: %w", err)
	}
	return out, nil
}
