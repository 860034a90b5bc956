package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// FailureKind classifies why an AI response was rejected.
type FailureKind string

const (
	FailureParse         FailureKind = "parse-error"
	FailureMissingFields FailureKind = "missing-fields"
	FailureTypeError     FailureKind = "type-error"
)

// ValidationError is a structured validation failure. It is a value the
// orchestrator inspects, never something that escapes to the pipeline.
type ValidationError struct {
	Kind   FailureKind
	Detail string
	Fields []string // populated for missing-fields
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Detail, strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// requiredFields is the exact field set the wire contract demands.
// overallConfidence is tolerated on top but never required or trusted.
var requiredFields = []string{
	"clientName", "clientConfidence",
	"date", "dateConfidence",
	"docType", "docTypeConfidence",
	"snippets",
}

// ExtractJSON locates the JSON object in a model reply that may wrap it in
// prose: everything from the first '{' through the last '}'. No balanced
// braces means the reply is unusable.
func ExtractJSON(raw []byte) ([]byte, *ValidationError) {
	start := bytes.IndexByte(raw, '{')
	end := bytes.LastIndexByte(raw, '}')
	if start < 0 || end < start {
		return nil, &ValidationError{Kind: FailureParse, Detail: "no JSON object found in response"}
	}
	return raw[start : end+1], nil
}

// ValidateResponse enforces the wire contract on a raw model reply:
// parseable JSON, the exact required field set, and schema-level type and
// range rules. Failures come back as a tagged ValidationError.
func ValidateResponse(raw []byte) (DocumentFields, *ValidationError) {
	var zero DocumentFields

	body, verr := ExtractJSON(raw)
	if verr != nil {
		return zero, verr
	}

	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return zero, &ValidationError{Kind: FailureParse, Detail: err.Error()}
	}

	var missing []string
	for _, f := range requiredFields {
		if _, ok := m[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return zero, &ValidationError{Kind: FailureMissingFields, Detail: "response is missing required fields", Fields: missing}
	}

	if err := ValidateJSONAgainstSchema(BuildAnalysisJSONSchema(), body); err != nil {
		return zero, &ValidationError{Kind: FailureTypeError, Detail: err.Error()}
	}

	var out DocumentFields
	if err := json.Unmarshal(body, &out); err != nil {
		return zero, &ValidationError{Kind: FailureTypeError, Detail: err.Error()}
	}
	return out, nil
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
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
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// HasUsableData reports whether a validated response carries at least one
// actual value. A response that is all nulls passed validation but gives
// the merger nothing to work with, so the caller treats it as a failure.
func HasUsableData(f DocumentFields) bool {
	if f.ClientName != nil && strings.TrimSpace(*f.ClientName) != "" {
		return true
	}
	if f.Date != nil && strings.TrimSpace(*f.Date) != "" {
		return true
	}
	if f.DocType != nil && strings.TrimSpace(*f.DocType) != "" && !strings.EqualFold(*f.DocType, "Unclassified") {
		return true
	}
	return false
}
