package llm

// BuildAnalysisJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We pass this to the model as a structured-output constraint
// and also use it locally to validate what comes back.
func BuildAnalysisJSONSchema() map[string]any {
	props := map[string]any{
		"clientName":        nullableString(),
		"clientConfidence":  confidenceProp(),
		"date":              nullableStringPattern(`^\d{4}-\d{2}-\d{2}$`),
		"dateConfidence":    confidenceProp(),
		"docType":           nullableString(),
		"docTypeConfidence": confidenceProp(),
		"snippets": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		// tolerated but recomputed locally
		"overallConfidence": confidenceProp(),
	}
	required := []string{
		"clientName", "clientConfidence",
		"date", "dateConfidence",
		"docType", "docTypeConfidence",
		"snippets",
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}

func confidenceProp() map[string]any {
	return map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0}
}

func nullableString() map[string]any {
	return map[string]any{"type": []string{"string", "null"}}
}

func nullableStringPattern(pattern string) map[string]any {
	return map[string]any{
		"type": []string{"string", "null"},
		"anyOf": []any{
			map[string]any{"type": "null"},
			map[string]any{"type": "string", "pattern": pattern},
		},
	}
}
