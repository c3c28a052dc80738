package classify

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildConfigJSONSchema returns a JSON-Schema (draft 2020-12 subset) for the
// heuristics config file, built as a generic map so tests and callers can
// inspect it without a schema compiler.
func BuildConfigJSONSchema() map[string]any {
	ratio := map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0}
	runLen := map[string]any{"type": "integer", "minimum": 1}
	minCount := map[string]any{"type": "integer", "minimum": 0}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"consonant_run_len":           runLen,
			"alpha_ratio_min":             ratio,
			"punct_run_len":               runLen,
			"vowel_ratio_min":             ratio,
			"single_char_word_ratio_max":  ratio,
			"min_letters_for_vowel_ratio": minCount,
			"min_words_for_single_char":   minCount,
		},
	}
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
