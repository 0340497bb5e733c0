package providers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"sctr/internal/util"
)

// resultSchema is the minimum shape a successful response must have before it is
// rendered. Everything below the top level is decoded leniently.
var resultSchema = map[string]any{
	"type":     "object",
	"required": []string{"extracted_text", "component", "segmented_sections"},
	"properties": map[string]any{
		"extracted_text":     map[string]any{"type": "string", "minLength": 1},
		"component":          map[string]any{"type": "object"},
		"segmented_sections": map[string]any{"type": []string{"object", "array"}},
	},
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	b, err := json.Marshal(resultSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("validation_result.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile("validation_result.json")
})

// CheckContract reports whether body is a usable ValidationResult. Violations wrap
// util.ErrContractViolation.
func CheckContract(body []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("%w: %w", util.ErrContractViolation, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", util.ErrContractViolation, err)
	}
	return nil
}
