package util

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// WriteJSONAtomic writes v as indented JSON to path.
func WriteJSONAtomic(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return WriteFileAtomic(path, buf.Bytes())
}
