package format

import (
	"bytes"
	"encoding/json"
	"strings"
)

// JSON renders v as 2-space indented JSON without HTML escaping.
// Values that cannot be encoded fall back to their %v form.
func JSON(v interface{}) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "null"
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// Compact re-encodes a JSON document on a single line. ok is false when data is not JSON.
func Compact(data []byte) (string, bool) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, bytes.TrimSpace(data)); err != nil {
		return "", false
	}
	return buf.String(), true
}

// Quote renders s as a JSON string literal without HTML escaping
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// Inline renders v as single-line JSON without HTML escaping
func Inline(v interface{}) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "null"
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
