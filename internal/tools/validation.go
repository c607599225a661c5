package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// argValidator checks raw tool arguments against a compiled input schema
type argValidator struct {
	schema *jsonschema.Schema
}

func compileSchema(name string, schema interface{}) (*argValidator, error) {
	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	url := name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &argValidator{schema: compiled}, nil
}

// validate treats missing arguments as an empty object
func (v *argValidator) validate(args json.RawMessage) error {
	if len(bytes.TrimSpace(args)) == 0 || bytes.Equal(bytes.TrimSpace(args), []byte("null")) {
		args = json.RawMessage("{}")
	}
	payload, err := jsonschema.UnmarshalJSON(bytes.NewReader(args))
	if err != nil {
		return fmt.Errorf("arguments are not valid JSON: %w", err)
	}
	if err := v.schema.Validate(payload); err != nil {
		return errors.New(flattenValidationError(err))
	}
	return nil
}

// flattenValidationError keeps the per-location causes on a single line
func flattenValidationError(err error) string {
	var ve *jsonschema.ValidationError
	lines := strings.Split(err.Error(), "\n")
	if errors.As(err, &ve) && len(lines) > 1 {
		lines = lines[1:]
	}
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "; ")
}
