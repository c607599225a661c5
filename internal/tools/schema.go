package tools

import (
	"math"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/koios/plainly-mcp/pkg/models"
)

func objectSchema(props map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	if props == nil {
		props = map[string]*jsonschema.Schema{}
	}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

func stringProp(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: description}
}

func enumProp(description string, values ...string) *jsonschema.Schema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return &jsonschema.Schema{Type: "string", Description: description, Enum: enum}
}

// maxPageValue bounds limit and offset so validated values always fit an int
const maxPageValue = math.MaxInt32

func integerProp(description string) *jsonschema.Schema {
	zero, upper := 0.0, float64(maxPageValue)
	return &jsonschema.Schema{Type: "integer", Description: description, Minimum: &zero, Maximum: &upper}
}

func booleanProp(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "boolean", Description: description}
}

func freeObjectProp(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object", Description: description}
}

func renderStatusEnum() []string {
	values := make([]string, len(models.RenderStatuses))
	for i, s := range models.RenderStatuses {
		values[i] = string(s)
	}
	return values
}

var assetTypes = []string{
	string(models.AssetTypeImage),
	string(models.AssetTypeVideo),
	string(models.AssetTypeAudio),
}

// renderRequestSchema describes one render request; shared by create_render and batch_render items
func renderRequestSchema() *jsonschema.Schema {
	return objectSchema(map[string]*jsonschema.Schema{
		"projectId":  stringProp("Project ID"),
		"templateId": stringProp("Template ID (optional)"),
		"parameters": freeObjectProp("Dynamic parameters for the video (text, images, etc.)"),
		"output": {
			Type:        "object",
			Description: "Output settings (format, quality, resolution)",
			Properties: map[string]*jsonschema.Schema{
				"format":     stringProp("Output container format"),
				"quality":    stringProp("Output quality"),
				"resolution": stringProp("Output resolution"),
			},
		},
		"webhook":  stringProp("Webhook URL for notifications"),
		"metadata": freeObjectProp("Custom metadata"),
	}, "projectId", "parameters")
}
