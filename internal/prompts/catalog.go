package prompts

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/koios/plainly-mcp/internal/format"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Argument describes one named prompt argument
type Argument struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Required    bool   `yaml:"required"`
}

// Definition is one prompt entry of the catalog
type Definition struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Arguments   []Argument `yaml:"arguments"`
	Template    string     `yaml:"template"`

	tmpl *template.Template
}

type catalogFile struct {
	Prompts []*Definition `yaml:"prompts"`
}

var templateFuncs = template.FuncMap{
	// splitList splits a comma-separated list and trims every item
	"splitList": func(s string) []string {
		parts := strings.Split(s, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	},
	"json": format.Inline,
}

// LoadCatalog parses a YAML prompt catalog and compiles each template
func LoadCatalog(data []byte) ([]*Definition, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse prompt catalog: %w", err)
	}

	seen := make(map[string]bool, len(file.Prompts))
	for _, def := range file.Prompts {
		if def.Name == "" {
			return nil, fmt.Errorf("prompt without a name in catalog")
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("duplicate prompt %q", def.Name)
		}
		seen[def.Name] = true

		tmpl, err := template.New(def.Name).
			Funcs(templateFuncs).
			Option("missingkey=zero").
			Parse(def.Template)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template for prompt %s: %w", def.Name, err)
		}
		def.tmpl = tmpl
	}

	return file.Prompts, nil
}

// render checks required arguments and executes the template
func (d *Definition) render(args map[string]string) (string, error) {
	if args == nil {
		args = map[string]string{}
	}
	for _, arg := range d.Arguments {
		if arg.Required && strings.TrimSpace(args[arg.Name]) == "" {
			return "", fmt.Errorf("Missing required argument: %s", arg.Name)
		}
	}

	var b strings.Builder
	if err := d.tmpl.Execute(&b, args); err != nil {
		return "", fmt.Errorf("failed to render prompt %s: %w", d.Name, err)
	}
	return b.String(), nil
}
