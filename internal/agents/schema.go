package agents

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/invopop/jsonschema"

	"apiforge/internal/models"
)

// GenerateSchemaFrom reflects the JSON schema of v's type as indented JSON.
func GenerateSchemaFrom(v any) (string, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	data, err := json.MarshalIndent(reflector.Reflect(v), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding schema: %w", err)
	}
	return string(data), nil
}

// SystemPrompt renders the embedded prompt for the given agent role with the
// schema of the result that role must answer with.
func SystemPrompt(role string) (string, error) {
	var shape any
	switch role {
	case RoleManager:
		shape = &models.IntegrationResult{}
	case RolePublisher:
		shape = &models.PublishResult{}
	default:
		return "", fmt.Errorf("unknown agent role %q", role)
	}

	raw, err := loadPrompt(role)
	if err != nil {
		return "", err
	}
	schema, err := GenerateSchemaFrom(shape)
	if err != nil {
		return "", err
	}
	tmpl, err := template.New(role).Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing prompt %s: %w", role, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Schema string }{Schema: schema}); err != nil {
		return "", fmt.Errorf("rendering prompt %s: %w", role, err)
	}
	return buf.String(), nil
}
