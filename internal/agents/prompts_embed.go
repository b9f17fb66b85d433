package agents

import (
	"embed"
	"fmt"
)

const (
	RoleManager   = "manager_agent"
	RolePublisher = "publish_agent"
)

// embeddedPrompts holds the built-in prompt templates so packaged executables
// can load them without needing access to the source tree.
//
//go:embed prompts/*.txt
var embeddedPrompts embed.FS

func loadPrompt(role string) (string, error) {
	data, err := embeddedPrompts.ReadFile("prompts/" + role + ".txt")
	if err != nil {
		return "", fmt.Errorf("loading prompt %s: %w", role, err)
	}
	return string(data), nil
}
