package agents

import (
	"encoding/json"
	"fmt"
	"strings"

	"apiforge/internal/models"
)

// PublishPayload is everything the publishing agent needs for one push.
type PublishPayload struct {
	Repository    string                     `json:"repository"`
	Branch        string                     `json:"branch"`
	CommitMessage string                     `json:"commit_message"`
	FilePath      string                     `json:"file_path"`
	Code          models.CodeOutput          `json:"code"`
	Findings      []models.SecurityFinding   `json:"findings"`
	Documentation models.DocumentationOutput `json:"documentation"`
}

// BuildGenerateMessage renders the request sent to the manager agent.
func BuildGenerateMessage(specification string, languages []string) string {
	return fmt.Sprintf(
		"Analyze the following API specification and generate integration code, security analysis, and documentation.\n\nTarget Languages: %s\n\nAPI Specification:\n%s",
		strings.Join(languages, ", "), specification,
	)
}

// BuildPublishMessage renders the request sent to the publishing agent.
func BuildPublishMessage(p PublishPayload) (string, error) {
	findings := p.Findings
	if findings == nil {
		findings = []models.SecurityFinding{}
	}
	code, err := json.Marshal(p.Code)
	if err != nil {
		return "", fmt.Errorf("encoding code output: %w", err)
	}
	issues, err := json.Marshal(findings)
	if err != nil {
		return "", fmt.Errorf("encoding findings: %w", err)
	}
	docs, err := json.Marshal(p.Documentation)
	if err != nil {
		return "", fmt.Errorf("encoding documentation: %w", err)
	}
	return fmt.Sprintf(
		"Push the following integration outputs to repository %s on branch %s.\n\nCommit Message: %s\n\nFile Path: %s\n\nCode to push:\n%s\n\nSecurity findings to create issues for:\n%s\n\nDocumentation to update:\n%s",
		p.Repository, p.Branch, p.CommitMessage, p.FilePath, code, issues, docs,
	), nil
}
