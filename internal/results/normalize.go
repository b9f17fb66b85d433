package results

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"apiforge/internal/models"
)

// NormalizeIntegration maps an unwrapped generate response onto a fully shaped
// IntegrationResult. The boolean reports whether v was a mapping; when it was not, the
// raw text is placed into the free-text fields and every list stays empty.
func NormalizeIntegration(v any) (models.IntegrationResult, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return degradedIntegration(RawText(v)), false
	}
	return models.IntegrationResult{
		CodeOutput:          codeOutput(m["code_output"]),
		SecurityOutput:      securityOutput(m["security_output"]),
		DocumentationOutput: documentationOutput(m["documentation_output"]),
		IntegrationSummary:  text(m["integration_summary"]),
		ReadinessAssessment: text(m["readiness_assessment"]),
	}, true
}

// NormalizePublish maps an unwrapped publish response onto a fully shaped PublishResult.
func NormalizePublish(v any) (models.PublishResult, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		res := models.EmptyPublishResult()
		res.Summary = RawText(v)
		return res, false
	}
	return models.PublishResult{
		ActionsTaken:  records(m["actions_taken"], publishAction),
		IssuesCreated: records(m["issues_created"], publishIssue),
		PullRequest:   pullRequest(m["pull_request"]),
		Summary:       text(m["summary"]),
		Errors:        stringList(m["errors"]),
	}, true
}

// RawText renders a non-mapping response as the text shown in degraded results.
func RawText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	}
}

func degradedIntegration(raw string) models.IntegrationResult {
	res := models.EmptyIntegrationResult()
	res.CodeOutput.UsageNotes = raw
	res.DocumentationOutput.Documentation = raw
	res.IntegrationSummary = raw
	return res
}

func codeOutput(v any) models.CodeOutput {
	m := mapping(v)
	return models.CodeOutput{
		CodeSnippets:       records(m["code_snippets"], codeArtifact),
		Dependencies:       records(m["dependencies"], dependencySpec),
		UsageNotes:         text(m["usage_notes"]),
		AuthenticationType: text(m["authentication_type"]),
	}
}

func securityOutput(v any) models.SecurityOutput {
	m := mapping(v)
	return models.SecurityOutput{
		Findings:   records(m["findings"], securityFinding),
		RiskScore:  text(m["risk_score"]),
		AlertRules: records(m["alert_rules"], alertRule),
		Summary:    text(m["summary"]),
	}
}

func documentationOutput(v any) models.DocumentationOutput {
	m := mapping(v)
	return models.DocumentationOutput{
		Documentation:   text(m["documentation"]),
		Endpoints:       records(m["endpoints"], endpoint),
		GettingStarted:  text(m["getting_started"]),
		ChangelogEntry:  text(m["changelog_entry"]),
		Troubleshooting: text(m["troubleshooting"]),
	}
}

func codeArtifact(m map[string]any) models.CodeArtifact {
	return models.CodeArtifact{
		Language:    text(m["language"]),
		Code:        text(m["code"]),
		Filename:    text(m["filename"]),
		Description: text(m["description"]),
	}
}

func dependencySpec(m map[string]any) models.DependencySpec {
	return models.DependencySpec{
		Language: text(m["language"]),
		Packages: stringList(m["packages"]),
	}
}

func securityFinding(m map[string]any) models.SecurityFinding {
	return models.SecurityFinding{
		ID:          text(m["id"]),
		Severity:    text(m["severity"]),
		Category:    text(m["category"]),
		Title:       text(m["title"]),
		Description: text(m["description"]),
		Remediation: text(m["remediation"]),
		Evidence:    text(m["evidence"]),
	}
}

func alertRule(m map[string]any) models.AlertRule {
	return models.AlertRule{
		Name:      text(m["name"]),
		Condition: text(m["condition"]),
		Severity:  text(m["severity"]),
		Action:    text(m["action"]),
	}
}

func endpoint(m map[string]any) models.Endpoint {
	return models.Endpoint{
		Method:         text(m["method"]),
		Path:           text(m["path"]),
		Description:    text(m["description"]),
		Parameters:     text(m["parameters"]),
		ResponseSchema: text(m["response_schema"]),
	}
}

func publishAction(m map[string]any) models.PublishAction {
	return models.PublishAction{
		Type:        text(m["type"]),
		Description: text(m["description"]),
		URL:         text(m["url"]),
		Status:      text(m["status"]),
	}
}

func publishIssue(m map[string]any) models.PublishIssue {
	return models.PublishIssue{
		Title:    text(m["title"]),
		Number:   integer(m["number"]),
		URL:      text(m["url"]),
		Severity: text(m["severity"]),
	}
}

func pullRequest(v any) models.PullRequest {
	m := mapping(v)
	return models.PullRequest{
		Title:        text(m["title"]),
		URL:          text(m["url"]),
		Branch:       text(m["branch"]),
		FilesChanged: integer(m["files_changed"]),
	}
}

// mapping returns v as a map, or an empty map so field lookups fall back to defaults.
func mapping(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// records converts a JSON array of objects; elements that are not objects are dropped.
func records[T any](v any, convert func(map[string]any) T) []T {
	items, ok := v.([]any)
	if !ok {
		return []T{}
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, convert(m))
		}
	}
	return out
}

// stringList keeps scalar elements of a JSON array as strings.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case string:
			out = append(out, t)
		case float64:
			out = append(out, strconv.FormatFloat(t, 'f', -1, 64))
		case bool:
			out = append(out, strconv.FormatBool(t))
		}
	}
	return out
}

func text(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func integer(v any) int {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return int(t)
	case int:
		return t
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return integer(f)
		}
	}
	return 0
}
