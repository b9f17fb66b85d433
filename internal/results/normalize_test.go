package results

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apiforge/internal/models"
)

const samplePayload = `{
  "code_output": {
    "code_snippets": [{"language":"Python","code":"print(1)","filename":"a.py","description":"d"}],
    "dependencies": [{"language":"Python","packages":["requests>=2.31.0", 3]}],
    "usage_notes": "",
    "authentication_type": "Bearer"
  },
  "security_output": {
    "findings": [{"id":"SEC-1","severity":"Critical","category":"Auth","title":"Key","description":"x","remediation":"y","evidence":"z"}],
    "risk_score": "6.5/10",
    "alert_rules": [{"name":"r","condition":"c","severity":"Warning","action":"a"}],
    "summary": "moderate"
  },
  "documentation_output": {
    "documentation": "# Docs",
    "endpoints": [{"method":"POST","path":"/payments","description":"create","parameters":"amount","response_schema":"{id}"}],
    "getting_started": "gs",
    "changelog_entry": "cl",
    "troubleshooting": "ts"
  },
  "integration_summary": "done",
  "readiness_assessment": "7/10"
}`

func decode(t *testing.T, raw string) any {
	t.Helper()
	v, err := DecodeJSON([]byte(raw))
	require.NoError(t, err)
	return v
}

// wrap JSON-encodes v as a string n times.
func wrap(t *testing.T, v any, n int) any {
	t.Helper()
	for i := 0; i < n; i++ {
		data, err := json.Marshal(v)
		require.NoError(t, err)
		v = string(data)
	}
	return v
}

func assertFullyShaped(t *testing.T, r models.IntegrationResult) {
	t.Helper()
	assert.NotNil(t, r.CodeOutput.CodeSnippets)
	assert.NotNil(t, r.CodeOutput.Dependencies)
	assert.NotNil(t, r.SecurityOutput.Findings)
	assert.NotNil(t, r.SecurityOutput.AlertRules)
	assert.NotNil(t, r.DocumentationOutput.Endpoints)
}

func TestNormalizeIntegration_FullPayload(t *testing.T) {
	res, structured := NormalizeIntegration(DeepUnwrap(decode(t, samplePayload)))

	require.True(t, structured)
	require.Len(t, res.CodeOutput.CodeSnippets, 1)
	assert.Equal(t, "a.py", res.CodeOutput.CodeSnippets[0].Filename)
	assert.Equal(t, "Bearer", res.CodeOutput.AuthenticationType)
	assert.Equal(t, []string{"requests>=2.31.0", "3"}, res.CodeOutput.Dependencies[0].Packages)
	require.Len(t, res.SecurityOutput.Findings, 1)
	assert.Equal(t, "Critical", res.SecurityOutput.Findings[0].Severity)
	assert.Equal(t, "6.5/10", res.SecurityOutput.RiskScore)
	assert.Equal(t, "POST", res.DocumentationOutput.Endpoints[0].Method)
	assert.Equal(t, "done", res.IntegrationSummary)
	assert.Equal(t, "7/10", res.ReadinessAssessment)
}

func TestNormalizeIntegration_WrappingDepthDoesNotMatter(t *testing.T) {
	plain, _ := NormalizeIntegration(DeepUnwrap(decode(t, samplePayload)))
	for n := 0; n <= 4; n++ {
		wrapped := wrap(t, decode(t, samplePayload), n)
		got, structured := NormalizeIntegration(DeepUnwrap(wrapped))
		assert.True(t, structured, "depth %d", n)
		assert.Equal(t, plain, got, "depth %d", n)
	}
}

func TestNormalizeIntegration_NestedFieldsAsStrings(t *testing.T) {
	raw := map[string]any{
		"code_output":     `{"code_snippets":"[{\"filename\":\"x.go\"}]","usage_notes":"n"}`,
		"security_output": `{"findings":[]}`,
	}
	res, structured := NormalizeIntegration(DeepUnwrap(raw))
	require.True(t, structured)
	require.Len(t, res.CodeOutput.CodeSnippets, 1)
	assert.Equal(t, "x.go", res.CodeOutput.CodeSnippets[0].Filename)
	assert.Equal(t, "n", res.CodeOutput.UsageNotes)
	assert.Empty(t, res.SecurityOutput.Findings)
	assertFullyShaped(t, res)
}

func TestNormalizeIntegration_MalformedFieldsDefault(t *testing.T) {
	raw := map[string]any{
		"code_output": map[string]any{
			"code_snippets":       "not a list",
			"dependencies":        []any{"skip me", map[string]any{"language": "Go", "packages": "nope"}},
			"usage_notes":         float64(5),
			"authentication_type": nil,
		},
		"security_output":      []any{1, 2},
		"documentation_output": nil,
		"integration_summary":  true,
	}
	res, structured := NormalizeIntegration(raw)

	require.True(t, structured)
	assertFullyShaped(t, res)
	assert.Empty(t, res.CodeOutput.CodeSnippets)
	require.Len(t, res.CodeOutput.Dependencies, 1)
	assert.Equal(t, "Go", res.CodeOutput.Dependencies[0].Language)
	assert.Equal(t, []string{}, res.CodeOutput.Dependencies[0].Packages)
	assert.Equal(t, "", res.CodeOutput.UsageNotes)
	assert.Equal(t, "", res.IntegrationSummary)
	assert.Empty(t, res.SecurityOutput.Findings)
}

func TestNormalizeIntegration_NonMappingNeverFails(t *testing.T) {
	inputs := []any{nil, "plain", float64(1), true, []any{"a"}, []any{}}
	for _, in := range inputs {
		res, structured := NormalizeIntegration(in)
		assert.False(t, structured)
		assertFullyShaped(t, res)
		assert.Empty(t, res.CodeOutput.CodeSnippets)
		assert.Empty(t, res.SecurityOutput.Findings)
		assert.Empty(t, res.DocumentationOutput.Endpoints)
	}
}

func TestNormalizeIntegration_DegradedText(t *testing.T) {
	res, structured := NormalizeIntegration(DeepUnwrap("integration generated successfully"))

	assert.False(t, structured)
	assert.Equal(t, "integration generated successfully", res.CodeOutput.UsageNotes)
	assert.Equal(t, "integration generated successfully", res.DocumentationOutput.Documentation)
	assert.Equal(t, "integration generated successfully", res.IntegrationSummary)
	assert.Equal(t, "", res.ReadinessAssessment)
}

func TestNormalizeIntegration_DegradedArrayIsRenderedAsJSON(t *testing.T) {
	res, _ := NormalizeIntegration([]any{"a", float64(1)})
	assert.Equal(t, `["a",1]`, res.IntegrationSummary)
}

func TestNormalizeIntegration_SerialisesEmptyLists(t *testing.T) {
	res, _ := NormalizeIntegration(nil)
	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"code_snippets":[]`)
	assert.Contains(t, string(data), `"findings":[]`)
	assert.NotContains(t, string(data), "null")
}

func TestNormalizePublish_FullPayload(t *testing.T) {
	raw := `{
	  "actions_taken": [{"type":"file_push","description":"pushed","url":"u","status":"success"}],
	  "issues_created": [{"title":"SEC-1","number":42,"url":"i","severity":"Critical"}],
	  "pull_request": {"title":"feat","url":"p","branch":"feat/x","files_changed":"4"},
	  "summary": "ok",
	  "errors": ["minor"]
	}`
	res, structured := NormalizePublish(DeepUnwrap(wrap(t, decode(t, raw), 2)))

	require.True(t, structured)
	require.Len(t, res.ActionsTaken, 1)
	assert.Equal(t, "file_push", res.ActionsTaken[0].Type)
	require.Len(t, res.IssuesCreated, 1)
	assert.Equal(t, 42, res.IssuesCreated[0].Number)
	assert.Equal(t, "feat/x", res.PullRequest.Branch)
	assert.Equal(t, 4, res.PullRequest.FilesChanged)
	assert.Equal(t, "ok", res.Summary)
	assert.Equal(t, []string{"minor"}, res.Errors)
}

func TestNormalizePublish_MissingPullRequestIsZeroed(t *testing.T) {
	res, structured := NormalizePublish(map[string]any{"summary": "s"})

	assert.True(t, structured)
	assert.Equal(t, models.PullRequest{}, res.PullRequest)
	assert.NotNil(t, res.ActionsTaken)
	assert.NotNil(t, res.IssuesCreated)
	assert.NotNil(t, res.Errors)
}

func TestNormalizePublish_Degraded(t *testing.T) {
	res, structured := NormalizePublish("pushed everything")

	assert.False(t, structured)
	assert.Equal(t, "pushed everything", res.Summary)
	assert.Empty(t, res.ActionsTaken)
	assert.Empty(t, res.Errors)
}
