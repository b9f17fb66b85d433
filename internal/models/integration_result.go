package models

// CodeArtifact is one generated source file.
type CodeArtifact struct {
	Language    string `json:"language"`
	Code        string `json:"code"`
	Filename    string `json:"filename"`
	Description string `json:"description"`
}

// DependencySpec lists the packages a language's artifacts need.
type DependencySpec struct {
	Language string   `json:"language"`
	Packages []string `json:"packages"`
}

type CodeOutput struct {
	CodeSnippets       []CodeArtifact   `json:"code_snippets"`
	Dependencies       []DependencySpec `json:"dependencies"`
	UsageNotes         string           `json:"usage_notes"`
	AuthenticationType string           `json:"authentication_type"`
}

// AlertRule is a monitoring rule proposed by the security analysis.
type AlertRule struct {
	Name      string `json:"name"`
	Condition string `json:"condition"`
	Severity  string `json:"severity"`
	Action    string `json:"action"`
}

type SecurityOutput struct {
	Findings   []SecurityFinding `json:"findings"`
	RiskScore  string            `json:"risk_score"`
	AlertRules []AlertRule       `json:"alert_rules"`
	Summary    string            `json:"summary"`
}

// Endpoint describes one API operation in the generated documentation.
type Endpoint struct {
	Method         string `json:"method"`
	Path           string `json:"path"`
	Description    string `json:"description"`
	Parameters     string `json:"parameters"`
	ResponseSchema string `json:"response_schema"`
}

type DocumentationOutput struct {
	Documentation   string     `json:"documentation"`
	Endpoints       []Endpoint `json:"endpoints"`
	GettingStarted  string     `json:"getting_started"`
	ChangelogEntry  string     `json:"changelog_entry"`
	Troubleshooting string     `json:"troubleshooting"`
}

// IntegrationResult is the normalized output of one generate cycle.
// Lists are never nil once produced by the normalizer.
type IntegrationResult struct {
	CodeOutput          CodeOutput          `json:"code_output"`
	SecurityOutput      SecurityOutput      `json:"security_output"`
	DocumentationOutput DocumentationOutput `json:"documentation_output"`
	IntegrationSummary  string              `json:"integration_summary"`
	ReadinessAssessment string              `json:"readiness_assessment"`
}

// EmptyIntegrationResult returns a fully shaped result with every list empty.
func EmptyIntegrationResult() IntegrationResult {
	return IntegrationResult{
		CodeOutput: CodeOutput{
			CodeSnippets: []CodeArtifact{},
			Dependencies: []DependencySpec{},
		},
		SecurityOutput: SecurityOutput{
			Findings:   []SecurityFinding{},
			AlertRules: []AlertRule{},
		},
		DocumentationOutput: DocumentationOutput{
			Endpoints: []Endpoint{},
		},
	}
}
