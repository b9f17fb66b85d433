package models

const (
	CodeStyleAsync = "async"
	CodeStyleSync  = "sync"

	DocFormatMarkdown = "markdown"
	DocFormatHTML     = "html"
)

// AvailableLanguages is the catalog of target languages offered to the user.
var AvailableLanguages = []string{"Python", "Node.js", "Go", "Java", "Ruby", "PHP"}

type AppSettings struct {
	DefaultRepo            string   `json:"defaultRepo"`
	DefaultBranch          string   `json:"defaultBranch"`
	PreferredLanguages     []string `json:"preferredLanguages"`
	CodeStyle              string   `json:"codeStyle"`
	DocFormat              string   `json:"docFormat"`
	AlertSeverityThreshold string   `json:"alertSeverityThreshold"`
}

// DefaultAppSettings returns the settings used when nothing is stored.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		DefaultRepo:            "",
		DefaultBranch:          "main",
		PreferredLanguages:     []string{"Python", "Node.js"},
		CodeStyle:              CodeStyleAsync,
		DocFormat:              DocFormatMarkdown,
		AlertSeverityThreshold: SeverityWarning,
	}
}
