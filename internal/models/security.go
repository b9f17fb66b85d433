package models

import (
	"sort"
	"strings"
)

const (
	SeverityCritical = "Critical"
	SeverityWarning  = "Warning"
	SeverityInfo     = "Info"
	SeverityLow      = "Low"
)

// SecurityFinding is one issue reported by the security analysis.
type SecurityFinding struct {
	ID          string `json:"id"`
	Severity    string `json:"severity"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Remediation string `json:"remediation"`
	Evidence    string `json:"evidence"`
}

// DisplaySeverity maps a raw severity onto the four known levels.
// Matching is case-insensitive and anything unknown is shown as Low.
func DisplaySeverity(severity string) string {
	switch strings.ToLower(strings.TrimSpace(severity)) {
	case "critical":
		return SeverityCritical
	case "warning":
		return SeverityWarning
	case "info":
		return SeverityInfo
	default:
		return SeverityLow
	}
}

// SeverityRank orders severities for display; higher is more severe.
func SeverityRank(severity string) int {
	switch DisplaySeverity(severity) {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// IsKnownSeverity reports whether severity names one of the four levels.
func IsKnownSeverity(severity string) bool {
	s := strings.ToLower(strings.TrimSpace(severity))
	return s == "critical" || s == "warning" || s == "info" || s == "low"
}

// SortFindingsBySeverity returns a copy of findings, most severe first.
// Findings of equal severity keep their relative order.
func SortFindingsBySeverity(findings []SecurityFinding) []SecurityFinding {
	out := make([]SecurityFinding, len(findings))
	copy(out, findings)
	sort.SliceStable(out, func(i, j int) bool {
		return SeverityRank(out[i].Severity) > SeverityRank(out[j].Severity)
	})
	return out
}
