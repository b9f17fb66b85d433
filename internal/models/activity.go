package models

import (
	"strings"
	"time"
)

type ActivityKind string

const (
	ActivityGeneration       ActivityKind = "generation"
	ActivitySecurityAnalysis ActivityKind = "security-analysis"
	ActivityPublish          ActivityKind = "publish"
)

// ParseActivityKind maps a kind name onto its canonical spelling. Underscores are
// accepted in place of hyphens.
func ParseActivityKind(name string) ActivityKind {
	return ActivityKind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-"))
}

// ActivityFilterAll matches every kind when filtering the log.
const ActivityFilterAll = "all"

// ActivityEntry is one durable record of a completed pipeline outcome.
type ActivityEntry struct {
	ID        string       `json:"id"`
	Type      ActivityKind `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	Summary   string       `json:"summary"`
	Details   string       `json:"details"`
}
