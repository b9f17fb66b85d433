package models

// PublishAction is one change the publishing agent made to the repository.
type PublishAction struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Status      string `json:"status"`
}

// PublishIssue is an issue opened for a security finding.
type PublishIssue struct {
	Title    string `json:"title"`
	Number   int    `json:"number"`
	URL      string `json:"url"`
	Severity string `json:"severity"`
}

type PullRequest struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	Branch       string `json:"branch"`
	FilesChanged int    `json:"files_changed"`
}

// PublishResult is the normalized output of one publish cycle.
type PublishResult struct {
	ActionsTaken  []PublishAction `json:"actions_taken"`
	IssuesCreated []PublishIssue  `json:"issues_created"`
	PullRequest   PullRequest     `json:"pull_request"`
	Summary       string          `json:"summary"`
	Errors        []string        `json:"errors"`
}

func EmptyPublishResult() PublishResult {
	return PublishResult{
		ActionsTaken:  []PublishAction{},
		IssuesCreated: []PublishIssue{},
		Errors:        []string{},
	}
}
