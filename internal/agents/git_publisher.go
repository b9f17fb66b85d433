package agents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/yargevad/filepathx"

	"apiforge/internal/models"
	"apiforge/internal/utils"
)

const (
	ActionFilePush       = "file_push"
	ActionFileUpdate     = "file_update"
	ActionSecurityReport = "security_report"
)

// GitPublisher commits an integration into a local working copy instead of
// calling a remote publishing agent. Security findings become a SECURITY.md report.
type GitPublisher struct {
	workDir string
	author  string
	email   string
	now     func() time.Time
}

func NewGitPublisher(workDir, author, email string) *GitPublisher {
	return &GitPublisher{workDir: workDir, author: author, email: email, now: time.Now}
}

type pendingFile struct {
	rel     string
	content string
	kind    string
	desc    string
}

func (p *GitPublisher) Publish(ctx context.Context, payload PublishPayload, _ string) (*models.AgentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !utils.HasGitRepo(p.workDir) {
		return failure(fmt.Sprintf("no git repository at %s", p.workDir)), nil
	}
	repo, err := git.PlainOpen(p.workDir)
	if err != nil {
		return failure(fmt.Sprintf("opening repository at %s: %v", p.workDir, err)), nil
	}
	wt, err := repo.Worktree()
	if err != nil {
		return failure(fmt.Sprintf("opening worktree: %v", err)), nil
	}
	if err := checkoutBranch(repo, wt, payload.Branch); err != nil {
		return failure(fmt.Sprintf("checking out %s: %v", payload.Branch, err)), nil
	}

	prefix, err := cleanPrefix(payload.FilePath)
	if err != nil {
		return failure(err.Error()), nil
	}
	existing, err := p.existingFiles(prefix)
	if err != nil {
		return failure(fmt.Sprintf("scanning %s: %v", prefix, err)), nil
	}

	result := models.EmptyPublishResult()
	files := collectFiles(payload, prefix)
	written := 0
	for _, f := range files {
		abs := filepath.Join(p.workDir, f.rel)
		kind := f.kind
		if kind == ActionFilePush && existing[filepath.ToSlash(f.rel)] {
			kind = ActionFileUpdate
		}
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("creating directory for %s: %v", f.rel, err))
			continue
		}
		if err := os.WriteFile(abs, []byte(f.content), 0o644); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("writing %s: %v", f.rel, err))
			continue
		}
		if _, err := wt.Add(filepath.ToSlash(f.rel)); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("staging %s: %v", f.rel, err))
			continue
		}
		written++
		result.ActionsTaken = append(result.ActionsTaken, models.PublishAction{
			Type:        kind,
			Description: f.desc,
			URL:         filepath.ToSlash(f.rel),
			Status:      "success",
		})
	}

	hash, err := wt.Commit(payload.CommitMessage, &git.CommitOptions{
		Author: &object.Signature{Name: p.author, Email: p.email, When: p.now()},
	})
	switch {
	case errors.Is(err, git.ErrEmptyCommit):
		result.Summary = fmt.Sprintf("No changes to publish on %s.", payload.Branch)
		written = 0
	case err != nil:
		return failure(fmt.Sprintf("committing: %v", err)), nil
	default:
		result.Summary = fmt.Sprintf("Committed %d file(s) to %s as %s.", written, payload.Branch, hash.String()[:7])
	}

	result.PullRequest = models.PullRequest{
		Title:        payload.CommitMessage,
		Branch:       payload.Branch,
		FilesChanged: written,
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encoding publish result: %w", err)
	}
	return &models.AgentResult{Success: true, Result: string(encoded)}, nil
}

func failure(reason string) *models.AgentResult {
	return &models.AgentResult{Success: false, Error: reason}
}

// checkoutBranch switches to branch, creating it from HEAD when missing.
// An unborn repository gets HEAD pointed at the branch so the first commit creates it.
func checkoutBranch(repo *git.Repository, wt *git.Worktree, branch string) error {
	ref := plumbing.NewBranchReferenceName(branch)

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, ref))
	}
	if err != nil {
		return err
	}
	if head.Name() == ref {
		return nil
	}

	if _, err := repo.Reference(ref, true); err != nil {
		if !errors.Is(err, plumbing.ErrReferenceNotFound) {
			return err
		}
		return wt.Checkout(&git.CheckoutOptions{Branch: ref, Create: true, Keep: true})
	}
	return wt.Checkout(&git.CheckoutOptions{Branch: ref})
}

// cleanPrefix rejects prefixes that would escape the working copy.
func cleanPrefix(prefix string) (string, error) {
	cleaned := filepath.Clean(strings.TrimSpace(prefix))
	if cleaned == "." {
		return "", nil
	}
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("file path %q is outside the repository", prefix)
	}
	return cleaned, nil
}

func (p *GitPublisher) existingFiles(prefix string) (map[string]bool, error) {
	base := filepath.Join(p.workDir, prefix)
	matches, err := filepathx.Glob(filepath.Join(base, "**", "*"))
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(matches))
	for _, m := range matches {
		rel, err := filepath.Rel(p.workDir, m)
		if err != nil {
			continue
		}
		out[filepath.ToSlash(rel)] = true
	}
	return out, nil
}

func collectFiles(payload PublishPayload, prefix string) []pendingFile {
	var files []pendingFile
	for i, snippet := range payload.Code.CodeSnippets {
		name := filepath.Base(strings.TrimSpace(snippet.Filename))
		if name == "." || name == string(filepath.Separator) || name == "" {
			name = fmt.Sprintf("integration_%d.txt", i+1)
		}
		files = append(files, pendingFile{
			rel:     filepath.Join(prefix, name),
			content: snippet.Code,
			kind:    ActionFilePush,
			desc:    fmt.Sprintf("Push %s client %s", snippet.Language, name),
		})
	}
	if readme := renderReadme(payload.Documentation); readme != "" {
		files = append(files, pendingFile{
			rel:     filepath.Join(prefix, "README.md"),
			content: readme,
			kind:    ActionFilePush,
			desc:    "Update integration documentation",
		})
	}
	if len(payload.Findings) > 0 {
		files = append(files, pendingFile{
			rel:     filepath.Join(prefix, "SECURITY.md"),
			content: renderSecurityReport(payload.Findings),
			kind:    ActionSecurityReport,
			desc:    fmt.Sprintf("Record %d security finding(s)", len(payload.Findings)),
		})
	}
	return files
}

func renderReadme(doc models.DocumentationOutput) string {
	var b strings.Builder
	if doc.Documentation != "" {
		b.WriteString(doc.Documentation + "\n\n")
	}
	if len(doc.Endpoints) > 0 {
		b.WriteString("## Endpoints\n\n")
		for _, e := range doc.Endpoints {
			fmt.Fprintf(&b, "### %s %s\n\n%s\n\n", e.Method, e.Path, e.Description)
			if e.Parameters != "" {
				b.WriteString("Parameters: " + e.Parameters + "\n\n")
			}
			if e.ResponseSchema != "" {
				b.WriteString("Response:\n\n```\n" + e.ResponseSchema + "\n```\n\n")
			}
		}
	}
	if doc.GettingStarted != "" {
		b.WriteString("## Getting Started\n\n" + doc.GettingStarted + "\n\n")
	}
	if doc.Troubleshooting != "" {
		b.WriteString("## Troubleshooting\n\n" + doc.Troubleshooting + "\n\n")
	}
	if doc.ChangelogEntry != "" {
		b.WriteString("## Changelog\n\n" + doc.ChangelogEntry + "\n")
	}
	return strings.TrimSpace(b.String())
}

func renderSecurityReport(findings []models.SecurityFinding) string {
	var b strings.Builder
	b.WriteString("# Security Findings\n")
	for _, f := range models.SortFindingsBySeverity(findings) {
		fmt.Fprintf(&b, "\n## [%s] %s\n\n%s\n", models.DisplaySeverity(f.Severity), f.Title, f.Description)
		if f.Evidence != "" {
			b.WriteString("\nEvidence:\n\n```\n" + f.Evidence + "\n```\n")
		}
		if f.Remediation != "" {
			b.WriteString("\nRemediation: " + f.Remediation + "\n")
		}
	}
	return b.String()
}
