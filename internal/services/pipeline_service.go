package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"apiforge/internal/agents"
	"apiforge/internal/events"
	"apiforge/internal/logger"
	"apiforge/internal/models"
	"apiforge/internal/pipeline"
	"apiforge/internal/results"
)

const (
	PhaseAnalyzing  = "Analyzing API specification..."
	PhaseGenerating = "Generating code... Analyzing security... Writing docs..."

	DefaultBranch        = "main"
	DefaultCommitMessage = "feat: Add API integration"
	DefaultFilePath      = "integrations/"

	defaultGeneratedMessage = "Code, security analysis, and documentation generated successfully."
	defaultPublishedMessage = "Integration outputs were pushed to the repository."
	unknownErrorMessage     = "Unknown error occurred."
)

type GenerateRequest struct {
	Specification string   `json:"specification"`
	Languages     []string `json:"languages"`
}

type PublishRequest struct {
	Repository    string `json:"repository"`
	Branch        string `json:"branch"`
	CommitMessage string `json:"commitMessage"`
	FilePath      string `json:"filePath"`
	CreateIssues  bool   `json:"createIssues"`
}

// PipelineService drives the generate and publish flows. Each flow has its own
// state machine so a generation and a publish may run at the same time, but never
// two of the same kind.
type PipelineService struct {
	caller    agents.Caller
	publisher agents.Publisher
	status    StatusNotifier
	activity  ActivityRecorder
	settings  SettingsProvider

	managerAgentID string
	publishAgentID string

	generate *pipeline.Machine
	publish  *pipeline.Machine

	mu          sync.RWMutex
	integration *models.IntegrationResult
	published   *models.PublishResult
	lastRequest *GenerateRequest
	// generation increments each time a generate starts; a publish only stores its
	// result if no generate started while it was in flight.
	generation uint64
}

type PipelineDeps struct {
	Caller         agents.Caller
	Publisher      agents.Publisher
	Status         StatusNotifier
	Activity       ActivityRecorder
	Settings       SettingsProvider
	ManagerAgentID string
	PublishAgentID string
}

func NewPipelineService(deps PipelineDeps) *PipelineService {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = agents.NewAgentPublisher(deps.Caller)
	}
	return &PipelineService{
		caller:         deps.Caller,
		publisher:      publisher,
		status:         deps.Status,
		activity:       deps.Activity,
		settings:       deps.Settings,
		managerAgentID: deps.ManagerAgentID,
		publishAgentID: deps.PublishAgentID,
		generate:       pipeline.NewMachine(pipeline.ClassGenerate),
		publish:        pipeline.NewMachine(pipeline.ClassPublish),
	}
}

// Generate asks the manager agent for code, security analysis and documentation.
// Validation and busy rejections leave all state untouched.
func (s *PipelineService) Generate(ctx context.Context, req GenerateRequest) error {
	if strings.TrimSpace(req.Specification) == "" {
		s.status.Enqueue(models.StatusError, "Missing Input", "Please enter an API specification or describe your integration.")
		return fmt.Errorf("%w: specification is empty", ErrValidation)
	}
	if len(req.Languages) == 0 {
		s.status.Enqueue(models.StatusError, "No Languages", "Please select at least one target language.")
		return fmt.Errorf("%w: no target languages", ErrValidation)
	}

	if err := s.generate.Begin(PhaseAnalyzing, s.managerAgentID); err != nil {
		s.status.Enqueue(models.StatusError, "Generation In Progress", "Wait for the current generation to finish.")
		return err
	}
	s.emitProgress(s.generate)

	request := GenerateRequest{
		Specification: req.Specification,
		Languages:     append([]string{}, req.Languages...),
	}
	s.mu.Lock()
	s.integration = nil
	s.published = nil
	s.lastRequest = &request
	s.generation++
	s.mu.Unlock()

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "pipeline",
		Pipeline:  string(pipeline.ClassGenerate),
		AgentID:   s.managerAgentID,
	})
	slog.InfoContext(ctx, "generation started", "languages", request.Languages, "spec_chars", len(request.Specification))

	_ = s.generate.SetPhase(PhaseGenerating)
	s.emitProgress(s.generate)

	res, err := s.caller.Call(ctx, agents.BuildGenerateMessage(request.Specification, request.Languages), s.managerAgentID)
	outcome := s.handleGenerateResponse(ctx, request, res, err)

	if outcome != nil {
		_ = s.generate.Fail()
	} else {
		_ = s.generate.Settle()
	}
	s.emitProgress(s.generate)
	return outcome
}

func (s *PipelineService) handleGenerateResponse(ctx context.Context, req GenerateRequest, res *models.AgentResult, callErr error) error {
	if callErr != nil {
		slog.ErrorContext(ctx, "manager agent call failed", "error", callErr)
		s.status.Enqueue(models.StatusError, "Error", errorText(callErr, "An unexpected error occurred."))
		return fmt.Errorf("calling manager agent: %w", callErr)
	}
	if res == nil || !res.Success {
		reason := unknownErrorMessage
		if res != nil && strings.TrimSpace(res.Error) != "" {
			reason = res.Error
		}
		slog.WarnContext(ctx, "manager agent reported failure", "reason", logger.Truncate(reason, 200))
		s.status.Enqueue(models.StatusError, "Generation Failed", reason)
		return fmt.Errorf("%w: %s", ErrAgentFailed, reason)
	}

	integration, structured := results.NormalizeIntegration(results.DeepUnwrap(res.Result))
	s.mu.Lock()
	s.integration = &integration
	s.mu.Unlock()

	summary := "Generated integration for " + strings.Join(req.Languages, ", ")
	if !structured {
		slog.WarnContext(ctx, "manager agent returned unstructured result")
		s.status.Enqueue(models.StatusInfo, "Response Received", "The agent returned a response. Check the output tabs.")
		s.activity.Append(models.ActivityGeneration, summary, integration.IntegrationSummary)
		return nil
	}

	message := integration.IntegrationSummary
	if message == "" {
		message = defaultGeneratedMessage
	}
	s.status.Enqueue(models.StatusSuccess, "Integration Generated", message)
	s.activity.Append(models.ActivityGeneration, summary, integration.IntegrationSummary)

	findings := integration.SecurityOutput.Findings
	if len(findings) > 0 {
		s.activity.Append(models.ActivitySecurityAnalysis,
			fmt.Sprintf("Security analysis: %d finding(s)", len(findings)),
			integration.SecurityOutput.Summary)
	}
	slog.InfoContext(ctx, "generation finished",
		"snippets", len(integration.CodeOutput.CodeSnippets),
		"findings", len(findings),
		"endpoints", len(integration.DocumentationOutput.Endpoints))
	return nil
}

// Regenerate re-runs the last submitted generation from scratch.
func (s *PipelineService) Regenerate(ctx context.Context) error {
	s.mu.RLock()
	last := s.lastRequest
	s.mu.RUnlock()
	if last == nil {
		s.status.Enqueue(models.StatusError, "Missing Input", "Please enter an API specification or describe your integration.")
		return fmt.Errorf("%w: nothing to regenerate", ErrValidation)
	}
	return s.Generate(ctx, *last)
}

// Publish sends the current integration to the publishing agent. The previous
// publish result survives a failed attempt.
func (s *PipelineService) Publish(ctx context.Context, req PublishRequest) error {
	repo := strings.TrimSpace(req.Repository)
	if repo == "" {
		s.status.Enqueue(models.StatusError, "Missing Repository", "Please enter a repository name (owner/repo).")
		return fmt.Errorf("%w: repository is empty", ErrValidation)
	}
	s.mu.RLock()
	integration := s.integration
	generation := s.generation
	s.mu.RUnlock()
	if integration == nil {
		s.status.Enqueue(models.StatusError, "No Integration", "Generate an integration first before pushing to GitHub.")
		return fmt.Errorf("%w: no integration to publish", ErrValidation)
	}

	if err := s.publish.Begin(fmt.Sprintf("Publishing to %s...", repo), s.publishAgentID); err != nil {
		s.status.Enqueue(models.StatusError, "Publish In Progress", "Wait for the current publish to finish.")
		return err
	}
	s.emitProgress(s.publish)

	payload := s.publishPayload(repo, req, integration)
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "pipeline",
		Pipeline:  string(pipeline.ClassPublish),
		AgentID:   s.publishAgentID,
	})
	slog.InfoContext(ctx, "publish started", "repository", repo, "branch", payload.Branch, "issues", len(payload.Findings))

	res, err := s.publisher.Publish(ctx, payload, s.publishAgentID)
	outcome := s.handlePublishResponse(ctx, repo, generation, res, err)

	if outcome != nil {
		_ = s.publish.Fail()
	} else {
		_ = s.publish.Settle()
	}
	s.emitProgress(s.publish)
	return outcome
}

func (s *PipelineService) publishPayload(repo string, req PublishRequest, integration *models.IntegrationResult) agents.PublishPayload {
	branch := strings.TrimSpace(req.Branch)
	if branch == "" && s.settings != nil {
		branch = strings.TrimSpace(s.settings.Get().DefaultBranch)
	}
	if branch == "" {
		branch = DefaultBranch
	}
	commit := strings.TrimSpace(req.CommitMessage)
	if commit == "" {
		commit = DefaultCommitMessage
	}
	path := strings.TrimSpace(req.FilePath)
	if path == "" {
		path = DefaultFilePath
	}

	findings := []models.SecurityFinding{}
	if req.CreateIssues {
		findings = append(findings, integration.SecurityOutput.Findings...)
	}
	return agents.PublishPayload{
		Repository:    repo,
		Branch:        branch,
		CommitMessage: commit,
		FilePath:      path,
		Code:          integration.CodeOutput,
		Findings:      findings,
		Documentation: integration.DocumentationOutput,
	}
}

func (s *PipelineService) handlePublishResponse(ctx context.Context, repo string, generation uint64, res *models.AgentResult, callErr error) error {
	if callErr != nil {
		slog.ErrorContext(ctx, "publishing agent call failed", "error", callErr)
		s.status.Enqueue(models.StatusError, "Error", errorText(callErr, unknownErrorMessage))
		return fmt.Errorf("calling publishing agent: %w", callErr)
	}
	if res == nil || !res.Success {
		reason := unknownErrorMessage
		if res != nil && strings.TrimSpace(res.Error) != "" {
			reason = res.Error
		}
		slog.WarnContext(ctx, "publishing agent reported failure", "reason", logger.Truncate(reason, 200))
		s.status.Enqueue(models.StatusError, "Publish Failed", reason)
		return fmt.Errorf("%w: %s", ErrAgentFailed, reason)
	}

	published, structured := results.NormalizePublish(results.DeepUnwrap(res.Result))
	s.mu.Lock()
	stale := s.generation != generation
	if !stale {
		s.published = &published
	}
	s.mu.Unlock()
	if stale {
		slog.WarnContext(ctx, "dropping publish result for a superseded integration", "repository", repo)
		return nil
	}

	if !structured {
		slog.WarnContext(ctx, "publishing agent returned unstructured result")
		s.status.Enqueue(models.StatusInfo, "Publish Response", "The agent returned a response. Check the publish tab.")
		return nil
	}

	message := published.Summary
	if message == "" {
		message = defaultPublishedMessage
	}
	s.status.Enqueue(models.StatusSuccess, "Published", message)
	s.activity.Append(models.ActivityPublish, "Published to "+repo, published.Summary)
	slog.InfoContext(ctx, "publish finished",
		"actions", len(published.ActionsTaken),
		"issues", len(published.IssuesCreated),
		"errors", len(published.Errors))
	return nil
}

// IntegrationResult returns the current integration, if any.
func (s *PipelineService) IntegrationResult() (models.IntegrationResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.integration == nil {
		return models.IntegrationResult{}, false
	}
	return *s.integration, true
}

// PublishResult returns the last publish result, if any.
func (s *PipelineService) PublishResult() (models.PublishResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.published == nil {
		return models.PublishResult{}, false
	}
	return *s.published, true
}

func (s *PipelineService) Snapshot() models.PipelineSnapshot {
	gen := s.generate.Status()
	pub := s.publish.Status()
	snap := models.PipelineSnapshot{
		Generating:      gen.State == pipeline.StateBusy,
		GenerationPhase: gen.Phase,
		Publishing:      pub.State == pipeline.StateBusy,
		PublishPhase:    pub.Phase,
	}
	switch {
	case snap.Generating:
		snap.ActiveAgentID = gen.AgentID
	case snap.Publishing:
		snap.ActiveAgentID = pub.AgentID
	}
	return snap
}

func (s *PipelineService) emitProgress(m *pipeline.Machine) {
	st := m.Status()
	events.Emit(events.PipelineProgress, events.NewPipelineEvent(
		string(st.Class), st.State == pipeline.StateBusy, st.Phase, st.AgentID,
	))
}

func errorText(err error, fallback string) string {
	if err == nil || strings.TrimSpace(err.Error()) == "" {
		return fallback
	}
	return err.Error()
}
