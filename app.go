package main

import (
	"context"
	"fmt"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"apiforge/internal/events"
	"apiforge/internal/models"
	"apiforge/internal/services"
)

// App is the Wails binding surface for the dashboard.
type App struct {
	ctx     context.Context
	svc     *services.Services
	keys    *services.KeyringService
	catalog services.ModelCatalogService
	dbClose func() error
}

// NewApp creates a new App application struct
func NewApp(svc *services.Services, keys *services.KeyringService, catalog services.ModelCatalogService, dbClose func() error) *App {
	return &App{svc: svc, keys: keys, catalog: catalog, dbClose: dbClose}
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	events.EnableRuntimeEmitter(ctx)
	a.svc.Startup(ctx)
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	a.svc.Shutdown()

	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			runtime.LogError(ctx, fmt.Sprintf("failed to close database: %v", err))
		} else {
			runtime.LogInfo(ctx, "database closed")
		}
		a.dbClose = nil
	}
}

// Generate runs the manager agent over specification for the given languages.
func (a *App) Generate(specification string, languages []string) error {
	return a.svc.Pipeline.Generate(a.ctx, services.GenerateRequest{
		Specification: specification,
		Languages:     languages,
	})
}

func (a *App) Regenerate() error {
	return a.svc.Pipeline.Regenerate(a.ctx)
}

func (a *App) Publish(req services.PublishRequest) error {
	return a.svc.Pipeline.Publish(a.ctx, req)
}

// GetIntegrationResult returns nil until a generation has produced a result.
func (a *App) GetIntegrationResult() *models.IntegrationResult {
	if r, ok := a.svc.Pipeline.IntegrationResult(); ok {
		return &r
	}
	return nil
}

func (a *App) GetPublishResult() *models.PublishResult {
	if r, ok := a.svc.Pipeline.PublishResult(); ok {
		return &r
	}
	return nil
}

func (a *App) GetPipelineSnapshot() models.PipelineSnapshot {
	return a.svc.Pipeline.Snapshot()
}

// SortedFindings returns the current findings, most severe first.
func (a *App) SortedFindings() []models.SecurityFinding {
	r, ok := a.svc.Pipeline.IntegrationResult()
	if !ok {
		return []models.SecurityFinding{}
	}
	return models.SortFindingsBySeverity(r.SecurityOutput.Findings)
}

func (a *App) ListActivities() []models.ActivityEntry {
	return a.svc.Activity.List()
}

func (a *App) FilterActivities(kind, query string) []models.ActivityEntry {
	return a.svc.Activity.Filter(kind, query)
}

func (a *App) ClearActivities() {
	a.svc.Activity.Clear()
}

func (a *App) GetSettings() models.AppSettings {
	return a.svc.Settings.Get()
}

func (a *App) UpdateSettings(settings models.AppSettings) (models.AppSettings, error) {
	return a.svc.Settings.Update(settings)
}

func (a *App) SaveSettings() error {
	return a.svc.Settings.Save()
}

func (a *App) ListStatusMessages() []models.StatusMessage {
	return a.svc.Status.Messages()
}

func (a *App) DismissStatus(id string) {
	a.svc.Status.Dismiss(id)
}

func (a *App) AvailableLanguages() []string {
	return append([]string{}, models.AvailableLanguages...)
}

func (a *App) ListModelGroups() []models.LLMModelGroup {
	return a.catalog.ListModelGroups()
}

func (a *App) StoreApiKey(provider, apiKey string) error {
	return a.keys.StoreApiKey(provider, []byte(apiKey))
}

func (a *App) DeleteApiKey(provider string) error {
	return a.keys.DeleteApiKey(provider)
}

func (a *App) ListApiKeys() ([]map[string]string, error) {
	return a.keys.ListApiKeys()
}
