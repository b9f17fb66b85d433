package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"apiforge/internal/events"
	"apiforge/internal/models"
	"apiforge/internal/repositories"
)

// SettingsProvider exposes the current preferences to other services.
type SettingsProvider interface {
	Get() models.AppSettings
}

type AppSettingsService interface {
	SettingsProvider
	Startup(ctx context.Context)
	Load(ctx context.Context)
	Update(settings models.AppSettings) (models.AppSettings, error)
	Save() error
}

type appSettingsService struct {
	appSettings repositories.AppSettingsRepository
	status      StatusNotifier
	context     context.Context

	mu       sync.RWMutex
	settings models.AppSettings
}

func (s *appSettingsService) Startup(ctx context.Context) {
	s.context = ctx
}

func NewAppSettingsService(appSettings repositories.AppSettingsRepository, status StatusNotifier) AppSettingsService {
	return &appSettingsService{
		appSettings: appSettings,
		status:      status,
		context:     context.Background(),
		settings:    models.DefaultAppSettings(),
	}
}

// Load reads the persisted settings once. Unreadable settings fall back to defaults.
func (s *appSettingsService) Load(ctx context.Context) {
	stored, err := s.appSettings.Get(ctx)
	if err != nil {
		slog.WarnContext(ctx, "settings unreadable, using defaults", "error", err)
	}
	settings := models.DefaultAppSettings()
	if stored != nil {
		settings = *stored
	}
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
}

func (s *appSettingsService) Get() models.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSettings(s.settings)
}

// Update validates and stores new settings, persisting them right away.
// A failed write is logged; the in-memory settings still change.
func (s *appSettingsService) Update(settings models.AppSettings) (models.AppSettings, error) {
	normalized, err := normalizeSettings(settings)
	if err != nil {
		return s.Get(), err
	}

	s.mu.Lock()
	s.settings = normalized
	if err := s.appSettings.Update(s.context, &normalized); err != nil {
		slog.ErrorContext(s.context, "failed to persist settings", "error", err)
	}
	s.mu.Unlock()

	events.Emit(events.SettingsChanged, normalized)
	return cloneSettings(normalized), nil
}

// Save writes the current settings and reports the outcome to the user.
func (s *appSettingsService) Save() error {
	current := s.Get()
	if err := s.appSettings.Update(s.context, &current); err != nil {
		slog.ErrorContext(s.context, "failed to save settings", "error", err)
		s.status.Enqueue(models.StatusError, "Save Failed", "Could not save settings.")
		return fmt.Errorf("saving settings: %w", err)
	}
	s.status.Enqueue(models.StatusSuccess, "Settings Saved", "Your preferences have been saved.")
	return nil
}

func normalizeSettings(in models.AppSettings) (models.AppSettings, error) {
	out := in
	out.DefaultRepo = strings.TrimSpace(in.DefaultRepo)
	out.DefaultBranch = strings.TrimSpace(in.DefaultBranch)

	switch in.CodeStyle {
	case models.CodeStyleAsync, models.CodeStyleSync:
	default:
		return out, fmt.Errorf("%w: codeStyle must be %q or %q", ErrValidation, models.CodeStyleAsync, models.CodeStyleSync)
	}
	switch in.DocFormat {
	case models.DocFormatMarkdown, models.DocFormatHTML:
	default:
		return out, fmt.Errorf("%w: docFormat must be %q or %q", ErrValidation, models.DocFormatMarkdown, models.DocFormatHTML)
	}
	if !models.IsKnownSeverity(in.AlertSeverityThreshold) {
		return out, fmt.Errorf("%w: unknown alert severity threshold %q", ErrValidation, in.AlertSeverityThreshold)
	}
	out.AlertSeverityThreshold = models.DisplaySeverity(in.AlertSeverityThreshold)

	seen := make(map[string]bool, len(in.PreferredLanguages))
	out.PreferredLanguages = make([]string, 0, len(in.PreferredLanguages))
	for _, lang := range in.PreferredLanguages {
		lang = strings.TrimSpace(lang)
		if lang == "" || seen[lang] {
			continue
		}
		seen[lang] = true
		out.PreferredLanguages = append(out.PreferredLanguages, lang)
	}
	return out, nil
}

func cloneSettings(in models.AppSettings) models.AppSettings {
	out := in
	out.PreferredLanguages = append([]string{}, in.PreferredLanguages...)
	return out
}
