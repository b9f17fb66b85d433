package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"apiforge/internal/models"
)

// AppSettingsKey is the fixed name of the persisted settings document.
const AppSettingsKey = "api-assistant-settings"

type AppSettingsRepository interface {
	Get(ctx context.Context) (*models.AppSettings, error)
	Update(ctx context.Context, settings *models.AppSettings) error
}

type appSettingsRepository struct {
	records StoredRecordRepository
}

func NewAppSettingsRepository(records StoredRecordRepository) AppSettingsRepository {
	return &appSettingsRepository{records: records}
}

// Get overlays the stored document on the defaults, so missing fields keep their
// default value and unknown fields are ignored.
func (r *appSettingsRepository) Get(ctx context.Context) (*models.AppSettings, error) {
	settings := models.DefaultAppSettings()
	rec, err := r.records.Get(ctx, AppSettingsKey)
	if err != nil {
		return &settings, err
	}
	if rec == nil {
		return &settings, nil
	}
	if err := json.Unmarshal([]byte(rec.Value), &settings); err != nil {
		defaults := models.DefaultAppSettings()
		return &defaults, fmt.Errorf("decoding settings: %w", err)
	}
	if settings.PreferredLanguages == nil {
		settings.PreferredLanguages = models.DefaultAppSettings().PreferredLanguages
	}
	return &settings, nil
}

func (r *appSettingsRepository) Update(ctx context.Context, settings *models.AppSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return r.records.Put(ctx, AppSettingsKey, string(data))
}
