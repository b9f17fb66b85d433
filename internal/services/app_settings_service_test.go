package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apiforge/internal/models"
	"apiforge/internal/services"
	"apiforge/internal/tests/mocks"
)

func TestAppSettingsService_LoadFallsBackToDefaults(t *testing.T) {
	mockRepo := &mocks.AppSettingsRepositoryMock{
		GetFunc: func(ctx context.Context) (*models.AppSettings, error) {
			return nil, errors.New("database error")
		},
	}
	service := services.NewAppSettingsService(mockRepo, newStatus(t, time.Hour))

	service.Load(context.Background())

	assert.Equal(t, models.DefaultAppSettings(), service.Get())
}

func TestAppSettingsService_LoadUsesStoredSettings(t *testing.T) {
	stored := models.DefaultAppSettings()
	stored.DefaultRepo = "acme/pets"
	mockRepo := &mocks.AppSettingsRepositoryMock{
		GetFunc: func(ctx context.Context) (*models.AppSettings, error) { return &stored, nil },
	}
	service := services.NewAppSettingsService(mockRepo, newStatus(t, time.Hour))

	service.Load(context.Background())

	assert.Equal(t, "acme/pets", service.Get().DefaultRepo)
}

func TestAppSettingsService_UpdateNormalizesAndPersists(t *testing.T) {
	var persisted *models.AppSettings
	mockRepo := &mocks.AppSettingsRepositoryMock{
		UpdateFunc: func(ctx context.Context, settings *models.AppSettings) error {
			copied := *settings
			persisted = &copied
			return nil
		},
	}
	service := services.NewAppSettingsService(mockRepo, newStatus(t, time.Hour))

	in := models.DefaultAppSettings()
	in.DefaultRepo = "  acme/pets "
	in.PreferredLanguages = []string{"Go", "Python", "Go", " ", "Python"}
	in.AlertSeverityThreshold = "critical"
	in.CodeStyle = models.CodeStyleSync

	out, err := service.Update(in)
	require.NoError(t, err)

	assert.Equal(t, "acme/pets", out.DefaultRepo)
	assert.Equal(t, []string{"Go", "Python"}, out.PreferredLanguages)
	assert.Equal(t, models.SeverityCritical, out.AlertSeverityThreshold)
	require.NotNil(t, persisted)
	assert.Equal(t, out, *persisted)
	assert.Equal(t, out, service.Get())
}

func TestAppSettingsService_UpdateRejectsInvalidValues(t *testing.T) {
	service := services.NewAppSettingsService(&mocks.AppSettingsRepositoryMock{}, newStatus(t, time.Hour))

	cases := map[string]func(*models.AppSettings){
		"code style": func(s *models.AppSettings) { s.CodeStyle = "callback" },
		"doc format": func(s *models.AppSettings) { s.DocFormat = "pdf" },
		"threshold":  func(s *models.AppSettings) { s.AlertSeverityThreshold = "urgent" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := models.DefaultAppSettings()
			mutate(&in)

			_, err := service.Update(in)
			assert.ErrorIs(t, err, services.ErrValidation)
			assert.Equal(t, models.DefaultAppSettings(), service.Get())
		})
	}
}

func TestAppSettingsService_UpdateKeepsValueWhenWriteFails(t *testing.T) {
	mockRepo := &mocks.AppSettingsRepositoryMock{
		UpdateFunc: func(ctx context.Context, settings *models.AppSettings) error {
			return errors.New("read-only database")
		},
	}
	service := services.NewAppSettingsService(mockRepo, newStatus(t, time.Hour))

	in := models.DefaultAppSettings()
	in.DefaultBranch = "develop"
	_, err := service.Update(in)

	require.NoError(t, err)
	assert.Equal(t, "develop", service.Get().DefaultBranch)
}

func TestAppSettingsService_SaveReportsOutcome(t *testing.T) {
	status := newStatus(t, time.Hour)
	fail := false
	mockRepo := &mocks.AppSettingsRepositoryMock{
		UpdateFunc: func(ctx context.Context, settings *models.AppSettings) error {
			if fail {
				return errors.New("locked")
			}
			return nil
		},
	}
	service := services.NewAppSettingsService(mockRepo, status)

	require.NoError(t, service.Save())
	fail = true
	assert.Error(t, service.Save())

	msgs := status.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "Settings Saved", msgs[0].Title)
	assert.Equal(t, models.StatusSuccess, msgs[0].Type)
	assert.Equal(t, "Save Failed", msgs[1].Title)
	assert.Equal(t, "Could not save settings.", msgs[1].Message)
}

func TestAppSettingsService_GetReturnsCopy(t *testing.T) {
	service := services.NewAppSettingsService(&mocks.AppSettingsRepositoryMock{}, newStatus(t, time.Hour))

	got := service.Get()
	got.PreferredLanguages[0] = "COBOL"

	assert.Equal(t, "Python", service.Get().PreferredLanguages[0])
}
