package services

import (
	"context"

	"gorm.io/gorm"

	"apiforge/internal/agents"
	"apiforge/internal/config"
	"apiforge/internal/repositories"
)

// Services aggregates the dashboard services backed by the database.
type Services struct {
	Status   StatusService
	Activity ActivityLogService
	Settings AppSettingsService
	Pipeline *PipelineService
}

// NewServices constructs the service container using repositories backed by db.
func NewServices(db *gorm.DB, cfg config.Config, caller agents.Caller, publisher agents.Publisher) *Services {
	records := repositories.NewStoredRecordRepository(db)

	status := NewStatusService(cfg.StatusTTL)
	activity := NewActivityLogService(repositories.NewActivityRepository(records), status)
	settings := NewAppSettingsService(repositories.NewAppSettingsRepository(records), status)

	return &Services{
		Status:   status,
		Activity: activity,
		Settings: settings,
		Pipeline: NewPipelineService(PipelineDeps{
			Caller:         caller,
			Publisher:      publisher,
			Status:         status,
			Activity:       activity,
			Settings:       settings,
			ManagerAgentID: cfg.Agents.ManagerAgentID,
			PublishAgentID: cfg.Agents.PublishAgentID,
		}),
	}
}

// Startup binds the app context and loads persisted state.
func (s *Services) Startup(ctx context.Context) {
	s.Activity.Startup(ctx)
	s.Settings.Startup(ctx)
	s.Activity.Load(ctx)
	s.Settings.Load(ctx)
}

func (s *Services) Shutdown() {
	s.Status.Close()
}
