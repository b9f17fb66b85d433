package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusAdded      = "status:added"
	StatusRemoved    = "status:removed"
	PipelineProgress = "pipeline:progress"
	ActivityAppended = "activity:appended"
	ActivityCleared  = "activity:cleared"
	SettingsChanged  = "settings:changed"
)

// StatusRemovedEvent tells the frontend which message left the queue.
type StatusRemovedEvent struct {
	ID string `json:"id"`
}

// PipelineEvent reports a phase change of the generate or publish pipeline.
type PipelineEvent struct {
	ID        string    `json:"id"`
	Class     string    `json:"class"`
	Busy      bool      `json:"busy"`
	Phase     string    `json:"phase"`
	AgentID   string    `json:"agentId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewPipelineEvent(class string, busy bool, phase, agentID string) PipelineEvent {
	return PipelineEvent{
		ID:        uuid.NewString(),
		Class:     class,
		Busy:      busy,
		Phase:     phase,
		AgentID:   agentID,
		Timestamp: time.Now(),
	}
}
