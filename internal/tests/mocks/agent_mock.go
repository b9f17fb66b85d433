package mocks

import (
	"context"
	"sync"

	"apiforge/internal/agents"
	"apiforge/internal/models"
)

type CallerMock struct {
	CallFunc func(ctx context.Context, message, agentID string) (*models.AgentResult, error)

	mu       sync.Mutex
	Messages []string
	AgentIDs []string
}

func (m *CallerMock) Call(ctx context.Context, message, agentID string) (*models.AgentResult, error) {
	m.mu.Lock()
	m.Messages = append(m.Messages, message)
	m.AgentIDs = append(m.AgentIDs, agentID)
	m.mu.Unlock()

	if m.CallFunc != nil {
		return m.CallFunc(ctx, message, agentID)
	}
	return &models.AgentResult{Success: true, Result: map[string]any{}}, nil
}

func (m *CallerMock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Messages)
}

type PublisherMock struct {
	PublishFunc func(ctx context.Context, payload agents.PublishPayload, agentID string) (*models.AgentResult, error)

	mu       sync.Mutex
	Payloads []agents.PublishPayload
}

func (m *PublisherMock) Publish(ctx context.Context, payload agents.PublishPayload, agentID string) (*models.AgentResult, error) {
	m.mu.Lock()
	m.Payloads = append(m.Payloads, payload)
	m.mu.Unlock()

	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, payload, agentID)
	}
	return &models.AgentResult{Success: true, Result: map[string]any{}}, nil
}

func (m *PublisherMock) LastPayload() (agents.PublishPayload, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Payloads) == 0 {
		return agents.PublishPayload{}, false
	}
	return m.Payloads[len(m.Payloads)-1], true
}
