package mocks

import (
	"context"
	"sync"

	"apiforge/internal/models"
)

// ActivityRepositoryMock records every saved list so tests can inspect persistence.
type ActivityRepositoryMock struct {
	LoadFunc func(ctx context.Context) ([]models.ActivityEntry, error)
	SaveFunc func(ctx context.Context, entries []models.ActivityEntry) error

	mu    sync.Mutex
	Saved [][]models.ActivityEntry
}

func (m *ActivityRepositoryMock) Load(ctx context.Context) ([]models.ActivityEntry, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return []models.ActivityEntry{}, nil
}

func (m *ActivityRepositoryMock) Save(ctx context.Context, entries []models.ActivityEntry) error {
	m.mu.Lock()
	snapshot := make([]models.ActivityEntry, len(entries))
	copy(snapshot, entries)
	m.Saved = append(m.Saved, snapshot)
	m.mu.Unlock()

	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, entries)
	}
	return nil
}

func (m *ActivityRepositoryMock) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Saved)
}
