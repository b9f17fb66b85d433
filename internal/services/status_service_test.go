package services_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apiforge/internal/events"
	"apiforge/internal/models"
	"apiforge/internal/services"
)

type capturedEvent struct {
	name    string
	payload any
}

type eventRecorder struct {
	mu     sync.Mutex
	events []capturedEvent
}

func recordEvents(t *testing.T) *eventRecorder {
	t.Helper()
	rec := &eventRecorder{}
	events.SetCustomEmitter(func(name string, payload any) {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.events = append(rec.events, capturedEvent{name: name, payload: payload})
	})
	t.Cleanup(func() { events.SetCustomEmitter(nil) })
	return rec
}

func (r *eventRecorder) named(name string) []capturedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []capturedEvent
	for _, e := range r.events {
		if e.name == name {
			out = append(out, e)
		}
	}
	return out
}

func newStatus(t *testing.T, ttl time.Duration) services.StatusService {
	t.Helper()
	s := services.NewStatusService(ttl)
	t.Cleanup(s.Close)
	return s
}

func TestStatusService_SequentialIDsInInsertionOrder(t *testing.T) {
	s := newStatus(t, time.Hour)

	a := s.Enqueue(models.StatusSuccess, "One", "first")
	b := s.Enqueue(models.StatusError, "Two", "second")

	assert.Equal(t, "status-1", a.ID)
	assert.Equal(t, "status-2", b.ID)
	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "One", msgs[0].Title)
	assert.Equal(t, models.StatusError, msgs[1].Type)
}

func TestStatusService_DismissIsIdempotent(t *testing.T) {
	rec := recordEvents(t)
	s := newStatus(t, time.Hour)

	msg := s.Enqueue(models.StatusInfo, "Hello", "")
	s.Dismiss(msg.ID)
	s.Dismiss(msg.ID)
	s.Dismiss("status-999")

	assert.Empty(t, s.Messages())
	removed := rec.named(events.StatusRemoved)
	require.Len(t, removed, 1)
	assert.Equal(t, events.StatusRemovedEvent{ID: msg.ID}, removed[0].payload)
	assert.Len(t, rec.named(events.StatusAdded), 1)
}

func TestStatusService_ExpiresAfterTTL(t *testing.T) {
	s := newStatus(t, 20*time.Millisecond)

	s.Enqueue(models.StatusSuccess, "Short lived", "")
	require.Len(t, s.Messages(), 1)

	assert.Eventually(t, func() bool { return len(s.Messages()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestStatusService_EachMessageHasItsOwnTimer(t *testing.T) {
	s := newStatus(t, 100*time.Millisecond)

	first := s.Enqueue(models.StatusInfo, "First", "")
	time.Sleep(50 * time.Millisecond)
	s.Enqueue(models.StatusInfo, "Second", "")

	assert.Eventually(t, func() bool {
		msgs := s.Messages()
		return len(msgs) == 1 && msgs[0].ID != first.ID
	}, time.Second, 2*time.Millisecond)
	assert.Eventually(t, func() bool { return len(s.Messages()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestStatusService_DefaultTTL(t *testing.T) {
	s := newStatus(t, 0)
	s.Enqueue(models.StatusInfo, "x", "")
	assert.Len(t, s.Messages(), 1)
}
