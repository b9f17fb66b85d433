package services

import (
	"fmt"
	"sync"
	"time"

	"apiforge/internal/events"
	"apiforge/internal/models"
)

// DefaultStatusTTL is how long a status message stays visible unless dismissed.
const DefaultStatusTTL = 5 * time.Second

// StatusNotifier is the write side of the status queue used by other services.
type StatusNotifier interface {
	Enqueue(kind models.StatusKind, title, message string) models.StatusMessage
}

type StatusService interface {
	StatusNotifier
	Dismiss(id string)
	Messages() []models.StatusMessage
	Close()
}

type statusService struct {
	mu     sync.Mutex
	ttl    time.Duration
	seq    int
	queue  []models.StatusMessage
	timers map[string]*time.Timer
}

func NewStatusService(ttl time.Duration) StatusService {
	if ttl <= 0 {
		ttl = DefaultStatusTTL
	}
	return &statusService{ttl: ttl, timers: make(map[string]*time.Timer)}
}

// Enqueue appends a message and schedules its removal after the TTL.
func (s *statusService) Enqueue(kind models.StatusKind, title, message string) models.StatusMessage {
	s.mu.Lock()
	s.seq++
	msg := models.StatusMessage{
		ID:      fmt.Sprintf("status-%d", s.seq),
		Type:    kind,
		Title:   title,
		Message: message,
	}
	s.queue = append(s.queue, msg)
	id := msg.ID
	s.timers[id] = time.AfterFunc(s.ttl, func() { s.Dismiss(id) })
	s.mu.Unlock()

	events.Emit(events.StatusAdded, msg)
	return msg
}

// Dismiss removes the message with id. Unknown or already removed ids are ignored.
func (s *statusService) Dismiss(id string) {
	s.mu.Lock()
	idx := -1
	for i, m := range s.queue {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue[:idx], s.queue[idx+1:]...)
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	s.mu.Unlock()

	events.Emit(events.StatusRemoved, events.StatusRemovedEvent{ID: id})
}

// Messages returns the visible messages in insertion order.
func (s *statusService) Messages() []models.StatusMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.StatusMessage, len(s.queue))
	copy(out, s.queue)
	return out
}

// Close stops every pending removal timer.
func (s *statusService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
