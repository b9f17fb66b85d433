package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"apiforge/internal/events"
	"apiforge/internal/models"
	"apiforge/internal/repositories"
)

// ActivityRecorder is the append side of the activity log.
type ActivityRecorder interface {
	Append(kind models.ActivityKind, summary, details string) models.ActivityEntry
}

type ActivityLogService interface {
	ActivityRecorder
	Startup(ctx context.Context)
	Load(ctx context.Context)
	List() []models.ActivityEntry
	Filter(kind, query string) []models.ActivityEntry
	Clear()
}

type activityLogService struct {
	repo    repositories.ActivityRepository
	status  StatusNotifier
	context context.Context

	mu      sync.Mutex
	entries []models.ActivityEntry
	now     func() time.Time
}

func NewActivityLogService(repo repositories.ActivityRepository, status StatusNotifier) ActivityLogService {
	return &activityLogService{
		repo:    repo,
		status:  status,
		context: context.Background(),
		entries: []models.ActivityEntry{},
		now:     time.Now,
	}
}

func (s *activityLogService) Startup(ctx context.Context) {
	s.context = ctx
}

// Load replaces the in-memory log with the persisted one. Missing or corrupt data yields an empty log.
func (s *activityLogService) Load(ctx context.Context) {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "activity log unreadable, starting empty", "error", err)
		entries = []models.ActivityEntry{}
	}
	if entries == nil {
		entries = []models.ActivityEntry{}
	}
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
}

// Append records a new entry at the head of the log and persists the whole list.
func (s *activityLogService) Append(kind models.ActivityKind, summary, details string) models.ActivityEntry {
	entry := models.ActivityEntry{
		ID:        uuid.NewString(),
		Type:      kind,
		Timestamp: s.now().UTC(),
		Summary:   summary,
		Details:   details,
	}

	s.mu.Lock()
	s.entries = append([]models.ActivityEntry{entry}, s.entries...)
	s.persistLocked()
	s.mu.Unlock()

	events.Emit(events.ActivityAppended, entry)
	return entry
}

// List returns the log newest first.
func (s *activityLogService) List() []models.ActivityEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ActivityEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *activityLogService) Filter(kind, query string) []models.ActivityEntry {
	return FilterActivities(s.List(), kind, query)
}

// Clear empties the log, persists the empty list and tells the user.
func (s *activityLogService) Clear() {
	s.mu.Lock()
	s.entries = []models.ActivityEntry{}
	s.persistLocked()
	s.mu.Unlock()

	events.Emit(events.ActivityCleared, nil)
	if s.status != nil {
		s.status.Enqueue(models.StatusInfo, "Cleared", "Activity log cleared.")
	}
}

func (s *activityLogService) persistLocked() {
	if err := s.repo.Save(s.context, s.entries); err != nil {
		slog.ErrorContext(s.context, "failed to persist activity log", "error", err, "entries", len(s.entries))
	}
}

// FilterActivities keeps entries whose kind matches (empty or "all" matches any) and whose
// summary or details contain query, case-insensitively. The input is not modified.
func FilterActivities(entries []models.ActivityEntry, kind, query string) []models.ActivityEntry {
	q := strings.ToLower(query)
	want := models.ParseActivityKind(kind)
	matchAll := want == "" || string(want) == models.ActivityFilterAll
	out := make([]models.ActivityEntry, 0, len(entries))
	for _, e := range entries {
		if !matchAll && models.ParseActivityKind(string(e.Type)) != want {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(e.Summary), q) &&
			!strings.Contains(strings.ToLower(e.Details), q) {
			continue
		}
		out = append(out, e)
	}
	return out
}
