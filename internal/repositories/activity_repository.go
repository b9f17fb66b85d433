package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"apiforge/internal/models"
)

// ActivitiesKey is the fixed name of the persisted activity log.
const ActivitiesKey = "api-assistant-activities"

type ActivityRepository interface {
	Load(ctx context.Context) ([]models.ActivityEntry, error)
	Save(ctx context.Context, entries []models.ActivityEntry) error
}

type activityRepository struct {
	records StoredRecordRepository
}

func NewActivityRepository(records StoredRecordRepository) ActivityRepository {
	return &activityRepository{records: records}
}

// Load returns an empty log when nothing is stored. A stored value that is not a JSON
// array of entries is reported as an error together with an empty log.
func (r *activityRepository) Load(ctx context.Context) ([]models.ActivityEntry, error) {
	rec, err := r.records.Get(ctx, ActivitiesKey)
	if err != nil {
		return []models.ActivityEntry{}, err
	}
	if rec == nil {
		return []models.ActivityEntry{}, nil
	}
	var entries []models.ActivityEntry
	if err := json.Unmarshal([]byte(rec.Value), &entries); err != nil {
		return []models.ActivityEntry{}, fmt.Errorf("decoding activities: %w", err)
	}
	if entries == nil {
		entries = []models.ActivityEntry{}
	}
	return entries, nil
}

func (r *activityRepository) Save(ctx context.Context, entries []models.ActivityEntry) error {
	if entries == nil {
		entries = []models.ActivityEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding activities: %w", err)
	}
	return r.records.Put(ctx, ActivitiesKey, string(data))
}
