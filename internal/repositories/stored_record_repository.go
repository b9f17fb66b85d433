package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"apiforge/internal/models"
)

// StoredRecordRepository persists named JSON documents, each rewritten in full.
type StoredRecordRepository interface {
	Get(ctx context.Context, key string) (*models.StoredRecord, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type storedRecordRepository struct {
	db *gorm.DB
}

func NewStoredRecordRepository(db *gorm.DB) StoredRecordRepository {
	return &storedRecordRepository{db: db}
}

// Get returns nil, nil when no record exists for key.
func (r *storedRecordRepository) Get(ctx context.Context, key string) (*models.StoredRecord, error) {
	var rec models.StoredRecord
	if err := r.db.WithContext(ctx).Where("name = ?", key).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting record %q: %w", key, err)
	}
	return &rec, nil
}

func (r *storedRecordRepository) Put(ctx context.Context, key, value string) error {
	rec := models.StoredRecord{
		Name:      key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error; err != nil {
		return fmt.Errorf("writing record %q: %w", key, err)
	}
	return nil
}

func (r *storedRecordRepository) Delete(ctx context.Context, key string) error {
	if err := r.db.WithContext(ctx).Where("name = ?", key).Delete(&models.StoredRecord{}).Error; err != nil {
		return fmt.Errorf("deleting record %q: %w", key, err)
	}
	return nil
}
