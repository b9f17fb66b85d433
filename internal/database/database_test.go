package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"apiforge/internal/models"
)

func TestInit_MigratesStoredRecords(t *testing.T) {
	db, err := Init(Config{Path: ":memory:", LogLevel: logger.Silent})
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&models.StoredRecord{}))
}

func TestInit_FileDatabaseSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apiforge.db")

	db, err := Init(Config{Path: path, LogLevel: logger.Silent})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.StoredRecord{Name: "k", Value: "[]"}).Error)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	reopened, err := Init(Config{Path: path, LogLevel: logger.Silent})
	require.NoError(t, err)
	var rec models.StoredRecord
	require.NoError(t, reopened.First(&rec, "name = ?", "k").Error)
	assert.Equal(t, "[]", rec.Value)
}
