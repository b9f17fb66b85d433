//go:build prod

package database

import (
	"log/slog"
	"os"
	"path/filepath"
)

const dbFileName = "apiforge.db"

// GetDefaultDBPath stores the database under the user's config directory.
func GetDefaultDBPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		slog.Warn("no user config dir, using working directory for database", "error", err)
		return dbFileName
	}

	appDir := filepath.Join(configDir, "apiforge")
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		slog.Warn("cannot create app config dir, using working directory for database", "dir", appDir, "error", err)
		return dbFileName
	}
	return filepath.Join(appDir, dbFileName)
}
