//go:build !prod

package database

import (
	"path/filepath"

	"apiforge/internal/utils"
)

const dbFileName = "apiforge.db"

// GetDefaultDBPath keeps the development database next to go.mod so it survives
// `wails dev` rebuilds, falling back to the working directory.
func GetDefaultDBPath() string {
	root, err := utils.FindProjectRoot()
	if err != nil {
		return dbFileName
	}
	return filepath.Join(root, dbFileName)
}
