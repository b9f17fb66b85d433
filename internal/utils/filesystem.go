package utils

import (
	"os"
	"path/filepath"
)

func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func HasGitRepo(path string) bool {
	return DirectoryExists(filepath.Join(path, ".git"))
}
