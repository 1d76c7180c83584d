package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/unowned-ai/diary/pkg/db"
)

const appDirName = "diary"

// DefaultDBPath returns a system-appropriate default path for the diary database.
func DefaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "diary.db"
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(homeDir, "AppData", "Roaming", appDirName, "diary.db")
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", appDirName, "diary.db")
	default: // Linux and other UNIX-like systems.
		if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
			return filepath.Join(dataHome, appDirName, "diary.db")
		}
		return filepath.Join(homeDir, ".local", "share", appDirName, "diary.db")
	}
}

// ConfigDirs lists the directories searched for diary.yaml, most specific first.
func ConfigDirs() []string {
	var dirs []string
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		dirs = append(dirs, filepath.Join(configHome, appDirName))
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(homeDir, ".config", appDirName))
	}
	return append(dirs, ".")
}

// ResolveAndEnsureDBPath expands and absolutizes providedPath, falling back to
// DefaultDBPath, and creates the parent directory. In-memory DSNs pass through.
func ResolveAndEnsureDBPath(providedPath string) (string, error) {
	targetPath := providedPath
	if targetPath == "" {
		targetPath = DefaultDBPath()
	}
	if db.IsMemoryDSN(targetPath) {
		return targetPath, nil
	}

	if strings.HasPrefix(targetPath, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory to expand path '%s': %w", targetPath, err)
		}
		targetPath = filepath.Join(homeDir, targetPath[2:])
	}

	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s': %w", targetPath, err)
	}
	targetPath = absPath

	dbDir := filepath.Dir(targetPath)
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		if err := os.MkdirAll(dbDir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory '%s' for database: %w", dbDir, err)
		}
	} else if err != nil {
		return "", fmt.Errorf("failed to stat directory '%s' for database: %w", dbDir, err)
	}

	return targetPath, nil
}
