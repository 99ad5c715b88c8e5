package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Directory layout is resolved through XDG with environment overrides:
//
//   - VOICEDIARY_CONFIG_DIR: configuration files (default $XDG_CONFIG_HOME/voicediary)
//   - VOICEDIARY_DATA_DIR: database, downloads, transcriptions, logs
//     (default $XDG_DATA_HOME/voicediary)
//   - DATABASE_URL: database file path override
//   - OPENAI_API_KEY: API key fallback when absent from openai_config.json

const appDirName = "voicediary"

// ConfigDir returns the directory holding all component config files.
func ConfigDir() string {
	return getEnvString("VOICEDIARY_CONFIG_DIR", filepath.Join(xdg.ConfigHome, appDirName))
}

// DataDir returns the directory holding mutable state (database, media,
// transcriptions, logs).
func DataDir() string {
	return getEnvString("VOICEDIARY_DATA_DIR", filepath.Join(xdg.DataHome, appDirName))
}

// LogsDir returns the per-component log file directory.
func LogsDir() string {
	return filepath.Join(DataDir(), "logs")
}

// DatabasePath returns the sqlite database location. DATABASE_URL wins
// over the default data-dir placement.
func DatabasePath() string {
	return getEnvString("DATABASE_URL", filepath.Join(DataDir(), "voicediary.db"))
}

// defaultPath resolves a config file name against ConfigDir when the
// caller did not pass an explicit path.
func defaultPath(override, name string) string {
	if override != "" {
		return override
	}
	return filepath.Join(ConfigDir(), name)
}

func loadJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return nil
}

// writeJSONFile writes v as indented JSON with a trailing newline,
// atomically via a temp file rename.
func writeJSONFile(path string, v interface{}) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	content = append(content, '\n')

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
