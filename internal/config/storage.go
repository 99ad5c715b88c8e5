package config

import (
	"fmt"
	"os"
)

const storageConfigFile = "db_config.json"

// StorageConfig bounds the database connection pool. The config file is
// optional; a missing file yields the defaults with the database path
// taken from DATABASE_URL or the data directory.
type StorageConfig struct {
	DatabasePath   string `json:"database_path"`
	MaxConnections int    `json:"max_connections"`
	MinConnections int    `json:"min_connections"`
}

// LoadStorage reads the storage config from path, or from the default
// location when path is empty. A missing file is not an error.
func LoadStorage(path string) (*StorageConfig, error) {
	cfg := &StorageConfig{}
	resolved := defaultPath(path, storageConfigFile)
	if err := loadJSONFile(resolved, cfg); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *StorageConfig) ApplyDefaults() {
	if c.DatabasePath == "" {
		c.DatabasePath = DatabasePath()
	}
	if c.MaxConnections == 0 {
		c.MaxConnections = 10
	}
	if c.MinConnections == 0 {
		c.MinConnections = 1
	}
}

func (c *StorageConfig) Validate() error {
	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("min_connections (%d) exceeds max_connections (%d)",
			c.MinConnections, c.MaxConnections)
	}
	return nil
}
