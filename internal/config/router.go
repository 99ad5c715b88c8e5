package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

const routerConfigFile = "file_router_config.json"

// RouterConfig drives the routing of downloaded files into per-type
// directories.
type RouterConfig struct {
	Source     SourceDirectory   `json:"source_directory"`
	Targets    TargetDirectories `json:"target_directories"`
	Audio      CategoryConfig    `json:"audio_file_types"`
	Image      CategoryConfig    `json:"image_file_types"`
	Video      CategoryConfig    `json:"video_file_types"`
	Processing ProcessingOptions `json:"processing"`
	LogLevel   string            `json:"log_level"`
}

type SourceDirectory struct {
	SourceDir string `json:"source_dir"`
}

type TargetDirectories struct {
	AudioFilesDir string `json:"audio_files_dir"`
	ImageFilesDir string `json:"image_files_dir"`
	VideoFilesDir string `json:"video_files_dir"`
}

// CategoryConfig is one file-type category of the router config.
type CategoryConfig struct {
	Enabled    bool     `json:"enabled"`
	Extensions []string `json:"extensions"`
}

// Matches reports whether ext (with leading dot) is in the category's
// extension list. Disabled categories match nothing.
func (c CategoryConfig) Matches(ext string) bool {
	if !c.Enabled {
		return false
	}
	ext = strings.ToLower(ext)
	for _, e := range c.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

type ProcessingOptions struct {
	CreateDirectories *bool `json:"create_directories_if_not_exist"`
	DeleteSource      bool  `json:"delete_source_after_move"`
}

// CreateDirs treats an absent flag as true.
func (p ProcessingOptions) CreateDirs() bool {
	return p.CreateDirectories == nil || *p.CreateDirectories
}

// LoadRouter reads the router config from path, or from the default
// location when path is empty.
func LoadRouter(path string) (*RouterConfig, error) {
	cfg := &RouterConfig{}
	if err := loadJSONFile(defaultPath(path, routerConfigFile), cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *RouterConfig) ApplyDefaults() {
	if c.Source.SourceDir == "" {
		c.Source.SourceDir = filepath.Join(DataDir(), "downloads")
	}
	if c.Targets.AudioFilesDir == "" {
		c.Targets.AudioFilesDir = filepath.Join(DataDir(), "audio")
	}
	if c.Targets.ImageFilesDir == "" {
		c.Targets.ImageFilesDir = filepath.Join(DataDir(), "images")
	}
	if c.Targets.VideoFilesDir == "" {
		c.Targets.VideoFilesDir = filepath.Join(DataDir(), "videos")
	}
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
}

func (c *RouterConfig) Validate() error {
	if strings.TrimSpace(c.Source.SourceDir) == "" {
		return fmt.Errorf("source_directory.source_dir is required")
	}
	return nil
}

// MergeDriveExtensions overlays the downloader's include lists onto the
// matching categories. Only non-empty lists replace anything, and only
// when the local category is enabled.
func (c *RouterConfig) MergeDriveExtensions(dl *DownloadConfig) {
	if dl == nil {
		return
	}
	if len(dl.Audio.Include) > 0 && c.Audio.Enabled {
		c.Audio.Extensions = dl.Audio.Include
	}
	if len(dl.Image.Include) > 0 && c.Image.Enabled {
		c.Image.Extensions = dl.Image.Include
	}
	if len(dl.Video.Include) > 0 && c.Video.Enabled {
		c.Video.Extensions = dl.Video.Include
	}
}
