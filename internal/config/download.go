package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

const downloadConfigFile = "download_config.json"

// DownloadConfig drives the cloud-drive download stage. Folders are
// object-key prefixes in the configured bucket; "root" targets the
// bucket root.
type DownloadConfig struct {
	Drive         DriveConfig     `json:"drive"`
	DownloadsPath DownloadsPath   `json:"downloads_path"`
	Folders       FolderSelection `json:"folders"`
	Download      DownloadOptions `json:"download"`
	Audio         FileTypeFilter  `json:"audio_file_types"`
	Image         FileTypeFilter  `json:"image_file_types"`
	Video         FileTypeFilter  `json:"video_file_types"`
	DryRun        bool            `json:"dry_run"`
	LogLevel      string          `json:"log_level"`
}

// DriveConfig holds the object-store connection settings. AccessKey and
// SecretKey may be left empty and supplied through CredentialsFile
// instead.
type DriveConfig struct {
	Endpoint        string `json:"endpoint"`
	Bucket          string `json:"bucket"`
	AccessKey       string `json:"access_key"`
	SecretKey       string `json:"secret_key"`
	UseSSL          bool   `json:"use_ssl"`
	CredentialsFile string `json:"credentials_file"`
}

type DownloadsPath struct {
	DownloadsDir string `json:"downloads_dir"`
}

type FolderSelection struct {
	TargetFolders []string `json:"target_folders"`
}

// DownloadOptions control per-file handling after the listing filter.
type DownloadOptions struct {
	AddTimestamps       bool   `json:"add_timestamps"`
	TimestampFormat     string `json:"timestamp_format"`
	DeleteAfterDownload bool   `json:"delete_after_download"`
}

// FileTypeFilter is one media-type section of the download config. A
// missing enabled flag means enabled; an empty include list matches
// nothing.
type FileTypeFilter struct {
	Enabled *bool    `json:"enabled"`
	Include []string `json:"include"`
}

// IsEnabled treats an absent flag as true, matching the config-file
// convention that types are opted out, not in.
func (f FileTypeFilter) IsEnabled() bool {
	return f.Enabled == nil || *f.Enabled
}

// Matches reports whether ext (with leading dot) is in the include list.
func (f FileTypeFilter) Matches(ext string) bool {
	ext = strings.ToLower(ext)
	for _, inc := range f.Include {
		if strings.ToLower(inc) == ext {
			return true
		}
	}
	return false
}

// LoadDownload reads the download config from path, or from the default
// location when path is empty.
func LoadDownload(path string) (*DownloadConfig, error) {
	cfg := &DownloadConfig{}
	if err := loadJSONFile(defaultPath(path, downloadConfigFile), cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *DownloadConfig) ApplyDefaults() {
	if c.DownloadsPath.DownloadsDir == "" {
		c.DownloadsPath.DownloadsDir = filepath.Join(DataDir(), "downloads")
	}
	if len(c.Folders.TargetFolders) == 0 {
		c.Folders.TargetFolders = []string{"root"}
	}
	if c.Download.TimestampFormat == "" {
		c.Download.TimestampFormat = "%Y%m%d_%H%M%S"
	}
	if c.Drive.CredentialsFile == "" {
		c.Drive.CredentialsFile = filepath.Join(ConfigDir(), "credentials.json")
	}
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
}

func (c *DownloadConfig) Validate() error {
	if strings.TrimSpace(c.Drive.Endpoint) == "" {
		return fmt.Errorf("drive.endpoint is required")
	}
	if strings.TrimSpace(c.Drive.Bucket) == "" {
		return fmt.Errorf("drive.bucket is required")
	}
	return nil
}

// AnyTypeEnabled reports whether at least one media type can download.
func (c *DownloadConfig) AnyTypeEnabled() bool {
	return c.Audio.IsEnabled() || c.Image.IsEnabled() || c.Video.IsEnabled()
}
