package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

const transcribeConfigFile = "transcribe_config.json"

// TranscribeConfig drives the audio transcription stage.
type TranscribeConfig struct {
	DownloadsDir      string `json:"downloads_dir"`
	TranscriptionsDir string `json:"transcriptions_dir"`
	OutputFile        string `json:"output_file"`
	Model             string `json:"model"`
	LogLevel          string `json:"log_level"`
}

// LoadTranscribe reads the transcriber config from path, or from the
// default location when path is empty.
func LoadTranscribe(path string) (*TranscribeConfig, error) {
	cfg := &TranscribeConfig{}
	if err := loadJSONFile(defaultPath(path, transcribeConfigFile), cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *TranscribeConfig) ApplyDefaults() {
	if c.DownloadsDir == "" {
		c.DownloadsDir = filepath.Join(DataDir(), "downloads")
	}
	if c.TranscriptionsDir == "" {
		c.TranscriptionsDir = filepath.Join(DataDir(), "transcriptions")
	}
	if c.OutputFile == "" {
		c.OutputFile = "transcription.txt"
	}
	if c.Model == "" {
		c.Model = "whisper-1"
	}
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
}

func (c *TranscribeConfig) Validate() error {
	if strings.TrimSpace(c.OutputFile) == "" {
		return fmt.Errorf("output_file is required")
	}
	return nil
}
