package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

const summarizeConfigFile = "summarize_day_config.json"

// SummarizeConfig drives the day summarizer. DateRange holds zero, one
// or two YYYYMMDD integers; anything else falls back to today at run
// time.
type SummarizeConfig struct {
	DateRange []int           `json:"date_range"`
	Paths     SummarizePaths  `json:"paths"`
	Output    SummarizeOutput `json:"output"`
	LogLevel  string          `json:"log_level"`
}

type SummarizePaths struct {
	// SummarizedFile is where the database-backed summary lands.
	SummarizedFile string `json:"summarized_file"`
	// SummarizedEntriesDir is where the flat-file variant writes its
	// default-named outputs.
	SummarizedEntriesDir string `json:"summarized_entries_dir"`
}

type SummarizeOutput struct {
	// DateFormat is a strftime-style format for dates in entry headers
	// and the summary title.
	DateFormat string `json:"date_format"`
}

// LoadSummarize reads the summarizer config from path, or from the
// default location when path is empty.
func LoadSummarize(path string) (*SummarizeConfig, error) {
	cfg := &SummarizeConfig{}
	if err := loadJSONFile(defaultPath(path, summarizeConfigFile), cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *SummarizeConfig) ApplyDefaults() {
	if c.Paths.SummarizedFile == "" {
		c.Paths.SummarizedFile = filepath.Join(DataDir(), "summaries", "summary.md")
	}
	if c.Paths.SummarizedEntriesDir == "" {
		c.Paths.SummarizedEntriesDir = filepath.Join(DataDir(), "summarized_entries")
	}
	if c.Output.DateFormat == "" {
		c.Output.DateFormat = "%Y-%m-%d"
	}
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
}

func (c *SummarizeConfig) Validate() error {
	if strings.TrimSpace(c.Paths.SummarizedFile) == "" {
		return fmt.Errorf("paths.summarized_file is required")
	}
	return nil
}
