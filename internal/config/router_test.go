package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRouter_AppliesDefaults(t *testing.T) {
	t.Setenv("VOICEDIARY_DATA_DIR", "/tmp/vd-data")

	path := writeConfigFile(t, "file_router_config.json", `{}`)

	cfg, err := LoadRouter(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/vd-data", "downloads"), cfg.Source.SourceDir)
	assert.Equal(t, filepath.Join("/tmp/vd-data", "audio"), cfg.Targets.AudioFilesDir)
	assert.Equal(t, filepath.Join("/tmp/vd-data", "images"), cfg.Targets.ImageFilesDir)
	assert.Equal(t, filepath.Join("/tmp/vd-data", "videos"), cfg.Targets.VideoFilesDir)
	assert.True(t, cfg.Processing.CreateDirs())
}

func TestCategoryConfig_Matches(t *testing.T) {
	cat := CategoryConfig{Enabled: true, Extensions: []string{".mp3", ".WAV"}}

	assert.True(t, cat.Matches(".mp3"))
	assert.True(t, cat.Matches(".wav"))
	assert.False(t, cat.Matches(".jpg"))

	cat.Enabled = false
	assert.False(t, cat.Matches(".mp3"))
}

func TestMergeDriveExtensions(t *testing.T) {
	cfg := RouterConfig{
		Audio: CategoryConfig{Enabled: true, Extensions: []string{".mp3"}},
		Image: CategoryConfig{Enabled: false, Extensions: []string{".jpg"}},
		Video: CategoryConfig{Enabled: true, Extensions: []string{".mp4"}},
	}
	dl := DownloadConfig{
		Audio: FileTypeFilter{Include: []string{".m4a", ".ogg"}},
		Image: FileTypeFilter{Include: []string{".png"}},
	}

	cfg.MergeDriveExtensions(&dl)

	// Enabled category with a non-empty include list is replaced.
	assert.Equal(t, []string{".m4a", ".ogg"}, cfg.Audio.Extensions)
	// Disabled categories keep their local list.
	assert.Equal(t, []string{".jpg"}, cfg.Image.Extensions)
	// Empty include lists replace nothing.
	assert.Equal(t, []string{".mp4"}, cfg.Video.Extensions)
}

func TestMergeDriveExtensions_NilDownloadConfig(t *testing.T) {
	cfg := RouterConfig{Audio: CategoryConfig{Enabled: true, Extensions: []string{".mp3"}}}
	cfg.MergeDriveExtensions(nil)
	assert.Equal(t, []string{".mp3"}, cfg.Audio.Extensions)
}
