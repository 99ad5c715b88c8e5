package router

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voice-diary/voicediary/internal/config"
)

func testRouterConfig(t *testing.T) *config.RouterConfig {
	t.Helper()

	base := t.TempDir()
	cfg := &config.RouterConfig{
		Source: config.SourceDirectory{SourceDir: filepath.Join(base, "downloads")},
		Targets: config.TargetDirectories{
			AudioFilesDir: filepath.Join(base, "audio"),
			ImageFilesDir: filepath.Join(base, "images"),
			VideoFilesDir: filepath.Join(base, "videos"),
		},
		Audio: config.CategoryConfig{Enabled: true, Extensions: []string{".mp3", ".wav"}},
		Image: config.CategoryConfig{Enabled: true, Extensions: []string{".jpg", ".png"}},
		Video: config.CategoryConfig{Enabled: true, Extensions: []string{".mp4"}},
	}
	require.NoError(t, os.MkdirAll(cfg.Source.SourceDir, 0o755))
	return cfg
}

func writeSourceFile(t *testing.T, cfg *config.RouterConfig, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Source.SourceDir, name), []byte(content), 0o644))
}

func TestRoutePlacesFilesByType(t *testing.T) {
	t.Parallel()

	cfg := testRouterConfig(t)
	writeSourceFile(t, cfg, "memo.mp3", "audio")
	writeSourceFile(t, cfg, "photo.JPG", "image")
	writeSourceFile(t, cfg, "clip.mp4", "video")
	writeSourceFile(t, cfg, "notes.txt", "text")

	processed, failed, err := New(cfg).Route()
	require.NoError(t, err)
	assert.Equal(t, 3, processed)
	assert.Equal(t, 0, failed)

	assert.FileExists(t, filepath.Join(cfg.Targets.AudioFilesDir, "memo.mp3"))
	assert.FileExists(t, filepath.Join(cfg.Targets.ImageFilesDir, "photo.JPG"))
	assert.FileExists(t, filepath.Join(cfg.Targets.VideoFilesDir, "clip.mp4"))

	// The unmatched file stays in the source directory
	assert.FileExists(t, filepath.Join(cfg.Source.SourceDir, "notes.txt"))
}

func TestRouteKeepsSourceByDefault(t *testing.T) {
	t.Parallel()

	cfg := testRouterConfig(t)
	writeSourceFile(t, cfg, "memo.mp3", "audio")

	_, _, err := New(cfg).Route()
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(cfg.Source.SourceDir, "memo.mp3"))
	assert.FileExists(t, filepath.Join(cfg.Targets.AudioFilesDir, "memo.mp3"))
}

func TestRouteDeleteSource(t *testing.T) {
	t.Parallel()

	cfg := testRouterConfig(t)
	cfg.Processing.DeleteSource = true
	writeSourceFile(t, cfg, "memo.mp3", "audio content")

	processed, failed, err := New(cfg).Route()
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, 0, failed)

	assert.NoFileExists(t, filepath.Join(cfg.Source.SourceDir, "memo.mp3"))

	moved, err := os.ReadFile(filepath.Join(cfg.Targets.AudioFilesDir, "memo.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "audio content", string(moved))
}

func TestRouteCollisionGetsSuffix(t *testing.T) {
	t.Parallel()

	cfg := testRouterConfig(t)
	require.NoError(t, os.MkdirAll(cfg.Targets.AudioFilesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Targets.AudioFilesDir, "memo.mp3"), []byte("earlier"), 0o644))

	writeSourceFile(t, cfg, "memo.mp3", "later")

	processed, _, err := New(cfg).Route()
	require.NoError(t, err)
	assert.Equal(t, 1, processed)

	original, err := os.ReadFile(filepath.Join(cfg.Targets.AudioFilesDir, "memo.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "earlier", string(original))

	renamed, err := os.ReadFile(filepath.Join(cfg.Targets.AudioFilesDir, "memo_1.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "later", string(renamed))
}

func TestRouteDisabledCategorySkips(t *testing.T) {
	t.Parallel()

	cfg := testRouterConfig(t)
	cfg.Image.Enabled = false
	writeSourceFile(t, cfg, "photo.jpg", "image")

	processed, failed, err := New(cfg).Route()
	require.NoError(t, err)
	assert.Equal(t, 0, processed)
	assert.Equal(t, 0, failed)
	assert.FileExists(t, filepath.Join(cfg.Source.SourceDir, "photo.jpg"))
}

func TestRouteMissingSourceDir(t *testing.T) {
	t.Parallel()

	cfg := testRouterConfig(t)
	cfg.Source.SourceDir = filepath.Join(t.TempDir(), "nope")

	_, _, err := New(cfg).Route()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read source directory")
}

func TestRouteIgnoresSubdirectories(t *testing.T) {
	t.Parallel()

	cfg := testRouterConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.Source.SourceDir, "nested.mp3"), 0o755))

	processed, failed, err := New(cfg).Route()
	require.NoError(t, err)
	assert.Equal(t, 0, processed)
	assert.Equal(t, 0, failed)
}
