// Package router sorts downloaded files into per-type directories by
// extension. Files that match no enabled category stay where they are.
package router

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/voice-diary/voicediary/internal/config"
	"github.com/voice-diary/voicediary/pkg/file"
	"github.com/voice-diary/voicediary/pkg/log"
)

// Router moves or copies files from the source directory into the
// target directory of their category.
type Router struct {
	cfg *config.RouterConfig
}

func New(cfg *config.RouterConfig) *Router {
	return &Router{cfg: cfg}
}

// Route examines every regular file directly under the source directory
// and places it into the directory for its type. Name collisions get a
// numeric suffix instead of overwriting. Returns how many files were
// placed and how many failed.
func (r *Router) Route() (processed, failed int, err error) {
	entries, err := os.ReadDir(r.cfg.Source.SourceDir)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read source directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		targetDir, ok := r.targetFor(name)
		if !ok {
			log.Debug("Skipping %s: no matching category", name)
			continue
		}

		sourcePath := filepath.Join(r.cfg.Source.SourceDir, name)
		if err := r.place(sourcePath, targetDir, name); err != nil {
			log.Error("Failed to route %s: %v", name, err)
			failed++
			continue
		}
		processed++
	}

	log.Info("Routing finished: %d placed, %d failed", processed, failed)
	return processed, failed, nil
}

func (r *Router) targetFor(name string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(name))

	switch {
	case r.cfg.Audio.Matches(ext):
		return r.cfg.Targets.AudioFilesDir, true
	case r.cfg.Image.Matches(ext):
		return r.cfg.Targets.ImageFilesDir, true
	case r.cfg.Video.Matches(ext):
		return r.cfg.Targets.VideoFilesDir, true
	}
	return "", false
}

func (r *Router) place(sourcePath, targetDir, name string) error {
	if r.cfg.Processing.CreateDirs() {
		if err := file.EnsureDir(targetDir); err != nil {
			return err
		}
	}

	targetPath := file.NextAvailable(filepath.Join(targetDir, name))

	if err := copyFile(sourcePath, targetPath); err != nil {
		return err
	}
	log.Info("Placed %s in %s", name, targetDir)

	if r.cfg.Processing.DeleteSource {
		// The original goes away only after the copy landed
		if err := os.Remove(sourcePath); err != nil {
			return fmt.Errorf("failed to remove source %s: %w", sourcePath, err)
		}
	}
	return nil
}

// copyFile copies src to dst, preserving the file mode.
func copyFile(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	return dstFile.Sync()
}
