package drive

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/voice-diary/voicediary/internal/config"
	"github.com/voice-diary/voicediary/pkg/file"
	"github.com/voice-diary/voicediary/pkg/log"
)

// Stats tracks the outcome of one download sweep.
//
// Total counts every object seen. Processed counts objects that passed
// the type filters and were attempted. Skipped covers unknown
// extensions and disabled types. The per-type counters increment on
// classification, before the enabled check, so a sweep report shows
// what is in the bucket even when a type is turned off.
type Stats struct {
	Total      int
	Processed  int
	Downloaded int
	Skipped    int
	Errored    int
	Deleted    int
	Audio      int
	Image      int
	Video      int
}

// Downloader sweeps the configured drive folders and pulls matching
// files into the local downloads directory.
type Downloader struct {
	drive Client
	cfg   *config.DownloadConfig
}

func NewDownloader(drive Client, cfg *config.DownloadConfig) *Downloader {
	return &Downloader{
		drive: drive,
		cfg:   cfg,
	}
}

// Run lists every target folder and downloads its files. A folder that
// fails to list is logged and skipped so one bad prefix cannot stop the
// sweep. File-level failures increment Errored and continue.
func (d *Downloader) Run(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	if !d.cfg.AnyTypeEnabled() {
		log.Warn("All file types are disabled, nothing to download")
		return stats, nil
	}

	if err := file.EnsureDir(d.cfg.DownloadsPath.DownloadsDir); err != nil {
		return stats, err
	}

	for _, folder := range d.cfg.Folders.TargetFolders {
		objects, err := d.drive.ListFolder(ctx, folder)
		if err != nil {
			log.Error("Failed to list folder %q: %v", folder, err)
			continue
		}
		log.Info("Folder %q: %d files", folder, len(objects))
		d.processFolder(ctx, objects, stats)
	}

	log.Info("Download sweep finished: %d total, %d downloaded, %d skipped, %d errored, %d deleted",
		stats.Total, stats.Downloaded, stats.Skipped, stats.Errored, stats.Deleted)

	return stats, nil
}

func (d *Downloader) processFolder(ctx context.Context, objects []Object, stats *Stats) {
	for _, obj := range objects {
		stats.Total++

		filter, ok := d.classify(obj.Name, stats)
		if !ok {
			log.Debug("Skipping %s: unsupported file type", obj.Name)
			stats.Skipped++
			continue
		}
		if !filter.IsEnabled() {
			log.Debug("Skipping %s: file type disabled", obj.Name)
			stats.Skipped++
			continue
		}

		name := obj.Name
		if d.cfg.Download.AddTimestamps {
			name = GenerateFilenameWithTimestamp(name, d.cfg.Download.TimestampFormat)
		}
		localPath := filepath.Join(d.cfg.DownloadsPath.DownloadsDir, name)

		stats.Processed++

		if d.cfg.DryRun {
			log.Info("Would download %s to %s", obj.Key, localPath)
			stats.Downloaded++
			if d.cfg.Download.DeleteAfterDownload {
				log.Info("Would delete %s", obj.Key)
			}
			continue
		}

		if err := d.drive.Download(ctx, obj.Key, localPath); err != nil {
			log.Error("Failed to download %s: %v", obj.Key, err)
			stats.Errored++
			continue
		}
		log.Info("Downloaded %s to %s", obj.Key, localPath)
		stats.Downloaded++

		if d.cfg.Download.DeleteAfterDownload {
			if err := d.drive.Delete(ctx, obj.Key); err != nil {
				log.Error("Failed to delete %s after download: %v", obj.Key, err)
				stats.Errored++
				continue
			}
			log.Info("Deleted %s from drive", obj.Key)
			stats.Deleted++
		}
	}
}

// classify matches the file extension against the type filters and
// bumps the matching per-type counter.
func (d *Downloader) classify(name string, stats *Stats) (config.FileTypeFilter, bool) {
	ext := strings.ToLower(filepath.Ext(name))

	switch {
	case d.cfg.Audio.Matches(ext):
		stats.Audio++
		return d.cfg.Audio, true
	case d.cfg.Image.Matches(ext):
		stats.Image++
		return d.cfg.Image, true
	case d.cfg.Video.Matches(ext):
		stats.Video++
		return d.cfg.Video, true
	}

	return config.FileTypeFilter{}, false
}
