// Package transcribe turns downloaded voice memos into text entries,
// writes them to a timestamped transcription file and records them in
// the diary database.
package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"
	"github.com/google/uuid"
	"github.com/ncruces/go-strftime"
	"golang.org/x/text/language"

	"github.com/voice-diary/voicediary/internal/config"
	"github.com/voice-diary/voicediary/internal/media"
	"github.com/voice-diary/voicediary/internal/storage"
	"github.com/voice-diary/voicediary/pkg/file"
	"github.com/voice-diary/voicediary/pkg/log"
)

// AudioExtensions are the file types the transcriber picks up from the
// downloads directory.
var AudioExtensions = []string{".mp3", ".wav", ".m4a", ".flac", ".aac", ".ogg"}

// SpeechClient converts a single audio file to text.
type SpeechClient interface {
	Transcribe(ctx context.Context, audioPath, model string) (string, error)
}

// EntryStore persists finished transcriptions.
type EntryStore interface {
	SaveTranscription(ctx context.Context, params storage.SaveTranscriptionParams) (int64, error)
}

// Result summarizes one transcription sweep.
type Result struct {
	Files       int
	Transcribed int
	Failed      int
	OutputPath  string
}

// Transcriber runs the transcription stage. A nil store disables
// database persistence.
type Transcriber struct {
	cfg    *config.TranscribeConfig
	client SpeechClient
	store  EntryStore
}

func NewTranscriber(cfg *config.TranscribeConfig, client SpeechClient, store EntryStore) *Transcriber {
	return &Transcriber{
		cfg:    cfg,
		client: client,
		store:  store,
	}
}

var timestampPattern = regexp.MustCompile(`(\d{8})_(\d{6})`)

// fileTime resolves when a memo was recorded. The timestamp embedded in
// the filename wins; the file mod time is the fallback for files named
// by hand.
func fileTime(path string) time.Time {
	if m := timestampPattern.FindStringSubmatch(filepath.Base(path)); m != nil {
		if ts, err := time.ParseInLocation("20060102_150405", m[1]+"_"+m[2], time.Local); err == nil {
			return ts
		}
	}
	if info, err := os.Stat(path); err == nil {
		return info.ModTime()
	}
	return time.Time{}
}

// Run transcribes every audio file in the downloads directory in
// recording order and writes the combined entries to a timestamped
// output file. Files that fail to transcribe are logged and skipped.
func (t *Transcriber) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	files, err := file.FindByExt(t.cfg.DownloadsDir, AudioExtensions)
	if err != nil {
		return result, fmt.Errorf("failed to scan downloads directory: %w", err)
	}
	result.Files = len(files)
	if len(files) == 0 {
		log.Info("No audio files found in %s", t.cfg.DownloadsDir)
		return result, nil
	}

	sort.Slice(files, func(i, j int) bool {
		return fileTime(files[i]).Before(fileTime(files[j]))
	})

	runID := uuid.NewString()
	entries := make([]string, 0, len(files))

	for _, audioPath := range files {
		name := filepath.Base(audioPath)
		duration := media.DurationOrEstimate(audioPath)
		log.Info("Transcribing %s (estimated %.1f min)", name, duration/60)

		text, err := t.client.Transcribe(ctx, audioPath, t.cfg.Model)
		if err != nil {
			log.Error("Failed to transcribe %s: %v", name, err)
			result.Failed++
			continue
		}

		entries = append(entries, formatEntry(name, fileTime(audioPath), text))
		result.Transcribed++

		t.save(ctx, audioPath, name, text, runID, duration)
	}

	if len(entries) == 0 {
		log.Warn("No transcriptions produced, skipping output file")
		return result, nil
	}

	outputPath, err := t.writeOutput(entries)
	if err != nil {
		return result, err
	}
	result.OutputPath = outputPath
	log.Info("Wrote %d entries to %s", result.Transcribed, outputPath)

	return result, nil
}

// save records one finished transcription. Storage trouble is logged
// rather than returned so a database hiccup cannot lose the sweep.
func (t *Transcriber) save(ctx context.Context, audioPath, name, text, runID string, duration float64) {
	if t.store == nil {
		return
	}

	_, err := t.store.SaveTranscription(ctx, storage.SaveTranscriptionParams{
		Content:         text,
		Filename:        name,
		AudioPath:       audioPath,
		ModelType:       t.cfg.Model,
		DurationSeconds: duration,
		Metadata: map[string]interface{}{
			"language": detectLanguage(text).String(),
			"run_id":   runID,
		},
	})
	if err != nil {
		log.Error("Failed to save transcription for %s: %v", name, err)
	}
}

// detectLanguage classifies the transcript text as a BCP 47 tag.
// Unrecognizable text maps to language.Und.
func detectLanguage(text string) language.Tag {
	return language.All.Make(whatlanggo.DetectLang(text).Iso6391())
}

func formatEntry(name string, recordedAt time.Time, text string) string {
	return fmt.Sprintf("File: %s\nTimestamp: %s\n\n%s\n\n",
		name, recordedAt.Format("2006-01-02 15:04:05"), text)
}

func (t *Transcriber) writeOutput(entries []string) (string, error) {
	if err := file.EnsureDir(t.cfg.TranscriptionsDir); err != nil {
		return "", err
	}

	name := strftime.Format("%Y%m%d_%H%M%S", time.Now()) + "_" + t.cfg.OutputFile
	outputPath := filepath.Join(t.cfg.TranscriptionsDir, name)

	if err := os.WriteFile(outputPath, []byte(strings.Join(entries, "\n")), 0o644); err != nil {
		return "", fmt.Errorf("failed to write transcription file: %w", err)
	}
	return outputPath, nil
}
