package media

import "os"

// Prober reports the playback duration of a media file
type Prober interface {
	Duration() (float64, error)
}

func NewProber(
	mediaPath string,
) Prober {
	return NewFfprobe(mediaPath)
}

// DurationOrEstimate returns the duration of an audio file in seconds
// When probing fails it falls back to a size-based estimate assuming
// roughly 3 MB per minute of audio
func DurationOrEstimate(path string) float64 {
	if seconds, err := NewProber(path).Duration(); err == nil {
		return seconds
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return float64(info.Size()) / (3 * 1024 * 1024) * 60
}
