package media

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

type ffprobe struct {
	probeCmd string
	filePath string
}

func NewFfprobe(
	mediaPath string,
) ffprobe {
	return ffprobe{
		probeCmd: "ffprobe",
		filePath: filepath.Clean(mediaPath),
	}
}

// Duration reads the container duration in seconds
func (fp ffprobe) Duration() (float64, error) {
	cmdPath, err := exec.LookPath(fp.probeCmd)
	if err != nil {
		return 0, err
	}
	cmd := exec.Command(cmdPath, fp.durationArgs(fp.filePath)...)

	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}

	text := strings.TrimSpace(string(output))
	seconds, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected ffprobe output %q: %w", text, err)
	}

	return seconds, nil
}

func (ffprobe) durationArgs(path string) []string {
	return []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
}
