package drive

import (
	"time"

	"github.com/ncruces/go-strftime"
)

// GenerateFilenameWithTimestamp prefixes name with the current time
// rendered through a strftime format, joined by an underscore.
// An empty format returns the name unchanged.
func GenerateFilenameWithTimestamp(name, format string) string {
	return generateFilenameWithTimestamp(name, format, time.Now())
}

func generateFilenameWithTimestamp(name, format string, now time.Time) string {
	if format == "" {
		return name
	}
	return strftime.Format(format, now) + "_" + name
}
