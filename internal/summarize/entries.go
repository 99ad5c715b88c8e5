package summarize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ncruces/go-strftime"

	"github.com/voice-diary/voicediary/internal/storage"
)

var entrySeparator = strings.Repeat("-", 40)

// FormatEntries renders transcriptions as one flat journal block for
// prompt substitution. Entries come out oldest first regardless of the
// input order; each gets a timestamp-and-category header line, its
// content, and a dashed separator. dateFormat is a strftime-style
// format for the date part of the header.
func FormatEntries(entries []storage.Transcription, dateFormat string) string {
	ordered := make([]storage.Transcription, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	var b strings.Builder
	for _, entry := range ordered {
		if entry.CreatedAt.IsZero() {
			fmt.Fprintf(&b, "[No Date] %s\n", entry.Category())
		} else {
			created := entry.CreatedAt.Local()
			fmt.Fprintf(&b, "[%s %s] %s\n",
				strftime.Format(dateFormat, created),
				created.Format("15:04:05"),
				entry.Category())
		}
		b.WriteString(entry.Content)
		b.WriteString("\n\n")
		b.WriteString(entrySeparator)
		b.WriteString("\n\n")
	}
	return b.String()
}
