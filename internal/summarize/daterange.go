package summarize

import (
	"fmt"
	"strconv"
	"time"

	"github.com/voice-diary/voicediary/pkg/log"
)

// ResolveDateRange turns the configured date_range list into inclusive
// day bounds. An empty list means today; a single YYYYMMDD entry covers
// that one day; two entries span from the first to the second. A
// malformed entry falls the whole range back to today with a warning.
// Bounds always cover full days, 00:00:00 through 23:59:59 local time.
func ResolveDateRange(dateRange []int) (start, end time.Time) {
	now := time.Now()

	switch {
	case len(dateRange) == 0:
		log.Info("No date range specified, using current date")
		start, end = now, now
	case len(dateRange) == 1:
		day, err := dateFromInt(dateRange[0])
		if err != nil {
			log.Warn("Invalid date %d, falling back to current date: %v", dateRange[0], err)
			day = now
		}
		start, end = day, day
	default:
		var err error
		start, err = dateFromInt(dateRange[0])
		if err == nil {
			end, err = dateFromInt(dateRange[1])
		}
		if err != nil {
			log.Warn("Invalid date in range %v, falling back to current date: %v", dateRange, err)
			start, end = now, now
		}
	}

	return dayStart(start), dayEnd(end)
}

func dateFromInt(v int) (time.Time, error) {
	s := strconv.Itoa(v)
	if len(s) != 8 {
		return time.Time{}, fmt.Errorf("expected YYYYMMDD, got %d", v)
	}
	return time.ParseInLocation("20060102", s, time.Local)
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
