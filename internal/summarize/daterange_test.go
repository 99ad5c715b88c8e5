package summarize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func localDay(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, time.Local)
}

func TestResolveDateRange(t *testing.T) {
	t.Parallel()

	start, end := ResolveDateRange([]int{20240101, 20240103})

	assert.Equal(t, localDay(2024, time.January, 1, 0, 0, 0), start)
	assert.Equal(t, localDay(2024, time.January, 3, 23, 59, 59), end)
}

func TestResolveDateRangeSingleDay(t *testing.T) {
	t.Parallel()

	start, end := ResolveDateRange([]int{20240515})

	assert.Equal(t, localDay(2024, time.May, 15, 0, 0, 0), start)
	assert.Equal(t, localDay(2024, time.May, 15, 23, 59, 59), end)
}

func TestResolveDateRangeEmpty(t *testing.T) {
	t.Parallel()

	start, end := ResolveDateRange(nil)

	now := time.Now()
	assert.Equal(t, localDay(now.Year(), now.Month(), now.Day(), 0, 0, 0), start)
	assert.Equal(t, localDay(now.Year(), now.Month(), now.Day(), 23, 59, 59), end)
}

func TestResolveDateRangeMalformed(t *testing.T) {
	t.Parallel()

	now := time.Now()
	today := localDay(now.Year(), now.Month(), now.Day(), 0, 0, 0)

	// Month 99 does not parse.
	start, _ := ResolveDateRange([]int{20249901})
	assert.Equal(t, today, start)

	// Too short for YYYYMMDD.
	start, _ = ResolveDateRange([]int{2024})
	assert.Equal(t, today, start)

	// One bad date poisons the whole range.
	start, end := ResolveDateRange([]int{20240101, 20249901})
	assert.Equal(t, today, start)
	assert.Equal(t, localDay(now.Year(), now.Month(), now.Day(), 23, 59, 59), end)
}

func TestResolveDateRangeIgnoresExtraDates(t *testing.T) {
	t.Parallel()

	start, end := ResolveDateRange([]int{20240101, 20240102, 20240715})

	assert.Equal(t, localDay(2024, time.January, 1, 0, 0, 0), start)
	assert.Equal(t, localDay(2024, time.January, 2, 23, 59, 59), end)
}
