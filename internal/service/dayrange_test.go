package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayRange(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	at := time.Date(2025, time.March, 14, 15, 9, 26, 0, loc)

	start, end := dayRange(at)

	assert.Equal(t, time.Date(2025, time.March, 14, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, time.March, 14, 23, 59, 59, int(999*time.Millisecond), loc), end)
	assert.Equal(t, loc, start.Location())
}

func TestDayRangeCoversWholeDay(t *testing.T) {
	at := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	start, end := dayRange(at)

	assert.False(t, at.Before(start))
	assert.False(t, at.After(end))

	lastInstant := time.Date(2025, time.January, 1, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	assert.False(t, lastInstant.After(end))

	nextMidnight := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	assert.True(t, nextMidnight.After(end))
}

func TestYesterdayRange(t *testing.T) {
	at := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	start, end := yesterdayRange(at)

	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 28, end.Day())
	assert.Equal(t, time.February, end.Month())
}
