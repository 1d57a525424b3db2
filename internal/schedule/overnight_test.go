package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestStopDate(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("overnight shift ends next day", func(t *testing.T) {
		got := StopDate(start, strPtr("22:00"), strPtr("06:00"))
		assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("day shift ends same day", func(t *testing.T) {
		got := StopDate(start, strPtr("08:00"), strPtr("17:00"))
		assert.Equal(t, start, got)
	})

	t.Run("equal start and stop is same day", func(t *testing.T) {
		got := StopDate(start, strPtr("09:00"), strPtr("09:00"))
		assert.Equal(t, start, got)
	})

	t.Run("missing start time is same day", func(t *testing.T) {
		got := StopDate(start, nil, strPtr("06:00"))
		assert.Equal(t, start, got)
	})

	t.Run("missing stop time is same day", func(t *testing.T) {
		got := StopDate(start, strPtr("22:00"), nil)
		assert.Equal(t, start, got)
	})

	t.Run("seconds are tolerated", func(t *testing.T) {
		got := StopDate(start, strPtr("23:30:00"), strPtr("07:45:00"))
		assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("unparseable time falls back to same day", func(t *testing.T) {
		got := StopDate(start, strPtr("late"), strPtr("06:00"))
		assert.Equal(t, start, got)
	})
}
