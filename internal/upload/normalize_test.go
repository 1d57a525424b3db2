package upload

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDateCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"iso date", "2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"us slash date", "1/15/2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"month name", "Jan 15, 2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"datetime keeps date only", "2024-01-15 08:30:00", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"excel serial", "45306", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateCell(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("empty cell is an error", func(t *testing.T) {
		_, err := ParseDateCell("")
		assert.Error(t, err)
	})

	t.Run("garbage is an error", func(t *testing.T) {
		_, err := ParseDateCell("next tuesday")
		assert.Error(t, err)
	})

	t.Run("small number is not a serial", func(t *testing.T) {
		_, err := ParseDateCell("42")
		assert.Error(t, err)
	})

	t.Run("bare year is not a serial", func(t *testing.T) {
		_, err := ParseDateCell("2024")
		assert.Error(t, err)
	})
}

func TestParseOptionalDateCell(t *testing.T) {
	got, err := ParseOptionalDateCell("  ")
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseOptionalDateCell("2024-01-15")
	assert.NoError(t, err)
	if assert.NotNil(t, got) {
		assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *got)
	}

	_, err = ParseOptionalDateCell("nonsense")
	assert.Error(t, err)
}

func TestParseTimeCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "22:00", "22:00"},
		{"with seconds", "06:30:15", "06:30"},
		{"twelve hour", "9:45 PM", "21:45"},
		{"day fraction serial", "0.25", "06:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeCell(tt.input)
			assert.NoError(t, err)
			if assert.NotNil(t, got) {
				assert.Equal(t, tt.want, *got)
			}
		})
	}

	t.Run("empty cell means off", func(t *testing.T) {
		got, err := ParseTimeCell("")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("garbage is an error", func(t *testing.T) {
		_, err := ParseTimeCell("noon-ish")
		assert.Error(t, err)
	})
}

func TestParseIntCell(t *testing.T) {
	n, err := ParseIntCell("70101")
	assert.NoError(t, err)
	assert.Equal(t, int64(70101), n)

	n, err = ParseIntCell("70101.0")
	assert.NoError(t, err)
	assert.Equal(t, int64(70101), n)

	_, err = ParseIntCell("")
	assert.Error(t, err)

	_, err = ParseIntCell("70101.5")
	assert.Error(t, err)

	_, err = ParseIntCell("abc")
	assert.Error(t, err)
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString("   "))
	got := OptionalString(" VAC ")
	if assert.NotNil(t, got) {
		assert.Equal(t, "VAC", *got)
	}
}
