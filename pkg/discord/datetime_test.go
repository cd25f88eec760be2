package discord

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtstv/EventBot/internal/domain"
)

func TestParseStartDateStrict(t *testing.T) {
	got, err := ParseStartDate("2026-09-01 20:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 20, 0, 0, 0, time.Local), got)

	// Surrounding whitespace is tolerated.
	got, err = ParseStartDate("  2026-09-01 20:00  ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 20, 0, 0, 0, time.Local), got)
}

func TestParseStartDateNaturalLanguage(t *testing.T) {
	got, err := ParseStartDate("tomorrow at 18:00")
	require.NoError(t, err)
	assert.False(t, got.IsZero())
	assert.Equal(t, 18, got.Hour())
	assert.True(t, got.After(time.Now()))
}

func TestParseStartDateInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not a date", "2026-13-99 99:99"} {
		_, err := ParseStartDate(input)
		assert.ErrorIs(t, err, domain.ErrInvalidDate, "input %q", input)
	}
}

func TestFormatStartDate(t *testing.T) {
	assert.Equal(t, "2026-09-01 20:00", FormatStartDate(time.Date(2026, 9, 1, 20, 0, 0, 0, time.Local)))
	assert.Empty(t, FormatStartDate(time.Time{}))
}
