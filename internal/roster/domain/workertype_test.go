package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerTypeStringAndParseRoundTrip(t *testing.T) {
	for _, tt := range AllWorkerTypes() {
		parsed, err := ParseWorkerType(tt.String())
		require.NoError(t, err)
		assert.Equal(t, tt, parsed)
	}
}

func TestParseWorkerTypeInvalid(t *testing.T) {
	_, err := ParseWorkerType("CONTRACTOR")
	assert.Error(t, err)
}

func TestWorkerTypePredicates(t *testing.T) {
	assert.True(t, FT.HasBreak())
	assert.True(t, FT.HasDayOff())
	assert.False(t, FT.IsWeekender())

	assert.False(t, PT.HasBreak())
	assert.True(t, PT.HasDayOff())

	assert.True(t, WFT.IsWeekender())
	assert.False(t, WFT.HasDayOff())
	assert.True(t, WFT.HasBreak())

	assert.True(t, WPT.IsWeekender())
	assert.False(t, WPT.HasBreak())
}

func TestWorkerTypeDurationsAndHours(t *testing.T) {
	assert.Equal(t, 9, FT.ShiftDuration())
	assert.Equal(t, 8, FT.ProductiveHourCount())
	assert.Equal(t, 4, PT.ShiftDuration())
	assert.Equal(t, 4, PT.ProductiveHourCount())
}
