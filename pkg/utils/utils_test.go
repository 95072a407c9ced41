package utils

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeDivide(t *testing.T) {
	assert.Equal(t, 0.0, SafeDivide(10, 0))
	assert.Equal(t, 2.5, SafeDivide(5, 2))
	assert.False(t, math.IsNaN(Percent(0, 0)))
	assert.Equal(t, 25.0, Percent(1, 4))
}

func TestParseMonth(t *testing.T) {
	month, err := ParseMonth("2024-03")
	require.NoError(t, err)
	assert.Equal(t, time.March, month.Month())
	assert.Equal(t, 2024, month.Year())

	_, err = ParseMonth("03-2024")
	assert.Error(t, err)
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, IDLength)
}

func TestNewRunID(t *testing.T) {
	runID := NewRunID("health-digest")
	assert.True(t, strings.HasPrefix(runID, "health-digest-"))
	assert.Len(t, runID, len("health-digest-")+IDLength)
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 26.92, RoundWithTwoDecimalPlace(26.923))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
	assert.Equal(t, -1.5, RoundWithTwoDecimalPlace(-1.499999))
}

func TestFirstDayOfMonth(t *testing.T) {
	date := time.Date(2024, time.March, 15, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), FirstDayOfMonth(date))
}
