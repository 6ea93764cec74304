package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeekNumber(t *testing.T) {
	assert.Equal(t, 1, WeekNumber("week-1"))
	assert.Equal(t, 10, WeekNumber("week-10"))
	assert.Equal(t, 0, WeekNumber("week-"))
	assert.Equal(t, 0, WeekNumber("week"))
	assert.Equal(t, 0, WeekNumber("week-abc"))
}

func TestWeekIDRoundTrip(t *testing.T) {
	for n := 1; n <= 12; n++ {
		assert.Equal(t, n, WeekNumber(WeekID(n)))
	}
}
