package util

import (
	"fmt"
	"strconv"
	"strings"
)

// WeekNumber extracts the numeric suffix from a "week-N" identifier. Plain
// string comparison misorders double-digit weeks ("week-10" < "week-2"), so
// every place that sorts weeks must go through this. Returns 0 when the
// identifier has no numeric suffix.
func WeekNumber(weekID string) int {
	idx := strings.LastIndex(weekID, "-")
	if idx < 0 || idx == len(weekID)-1 {
		return 0
	}
	n, err := strconv.Atoi(weekID[idx+1:])
	if err != nil {
		return 0
	}
	return n
}

// WeekID formats the canonical identifier for week n.
func WeekID(n int) string {
	return fmt.Sprintf("week-%d", n)
}
