package service

import (
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJournalService(t *testing.T) *JournalService {
	return NewJournalService(repository.NewJournalRepository(newTestDB(t)))
}

func TestJournalUpsertMergesSameDay(t *testing.T) {
	s := newJournalService(t)

	entry, err := s.Upsert(1, &JournalUpsertRequest{
		Date:  "2026-08-30",
		Notes: "첫 일지",
		Mood:  model.MoodGood,
	})
	require.NoError(t, err)
	assert.Equal(t, "첫 일지", entry.Notes)

	entry, err = s.Upsert(1, &JournalUpsertRequest{
		Date:       "2026-08-30",
		Notes:      "수정된 일지",
		Mood:       model.MoodGreat,
		Difficulty: 2,
		Tags:       []string{"grammar"},
	})
	require.NoError(t, err)
	assert.Equal(t, "수정된 일지", entry.Notes)
	assert.Equal(t, model.MoodGreat, entry.Mood)

	entries, err := s.Month(1, "2026-08")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestJournalRejectsBadDate(t *testing.T) {
	s := newJournalService(t)

	_, err := s.Upsert(1, &JournalUpsertRequest{Date: "30-08-2026"})
	assert.ErrorIs(t, err, util.ErrInvalidJournalDate)

	_, err = s.Month(1, "2026/08")
	assert.ErrorIs(t, err, util.ErrInvalidJournalDate)
}

func TestJournalGetMissing(t *testing.T) {
	s := newJournalService(t)

	_, err := s.Get(1, "2026-01-01")
	assert.ErrorIs(t, err, util.ErrJournalNotFound)
}

func TestJournalLogActivityAccumulatesTime(t *testing.T) {
	s := newJournalService(t)
	now := time.Date(2026, 8, 30, 21, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.LogActivity(1, model.JournalActivityLog{
		WeekID:       "week-1",
		ActivityID:   "week-1-reading",
		ActivityType: "reading",
		TimeSpent:    20,
	}))
	require.NoError(t, s.LogActivity(1, model.JournalActivityLog{
		WeekID:       "week-1",
		ActivityID:   "week-1-grammar",
		ActivityType: "grammar",
		TimeSpent:    25,
	}))

	entry, err := s.Get(1, "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, 45, entry.LearningTime)
	assert.Len(t, entry.Activities, 2)
}

func writeEntries(t *testing.T, s *JournalService, userID uint, dates ...string) {
	t.Helper()
	for _, d := range dates {
		_, err := s.Upsert(userID, &JournalUpsertRequest{Date: d, Notes: "study"})
		require.NoError(t, err)
	}
}

func TestStreakEmpty(t *testing.T) {
	s := newJournalService(t)

	streak, err := s.Streak(1)
	require.NoError(t, err)
	assert.Equal(t, 0, streak.Current)
	assert.Equal(t, 0, streak.Longest)
	assert.Equal(t, 0, streak.TotalDays)
}

func TestStreakCurrentAnchoredToday(t *testing.T) {
	s := newJournalService(t)
	s.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }

	writeEntries(t, s, 1, "2026-08-28", "2026-08-29", "2026-08-30")

	streak, err := s.Streak(1)
	require.NoError(t, err)
	assert.Equal(t, 3, streak.Current)
	assert.Equal(t, 3, streak.Longest)
	assert.Equal(t, 3, streak.TotalDays)
	assert.Equal(t, "2026-08-30", streak.LastDate)
}

func TestStreakSurvivesMissingToday(t *testing.T) {
	s := newJournalService(t)
	s.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }

	// Last entry is yesterday; the run is still alive.
	writeEntries(t, s, 1, "2026-08-28", "2026-08-29")

	streak, err := s.Streak(1)
	require.NoError(t, err)
	assert.Equal(t, 2, streak.Current)
}

func TestStreakBrokenByGap(t *testing.T) {
	s := newJournalService(t)
	s.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }

	writeEntries(t, s, 1, "2026-08-20", "2026-08-21", "2026-08-22", "2026-08-23", "2026-08-27")

	streak, err := s.Streak(1)
	require.NoError(t, err)
	// The last entry is too old to count as current.
	assert.Equal(t, 0, streak.Current)
	assert.Equal(t, 4, streak.Longest)
	assert.Equal(t, 5, streak.TotalDays)
}

func TestStreakAcrossMonthBoundary(t *testing.T) {
	s := newJournalService(t)
	s.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }

	writeEntries(t, s, 1, "2026-08-30", "2026-08-31", "2026-09-01")

	streak, err := s.Streak(1)
	require.NoError(t, err)
	assert.Equal(t, 3, streak.Current)
}
