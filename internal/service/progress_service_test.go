package service

import (
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgressService(t *testing.T) *ProgressService {
	return NewProgressService(repository.NewProgressRepository(newTestDB(t)))
}

// completeWeek finishes all six activities of a week for the user.
func completeWeek(t *testing.T, s *ProgressService, userID uint, weekID string) {
	t.Helper()
	for _, typ := range model.ActivityTypes {
		activityID := fmt.Sprintf("%s-%s", weekID, typ)
		var err error
		switch typ {
		case model.ActivityVocabulary:
			_, err = s.CompleteVocabulary(userID, activityID, weekID, 18, 20, 90)
		case model.ActivityReading:
			_, err = s.CompleteReading(userID, activityID, weekID, 22, 140, 80, 4, 5)
		case model.ActivityGrammar:
			_, err = s.CompleteGrammar(userID, activityID, weekID, 10, 10, 8, 10, nil)
		case model.ActivityListening:
			_, err = s.CompleteListening(userID, activityID, weekID, 3, false, 85, 80, 1.0)
		case model.ActivityWriting:
			_, err = s.CompleteWriting(userID, activityID, weekID, "My day was busy.", 120, 25, nil)
		case model.ActivitySpeaking:
			_, err = s.CompleteSpeaking(userID, activityID, weekID, 5, 5, 90, 2, nil)
		}
		require.NoError(t, err)
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	s := newProgressService(t)

	p, err := s.Get(1, "week-1-reading")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestUpdateMissingFails(t *testing.T) {
	s := newProgressService(t)

	err := s.UpdateFields(1, "week-1-reading", map[string]interface{}{"reading_time": 5})
	assert.ErrorIs(t, err, util.ErrProgressNotFound)
}

func TestCompleteVocabularySetsCompletion(t *testing.T) {
	s := newProgressService(t)

	p, err := s.CompleteVocabulary(7, "week-1-vocabulary", "week-1", 18, 20, 90)
	require.NoError(t, err)
	assert.True(t, p.Completed)
	require.NotNil(t, p.CompletedAt)

	stored, err := s.Get(7, "week-1-vocabulary")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 18, stored.WordsMastered)
	assert.Equal(t, model.ActivityVocabulary, stored.Type)
}

func TestGrammarAccuracy(t *testing.T) {
	s := newProgressService(t)

	p, err := s.CompleteGrammar(1, "week-1-grammar", "week-1", 10, 10, 2, 3, []string{"articles"})
	require.NoError(t, err)
	assert.Equal(t, 67, p.Accuracy)

	// No attempts must not divide by zero.
	p, err = s.CompleteGrammar(2, "week-1-grammar", "week-1", 0, 10, 0, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Accuracy)
}

func TestRepeatedCompletionIsIdempotent(t *testing.T) {
	s := newProgressService(t)

	_, err := s.CompleteReading(1, "week-1-reading", "week-1", 20, 130, 80, 4, 5)
	require.NoError(t, err)
	first, err := s.Get(1, "week-1-reading")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = s.CompleteReading(1, "week-1-reading", "week-1", 25, 150, 90, 5, 5)
	require.NoError(t, err)

	second, err := s.Get(1, "week-1-reading")
	require.NoError(t, err)
	assert.Equal(t, 25, second.ReadingTime)
	// The merge keeps the original creation and completion times.
	assert.Equal(t, first.CreatedAt.Unix(), second.CreatedAt.Unix())
	require.NotNil(t, first.CompletedAt)
	require.NotNil(t, second.CompletedAt)
	assert.Equal(t, first.CompletedAt.UnixNano(), second.CompletedAt.UnixNano())

	week, err := s.WeekProgress(1, "week-1")
	require.NoError(t, err)
	require.NotNil(t, week)
	assert.Equal(t, 1, week.CompletedActivities)
}

func TestCompletionAfterDraftSetsCompletedAt(t *testing.T) {
	s := newProgressService(t)

	// The draft pre-creates the row with no completion time.
	require.NoError(t, s.SaveWritingDraft(1, "week-1-writing", "week-1", "초안", 12))
	draft, err := s.Get(1, "week-1-writing")
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Nil(t, draft.CompletedAt)

	p, err := s.CompleteWriting(1, "week-1-writing", "week-1", "최종 제출문", 140, 25, nil)
	require.NoError(t, err)
	assert.True(t, p.Completed)
	require.NotNil(t, p.CompletedAt)
	assert.Equal(t, draft.CreatedAt.Unix(), p.CreatedAt.Unix())
}

func TestWeekProgressNilWhenEmpty(t *testing.T) {
	s := newProgressService(t)

	week, err := s.WeekProgress(1, "week-1")
	require.NoError(t, err)
	assert.Nil(t, week)
}

func TestWeekProgressPercentage(t *testing.T) {
	s := newProgressService(t)

	_, err := s.CompleteVocabulary(1, "week-1-vocabulary", "week-1", 18, 20, 90)
	require.NoError(t, err)

	week, err := s.WeekProgress(1, "week-1")
	require.NoError(t, err)
	require.NotNil(t, week)
	assert.Equal(t, ActivitiesPerWeek, week.TotalActivities)
	assert.Equal(t, 1, week.CompletedActivities)
	assert.Equal(t, 17, week.ProgressPercentage) // round(1/6*100)

	completeWeek(t, s, 1, "week-1")
	week, err = s.WeekProgress(1, "week-1")
	require.NoError(t, err)
	assert.Equal(t, 6, week.CompletedActivities)
	assert.Equal(t, 100, week.ProgressPercentage)
}

func TestWeekProgressCountsIncompleteRecords(t *testing.T) {
	s := newProgressService(t)

	// A draft creates a record without completing anything.
	require.NoError(t, s.SaveWritingDraft(1, "week-1-writing", "week-1", "half done", 40))

	week, err := s.WeekProgress(1, "week-1")
	require.NoError(t, err)
	require.NotNil(t, week)
	assert.Equal(t, 0, week.CompletedActivities)
	assert.Equal(t, 0, week.ProgressPercentage)
	assert.Contains(t, week.Activities, model.ActivityWriting)
}

func TestOverallProgressEmptyUser(t *testing.T) {
	s := newProgressService(t)

	overall, err := s.OverallProgress(42)
	require.NoError(t, err)
	require.NotNil(t, overall)
	assert.Equal(t, DefaultWeekID, overall.CurrentWeek)
	assert.Equal(t, TotalWeeks, overall.TotalWeeks)
	assert.Equal(t, TotalWeeks*ActivitiesPerWeek, overall.TotalActivities)
	assert.Equal(t, 0, overall.ProgressPercentage)
	assert.Empty(t, overall.Weeks)
}

func TestOverallProgressFixedDenominator(t *testing.T) {
	s := newProgressService(t)

	_, err := s.CompleteVocabulary(1, "week-1-vocabulary", "week-1", 18, 20, 90)
	require.NoError(t, err)

	overall, err := s.OverallProgress(1)
	require.NoError(t, err)
	assert.Equal(t, 1, overall.TotalActivitiesCompleted)
	assert.Equal(t, 2, overall.ProgressPercentage) // round(1/48*100)
}

func TestOverallProgressWeekOrderIsNumeric(t *testing.T) {
	s := newProgressService(t)

	for _, weekID := range []string{"week-10", "week-2", "week-1"} {
		_, err := s.CompleteVocabulary(1, weekID+"-vocabulary", weekID, 10, 20, 80)
		require.NoError(t, err)
	}

	overall, err := s.OverallProgress(1)
	require.NoError(t, err)
	require.Len(t, overall.Weeks, 3)
	assert.Equal(t, "week-1", overall.Weeks[0].WeekID)
	assert.Equal(t, "week-2", overall.Weeks[1].WeekID)
	assert.Equal(t, "week-10", overall.Weeks[2].WeekID)
}

func TestOverallProgressCurrentWeek(t *testing.T) {
	s := newProgressService(t)

	completeWeek(t, s, 1, "week-1")
	_, err := s.CompleteVocabulary(1, "week-2-vocabulary", "week-2", 10, 20, 80)
	require.NoError(t, err)

	overall, err := s.OverallProgress(1)
	require.NoError(t, err)
	assert.Equal(t, "week-2", overall.CurrentWeek)
	assert.Equal(t, 1, overall.CompletedWeeks)
}

func TestOverallProgressCurrentWeekWhenAllComplete(t *testing.T) {
	s := newProgressService(t)

	completeWeek(t, s, 1, "week-1")
	completeWeek(t, s, 1, "week-2")

	overall, err := s.OverallProgress(1)
	require.NoError(t, err)
	assert.Equal(t, "week-2", overall.CurrentWeek)
	assert.Equal(t, 2, overall.CompletedWeeks)
}

func TestOverallProgressFullCurriculum(t *testing.T) {
	s := newProgressService(t)

	for i := 1; i <= TotalWeeks; i++ {
		completeWeek(t, s, 1, util.WeekID(i))
	}

	overall, err := s.OverallProgress(1)
	require.NoError(t, err)
	assert.Equal(t, 48, overall.TotalActivitiesCompleted)
	assert.Equal(t, 100, overall.ProgressPercentage)
	assert.Equal(t, TotalWeeks, overall.CompletedWeeks)
	assert.Equal(t, "week-8", overall.CurrentWeek)
}

func TestIncrementListenCount(t *testing.T) {
	s := newProgressService(t)

	// First listen creates the record.
	require.NoError(t, s.IncrementListenCount(1, "week-1-listening", "week-1"))
	require.NoError(t, s.IncrementListenCount(1, "week-1-listening", "week-1"))
	require.NoError(t, s.IncrementListenCount(1, "week-1-listening", "week-1"))

	p, err := s.Get(1, "week-1-listening")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 3, p.ListenCount)
	assert.False(t, p.Completed)
}

func TestIncrementSpeakingAttempts(t *testing.T) {
	s := newProgressService(t)

	require.NoError(t, s.IncrementSpeakingAttempts(1, "week-1-speaking", "week-1"))
	require.NoError(t, s.IncrementSpeakingAttempts(1, "week-1-speaking", "week-1"))

	p, err := s.Get(1, "week-1-speaking")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 2, p.Attempts)
}

func TestSaveWritingDraftDoesNotTouchCompletion(t *testing.T) {
	s := newProgressService(t)

	_, err := s.CompleteWriting(1, "week-1-writing", "week-1", "final text", 150, 30, &SelfEvaluation{CheckedItems: 4, TotalItems: 5})
	require.NoError(t, err)

	require.NoError(t, s.SaveWritingDraft(1, "week-1-writing", "week-1", "new draft for revision", 60))

	p, err := s.Get(1, "week-1-writing")
	require.NoError(t, err)
	assert.True(t, p.Completed)
	assert.Equal(t, "new draft for revision", p.Draft)
	assert.Equal(t, 60, p.WordCount)
	assert.Equal(t, "final text", p.SubmittedText)
}

func TestUsersAreIsolated(t *testing.T) {
	s := newProgressService(t)

	completeWeek(t, s, 1, "week-1")

	overall, err := s.OverallProgress(2)
	require.NoError(t, err)
	assert.Equal(t, 0, overall.TotalActivitiesCompleted)
	assert.Empty(t, overall.Weeks)
}
