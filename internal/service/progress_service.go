package service

import (
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"
	"english_edu_backend/pkg/monitoring"
	"errors"
	"math"
	"sort"
	"time"
)

const (
	// ActivitiesPerWeek is the fixed weekly denominator: one activity per type.
	ActivitiesPerWeek = 6
	// TotalWeeks is the full curriculum length (A1-B2, two weeks each). The
	// overall percentage is always computed against this, not against the
	// weeks a learner has touched, so a fresh learner sees 2%, not 33%.
	TotalWeeks = 8
	// DefaultWeekID is where a learner with no records starts.
	DefaultWeekID = "week-1"
)

type ProgressService struct {
	Repo *repository.ProgressRepository
}

func NewProgressService(repo *repository.ProgressRepository) *ProgressService {
	return &ProgressService{Repo: repo}
}

// SelfEvaluation is the checklist the writing/speaking activities end with.
type SelfEvaluation struct {
	CheckedItems int `json:"checkedItems"`
	TotalItems   int `json:"totalItems"`
}

// WeekProgress is derived at read time, never stored.
type WeekProgress struct {
	WeekID              string                                        `json:"weekId"`
	UserID              uint                                          `json:"userId"`
	TotalActivities     int                                           `json:"totalActivities"`
	CompletedActivities int                                           `json:"completedActivities"`
	ProgressPercentage  int                                           `json:"progressPercentage"`
	Activities          map[model.ActivityType]model.ActivityProgress `json:"activities"`
	UpdatedAt           time.Time                                     `json:"updatedAt"`
}

// OverallProgress is derived at read time, never stored.
type OverallProgress struct {
	UserID                   uint           `json:"userId"`
	TotalWeeks               int            `json:"totalWeeks"`
	CompletedWeeks           int            `json:"completedWeeks"`
	CurrentWeek              string         `json:"currentWeek"`
	TotalActivitiesCompleted int            `json:"totalActivitiesCompleted"`
	TotalActivities          int            `json:"totalActivities"`
	ProgressPercentage       int            `json:"progressPercentage"`
	Weeks                    []WeekProgress `json:"weeks"`
	UpdatedAt                time.Time      `json:"updatedAt"`
}

// percentage rounds completed/total to a whole percent, 0 when total is 0.
// The old client divided straight through and could persist NaN for a
// grammar run with no attempts.
func percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func (s *ProgressService) complete(p *model.ActivityProgress) (*model.ActivityProgress, error) {
	now := time.Now()
	p.Completed = true
	p.CompletedAt = &now
	if err := s.Repo.Save(p); err != nil {
		return nil, err
	}
	monitoring.ActivityCompletions.WithLabelValues(string(p.Type)).Inc()
	// Re-read so repeated completions report the stored first-completion time,
	// not the one this call proposed.
	return s.Repo.Get(p.UserID, p.ActivityID)
}

func (s *ProgressService) CompleteVocabulary(userID uint, activityID, weekID string, wordsMastered, totalWords, quizScore int) (*model.ActivityProgress, error) {
	return s.complete(&model.ActivityProgress{
		UserID:             userID,
		ActivityID:         activityID,
		WeekID:             weekID,
		Type:               model.ActivityVocabulary,
		WordsMastered:      wordsMastered,
		TotalWords:         totalWords,
		QuizScore:          quizScore,
		QuizAttempts:       1,
		LastPracticedWords: []string{},
	})
}

func (s *ProgressService) CompleteReading(userID uint, activityID, weekID string, readingTime, wpm, comprehensionScore, questionsAnswered, totalQuestions int) (*model.ActivityProgress, error) {
	return s.complete(&model.ActivityProgress{
		UserID:             userID,
		ActivityID:         activityID,
		WeekID:             weekID,
		Type:               model.ActivityReading,
		ReadingTime:        readingTime,
		WPM:                wpm,
		ComprehensionScore: comprehensionScore,
		QuestionsAnswered:  questionsAnswered,
		TotalQuestions:     totalQuestions,
	})
}

func (s *ProgressService) CompleteGrammar(userID uint, activityID, weekID string, exercisesCompleted, totalExercises, correctAnswers, totalAttempts int, weakPoints []string) (*model.ActivityProgress, error) {
	if weakPoints == nil {
		weakPoints = []string{}
	}
	return s.complete(&model.ActivityProgress{
		UserID:             userID,
		ActivityID:         activityID,
		WeekID:             weekID,
		Type:               model.ActivityGrammar,
		ExercisesCompleted: exercisesCompleted,
		TotalExercises:     totalExercises,
		Accuracy:           percentage(correctAnswers, totalAttempts),
		WeakPoints:         weakPoints,
		CorrectAnswers:     correctAnswers,
		TotalAttempts:      totalAttempts,
	})
}

func (s *ProgressService) CompleteListening(userID uint, activityID, weekID string, listenCount int, transcriptViewed bool, dictationScore, comprehensionScore int, averageSpeed float64) (*model.ActivityProgress, error) {
	return s.complete(&model.ActivityProgress{
		UserID:             userID,
		ActivityID:         activityID,
		WeekID:             weekID,
		Type:               model.ActivityListening,
		ListenCount:        listenCount,
		TranscriptViewed:   transcriptViewed,
		DictationScore:     dictationScore,
		ComprehensionScore: comprehensionScore,
		AverageSpeed:       averageSpeed,
	})
}

func (s *ProgressService) CompleteWriting(userID uint, activityID, weekID string, submittedText string, wordCount, writingTime int, selfEval *SelfEvaluation) (*model.ActivityProgress, error) {
	p := &model.ActivityProgress{
		UserID:        userID,
		ActivityID:    activityID,
		WeekID:        weekID,
		Type:          model.ActivityWriting,
		Draft:         "",
		Submitted:     true,
		SubmittedText: submittedText,
		WordCount:     wordCount,
		WritingTime:   writingTime,
	}
	if selfEval != nil {
		p.SelfEvalChecked = selfEval.CheckedItems
		p.SelfEvalTotal = selfEval.TotalItems
	}
	return s.complete(p)
}

func (s *ProgressService) CompleteSpeaking(userID uint, activityID, weekID string, recordingsCompleted, totalSentences, recordingDuration, attempts int, selfEval *SelfEvaluation) (*model.ActivityProgress, error) {
	p := &model.ActivityProgress{
		UserID:              userID,
		ActivityID:          activityID,
		WeekID:              weekID,
		Type:                model.ActivitySpeaking,
		RecordingsCompleted: recordingsCompleted,
		TotalSentences:      totalSentences,
		RecordingDuration:   recordingDuration,
		Attempts:            attempts,
	}
	if selfEval != nil {
		p.SelfEvalChecked = selfEval.CheckedItems
		p.SelfEvalTotal = selfEval.TotalItems
	}
	return s.complete(p)
}

func (s *ProgressService) Get(userID uint, activityID string) (*model.ActivityProgress, error) {
	return s.Repo.Get(userID, activityID)
}

// UpdateFields merge-writes a partial update; absent records are an error,
// matching the underlying store.
func (s *ProgressService) UpdateFields(userID uint, activityID string, fields map[string]interface{}) error {
	return s.Repo.Update(userID, activityID, fields)
}

// SaveWritingDraft stores work in progress without touching completion state.
func (s *ProgressService) SaveWritingDraft(userID uint, activityID, weekID, draft string, wordCount int) error {
	err := s.Repo.Update(userID, activityID, map[string]interface{}{
		"draft":      draft,
		"word_count": wordCount,
	})
	if errors.Is(err, util.ErrProgressNotFound) {
		return s.Repo.Save(&model.ActivityProgress{
			UserID:     userID,
			ActivityID: activityID,
			WeekID:     weekID,
			Type:       model.ActivityWriting,
			Draft:      draft,
			WordCount:  wordCount,
		})
	}
	return err
}

// IncrementListenCount bumps the listen counter atomically, creating the
// listening record on first listen.
func (s *ProgressService) IncrementListenCount(userID uint, activityID, weekID string) error {
	return s.Repo.IncrementField(&model.ActivityProgress{
		UserID:      userID,
		ActivityID:  activityID,
		WeekID:      weekID,
		Type:        model.ActivityListening,
		ListenCount: 1,
	}, "listen_count", 1)
}

// IncrementSpeakingAttempts bumps the attempt counter atomically, creating the
// speaking record on first attempt.
func (s *ProgressService) IncrementSpeakingAttempts(userID uint, activityID, weekID string) error {
	return s.Repo.IncrementField(&model.ActivityProgress{
		UserID:     userID,
		ActivityID: activityID,
		WeekID:     weekID,
		Type:       model.ActivitySpeaking,
		Attempts:   1,
	}, "attempts", 1)
}

// WeekProgress aggregates one week. Returns (nil, nil) when the user has no
// records in the week, which callers treat as "not started".
func (s *ProgressService) WeekProgress(userID uint, weekID string) (*WeekProgress, error) {
	records, err := s.Repo.ListByUserAndWeek(userID, weekID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	wp := summarizeWeek(userID, weekID, records)
	return &wp, nil
}

func summarizeWeek(userID uint, weekID string, records []model.ActivityProgress) WeekProgress {
	activities := make(map[model.ActivityType]model.ActivityProgress, ActivitiesPerWeek)
	completed := 0
	for _, rec := range records {
		activities[rec.Type] = rec
		if rec.Completed {
			completed++
		}
	}
	return WeekProgress{
		WeekID:              weekID,
		UserID:              userID,
		TotalActivities:     ActivitiesPerWeek,
		CompletedActivities: completed,
		ProgressPercentage:  percentage(completed, ActivitiesPerWeek),
		Activities:          activities,
		UpdatedAt:           time.Now(),
	}
}

// OverallProgress aggregates every week the user has touched. Never nil: a
// user with no records gets the zeroed summary pointing at week-1.
func (s *ProgressService) OverallProgress(userID uint) (*OverallProgress, error) {
	records, err := s.Repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	byWeek := make(map[string][]model.ActivityProgress)
	for _, rec := range records {
		byWeek[rec.WeekID] = append(byWeek[rec.WeekID], rec)
	}

	weekIDs := make([]string, 0, len(byWeek))
	for weekID := range byWeek {
		weekIDs = append(weekIDs, weekID)
	}
	// Numeric-aware order: week-2 before week-10. The identifier format makes
	// plain string sort wrong as soon as double-digit weeks exist.
	sort.Slice(weekIDs, func(i, j int) bool {
		ni, nj := util.WeekNumber(weekIDs[i]), util.WeekNumber(weekIDs[j])
		if ni != nj {
			return ni < nj
		}
		return weekIDs[i] < weekIDs[j]
	})

	overall := &OverallProgress{
		UserID:          userID,
		TotalWeeks:      TotalWeeks,
		CurrentWeek:     DefaultWeekID,
		TotalActivities: TotalWeeks * ActivitiesPerWeek,
		Weeks:           []WeekProgress{},
		UpdatedAt:       time.Now(),
	}

	for _, weekID := range weekIDs {
		wp := summarizeWeek(userID, weekID, byWeek[weekID])
		overall.TotalActivitiesCompleted += wp.CompletedActivities
		if wp.ProgressPercentage == 100 {
			overall.CompletedWeeks++
		}
		overall.Weeks = append(overall.Weeks, wp)
	}

	// Current week: first incomplete week in order, else the last week.
	if len(overall.Weeks) > 0 {
		overall.CurrentWeek = overall.Weeks[len(overall.Weeks)-1].WeekID
		for _, wp := range overall.Weeks {
			if wp.ProgressPercentage < 100 {
				overall.CurrentWeek = wp.WeekID
				break
			}
		}
	}

	overall.ProgressPercentage = percentage(overall.TotalActivitiesCompleted, overall.TotalActivities)
	return overall, nil
}
