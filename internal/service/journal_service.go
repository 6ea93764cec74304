package service

import (
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"
	"time"
)

type JournalService struct {
	Repo *repository.JournalRepository

	// now is swappable so streak math can be tested against a fixed day.
	now func() time.Time
}

func NewJournalService(repo *repository.JournalRepository) *JournalService {
	return &JournalService{Repo: repo, now: time.Now}
}

type JournalUpsertRequest struct {
	Date         string            `json:"date" binding:"required"`
	Notes        string            `json:"notes"`
	Mood         model.JournalMood `json:"mood"`
	Difficulty   int               `json:"difficulty" binding:"omitempty,min=1,max=5"`
	Tags         []string          `json:"tags"`
	LearningTime int               `json:"learningTime" binding:"omitempty,min=0"`
}

// Upsert writes the journal page for one day, creating or merging.
func (s *JournalService) Upsert(userID uint, req *JournalUpsertRequest) (*model.JournalEntry, error) {
	if _, err := time.Parse(util.DateFormat, req.Date); err != nil {
		return nil, util.ErrInvalidJournalDate
	}
	entry := &model.JournalEntry{
		UserID:       userID,
		Date:         req.Date,
		Notes:        req.Notes,
		Mood:         req.Mood,
		Difficulty:   req.Difficulty,
		Tags:         req.Tags,
		LearningTime: req.LearningTime,
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}

	// A manual write must not wipe what activity completions already logged.
	existing, err := s.Repo.FindByDate(userID, req.Date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		entry.Activities = existing.Activities
		if req.LearningTime == 0 {
			entry.LearningTime = existing.LearningTime
		}
	}
	if err := s.Repo.Upsert(entry); err != nil {
		return nil, err
	}
	return s.Get(userID, req.Date)
}

func (s *JournalService) Get(userID uint, date string) (*model.JournalEntry, error) {
	entry, err := s.Repo.FindByDate(userID, date)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, util.ErrJournalNotFound
	}
	return entry, nil
}

// Month returns all entries in a YYYY-MM month, oldest first.
func (s *JournalService) Month(userID uint, month string) ([]model.JournalEntry, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, util.ErrInvalidJournalDate
	}
	return s.Repo.FindByMonth(userID, month)
}

func (s *JournalService) Recent(userID uint, limit int) ([]model.JournalEntry, error) {
	if limit <= 0 || limit > 30 {
		limit = 5
	}
	return s.Repo.ListRecent(userID, limit)
}

// LogActivity appends a completed activity to today's page, creating it if
// needed, and folds the time spent into the daily total.
func (s *JournalService) LogActivity(userID uint, log model.JournalActivityLog) error {
	if log.CompletedAt.IsZero() {
		log.CompletedAt = s.now()
	}
	date := log.CompletedAt.Format(util.DateFormat)
	return s.Repo.AppendActivityLog(userID, date, log)
}

// Streak summarizes journaling consistency. The current streak is anchored to
// today or yesterday: missing today does not break it until the day is over.
type Streak struct {
	Current   int    `json:"current"`
	Longest   int    `json:"longest"`
	TotalDays int    `json:"totalDays"`
	LastDate  string `json:"lastDate,omitempty"`
}

func (s *JournalService) Streak(userID uint) (*Streak, error) {
	dates, err := s.Repo.ListDates(userID)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return &Streak{}, nil
	}

	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		t, err := time.Parse(util.DateFormat, d)
		if err != nil {
			continue
		}
		days = append(days, t)
	}
	if len(days) == 0 {
		return &Streak{}, nil
	}

	streak := &Streak{TotalDays: len(days), LastDate: dates[0]}

	// dates come newest first; walk runs of consecutive days.
	run := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			run++
		} else {
			if run > streak.Longest {
				streak.Longest = run
			}
			run = 1
		}
	}
	if run > streak.Longest {
		streak.Longest = run
	}

	today := s.now().Format(util.DateFormat)
	yesterday := s.now().AddDate(0, 0, -1).Format(util.DateFormat)
	if dates[0] == today || dates[0] == yesterday {
		streak.Current = 1
		for i := 1; i < len(days); i++ {
			if days[i-1].Sub(days[i]) == 24*time.Hour {
				streak.Current++
			} else {
				break
			}
		}
	}
	return streak, nil
}
