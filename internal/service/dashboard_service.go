package service

import (
	"english_edu_backend/internal/model"
	"time"
)

// Daily motivation lines, rotated by day of year.
var motivationLines = []string{
	"오늘의 작은 연습이 내일의 유창함이 됩니다.",
	"Mistakes are proof that you are trying.",
	"하루 30분, 8주 뒤의 나를 만듭니다.",
	"The best time to practice was yesterday. The second best is now.",
	"어제보다 한 문장 더!",
	"Little by little, a little becomes a lot.",
	"꾸준함이 재능을 이깁니다.",
}

type DashboardService struct {
	Progress     *ProgressService
	Journal      *JournalService
	Achievements *AchievementService
	Curriculum   *CurriculumService
}

func NewDashboardService(progress *ProgressService, journal *JournalService, achievements *AchievementService, curriculum *CurriculumService) *DashboardService {
	return &DashboardService{
		Progress:     progress,
		Journal:      journal,
		Achievements: achievements,
		Curriculum:   curriculum,
	}
}

type Dashboard struct {
	Overall       *OverallProgress      `json:"overall"`
	CurrentWeek   *model.CurriculumWeek `json:"currentWeek,omitempty"`
	WeekProgress  *WeekProgress         `json:"weekProgress,omitempty"`
	Streak        *Streak               `json:"streak"`
	RecentEntries []model.JournalEntry  `json:"recentEntries"`
	Badges        []model.Achievement   `json:"badges"`
	Motivation    string                `json:"motivation"`
}

// Summary assembles the single dashboard payload the home screen renders.
func (s *DashboardService) Summary(userID uint) (*Dashboard, error) {
	overall, err := s.Progress.OverallProgress(userID)
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{
		Overall:    overall,
		Motivation: motivationLines[time.Now().YearDay()%len(motivationLines)],
	}

	if week, err := s.Curriculum.Week(overall.CurrentWeek); err == nil {
		dash.CurrentWeek = week
	}
	if wp, err := s.Progress.WeekProgress(userID, overall.CurrentWeek); err == nil {
		dash.WeekProgress = wp
	}

	streak, err := s.Journal.Streak(userID)
	if err != nil {
		return nil, err
	}
	dash.Streak = streak

	entries, err := s.Journal.Recent(userID, 3)
	if err != nil {
		return nil, err
	}
	dash.RecentEntries = entries

	badges, err := s.Achievements.List(userID)
	if err != nil {
		return nil, err
	}
	dash.Badges = badges

	return dash, nil
}
