package service

import (
	"encoding/json"
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/util"
	"english_edu_backend/pkg/logger"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
)

// CurriculumService serves the static 8-week study plan. The plan ships as a
// JSON file so content editors can change texts without a rebuild; it is
// loaded once at startup and reloaded on config change.
type CurriculumService struct {
	mu    sync.RWMutex
	weeks []model.CurriculumWeek
}

func NewCurriculumService(path string) (*CurriculumService, error) {
	s := &CurriculumService{}
	if err := s.Load(path); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CurriculumService) Load(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read curriculum file: %w", err)
	}
	var weeks []model.CurriculumWeek
	if err := json.Unmarshal(raw, &weeks); err != nil {
		return fmt.Errorf("parse curriculum file: %w", err)
	}
	if err := validateCurriculum(weeks); err != nil {
		return err
	}
	s.mu.Lock()
	s.weeks = weeks
	s.mu.Unlock()
	logger.Log.Info("커리큘럼 로드 완료", zap.String("path", path), zap.Int("weeks", len(weeks)))
	return nil
}

func validateCurriculum(weeks []model.CurriculumWeek) error {
	if len(weeks) != TotalWeeks {
		return fmt.Errorf("curriculum must define %d weeks, got %d", TotalWeeks, len(weeks))
	}
	seen := make(map[string]string)
	for i, week := range weeks {
		want := util.WeekID(i + 1)
		if week.ID != want {
			return fmt.Errorf("week %d must have id %q, got %q", i+1, want, week.ID)
		}
		if len(week.Activities) != ActivitiesPerWeek {
			return fmt.Errorf("week %s must have %d activities, got %d", week.ID, ActivitiesPerWeek, len(week.Activities))
		}
		types := make(map[model.ActivityType]bool, ActivitiesPerWeek)
		for _, act := range week.Activities {
			if owner, dup := seen[act.ID]; dup {
				return fmt.Errorf("activity id %q appears in both %s and %s", act.ID, owner, week.ID)
			}
			seen[act.ID] = week.ID
			types[act.Type] = true
		}
		for _, t := range model.ActivityTypes {
			if !types[t] {
				return fmt.Errorf("week %s is missing a %s activity", week.ID, t)
			}
		}
	}
	return nil
}

func (s *CurriculumService) Weeks() []model.CurriculumWeek {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weeks
}

func (s *CurriculumService) Week(weekID string) (*model.CurriculumWeek, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.weeks {
		if s.weeks[i].ID == weekID {
			return &s.weeks[i], nil
		}
	}
	return nil, util.ErrWeekNotFound
}

func (s *CurriculumService) Activity(activityID string) (*model.CurriculumActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.weeks {
		for j := range s.weeks[i].Activities {
			if s.weeks[i].Activities[j].ID == activityID {
				return &s.weeks[i].Activities[j], nil
			}
		}
	}
	return nil, util.ErrActivityNotFound
}
