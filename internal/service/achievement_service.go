package service

import (
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

// Badge codes. The catalog is fixed; awards are idempotent per code.
const (
	BadgeFirstActivity = "first-activity"
	BadgeWeekComplete  = "week-complete"
	BadgeAllWeeks      = "all-weeks"
	BadgeStreak7       = "streak-7"
	BadgeStreak30      = "streak-30"
	BadgeFirstPost     = "community-first-post"
)

type badgeSpec struct {
	Name string
	Icon string
	XP   int
}

var badgeCatalog = map[string]badgeSpec{
	BadgeFirstActivity: {Name: "첫 걸음", Icon: "🌱", XP: 10},
	BadgeWeekComplete:  {Name: "한 주 완주", Icon: "🏅", XP: 50},
	BadgeAllWeeks:      {Name: "8주 완성", Icon: "🏆", XP: 300},
	BadgeStreak7:       {Name: "7일 연속 학습", Icon: "🔥", XP: 70},
	BadgeStreak30:      {Name: "30일 연속 학습", Icon: "💎", XP: 300},
	BadgeFirstPost:     {Name: "첫 게시글", Icon: "✍️", XP: 20},
}

type AchievementService struct {
	Repo     *repository.AchievementRepository
	UserRepo *repository.UserRepository
}

func NewAchievementService(repo *repository.AchievementRepository, userRepo *repository.UserRepository) *AchievementService {
	return &AchievementService{Repo: repo, UserRepo: userRepo}
}

func (s *AchievementService) List(userID uint) ([]model.Achievement, error) {
	return s.Repo.FindByUserID(userID)
}

// Award grants a badge once. Repeated calls for the same code are no-ops; XP
// is only credited on the first award.
func (s *AchievementService) Award(userID uint, code string) (bool, error) {
	spec, ok := badgeCatalog[code]
	if !ok {
		return false, nil
	}
	earned, err := s.Repo.Award(&model.Achievement{
		UserID:   userID,
		Code:     code,
		Name:     spec.Name,
		Icon:     spec.Icon,
		EarnedXP: spec.XP,
	})
	if err != nil || !earned {
		return false, err
	}
	if err := s.UserRepo.UpdateXP(userID, spec.XP); err != nil {
		logger.Log.Warn("배지 XP 적립 실패", zap.Uint("userID", userID), zap.Error(err))
	}
	logger.Log.Info("배지 획득", zap.Uint("userID", userID), zap.String("badge", code))
	return true, nil
}

// CheckProgressMilestones is called after an activity completes. It looks at
// the learner's aggregate progress and awards whatever applies; callers can
// run it in a goroutine since every award is idempotent.
func (s *AchievementService) CheckProgressMilestones(userID uint, overall *OverallProgress) {
	if overall == nil {
		return
	}
	if overall.TotalActivitiesCompleted >= 1 {
		s.award(userID, BadgeFirstActivity)
	}
	if overall.CompletedWeeks >= 1 {
		s.award(userID, BadgeWeekComplete)
	}
	if overall.CompletedWeeks >= TotalWeeks {
		s.award(userID, BadgeAllWeeks)
	}
}

// CheckStreakMilestones is called after a journal write.
func (s *AchievementService) CheckStreakMilestones(userID uint, streak *Streak) {
	if streak == nil {
		return
	}
	if streak.Current >= 7 || streak.Longest >= 7 {
		s.award(userID, BadgeStreak7)
	}
	if streak.Current >= 30 || streak.Longest >= 30 {
		s.award(userID, BadgeStreak30)
	}
}

func (s *AchievementService) CheckCommunityMilestones(userID uint, postCount int64) {
	if postCount >= 1 {
		s.award(userID, BadgeFirstPost)
	}
}

func (s *AchievementService) award(userID uint, code string) {
	if _, err := s.Award(userID, code); err != nil {
		logger.Log.Warn("배지 수여 실패", zap.Uint("userID", userID), zap.String("badge", code), zap.Error(err))
	}
}
