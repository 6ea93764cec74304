package service

import (
	"english_edu_backend/internal/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAchievementService(t *testing.T) (*AchievementService, *gorm.DB) {
	db := newTestDB(t)
	svc := NewAchievementService(repository.NewAchievementRepository(db), repository.NewUserRepository(db))
	return svc, db
}

func TestAwardIsIdempotentAndCreditsXPOnce(t *testing.T) {
	svc, db := newAchievementService(t)
	user := seedUser(t, db, "badger")

	earned, err := svc.Award(user.ID, BadgeFirstActivity)
	require.NoError(t, err)
	assert.True(t, earned)

	earned, err = svc.Award(user.ID, BadgeFirstActivity)
	require.NoError(t, err)
	assert.False(t, earned)

	badges, err := svc.List(user.ID)
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.Equal(t, BadgeFirstActivity, badges[0].Code)

	updated, err := repository.NewUserRepository(db).FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, badgeCatalog[BadgeFirstActivity].XP, updated.XP)
}

func TestAwardUnknownCodeIsNoop(t *testing.T) {
	svc, db := newAchievementService(t)
	user := seedUser(t, db, "badger")

	earned, err := svc.Award(user.ID, "no-such-badge")
	require.NoError(t, err)
	assert.False(t, earned)
}

func TestProgressMilestones(t *testing.T) {
	svc, db := newAchievementService(t)
	user := seedUser(t, db, "badger")

	svc.CheckProgressMilestones(user.ID, &OverallProgress{
		TotalActivitiesCompleted: 7,
		CompletedWeeks:           1,
	})

	badges, err := svc.List(user.ID)
	require.NoError(t, err)
	codes := make([]string, len(badges))
	for i, b := range badges {
		codes[i] = b.Code
	}
	assert.ElementsMatch(t, []string{BadgeFirstActivity, BadgeWeekComplete}, codes)

	svc.CheckProgressMilestones(user.ID, &OverallProgress{
		TotalActivitiesCompleted: 48,
		CompletedWeeks:           TotalWeeks,
	})

	badges, err = svc.List(user.ID)
	require.NoError(t, err)
	assert.Len(t, badges, 3)
}

func TestStreakMilestones(t *testing.T) {
	svc, db := newAchievementService(t)
	user := seedUser(t, db, "badger")

	svc.CheckStreakMilestones(user.ID, &Streak{Current: 3, Longest: 5})
	badges, err := svc.List(user.ID)
	require.NoError(t, err)
	assert.Empty(t, badges)

	svc.CheckStreakMilestones(user.ID, &Streak{Current: 7, Longest: 7})
	badges, err = svc.List(user.ID)
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.Equal(t, BadgeStreak7, badges[0].Code)
}
