package repository

import (
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/util"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.ActivityProgress{}))
	return db
}

func TestSaveMergesOnKey(t *testing.T) {
	r := NewProgressRepository(newTestDB(t))

	require.NoError(t, r.Save(&model.ActivityProgress{
		UserID:     1,
		ActivityID: "week-1-vocabulary",
		WeekID:     "week-1",
		Type:       model.ActivityVocabulary,
		TotalWords: 20,
	}))

	first, err := r.Get(1, "week-1-vocabulary")
	require.NoError(t, err)
	require.NotNil(t, first)

	time.Sleep(10 * time.Millisecond)
	now := time.Now()
	require.NoError(t, r.Save(&model.ActivityProgress{
		UserID:        1,
		ActivityID:    "week-1-vocabulary",
		WeekID:        "week-1",
		Type:          model.ActivityVocabulary,
		TotalWords:    20,
		WordsMastered: 15,
		Completed:     true,
		CompletedAt:   &now,
	}))

	second, err := r.Get(1, "week-1-vocabulary")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 15, second.WordsMastered)
	assert.True(t, second.Completed)
	assert.Equal(t, first.CreatedAt.Unix(), second.CreatedAt.Unix())
	// The first row had no completion time; the merge fills it in.
	require.NotNil(t, second.CompletedAt)
	assert.Equal(t, now.Unix(), second.CompletedAt.Unix())

	// A later save must not move the stored completion time.
	later := now.Add(time.Hour)
	require.NoError(t, r.Save(&model.ActivityProgress{
		UserID:        1,
		ActivityID:    "week-1-vocabulary",
		WeekID:        "week-1",
		Type:          model.ActivityVocabulary,
		TotalWords:    20,
		WordsMastered: 20,
		Completed:     true,
		CompletedAt:   &later,
	}))
	third, err := r.Get(1, "week-1-vocabulary")
	require.NoError(t, err)
	assert.Equal(t, 20, third.WordsMastered)
	require.NotNil(t, third.CompletedAt)
	assert.Equal(t, now.Unix(), third.CompletedAt.Unix())

	// Same activity id under another user is a separate row.
	require.NoError(t, r.Save(&model.ActivityProgress{
		UserID:     2,
		ActivityID: "week-1-vocabulary",
		WeekID:     "week-1",
		Type:       model.ActivityVocabulary,
	}))
	records, err := r.ListByUserAndWeek(2, "week-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Completed)
}

func TestUpdatePartialFields(t *testing.T) {
	r := NewProgressRepository(newTestDB(t))

	err := r.Update(1, "week-1-writing", map[string]interface{}{"draft": "x"})
	assert.ErrorIs(t, err, util.ErrProgressNotFound)

	require.NoError(t, r.Save(&model.ActivityProgress{
		UserID:     1,
		ActivityID: "week-1-writing",
		WeekID:     "week-1",
		Type:       model.ActivityWriting,
		WordCount:  10,
	}))

	require.NoError(t, r.Update(1, "week-1-writing", map[string]interface{}{"draft": "hello", "word_count": 2}))

	p, err := r.Get(1, "week-1-writing")
	require.NoError(t, err)
	assert.Equal(t, "hello", p.Draft)
	assert.Equal(t, 2, p.WordCount)
	assert.Equal(t, model.ActivityWriting, p.Type)
}

func TestIncrementFieldWhitelist(t *testing.T) {
	r := NewProgressRepository(newTestDB(t))

	seed := func() *model.ActivityProgress {
		return &model.ActivityProgress{
			UserID:      1,
			ActivityID:  "week-1-listening",
			WeekID:      "week-1",
			Type:        model.ActivityListening,
			ListenCount: 1,
		}
	}

	// No prior row: the first bump inserts the seed, later ones increment.
	require.NoError(t, r.IncrementField(seed(), "listen_count", 1))
	require.NoError(t, r.IncrementField(seed(), "listen_count", 1))
	require.NoError(t, r.IncrementField(seed(), "listen_count", 1))

	p, err := r.Get(1, "week-1-listening")
	require.NoError(t, err)
	assert.Equal(t, 3, p.ListenCount)
	assert.False(t, p.Completed)

	// Only counter columns may be incremented.
	err = r.IncrementField(seed(), "dictation_score", 1)
	assert.Error(t, err)
}

func TestIncrementFieldKeepsCompletion(t *testing.T) {
	r := NewProgressRepository(newTestDB(t))

	now := time.Now()
	require.NoError(t, r.Save(&model.ActivityProgress{
		UserID:      1,
		ActivityID:  "week-1-listening",
		WeekID:      "week-1",
		Type:        model.ActivityListening,
		ListenCount: 5,
		Completed:   true,
		CompletedAt: &now,
	}))

	require.NoError(t, r.IncrementField(&model.ActivityProgress{
		UserID:      1,
		ActivityID:  "week-1-listening",
		WeekID:      "week-1",
		Type:        model.ActivityListening,
		ListenCount: 1,
	}, "listen_count", 1))

	p, err := r.Get(1, "week-1-listening")
	require.NoError(t, err)
	assert.Equal(t, 6, p.ListenCount)
	assert.True(t, p.Completed)
	require.NotNil(t, p.CompletedAt)
	assert.Equal(t, now.Unix(), p.CompletedAt.Unix())
}
