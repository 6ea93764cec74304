package repository

import (
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/util"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository is the record store for per-activity progress. One row
// per (user_id, activity_id); writes are merges and rows are never deleted.
type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// progressMergeColumns are the columns refreshed when a Save hits an existing
// row. created_at and completed_at are not in the list: for both, the first
// write wins.
var progressMergeColumns = []string{
	"week_id", "type", "completed", "updated_at",
	"words_mastered", "total_words", "quiz_score", "quiz_attempts", "last_practiced_words",
	"reading_time", "wpm", "questions_answered", "total_questions", "comprehension_score",
	"exercises_completed", "total_exercises", "accuracy", "weak_points", "correct_answers", "total_attempts",
	"listen_count", "transcript_viewed", "dictation_score", "average_speed",
	"draft", "submitted", "submitted_text", "word_count", "writing_time", "self_eval_checked", "self_eval_total",
	"recordings_completed", "total_sentences", "recording_duration", "attempts",
}

// Save merge-writes a full progress record keyed by (user_id, activity_id).
// completed_at is filled in when still empty (a row pre-created by a draft or
// a counter bump has none) but a repeated completion keeps the first time.
func (r *ProgressRepository) Save(p *model.ActivityProgress) error {
	assignments := clause.AssignmentColumns(progressMergeColumns)
	assignments = append(assignments, clause.Assignment{
		Column: clause.Column{Name: "completed_at"},
		Value:  gorm.Expr("COALESCE(completed_at, ?)", p.CompletedAt),
	})
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "activity_id"}},
		DoUpdates: assignments,
	}).Create(p).Error
}

// Update merge-writes only the given fields plus a refreshed updated_at.
// Returns ErrProgressNotFound when no record exists for the key.
func (r *ProgressRepository) Update(userID uint, activityID string, fields map[string]interface{}) error {
	res := r.DB.Model(&model.ActivityProgress{}).
		Where("user_id = ? AND activity_id = ?", userID, activityID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrProgressNotFound
	}
	return nil
}

// Get returns the record, or (nil, nil) when the user has no progress yet.
func (r *ProgressRepository) Get(userID uint, activityID string) (*model.ActivityProgress, error) {
	var p model.ActivityProgress
	err := r.DB.Where("user_id = ? AND activity_id = ?", userID, activityID).First(&p).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepository) ListByUserAndWeek(userID uint, weekID string) ([]model.ActivityProgress, error) {
	var records []model.ActivityProgress
	err := r.DB.Where("user_id = ? AND week_id = ?", userID, weekID).Find(&records).Error
	return records, err
}

func (r *ProgressRepository) ListByUser(userID uint) ([]model.ActivityProgress, error) {
	var records []model.ActivityProgress
	err := r.DB.Where("user_id = ?", userID).Find(&records).Error
	return records, err
}

// incrementable whitelists the counter columns exposed to IncrementField.
var incrementable = map[string]bool{
	"listen_count":         true,
	"attempts":             true,
	"quiz_attempts":        true,
	"recordings_completed": true,
	"recording_duration":   true,
}

// IncrementField bumps a counter column atomically in the database, replacing
// the read-modify-write the web client used to do (which lost updates across
// tabs). The seed row is inserted when the key has no record yet, so two
// concurrent first bumps both land: one inserts, the other increments.
func (r *ProgressRepository) IncrementField(seed *model.ActivityProgress, column string, delta int) error {
	if !incrementable[column] {
		return fmt.Errorf("column %q is not an incrementable counter", column)
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "activity_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column:       gorm.Expr(column+" + ?", delta),
			"updated_at": time.Now(),
		}),
	}).Create(seed).Error
}
