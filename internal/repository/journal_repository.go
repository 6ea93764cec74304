package repository

import (
	"english_edu_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JournalRepository struct {
	DB *gorm.DB
}

func NewJournalRepository(db *gorm.DB) *JournalRepository {
	return &JournalRepository{DB: db}
}

// Upsert merges an entry keyed by (user_id, date); one journal page per day.
func (r *JournalRepository) Upsert(entry *model.JournalEntry) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"notes", "mood", "difficulty", "tags", "learning_time", "activities", "updated_at",
		}),
	}).Create(entry).Error
}

func (r *JournalRepository) FindByDate(userID uint, date string) (*model.JournalEntry, error) {
	var entry model.JournalEntry
	err := r.DB.Where("user_id = ? AND date = ?", userID, date).First(&entry).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByMonth returns entries for one calendar month, oldest first.
func (r *JournalRepository) FindByMonth(userID uint, month string) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry
	err := r.DB.Where("user_id = ? AND date LIKE ?", userID, month+"-%").
		Order("date ASC").
		Find(&entries).Error
	return entries, err
}

// ListDates returns all journal dates for a user, newest first. Streak
// computation only needs the dates, not the payloads.
func (r *JournalRepository) ListDates(userID uint) ([]string, error) {
	var dates []string
	err := r.DB.Model(&model.JournalEntry{}).
		Where("user_id = ?", userID).
		Order("date DESC").
		Pluck("date", &dates).Error
	return dates, err
}

func (r *JournalRepository) ListRecent(userID uint, limit int) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry
	err := r.DB.Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// AppendActivityLog adds one activity log to the day's entry, creating the
// entry when the day has none yet.
func (r *JournalRepository) AppendActivityLog(userID uint, date string, log model.JournalActivityLog) error {
	entry, err := r.FindByDate(userID, date)
	if err != nil {
		return err
	}
	if entry == nil {
		entry = &model.JournalEntry{
			UserID: userID,
			Date:   date,
		}
	}
	entry.Activities = append(entry.Activities, log)
	entry.LearningTime += log.TimeSpent
	return r.Upsert(entry)
}
