package model

import "time"

type JournalMood string

const (
	MoodGreat JournalMood = "great"
	MoodGood  JournalMood = "good"
	MoodOkay  JournalMood = "okay"
	MoodBad   JournalMood = "bad"
)

// JournalActivityLog is one activity the learner logged for the day.
type JournalActivityLog struct {
	WeekID        string    `json:"weekId"`
	ActivityID    string    `json:"activityId"`
	ActivityTitle string    `json:"activityTitle"`
	ActivityType  string    `json:"activityType"`
	TimeSpent     int       `json:"timeSpent"` // minutes
	CompletedAt   time.Time `json:"completedAt"`
}

// JournalEntry is one learning-journal page, one per user per calendar day.
// swagger:model
type JournalEntry struct {
	BaseModel
	UserID       uint                 `gorm:"uniqueIndex:idx_user_journal_date;not null" json:"userId"`
	Date         string               `gorm:"uniqueIndex:idx_user_journal_date;size:10;not null" json:"date"` // YYYY-MM-DD
	Notes        string               `gorm:"type:text" json:"notes"`
	Mood         JournalMood          `gorm:"size:10" json:"mood,omitempty"`
	Difficulty   int                  `gorm:"default:0" json:"difficulty,omitempty"` // 1-5
	Tags         []string             `gorm:"serializer:json" json:"tags,omitempty"`
	LearningTime int                  `gorm:"default:0" json:"learningTime"` // minutes
	Activities   []JournalActivityLog `gorm:"serializer:json" json:"completedActivities,omitempty"`
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}
