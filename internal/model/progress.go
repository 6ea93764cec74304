package model

import (
	"time"
)

// ActivityType discriminates the six weekly activity slots.
type ActivityType string

const (
	ActivityVocabulary ActivityType = "vocabulary"
	ActivityReading    ActivityType = "reading"
	ActivityGrammar    ActivityType = "grammar"
	ActivityListening  ActivityType = "listening"
	ActivityWriting    ActivityType = "writing"
	ActivitySpeaking   ActivityType = "speaking"
)

// ActivityTypes lists the slots in curriculum order. Every week has exactly one
// activity of each type.
var ActivityTypes = []ActivityType{
	ActivityVocabulary,
	ActivityReading,
	ActivityGrammar,
	ActivityListening,
	ActivityWriting,
	ActivitySpeaking,
}

// ActivityProgress is the persisted state of one user's work on one activity.
// A (user_id, activity_id) pair maps to exactly one row; rows are merged on
// save and never deleted. Completed is monotonic: application code only ever
// sets it to true.
//
// Type-specific metrics share one flat table; columns outside the record's
// type are left at their zero value, which mirrors the sparse documents the
// mobile clients were built against.
// swagger:model
type ActivityProgress struct {
	ID         uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint         `gorm:"uniqueIndex:idx_user_activity;not null" json:"userId"`
	ActivityID string       `gorm:"uniqueIndex:idx_user_activity;size:64;not null" json:"activityId"`
	WeekID     string       `gorm:"index;size:32;not null" json:"weekId"`
	Type       ActivityType `gorm:"size:20;not null" json:"type"`

	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// vocabulary
	WordsMastered      int      `gorm:"default:0" json:"wordsMastered,omitempty"`
	TotalWords         int      `gorm:"default:0" json:"totalWords,omitempty"`
	QuizScore          int      `gorm:"default:0" json:"quizScore,omitempty"`
	QuizAttempts       int      `gorm:"default:0" json:"quizAttempts,omitempty"`
	LastPracticedWords []string `gorm:"serializer:json" json:"lastPracticedWords,omitempty"`

	// reading
	ReadingTime       int `gorm:"default:0" json:"readingTime,omitempty"`
	WPM               int `gorm:"default:0" json:"wpm,omitempty"`
	QuestionsAnswered int `gorm:"default:0" json:"questionsAnswered,omitempty"`
	TotalQuestions    int `gorm:"default:0" json:"totalQuestions,omitempty"`

	// reading + listening
	ComprehensionScore int `gorm:"default:0" json:"comprehensionScore,omitempty"`

	// grammar
	ExercisesCompleted int      `gorm:"default:0" json:"exercisesCompleted,omitempty"`
	TotalExercises     int      `gorm:"default:0" json:"totalExercises,omitempty"`
	Accuracy           int      `gorm:"default:0" json:"accuracy,omitempty"`
	WeakPoints         []string `gorm:"serializer:json" json:"weakPoints,omitempty"`
	CorrectAnswers     int      `gorm:"default:0" json:"correctAnswers,omitempty"`
	TotalAttempts      int      `gorm:"default:0" json:"totalAttempts,omitempty"`

	// listening
	ListenCount      int     `gorm:"default:0" json:"listenCount,omitempty"`
	TranscriptViewed bool    `gorm:"default:false" json:"transcriptViewed,omitempty"`
	DictationScore   int     `gorm:"default:0" json:"dictationScore,omitempty"`
	AverageSpeed     float64 `gorm:"default:0" json:"averageSpeed,omitempty"`

	// writing
	Draft           string `gorm:"type:text" json:"draft,omitempty"`
	Submitted       bool   `gorm:"default:false" json:"submitted,omitempty"`
	SubmittedText   string `gorm:"type:text" json:"submittedText,omitempty"`
	WordCount       int    `gorm:"default:0" json:"wordCount,omitempty"`
	WritingTime     int    `gorm:"default:0" json:"writingTime,omitempty"`
	SelfEvalChecked int    `gorm:"default:0" json:"selfEvalChecked,omitempty"`
	SelfEvalTotal   int    `gorm:"default:0" json:"selfEvalTotal,omitempty"`

	// speaking
	RecordingsCompleted int `gorm:"default:0" json:"recordingsCompleted,omitempty"`
	TotalSentences      int `gorm:"default:0" json:"totalSentences,omitempty"`
	RecordingDuration   int `gorm:"default:0" json:"recordingDuration,omitempty"`
	Attempts            int `gorm:"default:0" json:"attempts,omitempty"`
}

func (ActivityProgress) TableName() string {
	return "activity_progress"
}
