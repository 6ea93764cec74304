package model

import "encoding/json"

// Placement test content (static JSON, validated at load).

type PlacementItemType string

const (
	ItemMCQ        PlacementItemType = "mcq"
	ItemSelfRating PlacementItemType = "self_rating"
)

type PlacementItem struct {
	Type       PlacementItemType `json:"type"`
	Question   string            `json:"q"`
	Options    []string          `json:"options,omitempty"`
	Answer     string            `json:"a,omitempty"`
	Difficulty CEFRLevel         `json:"difficulty,omitempty"`
}

type PlacementSection struct {
	Name  string          `json:"name"`
	Items []PlacementItem `json:"items"`
}

type PlacementTest struct {
	ID       string             `json:"id"`
	Title    string             `json:"title"`
	Sections []PlacementSection `json:"sections"`
}

// PlacementResult is one graded attempt. The latest attempt sets the user's level.
// swagger:model
type PlacementResult struct {
	BaseModel
	UserID            uint            `gorm:"index;not null" json:"userId"`
	TestID            string          `gorm:"size:64" json:"testId"`
	Score             float64         `json:"score"`
	MaxScore          int             `json:"maxScore"`
	Level             CEFRLevel       `gorm:"size:4" json:"level"`
	RecommendedWeek   string          `gorm:"size:32" json:"recommendedWeek"`
	Answers           json.RawMessage `gorm:"type:json" json:"answers"`
	DifficultyPattern json.RawMessage `gorm:"type:json" json:"difficultyPattern"`
}

func (PlacementResult) TableName() string {
	return "placement_results"
}
