package model

// Achievement is a badge earned by a user. Code is unique per user so awards
// are idempotent.
type Achievement struct {
	BaseModel
	UserID   uint   `gorm:"uniqueIndex:idx_user_badge;not null" json:"userId"`
	Code     string `gorm:"uniqueIndex:idx_user_badge;size:40;not null" json:"code"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Icon     string `gorm:"size:255" json:"icon"`
	EarnedXP int    `gorm:"default:0" json:"earnedXp"`
}

func (Achievement) TableName() string {
	return "achievements"
}
