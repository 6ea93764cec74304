package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// CEFRLevel is the Common European Framework level assigned to a learner.
type CEFRLevel string

const (
	LevelA1 CEFRLevel = "A1"
	LevelA2 CEFRLevel = "A2"
	LevelB1 CEFRLevel = "B1"
	LevelB2 CEFRLevel = "B2"
	LevelC1 CEFRLevel = "C1"
	LevelC2 CEFRLevel = "C2"
)

// swagger:model User
type User struct {
	BaseModel
	Name            string    `gorm:"size:100;not null" json:"name"`
	Email           string    `gorm:"size:100;unique;not null" json:"email"`
	Password        string    `gorm:"size:100;not null" json:"-"`
	Role            UserRole  `gorm:"size:20;default:'student'" json:"role"`
	Level           CEFRLevel `gorm:"size:4;default:'A1'" json:"level"`
	PlacementTested bool      `gorm:"default:false" json:"placementTested"`
	XP              int       `gorm:"default:0" json:"xp"`
	Language        string    `gorm:"size:10;default:'ko'" json:"language"`
	Avatar          string    `gorm:"size:255" json:"avatar"`
	Disabled        bool      `gorm:"default:false" json:"disabled"`
	LastLogin       time.Time `json:"lastLogin"`
	LastSeen        time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
