package repository

import (
	"english_edu_backend/internal/model"

	"gorm.io/gorm"
)

type PlacementRepository struct {
	DB *gorm.DB
}

func NewPlacementRepository(db *gorm.DB) *PlacementRepository {
	return &PlacementRepository{DB: db}
}

func (r *PlacementRepository) Create(result *model.PlacementResult) error {
	return r.DB.Create(result).Error
}

// FindLatest returns the user's most recent graded attempt, or (nil, nil).
func (r *PlacementRepository) FindLatest(userID uint) (*model.PlacementResult, error) {
	var result model.PlacementResult
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *PlacementRepository) ListByUser(userID uint) ([]model.PlacementResult, error) {
	var results []model.PlacementResult
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&results).Error
	return results, err
}
