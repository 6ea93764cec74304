package service

import (
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"
	"errors"
	"mime/multipart"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{UserRepo: userRepo, Storage: storage}
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

type UpdateProfileRequest struct {
	Name     string `json:"name" binding:"omitempty,max=100"`
	Language string `json:"language" binding:"omitempty,oneof=ko en"`
}

func (s *UserService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*model.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Language != "" {
		user.Language = req.Language
	}
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UploadAvatar(userID uint, file *multipart.FileHeader) (string, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return "", err
	}
	url, err := s.Storage.UploadImage(file, "avatars")
	if err != nil {
		return "", err
	}
	user.Avatar = url
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}
	return url, nil
}

func (s *UserService) Leaderboard(limit int) ([]model.User, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.UserRepo.FindTopByXP(limit)
}

func (s *UserService) ListStudents(name string, page, pageSize int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.UserRepo.ListStudents(name, page, pageSize)
}
