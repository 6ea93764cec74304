package service

import (
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"
	"english_edu_backend/pkg/logger"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// SpeakingService handles learner recordings: upload, duration probe and the
// counters the speaking activity is graded on.
type SpeakingService struct {
	ProgressRepo *repository.ProgressRepository
	Curriculum   *CurriculumService
	Storage      *StorageService
}

func NewSpeakingService(progressRepo *repository.ProgressRepository, curriculum *CurriculumService, storage *StorageService) *SpeakingService {
	return &SpeakingService{ProgressRepo: progressRepo, Curriculum: curriculum, Storage: storage}
}

type RecordingUpload struct {
	URL      string  `json:"url"`
	Duration float64 `json:"duration"` // seconds
}

// UploadRecording stores the audio, probes its real duration and bumps the
// speaking counters atomically. The duration comes from the file itself, not
// the client, so self-reported numbers cannot inflate progress.
func (s *SpeakingService) UploadRecording(userID uint, activityID string, file *multipart.FileHeader) (*RecordingUpload, error) {
	act, err := s.Curriculum.Activity(activityID)
	if err != nil {
		return nil, err
	}
	if act.Type != model.ActivitySpeaking {
		return nil, util.ErrNotSpeakingActivity
	}

	tmp, err := saveTemp(file)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp)

	info, err := util.GetAudioInfo(tmp)
	if err != nil {
		return nil, fmt.Errorf("probe recording: %w", err)
	}

	url, err := s.Storage.UploadAudio(file, "recordings")
	if err != nil {
		return nil, err
	}

	weekID := weekOfActivity(s.Curriculum, activityID)
	if err := s.bump(userID, activityID, weekID, "recordings_completed", 1); err != nil {
		return nil, err
	}
	if err := s.bump(userID, activityID, weekID, "recording_duration", int(info.Duration)); err != nil {
		logger.Log.Warn("녹음 시간 집계 실패", zap.Uint("userID", userID), zap.Error(err))
	}

	return &RecordingUpload{URL: url, Duration: info.Duration}, nil
}

func (s *SpeakingService) bump(userID uint, activityID, weekID, column string, delta int) error {
	seed := &model.ActivityProgress{
		UserID:     userID,
		ActivityID: activityID,
		WeekID:     weekID,
		Type:       model.ActivitySpeaking,
	}
	switch column {
	case "recordings_completed":
		seed.RecordingsCompleted = delta
	case "recording_duration":
		seed.RecordingDuration = delta
	}
	return s.ProgressRepo.IncrementField(seed, column, delta)
}

func weekOfActivity(curriculum *CurriculumService, activityID string) string {
	for _, week := range curriculum.Weeks() {
		for _, act := range week.Activities {
			if act.ID == activityID {
				return week.ID
			}
		}
	}
	return DefaultWeekID
}

func saveTemp(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "recording-*"+filepath.Ext(file.Filename))
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if _, err := tmp.ReadFrom(src); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
