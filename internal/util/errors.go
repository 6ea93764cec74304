package util

import "errors"

var (
	ErrUserNotFound        = errors.New("사용자가 존재하지 않습니다")
	ErrEmailRegistered     = errors.New("이미 가입된 이메일입니다")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrProgressNotFound    = errors.New("activity progress not found")
	ErrWeekNotFound        = errors.New("curriculum week not found")
	ErrActivityNotFound    = errors.New("curriculum activity not found")
	ErrJournalNotFound     = errors.New("journal entry not found")
	ErrPlacementNotGraded  = errors.New("placement test has not been taken")
	ErrInvalidJournalDate  = errors.New("invalid journal date, expected YYYY-MM-DD")
	ErrNotSpeakingActivity = errors.New("activity is not a speaking activity")
)
