package service

import (
	"encoding/json"
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"
	"english_edu_backend/pkg/logger"
	"english_edu_backend/pkg/monitoring"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
)

// placementWeights converts a correct answer into band points. Harder items
// are worth more so the raw score spreads learners across the CEFR bands.
var placementWeights = map[model.CEFRLevel]float64{
	model.LevelA1: 1,
	model.LevelA2: 2,
	model.LevelB1: 3,
	model.LevelB2: 4,
	model.LevelC1: 5,
}

// placementOrder is the ladder used for promotion/demotion. C2 is never
// assigned by the test.
var placementOrder = []model.CEFRLevel{
	model.LevelA1, model.LevelA2, model.LevelB1, model.LevelB2, model.LevelC1,
}

// recommendedWeeks maps the assigned level to the curriculum entry point.
// B2 and above start at week-7; the plan has nothing past week-8.
var recommendedWeeks = map[model.CEFRLevel]string{
	model.LevelA1: "week-1",
	model.LevelA2: "week-3",
	model.LevelB1: "week-5",
	model.LevelB2: "week-7",
	model.LevelC1: "week-7",
}

type PlacementService struct {
	Test       *model.PlacementTest
	ResultRepo *repository.PlacementRepository
	UserRepo   *repository.UserRepository
}

func NewPlacementService(path string, resultRepo *repository.PlacementRepository, userRepo *repository.UserRepository) (*PlacementService, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read placement test file: %w", err)
	}
	var test model.PlacementTest
	if err := json.Unmarshal(raw, &test); err != nil {
		return nil, fmt.Errorf("parse placement test file: %w", err)
	}
	if err := validatePlacementTest(&test); err != nil {
		return nil, err
	}
	logger.Log.Info("배치고사 로드 완료", zap.String("path", path), zap.Int("sections", len(test.Sections)))
	return &PlacementService{Test: &test, ResultRepo: resultRepo, UserRepo: userRepo}, nil
}

func validatePlacementTest(test *model.PlacementTest) error {
	if len(test.Sections) == 0 {
		return fmt.Errorf("placement test %q has no sections", test.ID)
	}
	for si, sec := range test.Sections {
		for ii, item := range sec.Items {
			switch item.Type {
			case model.ItemMCQ:
				if len(item.Options) < 2 || item.Answer == "" {
					return fmt.Errorf("mcq item %d/%d needs options and an answer", si, ii)
				}
				if _, ok := placementWeights[item.Difficulty]; !ok {
					return fmt.Errorf("mcq item %d/%d has unknown difficulty %q", si, ii, item.Difficulty)
				}
			case model.ItemSelfRating:
			default:
				return fmt.Errorf("item %d/%d has unknown type %q", si, ii, item.Type)
			}
		}
	}
	return nil
}

// PlacementAnswer addresses one item by position. Self-rating values are the
// 1-5 rating as a string.
type PlacementAnswer struct {
	Section int    `json:"section"`
	Item    int    `json:"item"`
	Value   string `json:"value"`
}

type difficultyStat struct {
	Correct  int `json:"correct"`
	Attempts int `json:"attempts"`
}

// Grade scores an attempt, assigns a CEFR level and persists the result. The
// latest attempt always overrides the user's stored level.
func (s *PlacementService) Grade(userID uint, answers []PlacementAnswer) (*model.PlacementResult, error) {
	score := 0.0
	maxScore := 0.0
	stats := make(map[model.CEFRLevel]*difficultyStat)

	answered := make(map[[2]int]string, len(answers))
	for _, a := range answers {
		answered[[2]int{a.Section, a.Item}] = a.Value
	}

	for si, sec := range s.Test.Sections {
		for ii, item := range sec.Items {
			value, ok := answered[[2]int{si, ii}]
			switch item.Type {
			case model.ItemMCQ:
				weight := placementWeights[item.Difficulty]
				maxScore += weight
				st := stats[item.Difficulty]
				if st == nil {
					st = &difficultyStat{}
					stats[item.Difficulty] = st
				}
				st.Attempts++
				if ok && value == item.Answer {
					st.Correct++
					score += weight
				}
			case model.ItemSelfRating:
				if !ok {
					continue
				}
				rating, err := strconv.Atoi(value)
				if err != nil || rating < 1 || rating > 5 {
					continue
				}
				// A neutral 3 leaves the score untouched; confidence above
				// or below shifts it by half a point per step.
				score += float64(rating-3) * 0.5
			}
		}
	}
	if score < 0 {
		score = 0
	}

	level := bandLevel(score)
	level = adjustLevel(level, stats)

	answersJSON, _ := json.Marshal(answers)
	statsJSON, _ := json.Marshal(stats)
	result := &model.PlacementResult{
		UserID:            userID,
		TestID:            s.Test.ID,
		Score:             score,
		MaxScore:          int(maxScore),
		Level:             level,
		RecommendedWeek:   recommendedWeeks[level],
		Answers:           answersJSON,
		DifficultyPattern: statsJSON,
	}
	if err := s.ResultRepo.Create(result); err != nil {
		return nil, err
	}
	if err := s.UserRepo.SetLevel(userID, level); err != nil {
		return nil, err
	}
	monitoring.PlacementTestsGraded.Inc()
	logger.Log.Info("배치고사 채점 완료",
		zap.Uint("userID", userID),
		zap.Float64("score", score),
		zap.String("level", string(level)))
	return result, nil
}

func bandLevel(score float64) model.CEFRLevel {
	switch {
	case score <= 15:
		return model.LevelA1
	case score <= 25:
		return model.LevelA2
	case score <= 35:
		return model.LevelB1
	case score <= 45:
		return model.LevelB2
	default:
		return model.LevelC1
	}
}

// adjustLevel moves the band result one step when the per-difficulty pattern
// contradicts it: strong on the next level promotes, weak on the previous
// level demotes. At most one step either way.
func adjustLevel(level model.CEFRLevel, stats map[model.CEFRLevel]*difficultyStat) model.CEFRLevel {
	idx := 0
	for i, l := range placementOrder {
		if l == level {
			idx = i
			break
		}
	}
	if idx < len(placementOrder)-1 {
		if st := stats[placementOrder[idx+1]]; st != nil && st.Attempts > 0 {
			if st.Correct*100/st.Attempts >= 80 {
				return placementOrder[idx+1]
			}
		}
	}
	if idx > 0 {
		if st := stats[placementOrder[idx-1]]; st != nil && st.Attempts > 0 {
			if st.Correct*100/st.Attempts < 50 {
				return placementOrder[idx-1]
			}
		}
	}
	return level
}

func (s *PlacementService) LatestResult(userID uint) (*model.PlacementResult, error) {
	res, err := s.ResultRepo.FindLatest(userID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, util.ErrPlacementNotGraded
	}
	return res, nil
}

func (s *PlacementService) History(userID uint) ([]model.PlacementResult, error) {
	return s.ResultRepo.ListByUser(userID)
}
