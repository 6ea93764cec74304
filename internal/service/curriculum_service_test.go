package service

import (
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurriculumShippedFileLoads(t *testing.T) {
	s, err := NewCurriculumService("../../data/curriculum.json")
	require.NoError(t, err)

	weeks := s.Weeks()
	require.Len(t, weeks, TotalWeeks)

	for i, week := range weeks {
		assert.Equal(t, util.WeekID(i+1), week.ID)
		assert.Len(t, week.Activities, ActivitiesPerWeek)
	}

	week, err := s.Week("week-3")
	require.NoError(t, err)
	assert.Equal(t, 3, week.WeekNumber)

	act, err := s.Activity("week-3-grammar")
	require.NoError(t, err)
	assert.Equal(t, model.ActivityGrammar, act.Type)
}

func TestCurriculumLookupMisses(t *testing.T) {
	s, err := NewCurriculumService("../../data/curriculum.json")
	require.NoError(t, err)

	_, err = s.Week("week-99")
	assert.ErrorIs(t, err, util.ErrWeekNotFound)

	_, err = s.Activity("nope")
	assert.ErrorIs(t, err, util.ErrActivityNotFound)
}

func TestCurriculumValidation(t *testing.T) {
	base := func() []model.CurriculumWeek {
		weeks := make([]model.CurriculumWeek, TotalWeeks)
		for i := range weeks {
			weeks[i] = model.CurriculumWeek{ID: util.WeekID(i + 1), WeekNumber: i + 1}
			for j, typ := range model.ActivityTypes {
				weeks[i].Activities = append(weeks[i].Activities, model.CurriculumActivity{
					ID:    util.WeekID(i+1) + "-" + string(typ),
					Type:  typ,
					Order: j + 1,
				})
			}
		}
		return weeks
	}

	assert.NoError(t, validateCurriculum(base()))

	short := base()[:TotalWeeks-1]
	assert.Error(t, validateCurriculum(short))

	wrongID := base()
	wrongID[2].ID = "week-99"
	assert.Error(t, validateCurriculum(wrongID))

	missingType := base()
	missingType[0].Activities[5].Type = model.ActivityReading
	assert.Error(t, validateCurriculum(missingType))

	dupID := base()
	dupID[1].Activities[0].ID = dupID[0].Activities[0].ID
	assert.Error(t, validateCurriculum(dupID))
}
