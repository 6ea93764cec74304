package controller

import (
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type CurriculumController struct {
	CurriculumService *service.CurriculumService
	ProgressService   *service.ProgressService
}

func NewCurriculumController(curriculum *service.CurriculumService, progress *service.ProgressService) *CurriculumController {
	return &CurriculumController{CurriculumService: curriculum, ProgressService: progress}
}

// ListWeeks godoc
// @Summary 커리큘럼 전체 조회
// @Tags 커리큘럼
// @Produce json
// @Success 200 {object} util.Response{data=[]model.CurriculumWeek}
// @Router /api/curriculum [get]
func (c *CurriculumController) ListWeeks(ctx *gin.Context) {
	util.Success(ctx, c.CurriculumService.Weeks())
}

// GetWeek godoc
// @Summary 주차 상세 조회
// @Description 로그인 상태면 해당 주차 진도가 함께 내려갑니다
// @Tags 커리큘럼
// @Produce json
// @Param weekId path string true "주차 ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/curriculum/{weekId} [get]
func (c *CurriculumController) GetWeek(ctx *gin.Context) {
	week, err := c.CurriculumService.Week(ctx.Param("weekId"))
	if err != nil {
		if errors.Is(err, util.ErrWeekNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	payload := gin.H{"week": week}
	if claims := util.GetUserFromContext(ctx); claims != nil {
		if progress, err := c.ProgressService.WeekProgress(claims.UserID, week.ID); err == nil && progress != nil {
			payload["progress"] = progress
		}
	}
	util.Success(ctx, payload)
}

// GetActivity godoc
// @Summary 활동 상세 조회
// @Tags 커리큘럼
// @Produce json
// @Param activityId path string true "활동 ID"
// @Success 200 {object} util.Response{data=model.CurriculumActivity}
// @Failure 404 {object} util.Response
// @Router /api/curriculum/activities/{activityId} [get]
func (c *CurriculumController) GetActivity(ctx *gin.Context) {
	act, err := c.CurriculumService.Activity(ctx.Param("activityId"))
	if err != nil {
		if errors.Is(err, util.ErrActivityNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, act)
}
