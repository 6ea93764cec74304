package controller

import (
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type JournalController struct {
	JournalService     *service.JournalService
	AchievementService *service.AchievementService
}

func NewJournalController(journal *service.JournalService, achievements *service.AchievementService) *JournalController {
	return &JournalController{JournalService: journal, AchievementService: achievements}
}

// Upsert godoc
// @Summary 학습 일지 작성/수정
// @Description 같은 날짜에 다시 쓰면 기존 일지에 병합됩니다
// @Tags 학습 일지
// @Accept json
// @Produce json
// @Param body body service.JournalUpsertRequest true "일지 내용"
// @Success 200 {object} util.Response{data=model.JournalEntry}
// @Failure 400 {object} util.Response
// @Router /api/journal [put]
func (c *JournalController) Upsert(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.JournalUpsertRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.JournalService.Upsert(claims.UserID, &req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidJournalDate) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	go func() {
		if streak, err := c.JournalService.Streak(claims.UserID); err == nil {
			c.AchievementService.CheckStreakMilestones(claims.UserID, streak)
		}
	}()
	util.Success(ctx, entry)
}

// GetByDate godoc
// @Summary 날짜별 일지 조회
// @Tags 학습 일지
// @Produce json
// @Param date path string true "YYYY-MM-DD"
// @Success 200 {object} util.Response{data=model.JournalEntry}
// @Failure 404 {object} util.Response
// @Router /api/journal/{date} [get]
func (c *JournalController) GetByDate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	entry, err := c.JournalService.Get(claims.UserID, ctx.Param("date"))
	if err != nil {
		if errors.Is(err, util.ErrJournalNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, entry)
}

// Month godoc
// @Summary 월별 일지 목록
// @Tags 학습 일지
// @Produce json
// @Param month query string true "YYYY-MM"
// @Success 200 {object} util.Response{data=[]model.JournalEntry}
// @Failure 400 {object} util.Response
// @Router /api/journal [get]
func (c *JournalController) Month(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	entries, err := c.JournalService.Month(claims.UserID, ctx.Query("month"))
	if err != nil {
		if errors.Is(err, util.ErrInvalidJournalDate) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, entries)
}

// Streak godoc
// @Summary 연속 학습 현황
// @Tags 학습 일지
// @Produce json
// @Success 200 {object} util.Response{data=service.Streak}
// @Router /api/journal/streak [get]
func (c *JournalController) Streak(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	streak, err := c.JournalService.Streak(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, streak)
}
