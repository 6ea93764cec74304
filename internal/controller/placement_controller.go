package controller

import (
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type PlacementController struct {
	PlacementService *service.PlacementService
}

func NewPlacementController(placement *service.PlacementService) *PlacementController {
	return &PlacementController{PlacementService: placement}
}

// GetTest godoc
// @Summary 배치고사 문항 조회
// @Description 정답은 제외하고 내려갑니다
// @Tags 배치고사
// @Produce json
// @Success 200 {object} util.Response{data=model.PlacementTest}
// @Router /api/placement/test [get]
func (c *PlacementController) GetTest(ctx *gin.Context) {
	util.Success(ctx, stripAnswers(c.PlacementService.Test))
}

// stripAnswers returns a copy of the test safe to send to the client.
func stripAnswers(test *model.PlacementTest) *model.PlacementTest {
	out := &model.PlacementTest{ID: test.ID, Title: test.Title}
	for _, sec := range test.Sections {
		clean := model.PlacementSection{Name: sec.Name}
		for _, item := range sec.Items {
			item.Answer = ""
			clean.Items = append(clean.Items, item)
		}
		out.Sections = append(out.Sections, clean)
	}
	return out
}

type SubmitPlacementRequest struct {
	Answers []service.PlacementAnswer `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary 배치고사 제출 및 채점
// @Description 채점 결과의 레벨이 사용자 레벨로 반영됩니다
// @Tags 배치고사
// @Accept json
// @Produce json
// @Param body body SubmitPlacementRequest true "답안"
// @Success 200 {object} util.Response{data=model.PlacementResult}
// @Failure 400 {object} util.Response
// @Router /api/placement/submit [post]
func (c *PlacementController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req SubmitPlacementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.PlacementService.Grade(claims.UserID, req.Answers)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Latest godoc
// @Summary 최근 배치고사 결과
// @Tags 배치고사
// @Produce json
// @Success 200 {object} util.Response{data=model.PlacementResult}
// @Failure 404 {object} util.Response "응시 기록 없음"
// @Router /api/placement/result [get]
func (c *PlacementController) Latest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	result, err := c.PlacementService.LatestResult(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrPlacementNotGraded) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// History godoc
// @Summary 배치고사 응시 이력
// @Tags 배치고사
// @Produce json
// @Success 200 {object} util.Response{data=[]model.PlacementResult}
// @Router /api/placement/history [get]
func (c *PlacementController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	results, err := c.PlacementService.History(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, results)
}
