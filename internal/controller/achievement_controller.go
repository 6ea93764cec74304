package controller

import (
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	AchievementService *service.AchievementService
}

func NewAchievementController(achievements *service.AchievementService) *AchievementController {
	return &AchievementController{AchievementService: achievements}
}

// List godoc
// @Summary 획득한 배지 목록
// @Tags 배지
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Achievement}
// @Router /api/achievements [get]
func (c *AchievementController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	badges, err := c.AchievementService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, badges)
}
