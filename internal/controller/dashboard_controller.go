package controller

import (
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboard *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboard}
}

// Summary godoc
// @Summary 대시보드 조회
// @Description 전체 진도, 현재 주차, 연속 학습, 최근 일지, 배지를 한 번에 내려줍니다
// @Tags 대시보드
// @Produce json
// @Success 200 {object} util.Response{data=service.Dashboard}
// @Router /api/dashboard [get]
func (c *DashboardController) Summary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	dash, err := c.DashboardService.Summary(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dash)
}
