package controller

import (
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type SpeakingController struct {
	SpeakingService *service.SpeakingService
}

func NewSpeakingController(speaking *service.SpeakingService) *SpeakingController {
	return &SpeakingController{SpeakingService: speaking}
}

// UploadRecording godoc
// @Summary 말하기 녹음 업로드
// @Description 녹음을 저장하고 실제 길이를 측정해 말하기 진도에 반영합니다
// @Tags 학습 진도
// @Accept multipart/form-data
// @Produce json
// @Param activityId path string true "활동 ID"
// @Param recording formData file true "오디오 파일"
// @Success 200 {object} util.Response{data=service.RecordingUpload}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/progress/{activityId}/recordings [post]
func (c *SpeakingController) UploadRecording(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	file, err := ctx.FormFile("recording")
	if err != nil {
		util.BadRequest(ctx, "recording file is required")
		return
	}

	result, err := c.SpeakingService.UploadRecording(claims.UserID, ctx.Param("activityId"), file)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrActivityNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNotSpeakingActivity):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}
