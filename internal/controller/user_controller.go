package controller

import (
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// UpdateProfile godoc
// @Summary 프로필 수정
// @Tags 사용자
// @Accept json
// @Produce json
// @Param body body service.UpdateProfileRequest true "프로필"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response
// @Router /api/users/me [patch]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, &req)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}

// UploadAvatar godoc
// @Summary 아바타 업로드
// @Tags 사용자
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "이미지 파일"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/users/me/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	file, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "avatar file is required")
		return
	}

	url, err := c.UserService.UploadAvatar(claims.UserID, file)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"avatar": url})
}

// Leaderboard godoc
// @Summary XP 리더보드
// @Tags 사용자
// @Produce json
// @Param limit query int false "인원 수"
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/users/leaderboard [get]
func (c *UserController) Leaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	users, err := c.UserService.Leaderboard(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// ListStudents godoc
// @Summary 학생 목록 (교사/관리자)
// @Tags 사용자
// @Produce json
// @Param name query string false "이름 또는 이메일"
// @Param page query int false "페이지"
// @Param pageSize query int false "페이지 크기"
// @Success 200 {object} util.PageResponse
// @Failure 403 {object} util.Response
// @Router /api/users/students [get]
func (c *UserController) ListStudents(ctx *gin.Context) {
	page, pageSize := pageParams(ctx)
	users, total, err := c.UserService.ListStudents(ctx.Query("name"), page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"items":    users,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}
