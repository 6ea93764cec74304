package controller

import (
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommunityController struct {
	CommunityService   *service.CommunityService
	AchievementService *service.AchievementService
}

func NewCommunityController(community *service.CommunityService, achievements *service.AchievementService) *CommunityController {
	return &CommunityController{CommunityService: community, AchievementService: achievements}
}

func pageParams(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "10"))
	return page, pageSize
}

// CreatePost godoc
// @Summary 게시글 작성
// @Tags 커뮤니티
// @Accept json
// @Produce json
// @Param body body service.CreatePostRequest true "게시글"
// @Success 201 {object} util.Response{data=model.Post}
// @Failure 400 {object} util.Response
// @Router /api/community/posts [post]
func (c *CommunityController) CreatePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.CommunityService.CreatePost(claims.UserID, &req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	go func() {
		if count, err := c.CommunityService.PostRepo.CountByAuthor(claims.UserID); err == nil {
			c.AchievementService.CheckCommunityMilestones(claims.UserID, count)
		}
	}()
	util.Created(ctx, post)
}

// ListPosts godoc
// @Summary 게시글 목록
// @Tags 커뮤니티
// @Produce json
// @Param page query int false "페이지"
// @Param pageSize query int false "페이지 크기"
// @Param category query string false "카테고리"
// @Param tag query string false "태그"
// @Param search query string false "검색어"
// @Success 200 {object} util.PageResponse
// @Router /api/community/posts [get]
func (c *CommunityController) ListPosts(ctx *gin.Context) {
	page, pageSize := pageParams(ctx)
	posts, total, err := c.CommunityService.ListPosts(page, pageSize, ctx.Query("category"), ctx.Query("tag"), ctx.Query("search"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"items":    posts,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// GetPost godoc
// @Summary 게시글 상세
// @Tags 커뮤니티
// @Produce json
// @Param postId path string true "게시글 ID"
// @Success 200 {object} util.Response{data=model.Post}
// @Failure 404 {object} util.Response
// @Router /api/community/posts/{postId} [get]
func (c *CommunityController) GetPost(ctx *gin.Context) {
	// Logged-in viewers are deduplicated by user, anonymous ones by IP.
	viewerKey := ctx.ClientIP()
	if claims := util.GetUserFromContext(ctx); claims != nil {
		viewerKey = fmt.Sprintf("u%d", claims.UserID)
	}

	post, err := c.CommunityService.GetPost(ctx.Request.Context(), ctx.Param("postId"), viewerKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, post)
}

// UpdatePost godoc
// @Summary 게시글 수정
// @Tags 커뮤니티
// @Accept json
// @Produce json
// @Param postId path string true "게시글 ID"
// @Param body body service.UpdatePostRequest true "수정 내용"
// @Success 200 {object} util.Response{data=model.Post}
// @Failure 403 {object} util.Response
// @Router /api/community/posts/{postId} [patch]
func (c *CommunityController) UpdatePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.UpdatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.CommunityService.UpdatePost(claims.UserID, claims.Role, ctx.Param("postId"), &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, post)
}

// DeletePost godoc
// @Summary 게시글 삭제
// @Tags 커뮤니티
// @Produce json
// @Param postId path string true "게시글 ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/community/posts/{postId} [delete]
func (c *CommunityController) DeletePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	err := c.CommunityService.DeletePost(claims.UserID, claims.Role, ctx.Param("postId"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// CreateComment godoc
// @Summary 댓글 작성
// @Tags 커뮤니티
// @Accept json
// @Produce json
// @Param postId path string true "게시글 ID"
// @Param body body service.CreateCommentRequest true "댓글"
// @Success 201 {object} util.Response{data=model.Comment}
// @Failure 404 {object} util.Response
// @Router /api/community/posts/{postId}/comments [post]
func (c *CommunityController) CreateComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.CommunityService.CreateComment(claims.UserID, ctx.Param("postId"), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, comment)
}

// ListComments godoc
// @Summary 댓글 목록
// @Tags 커뮤니티
// @Produce json
// @Param postId path string true "게시글 ID"
// @Param page query int false "페이지"
// @Param pageSize query int false "페이지 크기"
// @Success 200 {object} util.PageResponse
// @Router /api/community/posts/{postId}/comments [get]
func (c *CommunityController) ListComments(ctx *gin.Context) {
	page, pageSize := pageParams(ctx)
	comments, total, err := c.CommunityService.ListComments(ctx.Param("postId"), page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"items":    comments,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// DeleteComment godoc
// @Summary 댓글 삭제
// @Tags 커뮤니티
// @Produce json
// @Param commentId path string true "댓글 ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/community/comments/{commentId} [delete]
func (c *CommunityController) DeleteComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	err := c.CommunityService.DeleteComment(claims.UserID, claims.Role, ctx.Param("commentId"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

type ToggleLikeRequest struct {
	ContentType string `json:"contentType" binding:"required,oneof=post comment"`
	ContentID   string `json:"contentId" binding:"required"`
}

// ToggleLike godoc
// @Summary 좋아요 토글
// @Tags 커뮤니티
// @Accept json
// @Produce json
// @Param body body ToggleLikeRequest true "대상"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/community/likes [post]
func (c *CommunityController) ToggleLike(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req ToggleLikeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	liked, err := c.CommunityService.ToggleLike(claims.UserID, req.ContentType, req.ContentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"liked": liked})
}

// AcceptComment godoc
// @Summary 답변 채택
// @Description 질문 글 작성자만 채택할 수 있습니다
// @Tags 커뮤니티
// @Produce json
// @Param postId path string true "게시글 ID"
// @Param commentId path string true "댓글 ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/community/posts/{postId}/comments/{commentId}/accept [post]
func (c *CommunityController) AcceptComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	err := c.CommunityService.AcceptComment(claims.UserID, ctx.Param("postId"), ctx.Param("commentId"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, nil)
}
