package service

import (
	"context"
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"
	"english_edu_backend/pkg/logger"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type CommunityService struct {
	PostRepo    *repository.PostRepository
	CommentRepo *repository.CommentRepository
	Redis       *redis.Client
}

func NewCommunityService(postRepo *repository.PostRepository, commentRepo *repository.CommentRepository, rdb *redis.Client) *CommunityService {
	return &CommunityService{PostRepo: postRepo, CommentRepo: commentRepo, Redis: rdb}
}

type CreatePostRequest struct {
	Type     model.PostType     `json:"type" binding:"required,oneof=question discussion share tip"`
	Category model.PostCategory `json:"category" binding:"required"`
	Title    string             `json:"title" binding:"required,max=255"`
	Content  string             `json:"content" binding:"required"`
	Tags     string             `json:"tags"`
}

func (s *CommunityService) CreatePost(authorID uint, req *CreatePostRequest) (*model.Post, error) {
	post := &model.Post{
		Type:     req.Type,
		Category: req.Category,
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: authorID,
		Tags:     req.Tags,
	}
	if err := s.PostRepo.Create(post); err != nil {
		return nil, err
	}
	return s.PostRepo.FindByID(post.ID)
}

func (s *CommunityService) ListPosts(page, pageSize int, category, tag, search string) ([]model.Post, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 10
	}
	return s.PostRepo.FindWithPagination((page-1)*pageSize, pageSize, category, tag, search)
}

// GetPost returns the post and counts the view. Views from the same viewer
// within an hour are collapsed through a redis guard key; if redis is down
// the view simply is not counted.
func (s *CommunityService) GetPost(ctx context.Context, postID string, viewerKey string) (*model.Post, error) {
	post, err := s.PostRepo.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil && viewerKey != "" {
		guard := fmt.Sprintf("post_view:%s:%s", postID, viewerKey)
		fresh, err := s.Redis.SetNX(ctx, guard, 1, time.Hour).Result()
		if err != nil {
			logger.Log.Warn("조회수 중복 방지 실패", zap.Error(err))
		} else if fresh {
			if err := s.PostRepo.IncrementViews(postID); err == nil {
				post.Views++
			}
		}
	}
	return post, nil
}

type UpdatePostRequest struct {
	Title   string  `json:"title" binding:"omitempty,max=255"`
	Content string  `json:"content"`
	Tags    *string `json:"tags"`
}

// UpdatePost edits title/content/tags. Author or admin only.
func (s *CommunityService) UpdatePost(userID uint, role model.UserRole, postID string, req *UpdatePostRequest) (*model.Post, error) {
	post, err := s.PostRepo.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID && role != model.Admin {
		return nil, util.ErrPermissionDenied
	}
	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.Tags != nil {
		post.Tags = *req.Tags
	}
	if err := s.PostRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *CommunityService) DeletePost(userID uint, role model.UserRole, postID string) error {
	post, err := s.PostRepo.FindByID(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID && role != model.Admin {
		return util.ErrPermissionDenied
	}
	return s.PostRepo.Delete(postID)
}

type CreateCommentRequest struct {
	Content    string  `json:"content" binding:"required"`
	ParentID   *string `json:"parentId"`
	ReplyToUID *uint   `json:"replyToUid"`
}

func (s *CommunityService) CreateComment(authorID uint, postID string, req *CreateCommentRequest) (*model.Comment, error) {
	if _, err := s.PostRepo.FindByID(postID); err != nil {
		return nil, err
	}
	if req.ParentID != nil {
		parent, err := s.CommentRepo.FindByID(*req.ParentID)
		if err != nil {
			return nil, err
		}
		// One level of nesting only: replies to a reply attach to its root.
		if parent.ParentID != nil {
			req.ParentID = parent.ParentID
		}
	}
	comment := &model.Comment{
		PostID:     postID,
		AuthorID:   authorID,
		Content:    req.Content,
		ParentID:   req.ParentID,
		ReplyToUID: req.ReplyToUID,
	}
	if err := s.CommentRepo.Create(comment); err != nil {
		return nil, err
	}
	return s.CommentRepo.FindByID(comment.ID)
}

func (s *CommunityService) ListComments(postID string, page, pageSize int) ([]model.Comment, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 20
	}
	return s.PostRepo.FindCommentsWithPagination(postID, (page-1)*pageSize, pageSize)
}

func (s *CommunityService) DeleteComment(userID uint, role model.UserRole, commentID string) error {
	comment, err := s.CommentRepo.FindByID(commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID && role != model.Admin {
		return util.ErrPermissionDenied
	}
	return s.CommentRepo.Delete(commentID)
}

// ToggleLike likes or unlikes a post or comment, returning the new state.
func (s *CommunityService) ToggleLike(userID uint, contentType, contentID string) (bool, error) {
	switch contentType {
	case "post":
		if _, err := s.PostRepo.FindByID(contentID); err != nil {
			return false, err
		}
	case "comment":
		if _, err := s.CommentRepo.FindByID(contentID); err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("unknown content type %q", contentType)
	}
	return s.PostRepo.ToggleLike(userID, contentType, contentID)
}

// AcceptComment marks a comment as the accepted answer. Only the post author
// may accept, and only on question posts.
func (s *CommunityService) AcceptComment(userID uint, postID, commentID string) error {
	post, err := s.PostRepo.FindByID(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return util.ErrPermissionDenied
	}
	if post.Type != model.PostQuestion {
		return fmt.Errorf("only question posts accept answers")
	}
	comment, err := s.CommentRepo.FindByID(commentID)
	if err != nil {
		return err
	}
	if comment.PostID != postID {
		return fmt.Errorf("comment does not belong to this post")
	}
	return s.CommentRepo.Accept(comment)
}
