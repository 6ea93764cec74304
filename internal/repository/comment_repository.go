package repository

import (
	"english_edu_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *CommentRepository) FindByID(id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.Preload("Author").First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) Delete(id string) error {
	return r.DB.Delete(&model.Comment{}, "id = ?", id).Error
}

func (r *CommentRepository) CountByPost(postID string) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Comment{}).Where("post_id = ?", postID).Count(&n).Error
	return n, err
}

// Accept marks one comment as the accepted answer and resolves its post.
func (r *CommentRepository) Accept(comment *model.Comment) error {
	now := time.Now()
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Comment{}).
			Where("id = ?", comment.ID).
			Update("is_accepted", true).Error; err != nil {
			return err
		}
		return tx.Model(&model.Post{}).
			Where("id = ?", comment.PostID).
			Updates(map[string]interface{}{
				"is_resolved":         true,
				"accepted_comment_id": comment.ID,
				"resolved_at":         now,
			}).Error
	})
}
