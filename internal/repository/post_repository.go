package repository

import (
	"english_edu_backend/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *PostRepository) FindByID(id string) (*model.Post, error) {
	var post model.Post
	err := r.DB.Preload("Author").First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) Update(post *model.Post) error {
	return r.DB.Save(post).Error
}

func (r *PostRepository) Delete(id string) error {
	return r.DB.Delete(&model.Post{}, "id = ?", id).Error
}

// FindWithPagination filters by category, tag and title/content search.
// Pinned posts float to the top of the first page.
func (r *PostRepository) FindWithPagination(offset, limit int, category, tag, search string) ([]model.Post, int, error) {
	var posts []model.Post
	var total int64

	query := r.DB.Model(&model.Post{}).Preload("Author").Preload("Comments")

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if tag != "" {
		query = query.Where("tags LIKE ?", "%"+tag+"%")
	}
	if search != "" {
		query = query.Where("(title LIKE ? OR content LIKE ?)", "%"+search+"%", "%"+search+"%")
	}

	query.Count(&total)

	err := query.Order("is_pinned DESC, created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, int(total), nil
}

func (r *PostRepository) FindCommentsWithPagination(postID string, offset, limit int) ([]model.Comment, int64, error) {
	var total int64
	r.DB.Model(&model.Comment{}).Where("post_id = ? AND parent_id IS NULL", postID).Count(&total)

	// Page over root comments, then pull all replies for the page in one query.
	var roots []model.Comment
	err := r.DB.Preload("Author").
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&roots).Error
	if err != nil {
		return nil, 0, err
	}

	if len(roots) == 0 {
		return roots, total, nil
	}

	rootIDs := make([]string, len(roots))
	for i, c := range roots {
		rootIDs[i] = c.ID
	}

	var replies []model.Comment
	err = r.DB.Preload("Author").Preload("ReplyToUser").
		Where("post_id = ? AND parent_id IN ?", postID, rootIDs).
		Order("created_at ASC").
		Find(&replies).Error
	if err != nil {
		return nil, 0, err
	}

	return append(roots, replies...), total, nil
}

func (r *PostRepository) IncrementViews(id string) error {
	return r.DB.Model(&model.Post{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

func (r *PostRepository) HasLiked(userID uint, contentType, contentID string) bool {
	if userID == 0 {
		return false
	}
	var count int64
	r.DB.Model(&model.CommunityLike{}).
		Where("user_id = ? AND content_type = ? AND content_id = ?", userID, contentType, contentID).
		Count(&count)
	return count > 0
}

// ToggleLike flips the like state and adjusts the upvote counter on the
// target row. Returns the resulting state (true = now liked).
func (r *PostRepository) ToggleLike(userID uint, contentType, contentID string) (bool, error) {
	var liked bool
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var like model.CommunityLike
		err := tx.Where("user_id = ? AND content_type = ? AND content_id = ?", userID, contentType, contentID).
			First(&like).Error

		var target *gorm.DB
		switch contentType {
		case "comment":
			target = tx.Model(&model.Comment{}).Where("id = ?", contentID)
		default:
			target = tx.Model(&model.Post{}).Where("id = ?", contentID)
		}

		if err == gorm.ErrRecordNotFound {
			if err := tx.Create(&model.CommunityLike{
				UserID:      userID,
				ContentType: contentType,
				ContentID:   contentID,
			}).Error; err != nil {
				return err
			}
			liked = true
			return target.Update("upvotes", gorm.Expr("upvotes + 1")).Error
		}
		if err != nil {
			return err
		}

		if err := tx.Delete(&like).Error; err != nil {
			return err
		}
		liked = false
		return target.Update("upvotes", gorm.Expr("upvotes - 1")).Error
	})
	return liked, err
}

func (r *PostRepository) CountByAuthor(userID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Post{}).Where("author_id = ?", userID).Count(&n).Error
	return n, err
}
