package model

import (
	"time"
)

type PostType string

const (
	PostQuestion   PostType = "question"
	PostDiscussion PostType = "discussion"
	PostShare      PostType = "share"
	PostTip        PostType = "tip"
)

type PostCategory string

const (
	CategoryJournal    PostCategory = "journal"
	CategoryTip        PostCategory = "tip"
	CategoryReview     PostCategory = "review"
	CategoryQuestion   PostCategory = "question"
	CategorySuccess    PostCategory = "success"
	CategoryGrammar    PostCategory = "grammar"
	CategoryVocabulary PostCategory = "vocabulary"
	CategoryListening  PostCategory = "listening"
	CategorySpeaking   PostCategory = "speaking"
	CategoryReading    PostCategory = "reading"
	CategoryWriting    PostCategory = "writing"
	CategoryGeneral    PostCategory = "general"
)

type Post struct {
	UUIDBase
	Type              PostType     `gorm:"size:20;not null" json:"type"`
	Category          PostCategory `gorm:"size:20;index;not null" json:"category"`
	Title             string       `gorm:"size:255;not null" json:"title"`
	Content           string       `gorm:"type:text;not null" json:"content"`
	AuthorID          uint         `gorm:"index" json:"authorId"`
	Author            User         `gorm:"foreignKey:AuthorID" json:"author"`
	Tags              string       `gorm:"size:255" json:"tags"`
	Upvotes           int          `gorm:"default:0" json:"likes"`
	Views             int          `gorm:"default:0" json:"views"`
	IsPinned          bool         `gorm:"default:false" json:"isPinned"`
	IsResolved        bool         `gorm:"default:false" json:"isResolved"`
	AcceptedCommentID *string      `gorm:"type:varchar(36)" json:"acceptedCommentId,omitempty"`
	ResolvedAt        *time.Time   `json:"resolvedAt,omitempty"`
	Comments          []Comment    `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}

type Comment struct {
	UUIDBase
	PostID      string  `gorm:"index;type:varchar(36)" json:"postId"`
	AuthorID    uint    `gorm:"index" json:"authorId"`
	Author      User    `gorm:"foreignKey:AuthorID" json:"author"`
	Content     string  `gorm:"type:text;not null" json:"content"`
	Upvotes     int     `gorm:"default:0" json:"likes"`
	IsAccepted  bool    `gorm:"default:false" json:"isAccepted"`
	ParentID    *string `gorm:"index;type:varchar(36)" json:"parentId"`
	ReplyToUID  *uint   `gorm:"index" json:"replyToUid"`
	ReplyToUser *User   `gorm:"foreignKey:ReplyToUID" json:"replyToUser,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

type CommunityLike struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UserID      uint      `gorm:"uniqueIndex:idx_user_content" json:"userId"`
	ContentType string    `gorm:"uniqueIndex:idx_user_content;size:20" json:"contentType"` // post, comment
	ContentID   string    `gorm:"uniqueIndex:idx_user_content;size:36" json:"contentId"`
}

func (CommunityLike) TableName() string {
	return "community_likes"
}
