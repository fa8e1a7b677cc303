package models

import "time"

// Comment represents a comment on a post. UserID is NULL exactly when the
// comment was posted anonymously; Name and AvatarURL are snapshots taken at
// creation time. Comments are immutable once created.
type Comment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PostID      string    `json:"post_id" gorm:"index"`
	UserID      *string   `json:"user_id" gorm:"index"`
	Content     string    `json:"content"`
	IsAnonymous bool      `json:"is_anonymous"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// CreateCommentRequest defines the request body for commenting on a post.
// Content is additionally checked for whitespace-only text in the handler.
type CreateCommentRequest struct {
	Content     string `json:"content" validate:"required,max=1000"`
	IsAnonymous bool   `json:"isAnonymous"`
}
