package models

import "time"

// Notification types.
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
)

// Notification informs a post's author of an engagement by another user.
// SenderID is NULL when the triggering action was anonymous. State moves
// one-way from unread to read and rows are never deleted.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:20;index"`
	RecipientID string    `json:"recipient_id" gorm:"index"`
	SenderID    *string   `json:"sender_id"`
	PostID      string    `json:"post_id"`
	CommentID   *uint     `json:"comment_id"`
	Message     string    `json:"message"` // short preview of the engagement
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
