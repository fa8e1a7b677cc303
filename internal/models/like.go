package models

import "time"

// Like represents a like on a post. The composite unique index is the
// authority for "at most one like per user per post", including under
// concurrent toggles.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	UserID    string    `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	CreatedAt time.Time `json:"created_at"`
}
