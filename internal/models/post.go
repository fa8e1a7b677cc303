package models

import "time"

// Post types accepted by the API.
const (
	PostTypeQuestion = "question"
	PostTypeTeam     = "team"
	PostTypeResource = "resource"
)

// Post represents a question, team-finding request, or shared resource link.
// Name is the author's display name captured at creation time; anonymous posts
// never store one.
type Post struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"index"`
	Type        string    `json:"type" gorm:"size:20;index"`
	Content     string    `json:"content"`
	Tags        []string  `json:"tags" gorm:"serializer:json"`
	Link        string    `json:"link"`
	IsAnonymous bool      `json:"is_anonymous"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Type        string   `json:"type" validate:"required,oneof=question team resource"`
	Content     string   `json:"content,omitempty" validate:"omitempty,max=2000"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=30"`
	IsAnonymous bool     `json:"isAnonymous"`
	Link        string   `json:"link,omitempty" validate:"omitempty,url"`
	Name        string   `json:"name,omitempty" validate:"omitempty,max=50"`
}

// UpdatePostRequest defines the request body for updating an existing post.
// Only content and tags are mutable; type, anonymity, and link are fixed at
// creation.
type UpdatePostRequest struct {
	Content string   `json:"content,omitempty" validate:"omitempty,max=2000"`
	Tags    []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=30"`
}

// FeedPost is a post annotated for the public feed: live author name/avatar
// (anonymized when the post is anonymous) and current like/comment counts.
type FeedPost struct {
	Post
	AuthorName   string `json:"author_name"`
	AvatarURL    string `json:"avatar_url"`
	LikeCount    int64  `json:"likes"`
	CommentCount int64  `json:"comments"`
}
