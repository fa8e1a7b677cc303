package models

import "time"

// User represents a platform user. The primary key is the Firebase UID, so a
// row can be upserted directly from a verified ID token.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
	PostCount int       `json:"post_count" gorm:"not null;default:0"` // denormalized count of live posts
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateProfileRequest defines the request body for updating the own profile
type UpdateProfileRequest struct {
	Name      string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	AvatarURL string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}
