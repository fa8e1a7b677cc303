package repositories

import (
	"github.com/studence/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(postID, userID string) (bool, error)
	HasUserLikedPost(postID, userID string) (bool, error)
	GetLikesCountByPostID(postID string) (int64, error)
	GetLikeCountsByPostIDs(postIDs []string) (map[string]int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts a like. A duplicate (post, user) pair surfaces as
// gorm.ErrDuplicatedKey via the unique index; callers treat that as "already
// liked" rather than a hard failure.
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

// DeleteLike removes the user's like on a post and reports whether one existed
func (r *PostgresLikeRepository) DeleteLike(postID, userID string) (bool, error) {
	res := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresLikeRepository) HasUserLikedPost(postID, userID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetLikesCountByPostID retrieves the number of likes on a post
func (r *PostgresLikeRepository) GetLikesCountByPostID(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetLikeCountsByPostIDs retrieves like counts for a set of posts in one
// grouped query, for feed annotation
func (r *PostgresLikeRepository) GetLikeCountsByPostIDs(postIDs []string) (map[string]int64, error) {
	type row struct {
		PostID string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&models.Like{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.PostID] = r.Count
	}
	return counts, nil
}
