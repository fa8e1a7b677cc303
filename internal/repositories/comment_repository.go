package repositories

import (
	"github.com/studence/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
// Comments are immutable: there is no update or delete.
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentsByPostID(postID string) ([]models.Comment, error)
	GetCommentsCountByPostID(postID string) (int64, error)
	GetCommentCountsByPostIDs(postIDs []string) (map[string]int64, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentsByPostID retrieves a post's comments, oldest first
func (r *PostgresCommentRepository) GetCommentsByPostID(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCommentsCountByPostID retrieves the number of comments on a post
func (r *PostgresCommentRepository) GetCommentsCountByPostID(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetCommentCountsByPostIDs retrieves comment counts for a set of posts in one
// grouped query, for feed annotation
func (r *PostgresCommentRepository) GetCommentCountsByPostIDs(postIDs []string) (map[string]int64, error) {
	type row struct {
		PostID string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&models.Comment{}).
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
