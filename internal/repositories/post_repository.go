package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/studence/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id string) (*models.Post, error)
	GetAllPosts() ([]models.Post, error)
	GetPostsByUserID(userID string) ([]models.Post, error)
	UpdatePost(post *models.Post) error
	DeletePost(id string) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post with a fresh UUID
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	post.ID = uuid.NewString()
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by ID
func (r *PostgresPostRepository) GetPostByID(id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves every post, newest first
func (r *PostgresPostRepository) GetAllPosts() ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByUserID retrieves a user's posts, newest first
func (r *PostgresPostRepository) GetPostsByUserID(userID string) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost persists the mutable fields of an existing post
func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	post.UpdatedAt = time.Now()
	return r.db.Model(post).Select("content", "tags", "updated_at").Updates(post).Error
}

// DeletePost deletes a post by ID
func (r *PostgresPostRepository) DeletePost(id string) error {
	res := r.db.Where("id = ?", id).Delete(&models.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
