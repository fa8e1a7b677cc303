package repositories

import (
	"github.com/studence/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	UpsertUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	UpdateUser(user *models.User) error
	IncrementPostCount(userID string) error
	DecrementPostCount(userID string) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// UpsertUser creates the user row on first sight of a verified token. An
// existing row is left untouched so profile edits are not clobbered by login.
func (r *PostgresUserRepository) UpsertUser(user *models.User) error {
	return r.db.Where("id = ?", user.ID).FirstOrCreate(user).Error
}

// GetUserByID retrieves a user by Firebase UID
func (r *PostgresUserRepository) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing user
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// IncrementPostCount bumps the denormalized post counter in a single UPDATE
// statement, so concurrent posts by the same author cannot lose updates.
func (r *PostgresUserRepository) IncrementPostCount(userID string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("post_count", gorm.Expr("post_count + 1")).Error
}

// DecrementPostCount lowers the counter atomically, floored at zero.
func (r *PostgresUserRepository) DecrementPostCount(userID string) error {
	return r.db.Model(&models.User{}).Where("id = ? AND post_count > 0", userID).
		Update("post_count", gorm.Expr("post_count - 1")).Error
}
