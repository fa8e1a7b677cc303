package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/studence/backend/internal/middleware"
	"github.com/studence/backend/internal/models"
	"github.com/studence/backend/internal/repositories"
	"github.com/studence/backend/validators"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the real repositories and handlers over an in-memory SQLite
// database, so handler tests exercise the same SQL paths as production.
type testEnv struct {
	db            *gorm.DB
	echo          *echo.Echo
	users         repositories.UserRepository
	posts         repositories.PostRepository
	likes         repositories.LikeRepository
	comments      repositories.CommentRepository
	notifications repositories.NotificationRepository

	postHandler         *PostHandler
	likeHandler         *LikeHandler
	commentHandler      *CommentHandler
	notificationHandler *NotificationHandler
	userHandler         *UserHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection to :memory: would see an empty database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
	))

	env := &testEnv{
		db:            db,
		echo:          echo.New(),
		users:         repositories.NewPostgresUserRepository(db),
		posts:         repositories.NewPostgresPostRepository(db),
		likes:         repositories.NewPostgresLikeRepository(db),
		comments:      repositories.NewPostgresCommentRepository(db),
		notifications: repositories.NewPostgresNotificationRepository(db),
	}
	env.echo.Validator = validators.NewValidator()

	env.postHandler = NewPostHandler(env.posts, env.users, env.likes, env.comments)
	env.likeHandler = NewLikeHandler(env.likes, env.posts, env.notifications)
	env.commentHandler = NewCommentHandler(env.comments, env.posts, env.notifications)
	env.notificationHandler = NewNotificationHandler(env.notifications)
	env.userHandler = NewUserHandler(env.users)

	return env
}

// createUser inserts a user row and returns it
func (env *testEnv) createUser(t *testing.T, id, name string) *models.User {
	t.Helper()
	user := &models.User{
		ID:        id,
		Email:     id + "@campus.edu",
		Name:      name,
		AvatarURL: "https://cdn.example.com/" + id + ".png",
	}
	require.NoError(t, env.users.UpsertUser(user))
	return user
}

// createPost inserts a post authored by user and returns it
func (env *testEnv) createPost(t *testing.T, user *models.User, postType, content string) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:  user.ID,
		Type:    postType,
		Content: content,
		Name:    user.Name,
	}
	require.NoError(t, env.posts.CreatePost(post))
	require.NoError(t, env.users.IncrementPostCount(user.ID))
	return post
}

// newContext builds an echo context for a direct handler invocation. user may
// be nil for unauthenticated requests; body may be nil for requests without a
// payload.
func (env *testEnv) newContext(method, path string, body any, user *models.User) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = strings.NewReader(string(encoded))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)
	if user != nil {
		middleware.SetCurrentUser(c, user)
	}
	return c, rec
}

// decodeBody unmarshals a recorded JSON response into a generic map
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// httpCode extracts the status code from a handler error
func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

// postCount reads the denormalized counter straight from the users table
func (env *testEnv) postCount(t *testing.T, userID string) int {
	t.Helper()
	user, err := env.users.GetUserByID(userID)
	require.NoError(t, err)
	return user.PostCount
}
