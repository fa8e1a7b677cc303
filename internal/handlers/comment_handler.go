package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/studence/backend/internal/middleware"
	"github.com/studence/backend/internal/models"
	"github.com/studence/backend/internal/repositories"
	"gorm.io/gorm"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository      repositories.CommentRepository
	postRepository         repositories.PostRepository
	notificationRepository repositories.NotificationRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, notifRepo repositories.NotificationRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository:      commentRepo,
		postRepository:         postRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterPublicRoutes registers comment routes that need no authentication
func (h *CommentHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/posts/:id/comments", h.GetCommentsByPostID)
	g.GET("/posts/:id/comments/count", h.GetCommentsCountForPost)
}

// RegisterCommentRoutes registers authenticated comment routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment)
}

// CreateComment adds a comment to a post and notifies the post owner unless
// they commented themselves. The notification is best-effort; the comment is
// never rolled back over it.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	user := middleware.CurrentUser(c)
	postID := c.Param("id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Content) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Comment content cannot be empty")
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch post")
	}

	comment := &models.Comment{
		PostID:      postID,
		Content:     req.Content,
		IsAnonymous: req.IsAnonymous,
	}
	if !req.IsAnonymous {
		userID := user.ID
		comment.UserID = &userID
		comment.Name = user.Name
		comment.AvatarURL = user.AvatarURL
	}

	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add comment")
	}

	if post.UserID != user.ID {
		commenter := "Someone"
		var senderID *string
		if !req.IsAnonymous {
			commenter = user.Name
			id := user.ID
			senderID = &id
		}
		notification := &models.Notification{
			Type:        models.NotificationTypeComment,
			RecipientID: post.UserID,
			SenderID:    senderID,
			PostID:      postID,
			CommentID:   &comment.ID,
			Message:     commenter + " commented on " + postPreview(post.Content) + ": \"" + truncate(req.Content, previewLimit) + "\"",
		}
		if err := h.notificationRepository.CreateNotification(notification); err != nil {
			log.Printf("comments: failed to create notification for post %s: %v", postID, err)
		}
	}

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsByPostID returns a post's comments, oldest first
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID := c.Param("id")

	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch post")
	}

	comments, err := h.commentRepository.GetCommentsByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch comments")
	}

	return c.JSON(http.StatusOK, comments)
}

// GetCommentsCountForPost returns the current number of comments on a post,
// recomputed per call
func (h *CommentHandler) GetCommentsCountForPost(c echo.Context) error {
	postID := c.Param("id")

	count, err := h.commentRepository.GetCommentsCountByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count comments")
	}

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}
