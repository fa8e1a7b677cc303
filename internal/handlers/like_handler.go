package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/studence/backend/internal/middleware"
	"github.com/studence/backend/internal/models"
	"github.com/studence/backend/internal/repositories"
	"gorm.io/gorm"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository         repositories.LikeRepository
	postRepository         repositories.PostRepository
	notificationRepository repositories.NotificationRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, postRepo repositories.PostRepository, notifRepo repositories.NotificationRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository:         likeRepo,
		postRepository:         postRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterPublicRoutes registers like routes that need no authentication
func (h *LikeHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/posts/:id/likes/count", h.GetLikesCountForPost)
}

// RegisterLikeRoutes registers authenticated like routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.ToggleLike)
}

// RegisterOptionalAuthRoutes registers routes that answer for both
// authenticated and anonymous callers
func (h *LikeHandler) RegisterOptionalAuthRoutes(g *echo.Group) {
	g.GET("/posts/:id/like-status", h.GetLikeStatus)
}

// ToggleLike likes a post if the user hasn't, unlikes it if they have, and
// returns the resulting state. Liking someone else's post notifies the owner;
// unliking never does.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	user := middleware.CurrentUser(c)
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch post")
	}

	hasLiked, err := h.likeRepository.HasUserLikedPost(postID, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check like status")
	}

	if hasLiked {
		if _, err := h.likeRepository.DeleteLike(postID, user.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to unlike post")
		}
		return c.JSON(http.StatusOK, echo.Map{"liked": false})
	}

	like := &models.Like{PostID: postID, UserID: user.ID}
	if err := h.likeRepository.CreateLike(like); err != nil {
		// A concurrent toggle won the race; the unique index is authoritative
		// and the racing request owns the notification.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusOK, echo.Map{"liked": true})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to like post")
	}

	if post.UserID != user.ID {
		senderID := user.ID
		notification := &models.Notification{
			Type:        models.NotificationTypeLike,
			RecipientID: post.UserID,
			SenderID:    &senderID,
			PostID:      postID,
			Message:     user.Name + " liked " + postPreview(post.Content),
		}
		if err := h.notificationRepository.CreateNotification(notification); err != nil {
			log.Printf("likes: failed to create notification for post %s: %v", postID, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"liked": true})
}

// GetLikeStatus reports whether the caller has liked a post; unauthenticated
// callers simply get false.
func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	postID := c.Param("id")

	user := middleware.CurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusOK, echo.Map{"liked": false})
	}

	liked, err := h.likeRepository.HasUserLikedPost(postID, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check like status")
	}

	return c.JSON(http.StatusOK, echo.Map{"liked": liked})
}

// GetLikesCountForPost returns the current number of likes on a post,
// recomputed per call
func (h *LikeHandler) GetLikesCountForPost(c echo.Context) error {
	postID := c.Param("id")

	count, err := h.likeRepository.GetLikesCountByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count likes")
	}

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}
