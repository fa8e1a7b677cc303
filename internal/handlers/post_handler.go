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

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository    repositories.PostRepository
	userRepository    repositories.UserRepository
	likeRepository    repositories.LikeRepository
	commentRepository repositories.CommentRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		userRepository:    userRepo,
		likeRepository:    likeRepo,
		commentRepository: commentRepo,
	}
}

// RegisterPublicRoutes registers post routes that need no authentication
func (h *PostHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/posts", h.GetPosts)
}

// RegisterPostRoutes registers authenticated post routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/mine", h.GetMyPosts)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post and bumps the author's post counter. The
// counter update is best-effort: its failure is logged, the post stands.
func (h *PostHandler) CreatePost(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post := &models.Post{
		UserID:      user.ID,
		Type:        req.Type,
		Content:     req.Content,
		Tags:        req.Tags,
		Link:        req.Link,
		IsAnonymous: req.IsAnonymous,
	}
	// Anonymous posts carry no display-name binding to the author.
	if !req.IsAnonymous {
		post.Name = req.Name
		if post.Name == "" {
			post.Name = user.Name
		}
	}

	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create post")
	}

	if err := h.userRepository.IncrementPostCount(user.ID); err != nil {
		log.Printf("posts: failed to increment post_count for user %s: %v", user.ID, err)
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPosts returns the public feed: every post, newest first, annotated with
// the author's live name/avatar (anonymized for anonymous posts) and current
// like/comment counts.
func (h *PostHandler) GetPosts(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch posts")
	}

	postIDs := make([]string, len(posts))
	authorIDs := make(map[string]bool)
	for i, p := range posts {
		postIDs[i] = p.ID
		if !p.IsAnonymous {
			authorIDs[p.UserID] = true
		}
	}

	userMap := make(map[string]*models.User, len(authorIDs))
	for uid := range authorIDs {
		if u, err := h.userRepository.GetUserByID(uid); err == nil {
			userMap[uid] = u
		}
	}

	likeCounts := map[string]int64{}
	commentCounts := map[string]int64{}
	if len(postIDs) > 0 {
		if likeCounts, err = h.likeRepository.GetLikeCountsByPostIDs(postIDs); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch like counts")
		}
		if commentCounts, err = h.commentRepository.GetCommentCountsByPostIDs(postIDs); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch comment counts")
		}
	}

	feed := make([]models.FeedPost, len(posts))
	for i, p := range posts {
		fp := models.FeedPost{
			Post:         p,
			AuthorName:   "Anonymous",
			LikeCount:    likeCounts[p.ID],
			CommentCount: commentCounts[p.ID],
		}
		if p.IsAnonymous {
			// The feed must not reveal who an anonymous author is.
			fp.Post.UserID = ""
		} else {
			if u, ok := userMap[p.UserID]; ok {
				fp.AuthorName = u.Name
				fp.AvatarURL = u.AvatarURL
			} else {
				fp.AuthorName = "User"
			}
		}
		feed[i] = fp
	}

	return c.JSON(http.StatusOK, echo.Map{"posts": feed})
}

// GetMyPosts returns the authenticated user's posts, newest first
func (h *PostHandler) GetMyPosts(c echo.Context) error {
	user := middleware.CurrentUser(c)

	posts, err := h.postRepository.GetPostsByUserID(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch posts")
	}

	return c.JSON(http.StatusOK, echo.Map{"posts": posts})
}

// loadOwnedPost fetches a post for mutation by its owner. A missing post and
// someone else's post get the same 403, so callers cannot probe for existence.
func (h *PostHandler) loadOwnedPost(c echo.Context, postID string) (*models.Post, error) {
	user := middleware.CurrentUser(c)

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusForbidden, "Post not found or not yours")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch post")
	}
	if post.UserID != user.ID {
		return nil, echo.NewHTTPError(http.StatusForbidden, "Post not found or not yours")
	}
	return post, nil
}

// UpdatePost updates the content/tags of an owned post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.loadOwnedPost(c, c.Param("id"))
	if err != nil {
		return err
	}

	post.Content = req.Content
	post.Tags = req.Tags

	if err := h.postRepository.UpdatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update post")
	}

	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes an owned post and lowers the author's post counter
func (h *PostHandler) DeletePost(c echo.Context) error {
	post, err := h.loadOwnedPost(c, c.Param("id"))
	if err != nil {
		return err
	}

	if err := h.postRepository.DeletePost(post.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete post")
	}

	if err := h.userRepository.DecrementPostCount(post.UserID); err != nil {
		log.Printf("posts: failed to decrement post_count for user %s: %v", post.UserID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted successfully"})
}
