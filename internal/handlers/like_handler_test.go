package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studence/backend/internal/models"
)

func (env *testEnv) toggleLike(t *testing.T, user *models.User, postID string) map[string]any {
	t.Helper()
	c, rec := env.newContext(http.MethodPost, "/posts/"+postID+"/like", nil, user)
	c.SetParamNames("id")
	c.SetParamValues(postID)
	require.NoError(t, env.likeHandler.ToggleLike(c))
	return decodeBody(t, rec)
}

func (env *testEnv) likeCount(t *testing.T, postID string) float64 {
	t.Helper()
	c, rec := env.newContext(http.MethodGet, "/posts/"+postID+"/likes/count", nil, nil)
	c.SetParamNames("id")
	c.SetParamValues(postID)
	require.NoError(t, env.likeHandler.GetLikesCountForPost(c))
	return decodeBody(t, rec)["count"].(float64)
}

func TestToggleLikeTwiceRoundTrips(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "uid-a", "Alice")
	bob := env.createUser(t, "uid-b", "Bob")
	post := env.createPost(t, alice, models.PostTypeQuestion, "Need DSA help")

	assert.Equal(t, float64(0), env.likeCount(t, post.ID))

	body := env.toggleLike(t, bob, post.ID)
	assert.Equal(t, true, body["liked"])
	assert.Equal(t, float64(1), env.likeCount(t, post.ID))

	body = env.toggleLike(t, bob, post.ID)
	assert.Equal(t, false, body["liked"])
	assert.Equal(t, float64(0), env.likeCount(t, post.ID))
}

func TestLikeNotifiesPostOwnerOnce(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "uid-a", "Alice")
	bob := env.createUser(t, "uid-b", "Bob")
	post := env.createPost(t, alice, models.PostTypeQuestion, "Need DSA help")

	env.toggleLike(t, bob, post.ID)

	notifications, err := env.notifications.GetByRecipientID(alice.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	n := notifications[0]
	assert.Equal(t, models.NotificationTypeLike, n.Type)
	require.NotNil(t, n.SenderID)
	assert.Equal(t, bob.ID, *n.SenderID)
	assert.Equal(t, post.ID, n.PostID)
	assert.False(t, n.IsRead)
	assert.Contains(t, n.Message, "Bob liked")
	assert.Contains(t, n.Message, "Need DSA help")

	// Unlike must not notify.
	env.toggleLike(t, bob, post.ID)
	notifications, err = env.notifications.GetByRecipientID(alice.ID)
	require.NoError(t, err)
	assert.Len(t, notifications, 1)
}

func TestSelfLikeCreatesNoNotification(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "uid-a", "Alice")
	post := env.createPost(t, alice, models.PostTypeQuestion, "self service")

	body := env.toggleLike(t, alice, post.ID)
	assert.Equal(t, true, body["liked"])

	notifications, err := env.notifications.GetByRecipientID(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestLikePreviewTruncatesLongContent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "uid-a", "Alice")
	bob := env.createUser(t, "uid-b", "Bob")
	long := strings.Repeat("x", 80)
	post := env.createPost(t, alice, models.PostTypeQuestion, long)

	env.toggleLike(t, bob, post.ID)

	notifications, err := env.notifications.GetByRecipientID(alice.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, strings.Repeat("x", 50)+"...")
	assert.NotContains(t, notifications[0].Message, strings.Repeat("x", 51))
}

func TestLikePreviewFallsBackForEmptyContent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "uid-a", "Alice")
	bob := env.createUser(t, "uid-b", "Bob")
	post := env.createPost(t, alice, models.PostTypeResource, "")

	env.toggleLike(t, bob, post.ID)

	notifications, err := env.notifications.GetByRecipientID(alice.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, "your post")
}

func TestToggleLikeMissingPostNotFound(t *testing.T) {
	env := newTestEnv(t)
	bob := env.createUser(t, "uid-b", "Bob")

	c, _ := env.newContext(http.MethodPost, "/posts/no-such-post/like", nil, bob)
	c.SetParamNames("id")
	c.SetParamValues("no-such-post")

	err := env.likeHandler.ToggleLike(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestLikeStatusForUnauthenticatedCaller(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "uid-a", "Alice")
	post := env.createPost(t, alice, models.PostTypeQuestion, "hello")

	c, rec := env.newContext(http.MethodGet, "/posts/"+post.ID+"/like-status", nil, nil)
	c.SetParamNames("id")
	c.SetParamValues(post.ID)
	require.NoError(t, env.likeHandler.GetLikeStatus(c))
	assert.Equal(t, false, decodeBody(t, rec)["liked"])
}

func TestLikeStatusReflectsToggle(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "uid-a", "Alice")
	bob := env.createUser(t, "uid-b", "Bob")
	post := env.createPost(t, alice, models.PostTypeQuestion, "hello")

	env.toggleLike(t, bob, post.ID)

	c, rec := env.newContext(http.MethodGet, "/posts/"+post.ID+"/like-status", nil, bob)
	c.SetParamNames("id")
	c.SetParamValues(post.ID)
	require.NoError(t, env.likeHandler.GetLikeStatus(c))
	assert.Equal(t, true, decodeBody(t, rec)["liked"])
}
