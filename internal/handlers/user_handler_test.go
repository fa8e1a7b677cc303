package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studence/backend/internal/models"
)

func TestGetProfileReturnsCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "uid-a", "Alice")

	c, rec := env.newContext(http.MethodGet, "/profile", nil, alice)
	require.NoError(t, env.userHandler.GetProfile(c))

	body := decodeBody(t, rec)
	assert.Equal(t, alice.ID, body["id"])
	assert.Equal(t, "Alice", body["name"])
}

func TestUpdateProfilePersistsNameAndAvatar(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "uid-a", "Alice")

	c, rec := env.newContext(http.MethodPut, "/profile", models.UpdateProfileRequest{
		Name:      "Alice Chen",
		AvatarURL: "https://cdn.example.com/new.png",
	}, alice)
	require.NoError(t, env.userHandler.UpdateProfile(c))

	body := decodeBody(t, rec)
	assert.Equal(t, "Alice Chen", body["name"])

	stored, err := env.users.GetUserByID(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Chen", stored.Name)
	assert.Equal(t, "https://cdn.example.com/new.png", stored.AvatarURL)
}

func TestUpdateProfileRejectsBadAvatarURL(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "uid-a", "Alice")

	c, _ := env.newContext(http.MethodPut, "/profile", models.UpdateProfileRequest{
		AvatarURL: "not-a-url",
	}, alice)
	err := env.userHandler.UpdateProfile(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}
