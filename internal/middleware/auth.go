package middleware

import (
	"log"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/studence/backend/internal/models"
	"github.com/studence/backend/internal/repositories"
)

const currentUserKey = "currentUser"

// CurrentUser returns the authenticated user set by the auth middleware, or
// nil when the request is unauthenticated (possible on optional-auth routes).
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(currentUserKey).(*models.User)
	return user
}

// SetCurrentUser stores the authenticated user on the request context.
// Exposed for handler tests that bypass token verification.
func SetCurrentUser(c echo.Context, user *models.User) {
	c.Set(currentUserKey, user)
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}

// resolveUser verifies the Firebase ID token and upserts the matching user
// row, so the users table is synced with Firebase Auth on first sight.
func resolveUser(c echo.Context, authClient *auth.Client, userRepo repositories.UserRepository, idToken string) (*models.User, error) {
	token, err := authClient.VerifyIDToken(c.Request().Context(), idToken)
	if err != nil {
		return nil, err
	}

	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)
	if name == "" && email != "" {
		name = strings.Split(email, "@")[0]
	}

	user := &models.User{
		ID:        token.UID,
		Email:     email,
		Name:      name,
		AvatarURL: picture,
	}
	if err := userRepo.UpsertUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// RequireAuth verifies the bearer token and rejects unauthenticated requests
func RequireAuth(authClient *auth.Client, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			idToken, ok := bearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing or malformed Authorization header")
			}

			user, err := resolveUser(c, authClient, userRepo, idToken)
			if err != nil {
				log.Printf("auth: token rejected: %v", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			SetCurrentUser(c, user)
			return next(c)
		}
	}
}

// OptionalAuth resolves the user when a valid bearer token is present and
// continues anonymously otherwise. Used by routes like like-status that answer
// for unauthenticated callers too.
func OptionalAuth(authClient *auth.Client, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if idToken, ok := bearerToken(c); ok {
				if user, err := resolveUser(c, authClient, userRepo, idToken); err == nil {
					SetCurrentUser(c, user)
				}
			}
			return next(c)
		}
	}
}
