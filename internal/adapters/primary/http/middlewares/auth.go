package middlewares

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http/response"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	userContextKey   = "auth.user"
	claimsContextKey = "auth.claims"
	bearerPrefix     = "Bearer "
)

// Authenticator проверяет токен сессии
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, *domain.TokenClaims, error)
}

// RequireAuth пропускает только запросы с действующим токеном
func RequireAuth(auth Authenticator, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "authorization required")
			return
		}

		user, claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Error(c, log, err)
			return
		}

		c.Set(userContextKey, user)
		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// OptionalAuth определяет пользователя, если токен передан.
// Недействительный токен не блокирует запрос, он обрабатывается как анонимный
func OptionalAuth(auth Authenticator, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		user, claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			log.Debug("ignoring invalid token", "error", err, "path", c.FullPath())
			c.Next()
			return
		}

		c.Set(userContextKey, user)
		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// CurrentUser пользователь запроса или nil
func CurrentUser(c *gin.Context) *domain.User {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := value.(*domain.User)
	return user
}

// CurrentClaims данные токена запроса или nil
func CurrentClaims(c *gin.Context) *domain.TokenClaims {
	value, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*domain.TokenClaims)
	return claims
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}
