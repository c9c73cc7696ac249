package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	identityapp "github.com/tornado/portal/internal/application/identity"
	"github.com/tornado/portal/internal/domain/identity"
	"github.com/tornado/portal/internal/infrastructure/auth"
	"github.com/tornado/portal/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	// ActorKey is the gin context key holding the resolved actor
	ActorKey = "actor"

	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// Auth validates the bearer token and resolves the acting user into an
// identity.Actor for downstream handlers. The actor is rebuilt from the
// database on every request so deactivated accounts and membership changes
// take effect before the token expires.
func Auth(jwtService *auth.JWTService, authService *identityapp.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderKey)
		if header == "" {
			abortUnauthorized(c, "UNAUTHORIZED", "Authentication required")
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "INVALID_TOKEN", "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(header, bearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, "INVALID_TOKEN", "Missing token")
			return
		}

		claims, err := jwtService.Validate(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, "TOKEN_EXPIRED", "Token has expired")
				return
			}
			abortUnauthorized(c, "INVALID_TOKEN", "Invalid token")
			return
		}

		userID, err := claims.GetUserUUID()
		if err != nil {
			abortUnauthorized(c, "INVALID_TOKEN", "Invalid token")
			return
		}

		actor, err := authService.ResolveActor(c.Request.Context(), userID)
		if err != nil {
			logger.Debug("actor resolution failed",
				zap.String("user_id", userID.String()),
				zap.Error(err))
			abortUnauthorized(c, "UNAUTHORIZED", "Authentication required")
			return
		}

		c.Set(ActorKey, actor)
		c.Next()
	}
}

// GetActor retrieves the resolved actor from gin.Context
func GetActor(c *gin.Context) (identity.Actor, bool) {
	value, exists := c.Get(ActorKey)
	if !exists {
		return identity.Actor{}, false
	}
	actor, ok := value.(identity.Actor)
	return actor, ok
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}
