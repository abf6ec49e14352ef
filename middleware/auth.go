package middleware

import (
	"context"
	"net/http"
	"strings"

	"homeserve/models"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ActorKey is the gin context key holding the verified models.Actor.
const ActorKey = "actor"

// AccountLookup loads the account behind a token subject.
type AccountLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// JWTAuthMiddleware validates the bearer token, confirms the account is still
// active and stores the caller as a models.Actor. Resolved actors are cached
// by user id when cache is non-nil.
func JWTAuthMiddleware(accounts AccountLookup, cache AuthCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ExtractClaims(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid token", err.Error())
			return
		}

		ctx := c.Request.Context()
		if cache != nil {
			if actor, ok := cache.Get(ctx, claims.Subject); ok {
				setActor(c, actor)
				c.Next()
				return
			}
		}

		account, err := accounts.GetByID(ctx, claims.Subject)
		if err != nil || account == nil {
			utils.JSONError(c, http.StatusUnauthorized, "Account not found", "")
			return
		}
		if !account.IsActive {
			utils.JSONError(c, http.StatusForbidden, "Account is disabled", "")
			return
		}

		// The stored role wins over the token claim.
		actor := models.Actor{ID: account.ID, Role: account.Role}
		if cache != nil {
			cache.Set(ctx, actor)
		}
		setActor(c, actor)
		c.Next()
	}
}

func setActor(c *gin.Context, actor models.Actor) {
	c.Set(ActorKey, actor)
	c.Set("userID", actor.ID)
	if l, ok := c.Get("logger"); ok {
		if logger, ok := l.(*zap.Logger); ok {
			c.Set("logger", logger.With(zap.String("actorID", actor.ID), zap.String("role", string(actor.Role))))
		}
	}
}

// GetActor returns the caller stored by JWTAuthMiddleware.
func GetActor(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(ActorKey)
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}

// OptionalAuth resolves the caller when a token is sent and lets anonymous
// requests through. A bad token is still rejected.
func OptionalAuth(accounts AccountLookup, cache AuthCache) gin.HandlerFunc {
	auth := JWTAuthMiddleware(accounts, cache)
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		auth(c)
	}
}
