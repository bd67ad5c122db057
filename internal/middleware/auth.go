package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hntruong/quizdeck/internal/dto"
	"github.com/hntruong/quizdeck/internal/service"
)

const identityKey = "auth_identity"

// RequireAuth verifies the bearer token and attaches the caller's identity to
// the request context. Banned accounts are refused here, before any handler runs.
func RequireAuth(auth service.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing bearer token"})
			return
		}

		identity, err := auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			if errors.Is(err, service.ErrUserBanned) {
				ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Account is banned"})
				return
			}
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		ctx.Set(identityKey, *identity)
		ctx.Next()
	}
}

// RequireAdmin rejects non-admin callers. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		identity, ok := CurrentIdentity(ctx)
		if !ok || !identity.IsAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Admin access required"})
			return
		}
		ctx.Next()
	}
}

// CurrentIdentity returns the identity set by RequireAuth.
func CurrentIdentity(ctx *gin.Context) (service.Identity, bool) {
	value, exists := ctx.Get(identityKey)
	if !exists {
		return service.Identity{}, false
	}
	identity, ok := value.(service.Identity)
	return identity, ok
}
