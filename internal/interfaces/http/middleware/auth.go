package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"subplane/internal/infrastructure/auth"
	"subplane/internal/shared/logger"
	"subplane/internal/shared/utils"
)

type AuthMiddleware struct {
	verifier *auth.TokenVerifier
	adminIDs map[string]bool
	logger   logger.Interface
}

func NewAuthMiddleware(verifier *auth.TokenVerifier, adminUserIDs []string, log logger.Interface) *AuthMiddleware {
	adminIDs := make(map[string]bool, len(adminUserIDs))
	for _, id := range adminUserIDs {
		adminIDs[id] = true
	}
	return &AuthMiddleware{
		verifier: verifier,
		adminIDs: adminIDs,
		logger:   log,
	}
}

// RequireAuth verifies the bearer token and places the caller's identity
// in the request context. Every failure mode is the same opaque 401.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID())
		c.Set("plan", claims.Plan)
		c.Set("email", claims.Email)
		c.Set("is_admin", m.adminIDs[claims.UserID()])

		c.Next()
	}
}

// RequireAdmin gates a route on the configured admin allow-list. Must run
// after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_admin") {
			utils.ErrorResponse(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
