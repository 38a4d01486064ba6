// Package middleware carries the cross-cutting HTTP concerns,
// bearer token authentication, role checks and rate limiting.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/entity"
	domainerror "github.com/minn-platform/backend/internal/domain/error"
	"github.com/minn-platform/backend/internal/integration/entrypoint/dto"
)

// ContextKey types the keys the middleware stores identity under.
type ContextKey string

// Keys under which Authenticate stores the verified identity.
const (
	UserIDKey    ContextKey = "user_id"
	UserEmailKey ContextKey = "user_email"
	UserRoleKey  ContextKey = "user_role"
)

// AuthMiddleware guards routes behind bearer token checks.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware builds the guard around the token verifier.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenService: tokenService}
}

// Authenticate returns a handler that admits only requests carrying a valid
// access token, and stores the token's identity in the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, failure := bearerToken(c.GetHeader("Authorization"))
		if failure != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, *failure)
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			// An expired token reports its own code so clients know to
			// refresh instead of re-authenticating.
			code := domainerror.ErrCodeInvalidToken
			var authErr *domainerror.AuthError
			if errors.As(err, &authErr) {
				code = authErr.Code
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  string(code),
			})
			return
		}

		c.Set(string(UserIDKey), claims.UserID)
		c.Set(string(UserEmailKey), claims.Email)
		c.Set(string(UserRoleKey), claims.Role)

		c.Next()
	}
}

// RequireRole returns a handler that allows only the given roles past.
// It must run after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRoleFromContext(c)
		if ok {
			for _, allowed := range roles {
				if role == allowed {
					c.Next()
					return
				}
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
			Error: "Insufficient permissions",
			Code:  string(domainerror.ErrCodeForbidden),
		})
	}
}

// bearerToken extracts the token from an Authorization header. The missing
// and malformed cases answer with distinct messages but the same status.
func bearerToken(header string) (string, *dto.ErrorResponse) {
	if header == "" {
		return "", &dto.ErrorResponse{
			Error: "Authorization header is required",
			Code:  string(domainerror.ErrCodeMissingToken),
		}
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", &dto.ErrorResponse{
			Error: "Invalid authorization header format",
			Code:  string(domainerror.ErrCodeInvalidToken),
		}
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", &dto.ErrorResponse{
			Error: "Token is required",
			Code:  string(domainerror.ErrCodeMissingToken),
		}
	}
	return token, nil
}

// GetUserEmailFromContext reads the authenticated email, if any.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(string(UserEmailKey))
	if !exists {
		return "", false
	}
	emailStr, ok := email.(string)
	return emailStr, ok
}

// GetUserRoleFromContext reads the authenticated role, if any.
func GetUserRoleFromContext(c *gin.Context) (entity.Role, bool) {
	role, exists := c.Get(string(UserRoleKey))
	if !exists {
		return "", false
	}
	roleValue, ok := role.(entity.Role)
	return roleValue, ok
}
