package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fitlife-app/membership-service/internal/auth"
	"github.com/fitlife-app/membership-service/internal/models"
	"github.com/fitlife-app/membership-service/internal/repositories"
)

// JWTAuthMiddleware authenticates requests with locally signed bearer
// tokens and backs the role gates with fresh store reads.
type JWTAuthMiddleware struct {
	tokens   *auth.TokenService
	userRepo repositories.UserRepository
}

// NewJWTAuthMiddleware creates the authentication middleware.
func NewJWTAuthMiddleware(tokens *auth.TokenService, userRepo repositories.UserRepository) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{
		tokens:   tokens,
		userRepo: userRepo,
	}
}

// Authenticate returns a Gin middleware validating the bearer token. It is
// pure verification: no store access, a bad token is a terminal 401.
func (am *JWTAuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "unauthorized access",
			})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "unauthorized access",
			})
			c.Abort()
			return
		}

		claims, err := am.tokens.Parse(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "unauthorized access",
			})
			c.Abort()
			return
		}

		c.Set("user_email", claims.Email)
		c.Set("user_claims", claims)

		c.Next()
	}
}

// RequireRole resolves the authenticated identity's role from the user
// store and rejects with 403 unless it is in the allowed set. The role is
// re-read per request: a mid-session promotion or demotion takes effect
// immediately. A missing user record resolves to denial, not an error.
// Must run after Authenticate.
func (am *JWTAuthMiddleware) RequireRole(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := GetEmailFromContext(c)
		if err != nil {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "forbidden access",
			})
			c.Abort()
			return
		}

		user, err := am.userRepo.GetByEmail(c.Request.Context(), email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Message: "Failed to resolve role",
				Details: err.Error(),
			})
			c.Abort()
			return
		}

		if user == nil || !roleAllowed(user.Role, allowed) {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "forbidden access",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin gates a route to admins.
func (am *JWTAuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return am.RequireRole(models.RoleAdmin)
}

// RequireTrainer gates a route to trainers.
func (am *JWTAuthMiddleware) RequireTrainer() gin.HandlerFunc {
	return am.RequireRole(models.RoleTrainer)
}

// RequireSelf rejects with 403 unless the email named by the path
// parameter exactly equals the authenticated email. Prevents one user
// from probing another's role. Must run after Authenticate.
func (am *JWTAuthMiddleware) RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := GetEmailFromContext(c)
		if err != nil || c.Param(param) != email {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "forbidden access",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func roleAllowed(role models.Role, allowed []models.Role) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

// GetEmailFromContext extracts the authenticated email from Gin context.
func GetEmailFromContext(c *gin.Context) (string, error) {
	value, exists := c.Get("user_email")
	if !exists {
		return "", fmt.Errorf("email not found in context")
	}

	email, ok := value.(string)
	if !ok || email == "" {
		return "", fmt.Errorf("invalid email in context")
	}

	return email, nil
}

// GetClaimsFromContext extracts the decoded token claims from Gin context.
func GetClaimsFromContext(c *gin.Context) (*auth.Claims, error) {
	value, exists := c.Get("user_claims")
	if !exists {
		return nil, fmt.Errorf("claims not found in context")
	}

	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil, fmt.Errorf("invalid claims type in context")
	}

	return claims, nil
}
