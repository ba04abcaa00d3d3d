package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rcifuentes/caja-api/internal/infrastructure/posclient"
	"github.com/rcifuentes/caja-api/internal/presentation/http/dto/response"
	"github.com/rcifuentes/caja-api/pkg/apperror"
	"github.com/rcifuentes/caja-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware. Tokens are minted
// by the back office with the shared secret; on success the cashier's token
// is also placed on the request context so calls to the sale service run
// under the same identity.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := parts[1]

		// Validate the token
		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Error(c, apperror.ErrTokenExpired)
			} else {
				response.Error(c, apperror.ErrInvalidToken)
			}
			c.Abort()
			return
		}

		// Set cashier info in context
		c.Set("cashier_id", claims.CashierID)
		c.Set("cashier_username", claims.Username)
		c.Set("cashier_roles", claims.Roles)

		// Forward the cashier's token to outgoing sale-service calls
		c.Request = c.Request.WithContext(
			posclient.WithCashierToken(c.Request.Context(), tokenString))

		c.Next()
	}
}

// RequireRole creates a middleware that requires a specific role
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cashierRoles, exists := c.Get("cashier_roles")
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		cashierRolesList, ok := cashierRoles.([]string)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		hasRole := false
		for _, cashierRole := range cashierRolesList {
			for _, requiredRole := range roles {
				if cashierRole == requiredRole {
					hasRole = true
					break
				}
			}
			if hasRole {
				break
			}
		}

		if !hasRole {
			response.Forbidden(c, "Insufficient role privileges")
			c.Abort()
			return
		}

		c.Next()
	}
}
