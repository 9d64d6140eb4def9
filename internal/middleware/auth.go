package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"clima-be/internal/jwt"
)

// Keys under which the authenticated identity is stored in the gin context.
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
)

const (
	msgTokenRequired = "Token requerido"
	msgTokenInvalid  = "Token inválido o expirado"
)

// AuthMiddleware requires a valid bearer token. A missing token is 403, a
// bad or expired one is 401.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": msgTokenRequired,
			})
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": msgTokenInvalid,
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}
