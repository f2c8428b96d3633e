package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"userinfo-service/internal/infrastructure/jwt"
)

const (
	CtxSubject     = "subject"
	CtxAuthorities = "authorities"
)

// AuthMiddleware admits any caller holding a valid bearer token.
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing Authorization header"},
			)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader || tokenStr == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token format"},
			)
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}

		c.Set(CtxSubject, claims.Subject)
		c.Set(CtxAuthorities, claims.Auth)

		c.Next()
	}
}
