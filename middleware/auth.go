package middleware

import (
	"catalog-backend/jwt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware extracts the session token from the httpOnly cookie or the
// Authorization header and stores UserID and Role in the request context.
// It never aborts; the gate middlewares downstream decide.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("token")
		if err != nil || token == "" {
			authHeader := c.GetHeader("Authorization")
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if token == "" {
			c.Next()
			return
		}

		userID, role, err := jwt.VerifyToken(jwtSecret, token)
		if err != nil {
			log.Printf("token verification failed: %v", err)
			c.Next()
			return
		}

		c.Set("UserID", userID)
		c.Set("Role", role)
		c.Next()
	}
}
