package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Auth guards the data routes. The expected scheme is "Bearer <token>";
// a bare token is tolerated for older clients that sent "Token <t>" or
// no scheme at all.
func Auth(jwtKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if raw == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		tokenStr := raw
		for _, scheme := range []string{"Bearer ", "Token "} {
			if strings.HasPrefix(raw, scheme) {
				tokenStr = strings.TrimPrefix(raw, scheme)
				break
			}
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtKey), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set("user", token.Claims)
	}
}
