package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Identity returns a middleware that resolves the caller identity used
// for audit stamping. No request is rejected: the identity is an opaque
// string, not an authorization decision. Resolution order:
//
//  1. the subject claim of a valid Bearer token, when a JWT secret is
//     configured and the surrounding system sends one
//  2. the X-User-Id header
//  3. the configured default user
func Identity(jwtSecret, defaultUser string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := defaultUser

		if header := c.GetHeader("X-User-Id"); header != "" {
			identity = header
		}

		if jwtSecret != "" {
			if sub := subjectFromBearer(c.GetHeader("Authorization"), jwtSecret); sub != "" {
				identity = sub
			}
		}

		c.Set("current_user", identity)
		c.Next()
	}
}

// subjectFromBearer parses the Bearer token and returns its subject
// claim, or empty when the token is missing or does not verify.
func subjectFromBearer(authHeader, jwtSecret string) string {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}

	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	if uid, ok := claims["user_id"].(string); ok {
		return uid
	}
	return ""
}
