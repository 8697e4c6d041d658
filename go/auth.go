package cartserver

import (
	"strings"

	"github.com/gin-gonic/gin"

	sessionports "github.com/Apurer/cartsync/internal/domains/sessions/ports"
)

const userIDKey = "cartserver.userID"

// BearerAuth resolves the Authorization header to a user id. Missing or
// unknown tokens are rejected with 401 and detail "invalid token".
func BearerAuth(sessions sessionports.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c)
			return
		}
		userID, err := sessions.Authenticate(c.Request.Context(), token)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}
