package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUserKey holds the authenticated user name in the gin context.
const ContextUserKey = "desktop_user"

// TokenVerifier resolves a login token to its user.
type TokenVerifier interface {
	Verify(token string) (string, bool)
}

// RequireLogin rejects requests without a valid bearer token. The stream endpoint
// may pass the token as a "token" query parameter instead. Paths in public are
// always allowed.
func RequireLogin(verifier TokenVerifier, public ...string) gin.HandlerFunc {
	open := make(map[string]struct{}, len(public))
	for _, p := range public {
		open[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := open[c.FullPath()]; ok || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		token := BearerToken(c)
		user, ok := verifier.Verify(token)
		if token == "" || !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "login required",
			})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// BearerToken returns the request's bearer token, falling back to the "token" query
// parameter.
func BearerToken(c *gin.Context) string {
	if token := bearerToken(c.GetHeader("Authorization")); token != "" {
		return token
	}
	return c.Query("token")
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
