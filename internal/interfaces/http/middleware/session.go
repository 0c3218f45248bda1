package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hrm/backend/internal/infrastructure/auth"
	"github.com/hrm/backend/internal/interfaces/http/dto"
)

// sessionKey is the gin context key holding the resolved caller session
const sessionKey = "session"

// SessionAuth validates the session cookie on every request except the
// listed path prefixes and stores the resolved session in the context
func SessionAuth(sessions *auth.SessionService, cookies *auth.CookieWriter, skipPrefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, prefix := range skipPrefixes {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				c.Next()
				return
			}
		}

		token := cookies.Read(c)
		if token == "" {
			abortUnauthorized(c, "Authentication required")
			return
		}

		session, err := sessions.Validate(token)
		if err != nil {
			abortUnauthorized(c, "Session is invalid or expired")
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// GetSession returns the caller session stored by SessionAuth, nil when
// the request was not authenticated
func GetSession(c *gin.Context) *auth.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	session, ok := v.(*auth.Session)
	if !ok {
		return nil
	}
	return session
}

// SetSession stores a session in the context. Exposed for handler tests.
func SetSession(c *gin.Context, session *auth.Session) {
	c.Set(sessionKey, session)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message, GetRequestID(c)))
}
