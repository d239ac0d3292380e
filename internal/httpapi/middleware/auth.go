package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dozr/sleeptrack/internal/auth"
)

const (
	SessionCookie = "session_id"

	UserIDKey    = "user_id"
	SessionIDKey = "session_key"
)

// SessionAuth resolves the session cookie to a logged-in user. The cookie
// holds a signed token wrapping the server-side session id; the id must still
// exist in the session store, so signout revokes access immediately.
func SessionAuth(secret string, sessions auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		reject := func() {
			c.AbortWithStatusJSON(http.StatusOK, gin.H{
				"success": false,
				"errors":  []string{"Invalid session"},
			})
		}

		cookie, err := c.Cookie(SessionCookie)
		if err != nil {
			reject()
			return
		}

		sid, err := auth.ParseSessionToken(cookie, secret)
		if err != nil {
			reject()
			return
		}

		userID, err := sessions.Get(c.Request.Context(), sid)
		if err != nil {
			reject()
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(SessionIDKey, sid)
		c.Next()
	}
}

func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func SessionID(c *gin.Context) (string, bool) {
	v, ok := c.Get(SessionIDKey)
	if !ok {
		return "", false
	}
	sid, ok := v.(string)
	return sid, ok && sid != ""
}
