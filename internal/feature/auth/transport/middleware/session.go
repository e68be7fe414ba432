// Package middleware provides the session gate for routes that require a
// logged-in patient.
package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"patient_backend/internal/feature/auth/domain/entity"
)

// SessionCookieName is the name of the HTTP-only cookie carrying the session token.
const SessionCookieName = "patient_session"

// ContextSession is the gin context key under which the current session is stored.
const ContextSession = "session"

// SessionReader looks up the server-side session state for a token.
// Following Go convention: the interface is defined by the consumer (middleware), not the provider (usecase).
type SessionReader interface {
	// CurrentSession returns the active session for the token, or an error
	// when the token is unknown or expired.
	CurrentSession(ctx context.Context, token string) (*entity.Session, error)
}

// SessionRequired returns a Gin middleware function that restricts access to
// requests carrying a valid session cookie. It is a pure gate: it performs
// the lookup and either aborts with 401 or stores the session in the context.
func SessionRequired(sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get the session cookie
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}

		// 2. Resolve the token to server-side session state
		session, err := sessions.CurrentSession(c.Request.Context(), token)
		if err != nil {
			// Unknown, expired, or store failure: deny without detail
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}

		// 3. Expose the projection to downstream handlers
		c.Set(ContextSession, session)
		c.Next()
	}
}

// SessionFromContext returns the session stored by SessionRequired, or nil
// when the request is anonymous.
func SessionFromContext(c *gin.Context) *entity.Session {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil
	}
	session, ok := v.(*entity.Session)
	if !ok {
		return nil
	}
	return session
}
