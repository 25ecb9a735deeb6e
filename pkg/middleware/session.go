package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/docsession/docsession/internal/sessions"
	"github.com/docsession/docsession/internal/tokens"
	"github.com/docsession/docsession/pkg/logger"
	"github.com/gin-gonic/gin"
)

// NotAuthorizedMessage is the body message for requests without a logged-in session.
const NotAuthorizedMessage = "401: Not Authorized"

// Identity is the per-request view of the caller's session. UserID is nil
// for anonymous callers.
type Identity struct {
	SessionID string
	UserID    *int64
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity stored in ctx, or the zero Identity.
func IdentityFrom(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey{}).(Identity)
	return id
}

// CurrentUserID returns the authenticated user id for the request.
func CurrentUserID(c *gin.Context) (int64, bool) {
	id := IdentityFrom(c.Request.Context())
	if id.UserID == nil {
		return 0, false
	}
	return *id.UserID, true
}

// SessionCookie describes how the signed session cookie is written and read.
type SessionCookie struct {
	Name   string
	Secure bool
	TTL    time.Duration
	Signer *tokens.Signer
}

// Write signs sessionID and sets it as the session cookie.
func (sc SessionCookie) Write(c *gin.Context, sessionID string) error {
	value, err := sc.Signer.Sign(sessionID, sc.TTL)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, value, int(sc.TTL.Seconds()), "/", "", sc.Secure, true)
	return nil
}

// Read returns the session id carried by a valid cookie.
func (sc SessionCookie) Read(c *gin.Context) (string, bool) {
	raw, err := c.Cookie(sc.Name)
	if err != nil || raw == "" {
		return "", false
	}
	sid, err := sc.Signer.Parse(raw)
	if err != nil {
		logger.Debugf("session cookie rejected: %v", err)
		return "", false
	}
	return sid, true
}

// Session resolves the session cookie into an Identity on the request
// context. Requests without a usable cookie continue as anonymous.
func Session(svc *sessions.Service, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		var id Identity
		if sid, ok := cookie.Read(c); ok {
			sess, err := svc.Get(c.Request.Context(), sid)
			if err != nil {
				logger.Errorf("session lookup failed: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
				return
			}
			if sess != nil {
				id = Identity{SessionID: sess.ID, UserID: sess.UserID}
			}
		}
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// RequireUser rejects requests whose session carries no user.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": NotAuthorizedMessage})
			return
		}
		c.Next()
	}
}
