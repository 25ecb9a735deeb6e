package handlers

import (
	"errors"
	"net/http"

	"github.com/docsession/docsession/internal/models"
	"github.com/docsession/docsession/internal/sessions"
	"github.com/docsession/docsession/internal/users"
	"github.com/docsession/docsession/pkg/logger"
	"github.com/docsession/docsession/pkg/metrics"
	"github.com/docsession/docsession/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// LoginRequest is the body of POST /login. The username is claimed, not
// proven.
type LoginRequest struct {
	Username string `json:"username"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	usersSvc    *users.Service
	sessionsSvc *sessions.Service
	cookie      middleware.SessionCookie
}

func NewAuthHandler(u *users.Service, s *sessions.Service, cookie middleware.SessionCookie) *AuthHandler {
	return &AuthHandler{usersSvc: u, sessionsSvc: s, cookie: cookie}
}

// Register mounts the session routes. They rely on middleware.Session
// having run earlier in the chain.
func (h *AuthHandler) Register(r gin.IRoutes) {
	r.POST("/login", h.Login)
	r.GET("/check_session", h.CheckSession)
	r.DELETE("/logout", h.Logout)
}

// Login binds the session to the user named in the body. A failed attempt
// leaves any existing session as it was.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid login"})
		return
	}
	ctx := c.Request.Context()
	u, err := h.usersSvc.Login(ctx, req.Username)
	if err != nil {
		if errors.Is(err, models.ErrUnauthenticated) {
			metrics.LoginAttempts.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid login"})
			return
		}
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		h.internalError(c, "login lookup", err)
		return
	}

	sess, err := h.sessionsSvc.Bind(ctx, middleware.IdentityFrom(ctx).SessionID, u.ID)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		h.internalError(c, "bind session", err)
		return
	}
	if err := h.cookie.Write(c, sess.ID); err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		h.internalError(c, "sign session cookie", err)
		return
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logger.Infof("user %d logged in", u.ID)
	c.JSON(http.StatusOK, u)
}

// CheckSession returns the logged-in user. A session pointing at a user
// that no longer exists counts as logged out.
func (h *AuthHandler) CheckSession(c *gin.Context) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": middleware.NotAuthorizedMessage})
		return
	}
	u, err := h.usersSvc.GetByID(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": middleware.NotAuthorizedMessage})
			return
		}
		h.internalError(c, "check session", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Logout drops the user from the session. It is idempotent.
func (h *AuthHandler) Logout(c *gin.Context) {
	sid := middleware.IdentityFrom(c.Request.Context()).SessionID
	if err := h.sessionsSvc.Clear(c.Request.Context(), sid); err != nil {
		h.internalError(c, "clear session", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) internalError(c *gin.Context, op string, err error) {
	logger.Errorf("%s failed: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
}
