package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"blog_api/internal/models"
	"blog_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Gin context keys.
const (
	ctxUserKey      = "user"
	ctxUserIDKey    = "userId"
	ctxTokenKey     = "token"
	ctxRequestIDKey = "request_id"

	requestIDHeader = "X-Request-ID"
	maxRequestIDLen = 128
)

// userIdentity implements the token scheme: it resolves "Authorization: Bearer <token>"
// to a user and stores it in the context.
func (h *Handler) userIdentity(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}
	token := strings.TrimSpace(parts[1])

	user, err := h.services.Auth.Authenticate(c.Request.Context(), token)
	if err != nil && !errors.Is(err, service.ErrInvalidToken) {
		h.respondError(c, "auth_token_lookup_failed", err)
		return
	}
	if user == nil {
		if h.log != nil {
			h.log.Infow("auth_token_rejected", "err", err, "request_id", c.GetString(ctxRequestIDKey))
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or revoked token",
		})
		return
	}

	c.Set(ctxUserKey, *user)
	c.Set(ctxUserIDKey, user.ID)
	c.Set(ctxTokenKey, token)
	c.Next()
}

// currentUser returns the user stored by userIdentity.
func currentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}

// requestID reuses a sane incoming X-Request-ID or generates a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(ctxRequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (h *Handler) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if h.log == nil {
			return
		}
		h.log.Infow("http_request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", c.GetString(ctxRequestIDKey),
		)
	}
}
