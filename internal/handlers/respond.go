package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"blog_api/internal/models"
	"blog_api/internal/service"
	"blog_api/internal/validation"

	"github.com/gin-gonic/gin"
)

const (
	errInvalidID   = "id must be a positive integer"
	errInvalidBody = "invalid request body"
	errInternal    = "internal server error"

	meParam = "me"
)

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err, "path", c.FullPath())
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":   errInvalidBody,
			"details": validation.ToDetails(err),
		})
		return false
	}
	return true
}

// statusFor maps service errors onto HTTP statuses and client-facing messages.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrPostNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrPasswordMissing),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrOwnerNotFound),
		errors.Is(err, service.ErrContentMissing),
		errors.Is(err, service.ErrInvalidField):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, errInternal
	}
}

// respondError writes the mapped status; server errors are logged at error level.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	code, msg := statusFor(err)
	if h.log != nil {
		fields := append([]interface{}{"err", err, "request_id", c.GetString(ctxRequestIDKey)}, kv...)
		if code >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	var fe *models.FieldError
	if errors.As(err, &fe) {
		c.AbortWithStatusJSON(code, gin.H{"error": errInvalidBody, "details": validation.ToDetails(fe)})
		return
	}
	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}

// parseID reads a positive integer :id. Writes 400 and returns false otherwise.
func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return 0, false
	}
	return id, true
}

// userIDParam is parseID plus the "me" alias for the authenticated caller.
func userIDParam(c *gin.Context) (int, bool) {
	if c.Param("id") == meParam {
		u, ok := currentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return 0, false
		}
		return u.ID, true
	}
	return parseID(c)
}
