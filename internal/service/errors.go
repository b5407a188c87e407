package service

import (
	"errors"

	"blog_api/internal/models"
)

// Domain errors. Handlers map them onto HTTP statuses with errors.Is.
var (
	// Unauthorized
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")

	// BadRequest
	ErrPasswordMissing = errors.New("password is required")
	ErrEmailTaken      = errors.New("email already registered")
	ErrOwnerNotFound   = errors.New("owning user does not exist")
	ErrContentMissing  = errors.New("content is required")
	ErrInvalidField    = models.ErrInvalidField

	// NotFound
	ErrUserNotFound = errors.New("user not found")
	ErrPostNotFound = errors.New("post not found")
)
