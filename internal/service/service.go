package service

import (
	"context"
	"encoding/json"

	"blog_api/internal/models"
	"blog_api/internal/repository"
)

// Authorization is the authentication gateway: password login and bearer-token lookup.
type Authorization interface {
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, token string) error
	LogoutAll(ctx context.Context, userID int) error
}

// Users covers signup and the /users resource.
type Users interface {
	SignUp(ctx context.Context, in SignUpInput) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int) (models.User, error)
	Delete(ctx context.Context, id int) error
	DeleteAll(ctx context.Context) error
	Patch(ctx context.Context, id int, fields map[string]json.RawMessage) (models.User, error)
	Replace(ctx context.Context, id int, in ReplaceUserInput) (models.User, error)
	Posts(ctx context.Context, id int) ([]models.Post, error)
}

// Posts covers the /posts resource.
type Posts interface {
	List(ctx context.Context) ([]models.Post, error)
	Create(ctx context.Context, ownerID int, content string) (models.Post, error)
	Get(ctx context.Context, id int) (models.Post, error)
	Delete(ctx context.Context, id int) error
	DeleteAll(ctx context.Context) error
	Patch(ctx context.Context, id int, fields map[string]json.RawMessage) (models.Post, error)
	Replace(ctx context.Context, id int, content string) (models.Post, error)
	Owner(ctx context.Context, id int) (models.User, error)
}

// Service aggregates all sub-services.
type Service struct {
	Auth  Authorization
	Users Users
	Posts Posts
}

// NewService wires the repository layer into concrete services.
// The hasher is shared by signup and login.
func NewService(repos *repository.Repository, hasher PasswordHasher) *Service {
	return &Service{
		Auth:  NewAuthService(repos.Users, repos.Tokens, hasher),
		Users: NewUserService(repos.Users, repos.Posts, hasher),
		Posts: NewPostService(repos.Posts, repos.Users),
	}
}
