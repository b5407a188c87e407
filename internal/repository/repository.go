package repository

import (
	"context"
	"database/sql"

	"blog_api/internal/models"
)

type UserRepo interface {
	Create(ctx context.Context, u models.User) (int, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, u models.User) error
	Delete(ctx context.Context, id int) error
	DeleteAll(ctx context.Context) error
}

type PostRepo interface {
	Create(ctx context.Context, p models.Post) (int, error)
	GetByID(ctx context.Context, id int) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	ListByUser(ctx context.Context, userID int) ([]models.Post, error)
	Update(ctx context.Context, p models.Post) error
	Delete(ctx context.Context, id int) error
	DeleteAll(ctx context.Context) error
}

type TokenRepo interface {
	Create(ctx context.Context, t models.Token) (int, error)
	GetUserByToken(ctx context.Context, token string) (*models.User, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID int) error
}

type Repository struct {
	Users  UserRepo
	Posts  PostRepo
	Tokens TokenRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:  NewUserSQLite(db),
		Posts:  NewPostSQLite(db),
		Tokens: NewTokenSQLite(db),
	}
}
