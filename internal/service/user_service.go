package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"blog_api/internal/models"
	"blog_api/internal/repository"
)

type SignUpInput struct {
	Name     string
	Location string
	Age      int
	Email    string
	Password string
}

// ReplaceUserInput holds the fields a PUT overwrites. Email and password are not replaceable.
type ReplaceUserInput struct {
	Name     string
	Location string
	Age      int
}

type UserService struct {
	users  repository.UserRepo
	posts  repository.PostRepo
	hasher PasswordHasher
}

func NewUserService(users repository.UserRepo, posts repository.PostRepo, hasher PasswordHasher) *UserService {
	return &UserService{users: users, posts: posts, hasher: hasher}
}

// SignUp rejects taken emails, hashes the password and creates the user.
func (s *UserService) SignUp(ctx context.Context, in SignUpInput) (models.User, error) {
	if strings.TrimSpace(in.Password) == "" {
		return models.User{}, ErrPasswordMissing
	}
	email := normalizeEmail(in.Email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		return models.User{}, fmt.Errorf("%w: %s", ErrEmailTaken, email)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, err
	}

	u := models.User{
		Name:         in.Name,
		Location:     in.Location,
		Age:          in.Age,
		Email:        email,
		PasswordHash: hash,
	}
	id, err := s.users.Create(ctx, u)
	if err != nil {
		// lost a race with a concurrent signup; the UNIQUE constraint caught it
		if errors.Is(err, repository.ErrDuplicate) {
			return models.User{}, fmt.Errorf("%w: %s", ErrEmailTaken, email)
		}
		return models.User{}, err
	}
	u.ID = id
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int) (models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, ErrUserNotFound
	}
	return *u, nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	return notFoundAs(s.users.Delete(ctx, id), ErrUserNotFound)
}

func (s *UserService) DeleteAll(ctx context.Context) error {
	return s.users.DeleteAll(ctx)
}

// Patch applies the allow-listed fields present in fields and persists the result.
func (s *UserService) Patch(ctx context.Context, id int, fields map[string]json.RawMessage) (models.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if err := models.UserPatchers.Apply(&u, fields); err != nil {
		return models.User{}, err
	}
	if err := s.users.Update(ctx, u); err != nil {
		return models.User{}, notFoundAs(err, ErrUserNotFound)
	}
	return u, nil
}

// Replace overwrites name, location and age.
func (s *UserService) Replace(ctx context.Context, id int, in ReplaceUserInput) (models.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	u.Name = in.Name
	u.Location = in.Location
	u.Age = in.Age
	if err := s.users.Update(ctx, u); err != nil {
		return models.User{}, notFoundAs(err, ErrUserNotFound)
	}
	return u, nil
}

// Posts lists the posts owned by the user.
func (s *UserService) Posts(ctx context.Context, id int) ([]models.Post, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	posts, err := s.posts.ListByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

// notFoundAs translates repository.ErrNotFound into the given domain error.
func notFoundAs(err, target error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return target
	}
	return err
}
