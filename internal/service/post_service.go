package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"blog_api/internal/models"
	"blog_api/internal/repository"
)

type PostService struct {
	posts repository.PostRepo
	users repository.UserRepo
}

func NewPostService(posts repository.PostRepo, users repository.UserRepo) *PostService {
	return &PostService{posts: posts, users: users}
}

func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

// Create stores a post owned by ownerID.
// The owner lookup and the insert are separate statements; the foreign key
// catches an owner deleted in between.
func (s *PostService) Create(ctx context.Context, ownerID int, content string) (models.Post, error) {
	if strings.TrimSpace(content) == "" {
		return models.Post{}, ErrContentMissing
	}
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return models.Post{}, err
	}
	if owner == nil {
		return models.Post{}, ErrOwnerNotFound
	}

	p := models.Post{Content: content, UserID: owner.ID}
	id, err := s.posts.Create(ctx, p)
	if err != nil {
		if errors.Is(err, repository.ErrReference) {
			return models.Post{}, ErrOwnerNotFound
		}
		return models.Post{}, err
	}
	p.ID = id
	return p, nil
}

func (s *PostService) Get(ctx context.Context, id int) (models.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	if p == nil {
		return models.Post{}, ErrPostNotFound
	}
	return *p, nil
}

func (s *PostService) Delete(ctx context.Context, id int) error {
	return notFoundAs(s.posts.Delete(ctx, id), ErrPostNotFound)
}

func (s *PostService) DeleteAll(ctx context.Context) error {
	return s.posts.DeleteAll(ctx)
}

func (s *PostService) Patch(ctx context.Context, id int, fields map[string]json.RawMessage) (models.Post, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	if err := models.PostPatchers.Apply(&p, fields); err != nil {
		return models.Post{}, err
	}
	if err := s.posts.Update(ctx, p); err != nil {
		return models.Post{}, notFoundAs(err, ErrPostNotFound)
	}
	return p, nil
}

func (s *PostService) Replace(ctx context.Context, id int, content string) (models.Post, error) {
	if strings.TrimSpace(content) == "" {
		return models.Post{}, ErrContentMissing
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	p.Content = content
	if err := s.posts.Update(ctx, p); err != nil {
		return models.Post{}, notFoundAs(err, ErrPostNotFound)
	}
	return p, nil
}

// Owner returns the user that owns the post. A dangling owner reference is reported as ErrUserNotFound.
func (s *PostService) Owner(ctx context.Context, id int) (models.User, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	u, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, ErrUserNotFound
	}
	return *u, nil
}
