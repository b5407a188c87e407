package service

import (
	"context"

	"blog_api/internal/models"
)

// In-test mocks for the repository interfaces. Unset funcs panic, which flags unexpected calls.

type mockUserRepo struct {
	CreateFn     func(u models.User) (int, error)
	GetByIDFn    func(id int) (*models.User, error)
	GetByEmailFn func(email string) (*models.User, error)
	ListFn       func() ([]models.User, error)
	UpdateFn     func(u models.User) error
	DeleteFn     func(id int) error
	DeleteAllFn  func() error

	created []models.User
	updated []models.User
}

func (m *mockUserRepo) Create(_ context.Context, u models.User) (int, error) {
	m.created = append(m.created, u)
	return m.CreateFn(u)
}
func (m *mockUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	return m.GetByIDFn(id)
}
func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return m.GetByEmailFn(email)
}
func (m *mockUserRepo) List(context.Context) ([]models.User, error) { return m.ListFn() }
func (m *mockUserRepo) Update(_ context.Context, u models.User) error {
	m.updated = append(m.updated, u)
	return m.UpdateFn(u)
}
func (m *mockUserRepo) Delete(_ context.Context, id int) error { return m.DeleteFn(id) }
func (m *mockUserRepo) DeleteAll(context.Context) error        { return m.DeleteAllFn() }

type mockPostRepo struct {
	CreateFn     func(p models.Post) (int, error)
	GetByIDFn    func(id int) (*models.Post, error)
	ListFn       func() ([]models.Post, error)
	ListByUserFn func(userID int) ([]models.Post, error)
	UpdateFn     func(p models.Post) error
	DeleteFn     func(id int) error
	DeleteAllFn  func() error

	created []models.Post
	updated []models.Post
}

func (m *mockPostRepo) Create(_ context.Context, p models.Post) (int, error) {
	m.created = append(m.created, p)
	return m.CreateFn(p)
}
func (m *mockPostRepo) GetByID(_ context.Context, id int) (*models.Post, error) {
	return m.GetByIDFn(id)
}
func (m *mockPostRepo) List(context.Context) ([]models.Post, error) { return m.ListFn() }
func (m *mockPostRepo) ListByUser(_ context.Context, userID int) ([]models.Post, error) {
	return m.ListByUserFn(userID)
}
func (m *mockPostRepo) Update(_ context.Context, p models.Post) error {
	m.updated = append(m.updated, p)
	return m.UpdateFn(p)
}
func (m *mockPostRepo) Delete(_ context.Context, id int) error { return m.DeleteFn(id) }
func (m *mockPostRepo) DeleteAll(context.Context) error        { return m.DeleteAllFn() }

type mockTokenRepo struct {
	CreateFn         func(t models.Token) (int, error)
	GetUserByTokenFn func(token string) (*models.User, error)
	DeleteFn         func(token string) error
	DeleteByUserFn   func(userID int) error

	created []models.Token
}

func (m *mockTokenRepo) Create(_ context.Context, t models.Token) (int, error) {
	m.created = append(m.created, t)
	return m.CreateFn(t)
}
func (m *mockTokenRepo) GetUserByToken(_ context.Context, token string) (*models.User, error) {
	return m.GetUserByTokenFn(token)
}
func (m *mockTokenRepo) Delete(_ context.Context, token string) error { return m.DeleteFn(token) }
func (m *mockTokenRepo) DeleteByUser(_ context.Context, userID int) error {
	return m.DeleteByUserFn(userID)
}

// fastHasher keeps bcrypt cheap in tests.
func fastHasher() *BcryptHasher { return NewBcryptHasher(4) }
