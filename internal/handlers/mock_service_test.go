package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"blog_api/internal/models"
	"blog_api/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	loginToken string
	loginErr   error
	user       *models.User
	authErr    error
	logoutErr  error

	lastLoginEmail    string
	lastLoginPassword string
	lastAuthToken     string
	lastLogoutToken   string
	lastLogoutAllID   int
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (string, error) {
	m.lastLoginEmail = email
	m.lastLoginPassword = password
	return m.loginToken, m.loginErr
}
func (m *mockAuth) Authenticate(ctx context.Context, token string) (*models.User, error) {
	m.lastAuthToken = token
	return m.user, m.authErr
}
func (m *mockAuth) Logout(ctx context.Context, token string) error {
	m.lastLogoutToken = token
	return m.logoutErr
}

func (m *mockAuth) LogoutAll(ctx context.Context, userID int) error {
	m.lastLogoutAllID = userID
	return m.logoutErr
}

type mockUsers struct {
	user    models.User
	users   []models.User
	posts   []models.Post
	err     error
	called  string
	lastID  int
	lastIn  service.SignUpInput
	lastRep service.ReplaceUserInput
	lastFld map[string]json.RawMessage
}

func (m *mockUsers) SignUp(ctx context.Context, in service.SignUpInput) (models.User, error) {
	m.called, m.lastIn = "SignUp", in
	return m.user, m.err
}
func (m *mockUsers) List(ctx context.Context) ([]models.User, error) {
	m.called = "List"
	return m.users, m.err
}
func (m *mockUsers) Get(ctx context.Context, id int) (models.User, error) {
	m.called, m.lastID = "Get", id
	return m.user, m.err
}
func (m *mockUsers) Delete(ctx context.Context, id int) error {
	m.called, m.lastID = "Delete", id
	return m.err
}
func (m *mockUsers) DeleteAll(ctx context.Context) error {
	m.called = "DeleteAll"
	return m.err
}
func (m *mockUsers) Patch(ctx context.Context, id int, fields map[string]json.RawMessage) (models.User, error) {
	m.called, m.lastID, m.lastFld = "Patch", id, fields
	return m.user, m.err
}
func (m *mockUsers) Replace(ctx context.Context, id int, in service.ReplaceUserInput) (models.User, error) {
	m.called, m.lastID, m.lastRep = "Replace", id, in
	return m.user, m.err
}
func (m *mockUsers) Posts(ctx context.Context, id int) ([]models.Post, error) {
	m.called, m.lastID = "Posts", id
	return m.posts, m.err
}

type mockPosts struct {
	post        models.Post
	posts       []models.Post
	owner       models.User
	err         error
	called      string
	lastID      int
	lastOwner   int
	lastContent string
	lastFld     map[string]json.RawMessage
}

func (m *mockPosts) List(ctx context.Context) ([]models.Post, error) {
	m.called = "List"
	return m.posts, m.err
}
func (m *mockPosts) Create(ctx context.Context, ownerID int, content string) (models.Post, error) {
	m.called, m.lastOwner, m.lastContent = "Create", ownerID, content
	return m.post, m.err
}
func (m *mockPosts) Get(ctx context.Context, id int) (models.Post, error) {
	m.called, m.lastID = "Get", id
	return m.post, m.err
}
func (m *mockPosts) Delete(ctx context.Context, id int) error {
	m.called, m.lastID = "Delete", id
	return m.err
}
func (m *mockPosts) DeleteAll(ctx context.Context) error {
	m.called = "DeleteAll"
	return m.err
}
func (m *mockPosts) Patch(ctx context.Context, id int, fields map[string]json.RawMessage) (models.Post, error) {
	m.called, m.lastID, m.lastFld = "Patch", id, fields
	return m.post, m.err
}
func (m *mockPosts) Replace(ctx context.Context, id int, content string) (models.Post, error) {
	m.called, m.lastID, m.lastContent = "Replace", id, content
	return m.post, m.err
}
func (m *mockPosts) Owner(ctx context.Context, id int) (models.User, error) {
	m.called, m.lastID = "Owner", id
	return m.owner, m.err
}

// ---- Shared Test Helpers ----

const testToken = "good-token"

// authedAs returns an auth mock accepting testToken for the given user.
func authedAs(u models.User) *mockAuth {
	return &mockAuth{user: &u}
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
