package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"blog_api/internal/models"
	"blog_api/internal/repository"
	"blog_api/internal/repository/db"
	"blog_api/internal/service"

	"github.com/gin-gonic/gin"
)

// newStackRouter wires real services over an in-memory database.
func newStackRouter(t *testing.T) *gin.Engine {
	t.Helper()
	conn, err := db.InitDB(":memory:")
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	services := service.NewService(repository.NewRepository(conn), service.NewBcryptHasher(4))
	return newTestRouter(services)
}

func signUpAndLogin(t *testing.T, r http.Handler, name, email string) (models.User, string) {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"location":"Oslo","age":30,"email":%q,"password":"pw"}`, name, email)
	w := doRequest(t, r, http.MethodPost, "/users", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("signup %s: %d %s", email, w.Code, w.Body.String())
	}
	var u models.User
	if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil {
		t.Fatalf("signup body: %v", err)
	}

	w = doRequest(t, r, http.MethodPost, "/users/login", fmt.Sprintf(`{"email":%q,"password":"pw"}`, email), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", email, w.Code, w.Body.String())
	}
	var out map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out["token"] == "" {
		t.Fatalf("empty token: %s", w.Body.String())
	}
	return u, out["token"]
}

func TestFlow_SignUpLoginMeLogout(t *testing.T) {
	r := newStackRouter(t)
	u, token := signUpAndLogin(t, r, "Ann", "ann@example.com")

	w := doRequest(t, r, http.MethodGet, "/users/me", "", authHeader(token))
	if w.Code != http.StatusOK {
		t.Fatalf("me: %d %s", w.Code, w.Body.String())
	}
	var me models.User
	_ = json.Unmarshal(w.Body.Bytes(), &me)
	if me.ID != u.ID || me.Email != "ann@example.com" {
		t.Fatalf("me: got %+v, want id %d", me, u.ID)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("password leaked: %s", w.Body.String())
	}

	w = doRequest(t, r, http.MethodPost, "/users/login", `{"email":"ann@example.com","password":"nope"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: got %d, want 401", w.Code)
	}

	w = doRequest(t, r, http.MethodPost, "/users", `{"name":"A2","location":"X","age":1,"email":"ANN@example.com","password":"pw"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email: got %d, want 400", w.Code)
	}

	w = doRequest(t, r, http.MethodPost, "/users/logout", "", authHeader(token))
	if w.Code != http.StatusOK {
		t.Fatalf("logout: %d %s", w.Code, w.Body.String())
	}
	w = doRequest(t, r, http.MethodGet, "/users/me", "", authHeader(token))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("after logout: got %d, want 401", w.Code)
	}
}

func TestFlow_PostsLifecycle(t *testing.T) {
	r := newStackRouter(t)
	ann, annTok := signUpAndLogin(t, r, "Ann", "ann@example.com")
	_, boTok := signUpAndLogin(t, r, "Bo", "bo@example.com")

	w := doRequest(t, r, http.MethodPost, "/posts", `{"content":"hello","user_id":999}`, authHeader(annTok))
	if w.Code != http.StatusOK {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	var p models.Post
	_ = json.Unmarshal(w.Body.Bytes(), &p)
	if p.UserID != ann.ID || p.Content != "hello" {
		t.Fatalf("created %+v, want owner %d", p, ann.ID)
	}

	w = doRequest(t, r, http.MethodPatch, fmt.Sprintf("/posts/%d", p.ID), `{"content":"edited","user_id":5}`, authHeader(boTok))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"content":"edited"`) {
		t.Fatalf("patch: %d %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/posts/%d/user", p.ID), "", authHeader(boTok))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"name":"Ann"`) {
		t.Fatalf("owner: %d %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodGet, "/users/me/posts", "", authHeader(annTok))
	var mine []models.Post
	_ = json.Unmarshal(w.Body.Bytes(), &mine)
	if w.Code != http.StatusOK || len(mine) != 1 {
		t.Fatalf("my posts: %d %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodDelete, "/posts", "", authHeader(annTok))
	if w.Code != http.StatusOK || w.Body.Len() != 0 {
		t.Fatalf("delete all: %d %q", w.Code, w.Body.String())
	}
	w = doRequest(t, r, http.MethodGet, "/posts", "", authHeader(annTok))
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("list after delete: %d %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/posts/%d", p.ID), "", authHeader(annTok))
	if w.Code != http.StatusNotFound {
		t.Fatalf("deleted post: got %d, want 404", w.Code)
	}
}

func TestFlow_DeletingUserCascades(t *testing.T) {
	r := newStackRouter(t)
	_, annTok := signUpAndLogin(t, r, "Ann", "ann@example.com")
	bo, boTok := signUpAndLogin(t, r, "Bo", "bo@example.com")

	w := doRequest(t, r, http.MethodPost, "/posts", `{"content":"from bo"}`, authHeader(boTok))
	if w.Code != http.StatusOK {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/users/%d", bo.ID), "", authHeader(annTok))
	if w.Code != http.StatusOK {
		t.Fatalf("delete user: %d %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodGet, "/posts", "", authHeader(annTok))
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("posts survived owner deletion: %s", w.Body.String())
	}
	w = doRequest(t, r, http.MethodGet, "/users/me", "", authHeader(boTok))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("token of deleted user: got %d, want 401", w.Code)
	}
	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/users/%d/posts", bo.ID), "", authHeader(annTok))
	if w.Code != http.StatusNotFound {
		t.Fatalf("posts of deleted user: got %d, want 404", w.Code)
	}
}

func TestFlow_LogoutAllRevokesEveryToken(t *testing.T) {
	r := newStackRouter(t)
	_, first := signUpAndLogin(t, r, "Ann", "ann@example.com")

	w := doRequest(t, r, http.MethodPost, "/users/login", `{"email":"ann@example.com","password":"pw"}`, nil)
	var out map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	second := out["token"]
	if second == "" || second == first {
		t.Fatalf("expected a distinct second token, got %q", second)
	}

	w = doRequest(t, r, http.MethodPost, "/users/logout?all=true", "", authHeader(first))
	if w.Code != http.StatusOK {
		t.Fatalf("logout all: %d %s", w.Code, w.Body.String())
	}
	for _, tok := range []string{first, second} {
		if w := doRequest(t, r, http.MethodGet, "/users/me", "", authHeader(tok)); w.Code != http.StatusUnauthorized {
			t.Fatalf("token still valid after logout all: %d", w.Code)
		}
	}
}

func TestFlow_PatchRejectsWhatSignupRejects(t *testing.T) {
	r := newStackRouter(t)
	_, tok := signUpAndLogin(t, r, "Ann", "ann@example.com")

	for body, field := range map[string]string{
		`{"name":""}`:    "name",
		`{"age":-3}`:     "age",
		`{"location":7}`: "location",
	} {
		w := doRequest(t, r, http.MethodPatch, "/users/me", body, authHeader(tok))
		var out struct {
			Details map[string]string `json:"details"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &out)
		if w.Code != http.StatusBadRequest || out.Details[field] == "" {
			t.Fatalf("%s: got %d %s", body, w.Code, w.Body.String())
		}
		if strings.Contains(w.Body.String(), "Go value") {
			t.Fatalf("decoder text leaked: %s", w.Body.String())
		}
	}

	w := doRequest(t, r, http.MethodGet, "/users/me", "", authHeader(tok))
	if !strings.Contains(w.Body.String(), `"name":"Ann"`) || !strings.Contains(w.Body.String(), `"age":30`) {
		t.Fatalf("user changed by rejected patches: %s", w.Body.String())
	}
}
