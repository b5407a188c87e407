package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"blog_api/internal/models"
	"blog_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 1 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=20s", 1 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=20000", 1 * time.Second},
		{"interval_invalid_string", "/ws?interval=bogus", 1 * time.Second},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"invalid_interval_falls_back_to_ms", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, tc.u, nil)
			if got := h.parseInterval(c); got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

func TestCheckOrigin(t *testing.T) {
	h := NewHandler(&service.Service{}, nil, WithAllowedOrigins([]string{"http://app.local"}))

	cases := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"http://app.local", true},
		{"http://example.com", true}, // same host as the request
		{"http://evil.test", false},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "http://example.com/ws/posts", nil)
		if tc.origin != "" {
			req.Header.Set("Origin", tc.origin)
		}
		if got := h.checkOrigin(req); got != tc.want {
			t.Errorf("origin %q: got %v, want %v", tc.origin, got, tc.want)
		}
	}
}

func dialFeed(t *testing.T, srvURL string, hdr http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	u, _ := url.Parse(srvURL)
	u.Scheme = "ws"
	u.Path = "/ws/posts"
	q := u.Query()
	q.Set("interval_ms", "20")
	u.RawQuery = q.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	return dialer.Dial(u.String(), hdr)
}

func TestPostFeed_InitialAndPeriodic(t *testing.T) {
	posts := &mockPosts{posts: []models.Post{{ID: 1, Content: "first", UserID: 3}}}
	srv := httptest.NewServer(newTestRouter(&service.Service{Auth: authedAs(models.User{ID: 3}), Posts: posts}))
	defer srv.Close()

	conn, _, err := dialFeed(t, srv.URL, authHeader(testToken))
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	type envelope struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}

	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != feedTypePosts {
		t.Fatalf("bad envelope: %+v", env)
	}
	var got []models.Post
	if err := json.Unmarshal(env.Data, &got); err != nil || len(got) != 1 || got[0].Content != "first" {
		t.Fatalf("unexpected posts %v (err=%v)", got, err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	env = envelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read second: %v", err)
	}
	if env.Type != feedTypePosts {
		t.Fatalf("expected type=%s, got %+v", feedTypePosts, env)
	}
}

func TestPostFeed_RequiresToken(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(&service.Service{Auth: &mockAuth{}, Posts: &mockPosts{}}))
	defer srv.Close()

	_, resp, err := dialFeed(t, srv.URL, nil)
	if err == nil {
		t.Fatal("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 response, got %+v", resp)
	}
}

func TestPostFeed_ListErrorCloses(t *testing.T) {
	posts := &mockPosts{err: errors.New("boom")}
	srv := httptest.NewServer(newTestRouter(&service.Service{Auth: authedAs(models.User{ID: 1}), Posts: posts}))
	defer srv.Close()

	conn, _, err := dialFeed(t, srv.URL, authHeader(testToken))
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var env wsEnvelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read error envelope: %v", err)
	}
	if env.Type != feedTypeError || env.Error != errInternal {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err == nil {
		t.Fatalf("expected read error (closed), got message: %s", string(raw))
	}
}

func TestPostFeed_StopsOnShutdown(t *testing.T) {
	shutdown, cancel := context.WithCancel(context.Background())
	defer cancel()

	gin.SetMode(gin.TestMode)
	h := NewHandler(&service.Service{Auth: authedAs(models.User{ID: 1}), Posts: &mockPosts{}}, nil, WithShutdown(shutdown))
	srv := httptest.NewServer(h.InitRoutes())
	defer srv.Close()

	conn, _, err := dialFeed(t, srv.URL, authHeader(testToken))
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var env wsEnvelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}

	cancel()

	// drain ticks until the close frame arrives
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		_, _, err := conn.ReadMessage()
		if err == nil {
			continue
		}
		if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
			t.Fatalf("expected going-away close, got %v", err)
		}
		return
	}
}
