package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/server/auth"
)

func newBareServer(t *testing.T, secret string) *Server {
	t.Helper()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewServer(":0", logger, nil, secret)
}

// echoIdentity is a downstream handler that reports what the restricted
// middleware put into the request context.
func echoIdentity(t *testing.T, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			t.Fatalf("identity missing from context")
		}
		writeJSON(w, http.StatusOK, map[string]any{"user_id": id.UserID, "username": id.Username})
	})
}

func TestRestricted_MissingToken(t *testing.T) {
	s := newBareServer(t, "shh")

	called := false
	h := s.restricted(echoIdentity(t, &called))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jokes", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Fatalf("downstream handler must not run without a token")
	}
	var m messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Message != "token required" {
		t.Fatalf("unexpected message: %q", m.Message)
	}
}

func TestRestricted_ExpiredToken(t *testing.T) {
	s := newBareServer(t, "shh")

	tok, err := auth.GenerateToken(1, "Guy", []byte("shh"), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	called := false
	h := s.restricted(echoIdentity(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/api/jokes", nil)
	req.Header.Set("Authorization", tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized || called {
		t.Fatalf("expired token must be rejected, code=%d called=%v", rec.Code, called)
	}
	var m messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Message != "token invalid" {
		t.Fatalf("unexpected message: %q", m.Message)
	}
}

func TestRestricted_TokenSignedWithDifferentKey(t *testing.T) {
	s := newBareServer(t, "shh")

	tok, err := auth.GenerateToken(1, "Guy", []byte("other-key"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	called := false
	h := s.restricted(echoIdentity(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/api/jokes", nil)
	req.Header.Set("Authorization", tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized || called {
		t.Fatalf("foreign-key token must be rejected, code=%d called=%v", rec.Code, called)
	}
}

func TestRestricted_ValidTokenInjectsIdentity(t *testing.T) {
	s := newBareServer(t, "shh")

	tok, err := auth.GenerateToken(7, "shrek", []byte("shh"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	called := false
	h := s.restricted(echoIdentity(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/api/jokes", nil)
	req.Header.Set("Authorization", tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !called {
		t.Fatalf("valid token must pass, code=%d called=%v", rec.Code, called)
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["user_id"] != float64(7) || got["username"] != "shrek" {
		t.Fatalf("unexpected identity: %v", got)
	}
}

func TestIdentityFromContext_AbsentByDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := IdentityFromContext(req.Context()); ok {
		t.Fatalf("identity must be absent on a fresh request")
	}
}
