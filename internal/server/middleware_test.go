package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"drumbun/internal/adminauth"
)

type fakeVerifier struct {
	v   *adminauth.Verification
	err error
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (*adminauth.Verification, error) {
	return f.v, f.err
}

func adminTestHandler(verifier adminauth.Verifier) (http.Handler, *bool) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return requireAdmin(next, verifier, logger), &called
}

func TestRequireAdmin_NoToken(t *testing.T) {
	h, called := adminTestHandler(&fakeVerifier{v: &adminauth.Verification{IsAdmin: true}})

	req := httptest.NewRequest("POST", "/api/admin/cache/clear", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if *called {
		t.Error("handler ran without a token")
	}
}

func TestRequireAdmin_RejectedToken(t *testing.T) {
	h, called := adminTestHandler(&fakeVerifier{err: adminauth.ErrUnauthorized})

	req := httptest.NewRequest("POST", "/api/admin/cache/clear", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if *called {
		t.Error("handler ran with a rejected token")
	}
}

func TestRequireAdmin_NonAdmin(t *testing.T) {
	h, called := adminTestHandler(&fakeVerifier{v: &adminauth.Verification{IsAdmin: false, Email: "user@example.com"}})

	req := httptest.NewRequest("POST", "/api/admin/cache/clear", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if *called {
		t.Error("handler ran for a non-admin")
	}
}

func TestRequireAdmin_Admin(t *testing.T) {
	h, called := adminTestHandler(&fakeVerifier{v: &adminauth.Verification{IsAdmin: true, Role: "admin"}})

	req := httptest.NewRequest("POST", "/api/admin/cache/clear", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !*called {
		t.Error("handler did not run for an admin")
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"Bearer  abc123 ", "abc123"},
		{"bearer abc123", ""},
		{"Basic abc123", ""},
		{"", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		if got := bearerToken(req); got != tt.want {
			t.Errorf("bearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestPathLabel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/route", "/api/route"},
		{"/api/atractii/castelul-bran/related", "/api/atractii"},
		{"/api/widgets/weather", "/api/widgets"},
		{"/healthz", "/healthz"},
		{"/", "/"},
	}
	for _, tt := range tests {
		if got := pathLabel(tt.path); got != tt.want {
			t.Errorf("pathLabel(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := securityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/api/route", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}
