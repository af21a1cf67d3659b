package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func signToken(t *testing.T, secret string, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-1",
		"email":   "alice@example.com",
		"exp":     time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth("secret")
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthMiddleware_BearerHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", time.Hour))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth("secret")
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get("user_id") != "user-1" {
			t.Fatalf("user_id not set")
		}
		if c.Get("email") != "alice@example.com" {
			t.Fatalf("email not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthMiddleware_Cookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: signToken(t, "secret", time.Hour)})

	_, called := runAuth(t, req)
	if !called {
		t.Fatalf("expected cookie token to be accepted")
	}
}

func TestAuthMiddleware_HeaderTakesPrecedence(t *testing.T) {
	// Valid cookie, bad header: the header wins and the request is rejected.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "wrong-secret", time.Hour))
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: signToken(t, "secret", time.Hour)})

	rec, called := runAuth(t, req)
	if called {
		t.Fatalf("expected rejection")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RejectionsIndistinguishable(t *testing.T) {
	cases := map[string]func(*http.Request){
		"missing token":  func(r *http.Request) {},
		"expired token":  func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+signToken(t, "secret", -time.Hour)) },
		"bad signature":  func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+signToken(t, "other", time.Hour)) },
		"malformed":      func(r *http.Request) { r.Header.Set("Authorization", "Bearer not.a.token") },
		"wrong scheme":   func(r *http.Request) { r.Header.Set("Authorization", "Basic abc123") },
		"expired cookie": func(r *http.Request) { r.AddCookie(&http.Cookie{Name: TokenCookie, Value: signToken(t, "secret", -time.Hour)}) },
	}

	var firstBody string
	for name, arrange := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		arrange(req)

		rec, called := runAuth(t, req)
		if called {
			t.Fatalf("%s: next should not be called", name)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
		if firstBody == "" {
			firstBody = rec.Body.String()
		} else if rec.Body.String() != firstBody {
			t.Fatalf("%s: rejection reason leaked: %q vs %q", name, rec.Body.String(), firstBody)
		}
	}
}
