package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signed(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func TestJWTVerifier(t *testing.T) {
	v := NewJWTVerifier("top-secret")
	now := time.Now()
	good := jwt.MapClaims{
		"sub":   "user-1",
		"email": "a@b.co",
		"aud":   "authenticated",
		"exp":   now.Add(time.Hour).Unix(),
	}

	user, err := v.VerifyAccessToken(context.Background(), signed(t, "top-secret", jwt.SigningMethodHS256, good))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if user.ID != "user-1" || user.Email != "a@b.co" {
		t.Fatalf("unexpected user %+v", user)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "wrong secret", token: signed(t, "other", jwt.SigningMethodHS256, good)},
		{name: "expired", token: signed(t, "top-secret", jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u", "aud": "authenticated", "exp": now.Add(-time.Hour).Unix()})},
		{name: "no expiry", token: signed(t, "top-secret", jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u", "aud": "authenticated"})},
		{name: "wrong audience", token: signed(t, "top-secret", jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u", "aud": "anon", "exp": now.Add(time.Hour).Unix()})},
		{name: "wrong alg", token: signed(t, "top-secret", jwt.SigningMethodHS512, good)},
		{name: "no subject", token: signed(t, "top-secret", jwt.SigningMethodHS256, jwt.MapClaims{"aud": "authenticated", "exp": now.Add(time.Hour).Unix()})},
	}
	for _, tc := range tests {
		if _, err := v.VerifyAccessToken(context.Background(), tc.token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected invalid token, got %v", tc.name, err)
		}
	}
}

func TestSupabaseVerifyRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" || r.Header.Get("apikey") != "anon" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if r.Header.Get("Authorization") != "Bearer good" {
			http.Error(w, "nope", http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":"user-9","email":"p@q.co"}`))
	}))
	defer srv.Close()

	c := NewSupabaseClient(srv.URL+"/", "anon")
	user, err := c.VerifyAccessToken(context.Background(), "good")
	if err != nil || user.ID != "user-9" {
		t.Fatalf("expected user-9, got %+v %v", user, err)
	}
	if _, err := c.VerifyAccessToken(context.Background(), "bad"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestSupabaseLoginPostsCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Query().Get("grant_type") != "password" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"at","refresh_token":"rt","expires_in":3600,"token_type":"bearer","user":{"id":"u1","email":"e@x.co"}}`))
	}))
	defer srv.Close()

	s, err := NewSupabaseClient(srv.URL, "anon").Login(context.Background(), "e@x.co", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if s.AccessToken != "at" || s.User.ID != "u1" {
		t.Fatalf("unexpected session %+v", s)
	}
}
