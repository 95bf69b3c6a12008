package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func protectedRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(testServer.AuthMiddleware)
	r.Get("/me", testServer.GetCurrentUserHandler)
	return r
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+testUserToken)
	rr := httptest.NewRecorder()

	protectedRouter().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthMiddleware_Cookie(t *testing.T) {
	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: testUserToken})
	rr := httptest.NewRecorder()

	protectedRouter().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/me", nil)
	rr := httptest.NewRecorder()

	protectedRouter().ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	rr := httptest.NewRecorder()

	protectedRouter().ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rr := httptest.NewRecorder()

	protectedRouter().ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}
