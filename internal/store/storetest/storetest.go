// Package storetest builds fake backends and wired clients for feature store
// tests.
package storetest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/hris-console-go/internal/session"
	"github.com/cmlabs-hris/hris-console-go/internal/store/lifecycle"
)

const Secret = "store-test-secret"

// Backend is a fake REST backend. Routes registered through Protected sit
// behind jwtauth, so an invalid token yields a real 401.
type Backend struct {
	Router *chi.Mux
	Auth   *jwtauth.JWTAuth
	Server *httptest.Server
}

func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		Router: chi.NewRouter(),
		Auth:   jwtauth.New("HS256", []byte(Secret), nil),
	}
	b.Server = httptest.NewServer(b.Router)
	t.Cleanup(b.Server.Close)
	return b
}

// Protected registers routes that require a valid bearer token.
func (b *Backend) Protected(fn func(r chi.Router)) {
	b.Router.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(b.Auth))
		r.Use(authenticator)
		fn(r)
	})
}

func authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			Error(w, http.StatusUnauthorized, "Token expired")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Token mints a valid access token for userID.
func (b *Backend) Token(t *testing.T, userID string) string {
	t.Helper()
	_, token, err := b.Auth.Encode(map[string]interface{}{"user_id": userID})
	require.NoError(t, err)
	return token
}

// Client returns a gateway bound to sess and the fake backend.
func (b *Backend) Client(t *testing.T, sess *session.Store) *apiclient.Client {
	t.Helper()
	c, err := apiclient.New(b.Server.URL, sess)
	require.NoError(t, err)
	return c
}

// Session returns an in-memory session, logged in as u when u is not nil.
func Session(t *testing.T, u *user.User, c *company.Company, token string) *session.Store {
	t.Helper()
	sess := session.New(nil)
	if u != nil {
		require.NoError(t, sess.Login(context.Background(), *u, c, token))
	}
	return sess
}

func Tracker(name string) *lifecycle.Tracker {
	return lifecycle.New(name, i18n.New("en"), nil)
}

// Success writes the success envelope around data.
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, map[string]any{"status": apiclient.StatusSuccess, "data": data})
}

// Paginated writes the success envelope with pagination.
func Paginated(w http.ResponseWriter, data any, p apiclient.Pagination) {
	JSON(w, http.StatusOK, map[string]any{"status": apiclient.StatusSuccess, "data": data, "pagination": p})
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]any{"status": apiclient.StatusError, "message": message})
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Decode reads a JSON request body into v. It runs on the server goroutine,
// so it reports with assert.
func Decode(t *testing.T, r *http.Request, v any) {
	t.Helper()
	assert.NoError(t, json.NewDecoder(r.Body).Decode(v))
}

func Ptr[T any](v T) *T {
	return &v
}
