package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoodyplace/moodyplace-go/internal/auth"
	"github.com/amoodyplace/moodyplace-go/internal/model"
	"github.com/amoodyplace/moodyplace-go/internal/render"
)

const testSecret = "Xk9#mP2$vN8qR5tY7wZ3bC6dF1gH4jL0"

type staticUserStore struct {
	user *model.AdminUser
}

func (s *staticUserStore) GetByID(_ context.Context, id int64) (*model.AdminUser, error) {
	if s.user == nil || s.user.ID != id {
		return nil, sql.ErrNoRows
	}
	copied := *s.user
	return &copied, nil
}

func (s *staticUserStore) GetActiveByLogin(context.Context, string) (*model.AdminUser, error) {
	return nil, sql.ErrNoRows
}

func (s *staticUserStore) ExistsByUsernameOrEmail(context.Context, string, string) (bool, error) {
	return false, nil
}

func (s *staticUserStore) Create(context.Context, *model.AdminUser) (int64, error) { return 0, nil }

func (s *staticUserStore) RecordLoginFailure(context.Context, int64, int, sql.NullTime) error {
	return nil
}

func (s *staticUserStore) RecordLoginSuccess(context.Context, int64, time.Time) error { return nil }

func (s *staticUserStore) UpdatePassword(context.Context, int64, string, time.Time) error {
	return nil
}

type noopRecorder struct{}

func (noopRecorder) RecordAuth(context.Context, string, *int64, string, string, map[string]any) {}

func newTestAuthenticator(t *testing.T, user *model.AdminUser) (*Authenticator, *auth.TokenManager) {
	t.Helper()
	tokens := auth.NewTokenManager(testSecret, 24*time.Hour, 7*24*time.Hour)
	svc := auth.NewService(&staticUserStore{user: user}, noopRecorder{}, tokens, 5, 15*time.Minute)
	return NewAuthenticator(svc, render.New(false)), tokens
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func activeUser(role model.Role) *model.AdminUser {
	return &model.AdminUser{ID: 7, Username: "moody", Role: role, IsActive: true}
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	a, _ := newTestAuthenticator(t, activeUser(model.RoleAdmin))
	rec := httptest.NewRecorder()

	a.RequireAuth(okHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/api/admin/songs", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, render.CodeAuthTokenMissing, errorCode(t, rec))
}

func TestRequireAuth_BadFormat(t *testing.T) {
	a, _ := newTestAuthenticator(t, activeUser(model.RoleAdmin))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/admin/songs", nil)
	req.Header.Set("Authorization", "Token abc")

	a.RequireAuth(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, render.CodeAuthInvalidFormat, errorCode(t, rec))
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	a, _ := newTestAuthenticator(t, activeUser(model.RoleAdmin))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/admin/songs", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")

	a.RequireAuth(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, render.CodeAuthInvalidToken, errorCode(t, rec))
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	user := activeUser(model.RoleAdmin)
	a, _ := newTestAuthenticator(t, user)

	// Issue a token that is already past its expiry.
	expired := auth.NewTokenManager(testSecret, -time.Hour, 7*24*time.Hour)
	pair, err := expired.IssuePair(user)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/admin/songs", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

	a.RequireAuth(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, render.CodeAuthTokenExpired, errorCode(t, rec))
}

func TestRequireAuth_UserGone(t *testing.T) {
	user := activeUser(model.RoleAdmin)
	a, tokens := newTestAuthenticator(t, nil) // store has no users
	pair, err := tokens.IssuePair(user)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/admin/songs", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

	a.RequireAuth(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, render.CodeAuthUserNotFound, errorCode(t, rec))
}

func TestRequireAuth_ValidToken(t *testing.T) {
	user := activeUser(model.RoleAdmin)
	a, tokens := newTestAuthenticator(t, user)
	pair, err := tokens.IssuePair(user)
	require.NoError(t, err)

	var gotClaims *auth.Claims
	var gotUser *model.AdminUser
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = GetClaims(r)
		gotUser = GetUser(r)
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/admin/songs", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

	a.RequireAuth(inner).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotClaims)
	assert.Equal(t, int64(7), gotClaims.UserID)
	require.NotNil(t, gotUser)
	assert.Equal(t, "moody", gotUser.Username)
}

func TestOptionalAuth_NeverRejects(t *testing.T) {
	a, _ := newTestAuthenticator(t, activeUser(model.RoleAdmin))

	for _, header := range []string{"", "Bearer garbage", "Nonsense"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/songs", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		a.OptionalAuth(okHandler()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "header %q should not reject", header)
	}
}

func TestRequireRoles(t *testing.T) {
	user := activeUser(model.RoleEditor)
	a, tokens := newTestAuthenticator(t, user)
	pair, err := tokens.IssuePair(user)
	require.NoError(t, err)

	handler := a.RequireAuth(
		a.RequireRoles(model.RoleSuperAdmin, model.RoleAdmin)(okHandler()))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/api/admin/songs/1", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, render.CodeForbidden, errorCode(t, rec))

	// Editor is allowed when the set includes editor.
	allowed := a.RequireAuth(
		a.RequireRoles(model.RoleAdmin, model.RoleEditor)(okHandler()))
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/admin/songs", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	allowed.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireSelfOrRoles(t *testing.T) {
	user := activeUser(model.RoleEditor)
	a, tokens := newTestAuthenticator(t, user)
	pair, err := tokens.IssuePair(user)
	require.NoError(t, err)

	router := chi.NewRouter()
	router.With(a.RequireAuth, a.RequireSelfOrRoles("id", model.RoleSuperAdmin, model.RoleAdmin)).
		Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

	// Own record: allowed regardless of role.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/users/7", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Someone else's record: editor is refused.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/users/8", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
