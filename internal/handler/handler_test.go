package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/amoodyplace/moodyplace-go/internal/auth"
	"github.com/amoodyplace/moodyplace-go/internal/middleware"
	"github.com/amoodyplace/moodyplace-go/internal/model"
	"github.com/amoodyplace/moodyplace-go/internal/render"
	"github.com/amoodyplace/moodyplace-go/internal/service"
	"github.com/amoodyplace/moodyplace-go/internal/store"
	"github.com/amoodyplace/moodyplace-go/internal/testutil"
)

const testJWTSecret = "Xk9#mP2$vN8qR5tY7wZ3bC6dF1gH4jL0"

// testEnv wires a Handler against an in-memory database.
type testEnv struct {
	handler *Handler
	db      *store.DB
	users   *store.UserRepo
	auth    *auth.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.TestDB(t)
	users := store.NewUserRepo(db)
	events := service.NewEventService(store.NewEventRepo(db), testutil.TestLogger())
	tokens := auth.NewTokenManager(testJWTSecret, 24*time.Hour, 7*24*time.Hour)
	authSvc := auth.NewService(users, events, tokens, 5, 15*time.Minute)

	h := New(Deps{
		Renderer:   render.New(true),
		DB:         db,
		Songs:      store.NewSongRepo(db),
		Posts:      store.NewPostRepo(db),
		Shows:      store.NewShowRepo(db),
		Photos:     store.NewPhotoRepo(db),
		Contact:    store.NewContactRepo(db),
		Newsletter: store.NewNewsletterRepo(db),
		Users:      users,
		Auth:       authSvc,
		Events:     events,
	})
	return &testEnv{handler: h, db: db, users: users, auth: authSvc}
}

// router builds the route tree the tests exercise, without auth or rate
// limit middleware. Those layers have their own tests.
func (e *testEnv) router() *chi.Mux {
	h := e.handler
	r := chi.NewRouter()

	r.Get("/api/songs", h.ListSongs)
	r.Get("/api/songs/featured", h.FeaturedSongs)
	r.Get("/api/songs/{slug}", h.GetSongBySlug)
	r.Post("/api/songs/{slug}/play", h.PlaySong)
	r.Get("/api/posts", h.ListPosts)
	r.Get("/api/posts/recent", h.RecentPosts)
	r.Get("/api/posts/{slug}", h.GetPostBySlug)
	r.Post("/api/posts/{slug}/view", h.ViewPost)
	r.Get("/api/shows/upcoming", h.UpcomingShows)
	r.Get("/api/shows/past", h.PastShows)
	r.Get("/api/photos", h.ListPhotos)
	r.Get("/api/photos/featured", h.FeaturedPhotos)
	r.Get("/api/photos/press", h.PressPhotos)
	r.Post("/api/contact", h.SubmitContact)
	r.Post("/api/newsletter/subscribe", h.Subscribe)
	r.Post("/api/newsletter/confirm", h.ConfirmSubscription)
	r.Post("/api/newsletter/unsubscribe", h.Unsubscribe)
	r.Get("/api/site-info", h.GetSiteInfo)
	r.Get("/api/press-kit", h.GetPressKit)
	r.Get("/api/health", h.Health)

	r.Post("/api/admin/auth/login", h.Login)
	r.Post("/api/admin/auth/refresh", h.Refresh)
	r.Post("/api/admin/auth/register", h.Register)
	r.Get("/api/admin/users/{id}", h.AdminGetUser)
	r.Get("/api/admin/songs", h.AdminListSongs)
	r.Post("/api/admin/songs", h.AdminCreateSong)
	r.Get("/api/admin/songs/{id}", h.AdminGetSong)
	r.Put("/api/admin/songs/{id}", h.AdminUpdateSong)
	r.Delete("/api/admin/songs/{id}", h.AdminDeleteSong)
	r.Patch("/api/admin/songs/{id}/featured", h.AdminToggleSongFeatured)
	r.Get("/api/admin/posts", h.AdminListPosts)
	r.Post("/api/admin/posts", h.AdminCreatePost)
	r.Put("/api/admin/posts/{id}", h.AdminUpdatePost)
	r.Delete("/api/admin/posts/{id}", h.AdminDeletePost)
	r.Patch("/api/admin/posts/{id}/publish", h.AdminPublishPost)
	r.Post("/api/admin/shows", h.AdminCreateShow)
	r.Put("/api/admin/shows/{id}", h.AdminUpdateShow)
	r.Get("/api/admin/shows", h.AdminListShows)
	r.Get("/api/admin/photos", h.AdminListPhotos)
	r.Post("/api/admin/photos", h.AdminCreatePhoto)
	r.Get("/api/admin/contacts", h.AdminListContacts)
	r.Patch("/api/admin/contacts/{id}/responded", h.AdminSetContactResponded)
	r.Get("/api/admin/newsletter", h.AdminListSubscribers)
	r.Get("/api/admin/analytics/summary", h.AdminAnalyticsSummary)
	r.Get("/api/admin/analytics/events", h.AdminRecentEvents)
	r.Get("/api/admin/health", h.DetailedHealth)

	return r
}

// envelope mirrors the response shape for assertions.
type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Message string            `json:"message"`
	Error   *render.ErrorBody `json:"error"`
	Meta    render.Meta       `json:"meta"`
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.10:4242"

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec, env
}

func decodeData(t *testing.T, env envelope, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

var (
	testHashOnce sync.Once
	testHash     string
)

// testPasswordHash hashes the shared test password once; bcrypt at the
// production cost is too slow to repeat per test.
func testPasswordHash(t *testing.T) string {
	t.Helper()
	testHashOnce.Do(func() {
		hash, err := auth.HashPassword("Str0ngpass")
		if err != nil {
			t.Fatalf("hashing test password: %v", err)
		}
		testHash = hash
	})
	return testHash
}

func (e *testEnv) createUser(t *testing.T, username string, role model.Role) *model.AdminUser {
	t.Helper()

	user := &model.AdminUser{
		Username:     username,
		Email:        username + "@a-moody-place.com",
		PasswordHash: testPasswordHash(t),
		FullName:     "Test " + username,
		Role:         role,
		IsActive:     true,
	}
	id, err := e.users.Create(context.Background(), user)
	require.NoError(t, err)
	user.ID = id
	return user
}

// asUser injects an authenticated user the way RequireAuth would.
func asUser(user *model.AdminUser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
