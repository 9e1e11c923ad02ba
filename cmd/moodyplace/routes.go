// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/amoodyplace/moodyplace-go/internal/config"
	"github.com/amoodyplace/moodyplace-go/internal/handler"
	"github.com/amoodyplace/moodyplace-go/internal/middleware"
	"github.com/amoodyplace/moodyplace-go/internal/model"
	"github.com/amoodyplace/moodyplace-go/internal/render"
)

// newRouter builds the full route tree: crawler files, static assets,
// the public JSON API, and the admin API behind bearer auth.
func newRouter(cfg *config.Config, renderer *render.Renderer, h *handler.Handler,
	authn *middleware.Authenticator, sessions *scs.SessionManager) *chi.Mux {

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5)) // Gzip compression with level 5
	r.Use(chimw.GetHead)     // Handle HEAD requests for uptime monitoring
	r.Use(middleware.Timeout(renderer, 30*time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.NewRateLimiter(renderer, "general", generalLimit, rateWindow).Middleware())

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	// Crawler files and the load balancer probe live at the root,
	// outside the API rate limit tier.
	r.Get("/health", h.Health)
	r.Get("/sitemap.xml", h.Sitemap)
	r.Get("/robots.txt", h.Robots)
	r.Get("/.well-known/security.txt", h.SecurityTxt)

	// Static assets: site assets get a day, uploaded media a week.
	r.Group(func(r chi.Router) {
		r.Use(middleware.StaticCache(middleware.CacheMaxAgeAssets))
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.PublicDir))))
	})
	r.Group(func(r chi.Router) {
		r.Use(middleware.StaticCache(middleware.CacheMaxAgeImages))
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NewRateLimiter(renderer, "api", apiLimit, rateWindow).Middleware())
		r.Use(middleware.NoCache)

		// Public endpoints. Sessions carry non-auth state for the site.
		r.Group(func(r chi.Router) {
			r.Use(sessions.LoadAndSave)

			r.Get("/songs", h.ListSongs)
			r.Get("/songs/featured", h.FeaturedSongs)
			r.Get("/songs/{slug}", h.GetSongBySlug)
			r.Post("/songs/{slug}/play", h.PlaySong)
			r.Get("/posts", h.ListPosts)
			r.Get("/posts/recent", h.RecentPosts)
			r.Get("/posts/{slug}", h.GetPostBySlug)
			r.Post("/posts/{slug}/view", h.ViewPost)
			r.Get("/shows/upcoming", h.UpcomingShows)
			r.Get("/shows/past", h.PastShows)
			r.Get("/photos", h.ListPhotos)
			r.Get("/photos/featured", h.FeaturedPhotos)
			r.Get("/photos/press", h.PressPhotos)
			r.Post("/contact", h.SubmitContact)
			r.Post("/newsletter/subscribe", h.Subscribe)
			r.Post("/newsletter/confirm", h.ConfirmSubscription)
			r.Post("/newsletter/unsubscribe", h.Unsubscribe)
			r.Get("/site-info", h.GetSiteInfo)
			r.Get("/press-kit", h.GetPressKit)
			r.Get("/health", h.Health)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				// Credential endpoints get the strictest tier plus a
				// token bucket that absorbs short bursts.
				r.Group(func(r chi.Router) {
					r.Use(middleware.NewRateLimiter(renderer, "auth", authLimit, rateWindow).Middleware())
					r.Use(middleware.NewBurstLimiter(renderer, 1, 3).Middleware())
					r.Post("/login", h.Login)
					r.Post("/refresh", h.Refresh)
				})

				r.Group(func(r chi.Router) {
					r.Use(authn.RequireAuth)
					r.Post("/logout", h.Logout)
					r.Get("/me", h.Me)
					r.Put("/password", h.ChangePassword)

					r.With(authn.RequireRoles(model.RoleSuperAdmin, model.RoleAdmin)).
						Post("/register", h.Register)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(authn.RequireAuth)
				adminUp := authn.RequireRoles(model.RoleSuperAdmin, model.RoleAdmin)

				r.With(authn.RequireSelfOrRoles("id", model.RoleSuperAdmin, model.RoleAdmin)).
					Get("/users/{id}", h.AdminGetUser)

				// Content management is open to every role; deleting
				// content needs admin or above.
				r.Get("/songs", h.AdminListSongs)
				r.Post("/songs", h.AdminCreateSong)
				r.Get("/songs/{id}", h.AdminGetSong)
				r.Put("/songs/{id}", h.AdminUpdateSong)
				r.With(adminUp).Delete("/songs/{id}", h.AdminDeleteSong)
				r.Patch("/songs/{id}/featured", h.AdminToggleSongFeatured)

				r.Get("/posts", h.AdminListPosts)
				r.Post("/posts", h.AdminCreatePost)
				r.Get("/posts/{id}", h.AdminGetPost)
				r.Put("/posts/{id}", h.AdminUpdatePost)
				r.With(adminUp).Delete("/posts/{id}", h.AdminDeletePost)
				r.Patch("/posts/{id}/publish", h.AdminPublishPost)

				r.Get("/shows", h.AdminListShows)
				r.Post("/shows", h.AdminCreateShow)
				r.Get("/shows/{id}", h.AdminGetShow)
				r.Put("/shows/{id}", h.AdminUpdateShow)
				r.With(adminUp).Delete("/shows/{id}", h.AdminDeleteShow)

				r.Get("/photos", h.AdminListPhotos)
				r.Post("/photos", h.AdminCreatePhoto)
				r.Get("/photos/{id}", h.AdminGetPhoto)
				r.Put("/photos/{id}", h.AdminUpdatePhoto)
				r.With(adminUp).Delete("/photos/{id}", h.AdminDeletePhoto)

				// Inquiries, subscribers and analytics need admin or above.
				r.Group(func(r chi.Router) {
					r.Use(adminUp)

					r.Get("/contacts", h.AdminListContacts)
					r.Get("/contacts/{id}", h.AdminGetContact)
					r.Patch("/contacts/{id}/responded", h.AdminSetContactResponded)
					r.Delete("/contacts/{id}", h.AdminDeleteContact)

					r.Get("/newsletter", h.AdminListSubscribers)
					r.Delete("/newsletter/{id}", h.AdminDeleteSubscriber)

					r.Get("/analytics/summary", h.AdminAnalyticsSummary)
					r.Get("/analytics/events", h.AdminRecentEvents)

					r.Get("/health", h.DetailedHealth)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		renderer.NotFound(w, "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		renderer.Error(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	return r
}
