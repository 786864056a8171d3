package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"edu-backoffice/internal/config"
	"edu-backoffice/internal/handler"
	"edu-backoffice/internal/middleware"
	"edu-backoffice/internal/model"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler
	Blog      *handler.BlogHandler
	Analytics *handler.AnalyticsHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	superAdminOnly := []func(http.Handler) http.Handler{
		authMiddleware.RequireSession,
		authMiddleware.RequireRole(model.RoleSuperAdmin),
	}

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Post("/login", h.Auth.Login)

		api.Route("/auth", func(auth chi.Router) {
			auth.With(authMiddleware.RequireSession).Get("/me", h.Auth.Me)
			auth.Post("/logout", h.Auth.Logout)
		})

		api.With(superAdminOnly...).Get("/analytics", h.Analytics.Summary)

		api.Route("/super-admin", func(sa chi.Router) {
			sa.Post("/login", h.Auth.SuperAdminLogin)

			sa.Group(func(protected chi.Router) {
				protected.Use(superAdminOnly...)

				protected.Get("/data", h.Dashboard.Data)
				protected.Get("/overview", h.Dashboard.Overview)
				protected.Get("/stats", h.Dashboard.Stats)

				protected.Get("/blogs", h.Blog.List)
				protected.Post("/blogs", h.Blog.Create)
				protected.Get("/blogs/{slug}", h.Blog.Get)
				protected.Put("/blogs/{slug}", h.Blog.Update)
				protected.Delete("/blogs/{slug}", h.Blog.Delete)
			})
		})
	})

	return r
}
