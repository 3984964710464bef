package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fieldtechhq/fieldserve-backend/api/controllers"
	"github.com/fieldtechhq/fieldserve-backend/api/middleware"
	"github.com/fieldtechhq/fieldserve-backend/internal/auth"
	"github.com/fieldtechhq/fieldserve-backend/internal/qr"
	"github.com/fieldtechhq/fieldserve-backend/internal/technicians"
	"github.com/fieldtechhq/fieldserve-backend/internal/tickets"
	"github.com/fieldtechhq/fieldserve-backend/pkg/config"
	"github.com/fieldtechhq/fieldserve-backend/pkg/logger"
	"github.com/fieldtechhq/fieldserve-backend/pkg/metrics"
	"github.com/fieldtechhq/fieldserve-backend/pkg/redis"
	"github.com/fieldtechhq/fieldserve-backend/pkg/storage"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	HTTPMetrics    *metrics.HTTPMetrics
	DBPinger       controllers.Pinger
	RedisClient    *redis.Client
	TechnicianRepo *technicians.Repository
	AuthService    auth.Service
	TicketsService tickets.Service
	QRService      *qr.Service
	MediaStore     *storage.DiskStore
}

// NewRouter wires middleware, controllers, and static serving into one handler.
func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.CORS(),
	)
	if p.HTTPMetrics != nil {
		r.Use(p.HTTPMetrics.Middleware())
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		p.Config.AuthRateLimit.LoginWindow,
		p.Config.AuthRateLimit.LoginIPLimit,
		p.Config.AuthRateLimit.LoginUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Logger, map[string]controllers.Pinger{
			"database": p.DBPinger,
			"redis":    p.RedisClient,
		}))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.RedisClient, p.Logger)).
			Post("/auth/login", controllers.AuthLogin(p.AuthService, p.Logger))

		// public so customers can scan it from a technician's device
		r.Get("/qr/google-review", controllers.QRGoogleReview(p.QRService, p.Logger))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(p.Config.JWT, p.TechnicianRepo, p.Logger))

			r.Get("/technicians/me", controllers.TechnicianMe(p.TechnicianRepo, p.Logger))

			r.Route("/tickets", func(r chi.Router) {
				r.Get("/my-tickets", controllers.TicketsMine(p.TicketsService, p.Logger))
				r.Route("/{ticketID}", func(r chi.Router) {
					r.Get("/", controllers.TicketDetail(p.TicketsService, p.Logger))
					r.Delete("/", controllers.TicketDelete(p.TicketsService, p.Logger))
					r.Post("/work-log", controllers.TicketWorkLog(p.TicketsService, p.Logger))
					r.Post("/media", controllers.TicketMediaUpload(p.TicketsService, p.MediaStore, p.Config.Media, p.Logger))
					r.Post("/signature", controllers.TicketSignature(p.TicketsService, p.Logger))
					r.Put("/status", controllers.TicketStatus(p.TicketsService, p.Logger))
				})
			})
		})
	})

	if p.MediaStore != nil {
		uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(p.MediaStore.BaseDir())))
		r.Get("/uploads/*", uploads.ServeHTTP)
	}

	return r
}
