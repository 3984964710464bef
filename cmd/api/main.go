package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fieldtechhq/fieldserve-backend/api/routes"
	"github.com/fieldtechhq/fieldserve-backend/internal/auth"
	"github.com/fieldtechhq/fieldserve-backend/internal/qr"
	"github.com/fieldtechhq/fieldserve-backend/internal/technicians"
	"github.com/fieldtechhq/fieldserve-backend/internal/tickets"
	"github.com/fieldtechhq/fieldserve-backend/pkg/config"
	"github.com/fieldtechhq/fieldserve-backend/pkg/db"
	"github.com/fieldtechhq/fieldserve-backend/pkg/logger"
	"github.com/fieldtechhq/fieldserve-backend/pkg/metrics"
	"github.com/fieldtechhq/fieldserve-backend/pkg/migrate"
	"github.com/fieldtechhq/fieldserve-backend/pkg/redis"
	"github.com/fieldtechhq/fieldserve-backend/pkg/storage"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	mediaStore, err := storage.NewDiskStore(cfg.Media.UploadDir, cfg.Media.PublicPath)
	if err != nil {
		logg.Error(context.Background(), "failed to prepare upload storage", err)
		os.Exit(1)
	}

	technicianRepo := technicians.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		TechnicianRepo: technicianRepo,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	ticketsService, err := tickets.NewService(tickets.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create tickets service", err)
		os.Exit(1)
	}

	qrService, err := qr.NewService(cfg.QR)
	if err != nil {
		logg.Error(context.Background(), "failed to create qr service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:         cfg,
			Logger:         logg,
			HTTPMetrics:    httpMetrics,
			DBPinger:       dbClient,
			RedisClient:    redisClient,
			TechnicianRepo: technicianRepo,
			AuthService:    authService,
			TicketsService: ticketsService,
			QRService:      qrService,
			MediaStore:     mediaStore,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
