package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/someswar123624/job-portal-backend/internal/app"
	"github.com/someswar123624/job-portal-backend/internal/config"
	"github.com/someswar123624/job-portal-backend/internal/database"
	apphttp "github.com/someswar123624/job-portal-backend/internal/http"
	"github.com/someswar123624/job-portal-backend/internal/http/handlers"
	"github.com/someswar123624/job-portal-backend/internal/http/metrics"
	httpmw "github.com/someswar123624/job-portal-backend/internal/http/middleware"
	"github.com/someswar123624/job-portal-backend/internal/http/response"
	"github.com/someswar123624/job-portal-backend/internal/integration/googleauth"
	"github.com/someswar123624/job-portal-backend/internal/observability"
	"github.com/someswar123624/job-portal-backend/internal/repository/postgres"
	"github.com/someswar123624/job-portal-backend/internal/security"
	"github.com/someswar123624/job-portal-backend/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(migrateCtx, db); err != nil {
		cancelMigrate()
		log.Fatalf("migration failed: %v", err)
	}
	cancelMigrate()

	studentRepo := postgres.NewStudentRepository(db)
	employerRepo := postgres.NewEmployerRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	var googleVerifier googleauth.Verifier
	if cfg.GoogleClientID != "" {
		googleVerifier = googleauth.NewGoogleVerifier(cfg.GoogleClientID)
	}
	fileStore, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("failed to prepare upload dir: %v", err)
	}

	authService := app.NewAuthService(studentRepo, employerRepo, jwtProvider, googleVerifier, logger, cfg.AccessTokenTTL)
	jobService := app.NewJobService(jobRepo)
	applicationService := app.NewApplicationService(applicationRepo, jobRepo)

	var rateLimiter httpmw.Limiter
	if cfg.RedisAddr != "" {
		rateLimiter = httpmw.NewRedisLimiter(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	} else {
		rateLimiter = httpmw.NewRateLimiter()
	}

	authHandler := handlers.NewAuthHandler(authService, rateLimiter)
	jobHandler := handlers.NewJobHandler(jobService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, fileStore, rateLimiter)
	middleware := httpmw.NewAuthMiddleware(jwtProvider)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:        authHandler,
		JobHandler:         jobHandler,
		ApplicationHandler: applicationHandler,
		MetricsHandler:     handlers.NewMetricsHandler(collector),
		AuthMiddleware:     middleware,
		Metrics:            collector,
		RequestTimeout:     cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
