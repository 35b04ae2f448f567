package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/keeper31337/homepage-api/config"
	"github.com/keeper31337/homepage-api/db"
	"github.com/keeper31337/homepage-api/internal/container"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
	pginfra "github.com/keeper31337/homepage-api/internal/infrastructure/postgres"
	"github.com/keeper31337/homepage-api/internal/infrastructure/storage"
	"github.com/keeper31337/homepage-api/internal/interface/middleware"
	"github.com/keeper31337/homepage-api/internal/jobs"
	"github.com/keeper31337/homepage-api/internal/router"
	"github.com/keeper31337/homepage-api/pkg/helpers"
	"github.com/keeper31337/homepage-api/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Migrations are embedded in the binary
	if err := db.RunMigrations(cfg.PostgresDSN(), logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	// Initialize Postgres pool
	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	// Redis holds refresh tokens, email auth codes and rate limit counters
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	// Blob storage for uploaded files and thumbnails
	var blobs repository.BlobStorage
	switch cfg.StorageDriver {
	case "gcs":
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcsClient.Close() }()
		blobs = storage.NewGCSStorage(gcsClient, cfg.GCSBucket)
	default:
		blobs = storage.NewLocalStorage(cfg.FileRootPath, cfg.FilePublicURL)
	}

	// Elasticsearch is optional; post search falls back to postgres
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch disabled")
		} else {
			container.SetES(es)
		}
	}

	// RabbitMQ feeds the email worker
	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable, emails will not be queued")
		} else {
			defer pub.Close()
			container.SetRabbitPub(pub)
		}
	}

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetRedis(rdb)
	container.SetBlobStorage(blobs)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL))
	container.SetCookies(helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure))

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if cfg.MetricsEnabled {
		m := middleware.NewMetrics("keeper")
		container.SetMetrics(m)
		r.Use(m.Middleware())
	}
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}
	if cfg.StorageDriver != "gcs" && strings.HasPrefix(cfg.FilePublicURL, "/") {
		r.Static(cfg.FilePublicURL, cfg.FileRootPath)
	}

	// Registry: auto-register modules using container
	services := router.BuildServices()
	reg := router.NewRegistry(r)
	router.InitModules(reg, services)
	reg.RegisterAll()

	scheduler := jobs.NewScheduler(logger, nil)
	if err := scheduler.AddOverdueReminder(cfg.OverdueReminderCron, services.Library); err != nil {
		logger.Fatalf("invalid OVERDUE_REMINDER_CRON %q: %v", cfg.OverdueReminderCron, err)
	}
	scheduler.Start()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	scheduler.Stop(ctxShutdown)
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
