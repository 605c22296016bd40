package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-blog-api/config"
	"github.com/oksasatya/go-ddd-blog-api/internal/container"
	"github.com/oksasatya/go-ddd-blog-api/internal/infrastructure/store"
	"github.com/oksasatya/go-ddd-blog-api/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-blog-api/internal/router"
	"github.com/oksasatya/go-ddd-blog-api/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog-api/pkg/upload"
	"github.com/oksasatya/go-ddd-blog-api/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	repos, err := store.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer repos.Close()
	logger.WithField("driver", cfg.StoreDriver).Info("store ready")

	c := &container.Container{
		Config:   cfg,
		Logger:   logger,
		Users:    repos.Users,
		Posts:    repos.Posts,
		Comments: repos.Comments,
		JWT:      helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
	}

	// Redis (rate limiting only)
	if rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); rdb != nil {
		defer func() { _ = rdb.Close() }()
		c.Redis = rdb
	}

	// Upload backend
	uploads, closeUploads, err := newUploadStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to init upload storage: %v", err)
	}
	defer closeUploads()
	c.Uploads = uploads

	// Elasticsearch (post search)
	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		logger.WithError(err).Warn("elasticsearch disabled")
	}
	c.ES = es

	// RabbitMQ (comment notifications)
	if cfg.MailSendEnabled && cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQNotifyQueue)
		if err != nil {
			logger.WithError(err).Warn("comment notifications disabled")
		} else {
			defer pub.Close()
			c.Publisher = pub
		}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "API is running...") })
	if cfg.UploadBackend != "gcs" {
		r.Static("/uploads", cfg.UploadDir)
	}

	reg := router.NewRegistry(r, "/api")
	router.InitModules(reg, c)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
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
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
		return
	}
	logger.Info("server exited properly")
}

func newUploadStorage(ctx context.Context, cfg *config.Config) (upload.Storage, func(), error) {
	if cfg.UploadBackend == "gcs" {
		client, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			return nil, nil, err
		}
		return upload.NewGCSStorage(client, cfg.GCSBucket, "uploads"), func() { _ = client.Close() }, nil
	}
	s, err := upload.NewLocalStorage(cfg.UploadDir, "/uploads")
	if err != nil {
		return nil, nil, err
	}
	return s, func() {}, nil
}
