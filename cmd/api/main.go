package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sangha/internal/auth"
	"sangha/internal/chanting"
	"sangha/internal/cloudinary"
	"sangha/internal/config"
	"sangha/internal/content"
	"sangha/internal/dashboard"
	"sangha/internal/homework"
	"sangha/internal/httpapi"
	"sangha/internal/httpmiddleware"
	"sangha/internal/logging"
	"sangha/internal/mentorship"
	"sangha/internal/notification"
	"sangha/internal/profile"
	"sangha/internal/queue"
	"sangha/internal/quiz"
	"sangha/internal/resource"
	"sangha/internal/roles"
	"sangha/internal/session"
	"sangha/internal/store"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.Production())
	defer func() { _ = log.Sync() }()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, log); err != nil {
		log.Fatal("http server failed", zap.Error(err))
	}
}

func run(cfg config.App, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.NewPostgres(ctx, cfg.DatabaseURL)
	if db == nil {
		return err
	}
	if err != nil {
		log.Warn("postgres not reachable", zap.Error(err))
	}
	defer db.Close()

	rdb := store.NewRedis(cfg.RedisAddr)
	defer func() { _ = rdb.Close() }()

	// Events go to redis for cmd/worker; the memory backend runs the dispatcher here.
	notes := notification.NewService(notification.NewRepository(db.Pool))
	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
		go func() {
			_ = notification.NewDispatcher(notes, log.Named("dispatcher")).Run(ctx, q)
		}()
	} else {
		q = queue.NewRedisQueue(rdb.Client, cfg.QueueKey)
	}

	var google auth.IDTokenVerifier
	if cfg.GoogleClientID != "" {
		google = auth.GoogleVerifier{ClientID: cfg.GoogleClientID}
	}
	blacklist := auth.NewRedisBlacklist(rdb.Client)
	authSvc := auth.NewService(auth.NewRepository(db.Pool), blacklist, google, auth.Options{
		Issuer:     cfg.JWTIssuer,
		SigningKey: cfg.JWTSigningKey,
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	})

	profiles := profile.NewService(profile.NewRepository(db.Pool))
	sessions := session.NewService(session.NewRepository(db.Pool), profiles, q, log)

	var gen content.Generator
	if cfg.GeminiAPIKey != "" {
		gen = content.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel)
	} else {
		log.Info("gemini not configured, content uses offline fallbacks")
	}

	var uploader httpapi.Uploader
	if cfg.CloudinaryConfigured() {
		uploader = cloudinary.New(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		log.Info("cloudinary configured", zap.String("cloud", cfg.CloudinaryCloudName))
	} else {
		log.Info("cloudinary not configured, uploads disabled")
	}

	api := httpapi.New(httpapi.Deps{
		Auth:          authSvc,
		Blacklist:     blacklist,
		Resolver:      roles.NewResolver(profiles, log),
		Profiles:      profiles,
		Sessions:      sessions,
		Homework:      homework.NewService(homework.NewRepository(db.Pool), q, log),
		Quizzes:       quiz.NewService(quiz.NewRepository(db.Pool), sessions, q, log),
		Resources:     resource.NewService(resource.NewRepository(db.Pool), q, log),
		Mentorship:    mentorship.NewService(mentorship.NewRepository(db.Pool), profiles, q, log),
		Notifications: notes,
		Chanting:      chanting.NewService(chanting.NewRepository(db.Pool)),
		Content:       content.NewService(gen, log),
		Dashboard:     dashboard.NewService(dashboard.NewRepository(db.Pool)),
		Uploader:      uploader,
		Health: func(ctx context.Context) map[string]bool {
			return map[string]bool{"db": db.Healthy(ctx), "redis": rdb.Healthy(ctx)}
		},
		SigningKey: cfg.JWTSigningKey,
		Issuer:     cfg.JWTIssuer,
		WebDir:     cfg.WebDir,
		Log:        log,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestLog(log, "/healthz", "/metrics"))
	r.Use(httpmiddleware.Metrics())
	r.Use(httpmiddleware.CORS(cfg.CORSOrigins))
	r.Use(httpmiddleware.SecurityHeaders())
	r.Use(httpmiddleware.NewRateLimiter(cfg.RateLimitPerMin, cfg.RateLimitPerMin, "/healthz", "/metrics", "/static/").Middleware())
	api.Register(r)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("forced shutdown", zap.Error(err))
	}
	log.Info("server exited")
	return nil
}

