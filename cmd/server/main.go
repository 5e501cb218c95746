package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shareish/shareish/internal/config"
	"github.com/shareish/shareish/internal/database"
	"github.com/shareish/shareish/internal/handlers"
	"github.com/shareish/shareish/internal/logging"
	"github.com/shareish/shareish/internal/middleware"
	"github.com/shareish/shareish/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	logger := logging.New()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger.Info("Starting Shareish server...")

	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	db, err := database.NewPostgresDB(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	logger.Info("Running database migrations...")
	migrator, err := database.NewMigrator(cfg.Database.DSN(), "migrations")
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		return fmt.Errorf("running migrations: %w", err)
	}
	_ = migrator.Close()
	logger.Info("Migrations completed")

	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Redis.Addr(),
	})
	redisDB, err := database.NewRedisDB(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()
	logger.Info("Connected to Redis")

	// Services
	dbAdapter := services.NewPoolAdapter(db.Pool)

	userService := services.NewUserService(dbAdapter)
	authService := services.NewAuthService()
	tokenService := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	friendService := services.NewFriendService(dbAdapter)
	shareableService := services.NewShareableService(dbAdapter)
	emailService := services.NewEmailService(&cfg.Email)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	healthHandler.AddCheck("postgres", func(r *http.Request) error { return db.Health(r.Context()) })
	healthHandler.AddCheck("redis", func(r *http.Request) error { return redisDB.Health(r.Context()) })

	authHandler := handlers.NewAuthHandler(userService, authService, tokenService, emailService)
	profileHandler := handlers.NewProfileHandler(userService, friendService, shareableService)
	friendHandler := handlers.NewFriendHandler(userService, friendService, shareableService, emailService)
	shareableHandler := handlers.NewShareableHandler(shareableService)
	pagesHandler := handlers.NewPagesHandler(cfg.Server.StaticDir)

	// Middleware
	secure := cfg.Server.Environment == "production"
	authenticator := middleware.NewAuthenticator(tokenService)
	securityHeaders := middleware.NewSecurityHeaders(secure)
	requestLogger := middleware.NewRequestLogger(logger)
	authRateLimiter := middleware.NewAuthRateLimiter(redisDB.Client)
	apiRateLimiter := middleware.NewAPIRateLimiter(redisDB.Client)

	limitAuth := authRateLimiter.Limit
	requireAuth := func(h http.Handler) http.Handler {
		return apiRateLimiter.Limit(authenticator.Require(h))
	}

	// Router
	mux := http.NewServeMux()

	// Health endpoints (no auth, no rate limit)
	mux.HandleFunc("GET /health", healthHandler.Ready)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	// Auth endpoints
	mux.Handle("POST /api/auth/signup", limitAuth(http.HandlerFunc(authHandler.Signup)))
	mux.Handle("POST /api/auth/signin", limitAuth(http.HandlerFunc(authHandler.Signin)))
	mux.Handle("GET /api/auth/verify", requireAuth(http.HandlerFunc(authHandler.Verify)))

	// Profile endpoints
	mux.Handle("GET /api/me", requireAuth(http.HandlerFunc(profileHandler.GetMe)))
	mux.Handle("PUT /api/me", requireAuth(http.HandlerFunc(profileHandler.UpdateMe)))
	mux.Handle("DELETE /api/me", requireAuth(http.HandlerFunc(profileHandler.DeleteMe)))

	// Friend endpoints
	mux.Handle("PUT /api/me/friend-requests", requireAuth(http.HandlerFunc(friendHandler.SendRequest)))
	mux.Handle("GET /api/me/friends", requireAuth(http.HandlerFunc(friendHandler.List)))
	mux.Handle("GET /api/me/friends/{id}", requireAuth(http.HandlerFunc(friendHandler.GetFriend)))
	mux.Handle("PUT /api/me/friends/{id}", requireAuth(http.HandlerFunc(friendHandler.Confirm)))
	mux.Handle("DELETE /api/me/friends/{id}", requireAuth(http.HandlerFunc(friendHandler.Unfriend)))

	// Shareable endpoints
	mux.Handle("GET /api/me/shareables", requireAuth(http.HandlerFunc(shareableHandler.ListOwn)))
	mux.Handle("POST /api/me/shareables", requireAuth(http.HandlerFunc(shareableHandler.Create)))
	mux.Handle("PUT /api/me/shareables/{id}", requireAuth(http.HandlerFunc(shareableHandler.Update)))
	mux.Handle("DELETE /api/me/shareables/{id}", requireAuth(http.HandlerFunc(shareableHandler.Delete)))
	mux.Handle("GET /api/me/feed", requireAuth(http.HandlerFunc(shareableHandler.Feed)))

	// Static assets and SPA fallback
	fs := http.FileServer(http.Dir(cfg.Server.StaticDir))
	mux.Handle("GET /static/", http.StripPrefix("/static/", fs))
	mux.Handle("GET /", pagesHandler)

	// Build middleware chain (order matters: outermost first)
	var handler http.Handler = mux
	handler = securityHeaders.Apply(handler)
	handler = requestLogger.Apply(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
