package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"projectdesk/internal/audit"
	"projectdesk/internal/auth"
	"projectdesk/internal/clients"
	"projectdesk/internal/config"
	"projectdesk/internal/httpapi"
	"projectdesk/internal/identity"
	"projectdesk/internal/missions"
	"projectdesk/internal/projects"
	"projectdesk/internal/ratelimit"
	"projectdesk/internal/session"
	"projectdesk/pkg/logger"
	"projectdesk/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Local convenience only; absence of a .env file is not an error.
	_ = godotenv.Load()

	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	tokens, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgresRetry(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{}, 5)
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	users := identity.NewSQLRepo(db)
	verifier := identity.NewVerifier(users)
	issuer := session.NewIssuer(tokens, cfg.Cookie)
	refresher := session.NewRefresher(tokens, users)
	bus := session.NewEventBus(rdb)
	auditLog := audit.NewService(audit.NewSQLRepo(db))

	// Observe session events from every instance so superseded sessions are
	// visible in one log stream regardless of which node mutated them.
	sessionEvents, closeEvents := bus.Subscribe(rootCtx)
	defer func() { _ = closeEvents() }()
	go func() {
		for ev := range sessionEvents {
			log.Info("session event", "session_id", ev.SessionID, "at", ev.At)
		}
	}()

	loginLimiter, err := ratelimit.New(rdb, "login", 10, 15*time.Minute)
	if err != nil {
		log.Error("rate limiter init failed", "err", err)
		os.Exit(1)
	}

	deps := appDeps{
		tokens: tokens,
		auth: httpapi.Handlers{
			Tokens:       tokens,
			Users:        users,
			Verifier:     verifier,
			Sessions:     issuer,
			Refresher:    refresher,
			Audit:        auditLog,
			LoginLimiter: loginLimiter,
			Bus:          bus,
		},
		clients:  clients.HTTPHandlers{Svc: clients.NewService(clients.NewSQLRepo(db))},
		projects: projects.HTTPHandlers{Svc: projects.NewService(projects.NewSQLRepo(db))},
		missions: missions.HTTPHandlers{Svc: missions.NewService(missions.NewSQLRepo(db))},
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
