package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cacheadapter "github.com/consolebusters/account-service/internal/adapters/cache"
	httpadapter "github.com/consolebusters/account-service/internal/adapters/http"
	"github.com/consolebusters/account-service/internal/adapters/mailer"
	"github.com/consolebusters/account-service/internal/adapters/maintenance"
	"github.com/consolebusters/account-service/internal/adapters/postgres"
	"github.com/consolebusters/account-service/internal/adapters/security"
	"github.com/consolebusters/account-service/internal/application"
	"github.com/consolebusters/account-service/internal/domain"
	"github.com/consolebusters/account-service/internal/ports"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	sweeper    *maintenance.BlockSweeper
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger.Info("bootstrapping account service", "http_port", cfg.HTTPPort)

	pool, err := postgres.Connect(ctx, logger, cfg.DatabaseURL, cfg.MaxDBConns)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	sqlDB, err := pool.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm sql db: %w", err)
	}

	if err := postgres.RunMigrations(ctx, logger, pool); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	redisClient, err := cacheadapter.Connect(ctx, cfg.RedisURL)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	repos := postgres.NewRepositories(pool)
	codec, err := security.NewTokenCodec(cfg.AccessTokenSecret, cfg.RefreshTokenSecret)
	if err != nil {
		_ = sqlDB.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("init token codec: %w", err)
	}

	outbound, err := newMailer(cfg, logger)
	if err != nil {
		_ = sqlDB.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("init mailer: %w", err)
	}

	svc := application.NewService(application.Dependencies{
		Config: application.Config{
			DefaultRole:          domain.RoleUser,
			AccessTokenTTL:       cfg.AccessTokenTTL,
			RefreshTokenTTL:      cfg.RefreshTokenTTL,
			VerificationTokenTTL: cfg.VerificationTokenTTL,
			ResetTokenTTL:        cfg.ResetTokenTTL,
			OTPTokenTTL:          cfg.OTPTokenTTL,
			BlockDuration:        cfg.BlockDuration,
			FailedLoginThreshold: cfg.FailedThreshold,
			LockoutDuration:      cfg.LockoutDuration,
			PublicBaseURL:        cfg.PublicBaseURL,
			SweepBatchSize:       cfg.SweepBatchSize,
		},
		Accounts: repos.Accounts,
		Lockouts: cacheadapter.NewRedisLockoutStore(redisClient),
		Hasher:   security.NewBcryptHasher(cfg.BcryptCost),
		Tokens:   codec,
		Mailer:   outbound,
	})

	handler := httpadapter.NewHandler(svc, httpadapter.CookieOptions{
		Secure:          cfg.CookieSecure,
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
	})
	router := httpadapter.NewRouter(handler)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	sweeper := maintenance.NewBlockSweeper(logger, svc, cfg.SweepInterval)

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		sweeper:    sweeper,
		cleanupFn: func(ctx context.Context) {
			_ = redisClient.Close()
			_ = sqlDB.Close()
		},
	}, nil
}

func newMailer(cfg Config, logger *slog.Logger) (ports.Mailer, error) {
	switch cfg.MailerProvider {
	case "sendgrid":
		return mailer.NewSendGridMailer(cfg.SendGridAPIKey, cfg.FromEmail, cfg.FromName)
	case "smtp":
		return mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.FromEmail, cfg.FromName)
	case "log":
		return mailer.NewLogMailer(logger), nil
	default:
		return nil, fmt.Errorf("unknown mailer provider %q", cfg.MailerProvider)
	}
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("http server started", "addr", r.httpServer.Addr)
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		r.logger.Info("shutdown signal received")
	case err := <-errCh:
		r.logger.Error("server failure", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.cleanupFn(shutdownCtx)
	return nil
}

func (r *Runtime) RunWorker(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.logger.Info("block sweeper started", "interval", r.cfg.SweepInterval.String())
	err := r.sweeper.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r.cleanupFn(shutdownCtx)
	return nil
}
