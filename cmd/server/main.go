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

	"github.com/Skotchmaster/snake_catalogue/internal/config"
	"github.com/Skotchmaster/snake_catalogue/internal/es"
	"github.com/Skotchmaster/snake_catalogue/internal/handlers"
	authmw "github.com/Skotchmaster/snake_catalogue/internal/middleware/auth"
	"github.com/Skotchmaster/snake_catalogue/internal/mykafka"
	"github.com/Skotchmaster/snake_catalogue/internal/repo"
	"github.com/Skotchmaster/snake_catalogue/internal/service"
	"github.com/Skotchmaster/snake_catalogue/internal/storage"
	httpserver "github.com/Skotchmaster/snake_catalogue/internal/transport/http"
	"github.com/Skotchmaster/snake_catalogue/pkg/db"
	"github.com/Skotchmaster/snake_catalogue/pkg/hash"
	"github.com/Skotchmaster/snake_catalogue/pkg/logging"
	"github.com/Skotchmaster/snake_catalogue/pkg/tokens"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	tokenSvc, err := tokens.NewService(cfg.JWTSecret)
	if err != nil {
		return err
	}

	gdb, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logger.Error("db close error", "error", err)
		}
	}()

	r := &repo.GormRepo{DB: gdb}
	if err := r.Migrate(ctx); err != nil {
		return err
	}

	events := mykafka.NewProducer(cfg.KafkaBrokers)
	defer func() {
		if err := events.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}()

	var images storage.ImageStore = storage.Unavailable{}
	if cfg.S3.Enabled() {
		s3Store, err := storage.NewS3(ctx, cfg.S3)
		if err != nil {
			return err
		}
		images = s3Store
	} else {
		logger.Warn("S3_ENDPOINT or S3_BUCKET is not set, image uploads are disabled")
	}

	var index service.SnakeIndexer
	if cfg.ES.Enabled() {
		client, err := es.NewClient(cfg.ES)
		if err != nil {
			logger.Error("elasticsearch unavailable, search is disabled", "error", err)
		} else {
			index = es.NewSnakeIndex(client, cfg.ES.Index)
		}
	}

	authSvc := service.NewAuthService(r, hash.NewBcrypt(cfg.BcryptCost), tokenSvc, cfg.AccessTokenTTL, events)
	deps := &httpserver.Deps{
		Guard:         authmw.NewGuard(authSvc),
		HealthHandler: &handlers.HealthHandler{DB: gdb},
		AuthHandler:   &handlers.AuthHandler{Svc: authSvc},
		SnakeHandler: &handlers.SnakeHandler{Svc: &service.SnakeService{
			Repo:   r,
			Images: images,
			Index:  index,
			Events: events,
		}},
		MessageHandler: &handlers.MessageHandler{Svc: &service.MessageService{Repo: r, Events: events}},
	}

	e := httpserver.New(deps, httpserver.Options{
		Logger:       logger,
		AllowOrigins: cfg.AllowOrigins,
		ForceHTTPS:   cfg.ForceHTTPS,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}
