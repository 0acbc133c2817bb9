package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"portal-go/internal/config"
	"portal-go/internal/db"
	"portal-go/internal/http/router"
	"portal-go/internal/logging"
	"portal-go/internal/security"
	"portal-go/internal/store"
	"portal-go/internal/upload"
	"portal-go/internal/views"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()
	if *configPath == "" {
		*configPath = os.Getenv("CONFIG_FILE")
	}
	if *configPath == "" {
		*configPath = config.DefaultPath
	}

	// Load configuration
	cfg, cfgErr := config.Load(*configPath)
	if cfgErr != nil {
		cfg = config.Default()
	}
	if err := cfg.ApplyEnv(); err != nil {
		log.Fatalf("Failed to read environment: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfgErr != nil {
		logger.Warn("failed to load config, using defaults", zap.String("path", *configPath), zap.Error(cfgErr))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	projects, closeStore, err := openProjectStore(cfg)
	if err != nil {
		logger.Fatal("failed to initialize project store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer closeStore()

	saver, err := upload.NewSaver(cfg.UploadDir, cfg.MaxMedia)
	if err != nil {
		logger.Fatal("failed to prepare upload directory", zap.String("dir", cfg.UploadDir), zap.Error(err))
	}

	renderer, err := views.New()
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}

	credentials := security.NewStaticCredentials(cfg.Users)
	sessionStore := security.NewSessionStore(cfg.SessionSecret, cfg.SessionMaxAge)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sessionStore.RunJanitor(ctx, time.Minute, func(n int) {
		logger.Debug("purged expired sessions", zap.Int("count", n))
	})

	r := router.Setup(router.Deps{
		Credentials: credentials,
		Sessions:    sessionStore,
		Projects:    projects,
		Uploads:     saver,
		MaxMedia:    cfg.MaxMedia,
		Views:       renderer,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("server running", zap.String("url", "http://localhost:"+cfg.Port), zap.String("store", cfg.StoreDriver))
	logger.Info("sample credentials")
	for _, u := range credentials.Users() {
		logger.Info("credential",
			zap.String("role", string(u.Role)),
			zap.String("username", u.Username),
			zap.String("password", u.Password),
		)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}

func openProjectStore(cfg *config.Config) (store.ProjectStore, func(), error) {
	ids := store.NewIDClock()
	if cfg.StoreDriver == "memory" {
		return store.NewMemoryStore(ids), func() {}, nil
	}

	// Initialize database
	database, err := db.Init(cfg.StoreDriver, cfg.DBDSN, ids)
	if err != nil {
		return nil, nil, err
	}
	return database, func() { database.Close() }, nil
}
