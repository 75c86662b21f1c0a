package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"news_portal/internal/auth"
	"news_portal/internal/config"
	"news_portal/internal/httpapi"
	"news_portal/internal/publisher"
	"news_portal/internal/service"
	"news_portal/internal/storage/memory"
	"news_portal/internal/storage/migrate"
	"news_portal/internal/storage/postgres"
)

// stores is the Entity Store selected by database.driver.
type stores struct {
	articles service.ArticleStore
	videos   service.VideoStore
	epapers  service.EpaperStore
	users    interface {
		service.UserStore
		auth.UserStore
	}
	pinger httpapi.Pinger
	close  func() error
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	st, err := openStores(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer st.close()

	var events service.Publisher
	if cfg.Events.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.Events.URL,
			Exchange:   cfg.Events.Exchange,
			RoutingKey: cfg.Events.RoutingKey,
			QueueName:  cfg.Events.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		events = rabbitMQ
	}

	// The provider's key set wins over a shared secret when both are configured.
	var verifier auth.Verifier
	if cfg.Auth.JWKSURL != "" {
		jwks, err := auth.NewJWKSVerifier(ctx, cfg.Auth.JWKSURL, cfg.Auth.Issuer, cfg.Auth.Audience, logger)
		if err != nil {
			logger.Error("failed to fetch session signing keys", "url", cfg.Auth.JWKSURL, "error", err)
			os.Exit(1)
		}
		defer jwks.Close()
		verifier = jwks
	} else {
		verifier = auth.NewHMACVerifier([]byte(cfg.Auth.JWTSecret), cfg.Auth.Issuer, cfg.Auth.Audience)
	}

	contentService := service.NewContentService(st.articles, st.videos, st.epapers, events, logger, cfg.Listing)
	userService := service.NewUserService(st.users, logger)
	gate := auth.NewGate(verifier, st.users, logger)

	server := httpapi.New(httpapi.Options{
		HTTP:       cfg.HTTP,
		CookieName: cfg.Auth.CookieName,
		Content:    contentService,
		Users:      userService,
		Gate:       gate,
		Store:      st.pinger,
		Logger:     logger,
	})

	logger.Info("starting news portal",
		"addr", cfg.HTTP.Addr,
		"driver", cfg.Database.Driver,
		"events", cfg.Events.Enabled,
	)

	if err := server.Run(ctx); err != nil {
		logger.Error("http server error", "error", err)
		os.Exit(1)
	}
	logger.Info("news portal stopped")
}

func openStores(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*stores, error) {
	if cfg.Driver == "memory" {
		logger.Warn("using in-memory store; data is lost on exit")
		db := memory.New()
		return &stores{
			articles: db.Articles(),
			videos:   db.Videos(),
			epapers:  db.Epapers(),
			users:    db.Users(),
			pinger:   db,
			close:    func() error { return nil },
		}, nil
	}

	db, err := postgres.Connect(ctx, cfg.DSN(), postgres.PoolConfig{
		MaxOpenConns: cfg.MaxOpenConns,
		MaxIdleConns: cfg.MaxIdleConns,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("connected to database")

	if cfg.ShouldMigrate() {
		if err := migrate.Up(db.DB, cfg.MigrationsPath, logger); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &stores{
		articles: postgres.NewArticleStore(db),
		videos:   postgres.NewVideoStore(db),
		epapers:  postgres.NewEpaperStore(db),
		users:    postgres.NewUserStore(db),
		pinger:   db,
		close:    db.Close,
	}, nil
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
