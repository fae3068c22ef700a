package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"thumb-studio/api"
	"thumb-studio/config"
	"thumb-studio/editor"
	"thumb-studio/generate"
	"thumb-studio/logging"
	"thumb-studio/persist"
	"thumb-studio/preset"
	"thumb-studio/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.PersistBackend).Msg("persist backend")
	}
	defer closeBackend()

	pm, err := preset.NewManager(cfg.PresetFile)
	if err != nil {
		logger.Fatal().Err(err).Str("file", cfg.PresetFile).Msg("failed to load presets")
	}

	manager := session.NewManager(session.Options{
		Catalog:        pm.Catalog(),
		Client:         newGenerator(cfg, logger),
		Backend:        backend,
		Namespace:      cfg.PersistNamespace,
		StartingTokens: editor.TokensFromFloat(cfg.StartingTokens),
		Logger:         &logger,
	})

	router := api.RegisterRoutes(manager, pm, api.Options{
		Logger:         &logger,
		GenerateLimit:  cfg.RateLimitPerMinute,
		GenerateWindow: time.Minute,
		TrustProxy:     cfg.TrustProxyHeaders,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", srv.Addr).Str("backend", cfg.PersistBackend).Str("generator", cfg.Generator).Msg("thumb-studio listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		manager.Shutdown()
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		return
	}
	logger.Info().Msg("server stopped")
}

// openBackend builds the configured persistence backend and its cleanup.
func openBackend(ctx context.Context, cfg *config.Config) (persist.Backend, func(), error) {
	noop := func() {}
	switch cfg.PersistBackend {
	case config.BackendMemory:
		return persist.NewMemory(), noop, nil
	case config.BackendRedis:
		r, err := persist.NewRedis(ctx, persist.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.RedisTTL,
		})
		if err != nil {
			return nil, nil, err
		}
		return r, func() { _ = r.Close() }, nil
	case config.BackendPostgres:
		p, err := persist.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	default:
		f, err := persist.NewFile(cfg.PersistDir)
		if err != nil {
			return nil, nil, err
		}
		return f, noop, nil
	}
}

func newGenerator(cfg *config.Config, logger zerolog.Logger) generate.Client {
	if cfg.Generator == config.GeneratorHTTP {
		return generate.NewHTTPClient(generate.HTTPOptions{
			BaseURL: cfg.GeneratorURL,
			APIKey:  cfg.GeneratorAPIKey,
			Timeout: cfg.GeneratorTimeout,
		})
	}
	logger.Warn().Dur("latency", cfg.MockLatency).Msg("using mock image generator")
	return generate.NewMock(cfg.MockLatency)
}
