package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/go-govjobs/internal/cache"
	"github.com/pribylovaa/go-govjobs/internal/config"
	"github.com/pribylovaa/go-govjobs/internal/pkg/log"
	"github.com/pribylovaa/go-govjobs/internal/pkg/redact"
	"github.com/pribylovaa/go-govjobs/internal/rss"
	"github.com/pribylovaa/go-govjobs/internal/secret"
	"github.com/pribylovaa/go-govjobs/internal/service"
	gjmongo "github.com/pribylovaa/go-govjobs/internal/storage/mongo"
	grpctransport "github.com/pribylovaa/go-govjobs/internal/transport/grpc"
	httptransport "github.com/pribylovaa/go-govjobs/internal/transport/http"
	"github.com/pribylovaa/go-govjobs/internal/transport/http/middleware"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const (
	healthInterval = 10 * time.Second
	shutdownWait   = 10 * time.Second
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	// .env опционален: в контейнерах переменные приходят из окружения.
	_ = godotenv.Load()

	cfg := config.MustLoad(configPath)

	logger := setupLogger(cfg.Env)
	slog.SetDefault(logger)
	logger.Info("starting announcements-service", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	logger.Info("mongo_connecting", slog.String("url", redact.URL(cfg.DB.URL)))

	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	store, err := gjmongo.New(dbCtx, cfg)
	dbCancel()
	if err != nil {
		logger.Error("mongo_connect_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo_connected")

	slugCache, err := newCache(rootCtx, cfg)
	if err != nil {
		logger.Error("redis_connect_failed", slog.String("err", err.Error()))
		_ = store.Close(context.Background())
		os.Exit(1)
	}

	svc := service.New(store, slugCache, *cfg)
	logger.Info("service_initialized")

	// gRPC health
	hs := grpctransport.NewHealthServer(logger, cfg.Timeouts.Service, store)

	lis, err := net.Listen("tcp", cfg.GRPC.Addr())
	if err != nil {
		logger.Error("grpc_listen_failed",
			slog.String("addr", cfg.GRPC.Addr()),
			slog.String("err", err.Error()),
		)
		_ = slugCache.Close()
		_ = store.Close(context.Background())
		os.Exit(1)
	}

	serveErrCh := make(chan error, 2)

	go func() {
		logger.Info("grpc_listen_start", slog.String("addr", cfg.GRPC.Addr()))
		if err := hs.Serve(lis); err != nil {
			serveErrCh <- err
		}
	}()

	go hs.Watch(rootCtx, healthInterval, 2*time.Second)

	// HTTP: API + liveness/readiness/metrics
	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if hs.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}
		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", httptransport.NewRouter(svc, httptransport.Options{
		Logger:      logger,
		Timeout:     cfg.Timeouts.Service,
		BulkTimeout: cfg.Timeouts.Bulk,
		BasePath:    cfg.HTTP.BasePath,
		Auth: middleware.AuthOptions{
			Secret:   cfg.Auth.JWTSecret,
			Issuer:   cfg.Auth.Issuer,
			Audience: cfg.Auth.Audience,
		},
	}))

	if cfg.Auth.JWTSecret == "" {
		logger.Warn("admin_routes_disabled", slog.String("reason", "empty jwt secret"))
	}

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http_listen_start", slog.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
	}()

	// ingest
	ingestDone := make(chan struct{})
	go func() {
		defer close(ingestDone)
		runIngest(log.Into(rootCtx, logger.With("component", "ingest")), cfg, svc)
	}()

	select {
	case <-rootCtx.Done():
		logger.Info("shutdown_requested")
	case err := <-serveErrCh:
		logger.Error("serve_failed", slog.String("err", err.Error()))
		rootCancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownWait)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http_shutdown_failed", slog.String("err", err.Error()))
	}
	hs.Shutdown(shutdownCtx)

	select {
	case <-ingestDone:
	case <-shutdownCtx.Done():
		logger.Warn("ingest_stop_timeout")
	}

	_ = slugCache.Close()
	_ = store.Close(context.Background())

	logger.Info("service_stopped")
}

// newCache - Redis, если задан URL, иначе in-memory кэш процесса.
func newCache(ctx context.Context, cfg *config.Config) (cache.Store, error) {
	if cfg.Redis.URL == "" {
		slog.Info("cache_in_memory")
		return cache.NewMemory(time.Now), nil
	}

	slog.Info("redis_connecting", slog.String("url", redact.URL(cfg.Redis.URL)))

	rctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	st, err := cache.NewRedis(rctx, cfg.Redis.URL, cfg.Redis.Prefix)
	if err != nil {
		return nil, err
	}
	slog.Info("redis_connected")

	return st, nil
}

// runIngest опрашивает RSS-ленты до отмены ctx. Без источников - no-op.
// Токен лент расшифровывается секрет-боксом; если это не удалось,
// ленты опрашиваются без авторизации.
func runIngest(ctx context.Context, cfg *config.Config, svc *service.Service) {
	lg := log.From(ctx)

	if len(cfg.Fetcher.Sources) == 0 {
		lg.Info("ingest_disabled", slog.String("reason", "no sources"))
		return
	}

	var opts []rss.Option
	if token, ok := feedToken(ctx, cfg); ok {
		opts = append(opts, rss.WithToken(token))
	}

	client := &http.Client{Timeout: cfg.Fetcher.Timeout}
	parser := rss.New(client, cfg.Fetcher.Concurrency, opts...)

	if err := svc.StartIngest(ctx, parser); err != nil {
		lg.Error("ingest_failed", slog.String("err", err.Error()))
	}
}

func feedToken(ctx context.Context, cfg *config.Config) (string, bool) {
	lg := log.From(ctx)

	if cfg.Fetcher.TokenEnc == "" {
		return "", false
	}

	box, err := secret.New(cfg.Secret.Passphrase)
	if err != nil {
		lg.Warn("feed_token_unavailable", slog.String("err", err.Error()))
		return "", false
	}

	token, ok := box.Decrypt(ctx, cfg.Fetcher.TokenEnc)
	if !ok {
		lg.Warn("feed_token_unavailable", slog.String("err", "decrypt failed"))
		return "", false
	}

	return token, true
}

// setupLogger - text для local, JSON для dev/prod.
func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
