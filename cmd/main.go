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

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/reels-analyzer/internal/config"
	"github.com/Vovarama1992/reels-analyzer/internal/delivery"
	ws "github.com/Vovarama1992/reels-analyzer/internal/delivery/ws"
	"github.com/Vovarama1992/reels-analyzer/internal/domain"
	"github.com/Vovarama1992/reels-analyzer/internal/infra"
	"github.com/Vovarama1992/reels-analyzer/internal/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// LOGGER
	zcore, err := newZap(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer zcore.Sync()
	sugar := zcore.Sugar()
	zl := logger.NewZapLogger(sugar)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, sugar, zl); err != nil {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "server crashed",
			Error:   err,
		})
		os.Exit(1)
	}
}

func newZap(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func run(ctx context.Context, cfg *config.Config, sugar *zap.SugaredLogger, zl *logger.ZapLogger) error {
	client := infra.NewHTTPClient(cfg.HTTPTimeout)
	metrics := infra.NewMetrics()

	// JOURNAL (optional)
	var journal ports.Journal
	if cfg.DatabaseURL != "" {
		ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
		pool, err := infra.NewPgxPool(ctxPing, cfg.DatabaseURL)
		cancel()
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		defer pool.Close()

		pj := infra.NewPostgresJournal(pool)
		if err := pj.EnsureSchema(ctx); err != nil {
			return err
		}
		journal = pj
	}

	// LLM
	var llm ports.SummaryGenerator
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		g, err := infra.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return err
		}
		llm = g
	default:
		llm = infra.NewAIMLClient(cfg.AIMLAPIKey, cfg.AIMLAPIURL, cfg.AIMLAPIModel, client)
	}

	// STORAGE
	parse := infra.NewParseClient(cfg.ParseBaseURL(), cfg.ParseAppID, cfg.ParseAPIKey, cfg.ParseClass, client)
	var files ports.FileStore = parse
	if cfg.ThumbnailStore == config.StoreS3 {
		s3store, err := infra.NewS3FileStore(ctx, infra.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
			UsePathStyle:    cfg.S3UsePathStyle,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
		if err != nil {
			return err
		}
		files = s3store
	}

	// REEL SERVICE (orchestrator)
	reelService := domain.NewReelService(
		domain.ReelServiceConfig{
			MediaURLPrefix:   cfg.MediaURLPrefix,
			MaxThumbnailSide: cfg.MaxThumbnailSide,
			MaxImageBytes:    cfg.MaxImageBytes,
			MaxImagePixels:   cfg.MaxImagePixels,
		},
		infra.NewOGExtractor(client),
		llm,
		files,
		parse,
		journal,
		metrics,
		client,
		sugar,
	)
	authService := domain.NewAuthService(cfg.AuthSecret, cfg.AuthPassword)

	// WS HUB
	hub := ws.NewHub(sugar)
	go hub.Broadcast(ctx, reelService.Events())

	// ROUTER
	r := chi.NewRouter()
	if cfg.CORSEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "X-Auth"},
		}))
	}
	r.Use(delivery.MetricsMiddleware(metrics))
	r.Use(delivery.AuthMiddleware(authService))

	delivery.RegisterRoutes(r,
		authService,
		delivery.NewAuthHandler(authService, zl),
		delivery.NewReelHandler(reelService, zl),
		delivery.NewHistoryHandler(journal, zl),
		metrics.Handler(),
	)
	r.Get("/ws", ws.WSHandler(hub))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, "reels-analyzer"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Log(logger.LogEntry{
			Level:   "info",
			Message: "server started",
			Fields: map[string]any{
				"port":      cfg.Port,
				"llm":       cfg.LLMProvider,
				"thumbnail": cfg.ThumbnailStore,
				"journal":   journal != nil,
				"auth":      authService.Enabled(),
			},
		})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	zl.Log(logger.LogEntry{Level: "info", Message: "shutting down"})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
