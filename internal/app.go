package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"solana-withdraw-alerts/internal/config"
	"solana-withdraw-alerts/internal/dedup"
	"solana-withdraw-alerts/internal/kafka"
	"solana-withdraw-alerts/internal/notify"
	"solana-withdraw-alerts/internal/rest"
	"solana-withdraw-alerts/internal/services"
)

// App centralizes dependency wiring for the alert relay.
type App struct {
	cfg config.Config
	log zerolog.Logger

	redis     *redis.Client
	store     dedup.Store
	memory    *dedup.Memory // set for the memory backend; Run owns its janitor
	notifier  *notify.Telegram
	relay     *kafka.SummaryPublisher
	processor *services.Processor

	httpServer *http.Server
}

// NewApp builds an App with all required dependencies. The dedup
// backend is selected here, once, from configuration.
func NewApp(cfg config.Config, log zerolog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	switch cfg.DedupBackend {
	case config.DedupNone:
		a.store = dedup.Noop{}
	case config.DedupMemory:
		a.memory = dedup.NewMemory(cfg.DedupMaxEntries)
		a.store = a.memory
	case config.DedupRedis:
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.store = dedup.NewRedis(a.redis, cfg.DedupTTL)
	default:
		return nil, fmt.Errorf("unknown dedup backend %q", cfg.DedupBackend)
	}

	notifier, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		return nil, fmt.Errorf("init telegram notifier: %w", err)
	}
	a.notifier = notifier

	var relay services.Relay
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic != "" {
		a.relay = kafka.NewSummaryPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		relay = a.relay
	}

	a.processor = services.NewProcessor(a.store, notifier, relay, log)
	return a, nil
}

// Run starts background services and blocks until ctx cancellation or
// fatal error.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.cleanup()

	g, gctx := errgroup.WithContext(ctx)

	if a.memory != nil {
		g.Go(func() error {
			a.memory.Janitor(gctx, a.cfg.DedupTrimInterval)
			return nil
		})
	}

	g.Go(func() error {
		return a.runHTTPServer(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (a *App) runHTTPServer(ctx context.Context) error {
	r, srv := rest.NewServer(a.cfg)
	a.httpServer = srv
	webhook := rest.NewWebhookController(a.processor, a.log)
	webhook.RegisterWebhookRoutes(r.Group(""))

	serverErr := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", srv.Addr).Str("dedup", a.cfg.DedupBackend).Msg("http server started")
		serverErr <- srv.ListenAndServe()
	}()

	select {
	// App context shutdown:
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		err := <-serverErr
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	// HTTP server error:
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (a *App) cleanup() {
	if a.relay != nil {
		if err := a.relay.Close(); err != nil {
			a.log.Warn().Err(err).Msg("error closing Kafka publisher")
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn().Err(err).Msg("error closing Redis client")
		}
	}
}
