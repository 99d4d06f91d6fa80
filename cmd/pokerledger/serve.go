package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokerledger/internal/common/clock"
	"github.com/KirkDiggler/pokerledger/internal/common/money"
	"github.com/KirkDiggler/pokerledger/internal/common/uuid"
	"github.com/KirkDiggler/pokerledger/internal/config"
	"github.com/KirkDiggler/pokerledger/internal/handlers/api"
	"github.com/KirkDiggler/pokerledger/internal/handlers/discord"
	"github.com/KirkDiggler/pokerledger/internal/repositories/player"
	"github.com/KirkDiggler/pokerledger/internal/repositories/session"
	"github.com/KirkDiggler/pokerledger/internal/repositories/stats"
	ledgerService "github.com/KirkDiggler/pokerledger/internal/services/ledger"
	"github.com/KirkDiggler/pokerledger/internal/services/messaging"
	"github.com/KirkDiggler/pokerledger/internal/services/notification"
)

// shutdownTimeout bounds each shutdown step on its own
const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API and, when DISCORD_TOKEN is set, the Discord bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Optional .env file read before the environment")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// Repositories
	sessionRepo, err := session.NewRedis(&session.Config{
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create session repository: %w", err)
	}

	playerRepo, err := player.NewRedis(&player.Config{RedisClient: redisClient})
	if err != nil {
		return fmt.Errorf("failed to create player repository: %w", err)
	}

	statsRepo, err := stats.NewRedis(&stats.Config{RedisClient: redisClient})
	if err != nil {
		return fmt.Errorf("failed to create stats repository: %w", err)
	}

	messagingSvc, err := messaging.New(&messaging.Config{
		Formatter:       money.NewFormatter(cfg.CurrencySymbol),
		PaymentLinkBase: cfg.PaymentLinkBase,
	})
	if err != nil {
		return fmt.Errorf("failed to create messaging service: %w", err)
	}

	sinks, err := buildSinks(cfg, redisClient, statsRepo, messagingSvc)
	if err != nil {
		return err
	}

	notifier, err := notification.New(&notification.Config{
		Sinks:  sinks,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create notification service: %w", err)
	}

	ledgerSvc, err := ledgerService.New(&ledgerService.Config{
		SessionRepo:         sessionRepo,
		PlayerRepo:          playerRepo,
		StatsRepo:           statsRepo,
		NotificationService: notifier,
		Clock:               clock.New(),
		UUIDGenerator:       uuid.New(),
		Logger:              logger,
		SaveDebounce:        cfg.SaveDebounce,
		RecentSessionDays:   cfg.RecentSessionDays,
		DefaultChipValue:    cfg.DefaultChipValue,
	})
	if err != nil {
		return fmt.Errorf("failed to create ledger service: %w", err)
	}

	steps := &shutdownSteps{
		ledger:   ledgerSvc,
		notifier: notifier,
		timeout:  shutdownTimeout,
	}

	var server *http.Server
	serverErr := make(chan error, 1)
	if cfg.HTTPAddr != "" {
		server, steps.cancelRequests = newHTTPServer(cfg.HTTPAddr, api.NewRouter(api.RouterConfig{
			Logger:        logger,
			LedgerService: ledgerSvc,
		}))
		steps.server = server
		go func() {
			logger.Info("starting HTTP server", "addr", cfg.HTTPAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()
	}

	var bot *discord.Bot
	if cfg.DiscordToken != "" {
		bot, err = discord.New(&discord.Config{
			Token:            cfg.DiscordToken,
			ApplicationID:    cfg.ApplicationID,
			GuildID:          cfg.GuildID,
			LedgerService:    ledgerSvc,
			MessagingService: messagingSvc,
			Logger:           logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create Discord bot: %w", err)
		}
		if err := bot.Start(); err != nil {
			return fmt.Errorf("failed to start Discord bot: %w", err)
		}
		steps.bot = bot
	}

	if server == nil && bot == nil {
		return errors.New("nothing to serve: set HTTP_ADDR or DISCORD_TOKEN")
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serverErr:
		logger.Error("HTTP server failed", "error", err)
	}

	return shutdown(steps)
}

type botStopper interface {
	Stop() error
}

type ledgerCloser interface {
	Close(ctx context.Context) error
}

type notifierCloser interface {
	Close() error
}

// shutdownSteps lists what serve started, in the order it is stopped.
// Unset members are skipped.
type shutdownSteps struct {
	server         *http.Server
	cancelRequests context.CancelFunc
	bot            botStopper
	ledger         ledgerCloser
	notifier       notifierCloser
	timeout        time.Duration
}

// newHTTPServer returns a server whose request contexts all end when the
// returned cancel is called. Event streams only return once their request
// context is done, so Shutdown would otherwise wait them out.
func newHTTPServer(addr string, handler http.Handler) (*http.Server, context.CancelFunc) {
	requestCtx, cancel := context.WithCancel(context.Background())
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return requestCtx
		},
	}, cancel
}

// shutdown stops everything in steps. Each timed step gets its own deadline
// so a slow HTTP drain cannot eat into the final ledger flush.
func shutdown(steps *shutdownSteps) error {
	var errs []error

	if steps.server != nil {
		if steps.cancelRequests != nil {
			steps.cancelRequests()
		}
		ctx, cancel := context.WithTimeout(context.Background(), steps.timeout)
		if err := steps.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
		cancel()
	}
	if steps.bot != nil {
		if err := steps.bot.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("bot shutdown: %w", err))
		}
	}
	// Pending saves go out before the notifier stops accepting entries
	if steps.ledger != nil {
		ctx, cancel := context.WithTimeout(context.Background(), steps.timeout)
		if err := steps.ledger.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("ledger shutdown: %w", err))
		}
		cancel()
	}
	if steps.notifier != nil {
		if err := steps.notifier.Close(); err != nil {
			errs = append(errs, fmt.Errorf("notifier shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}

// buildSinks returns the notification sinks enabled by the configuration
func buildSinks(cfg *config.Config, redisClient *redis.Client, statsRepo stats.Repository, messagingSvc messaging.Service) ([]notification.Sink, error) {
	publisher, err := notification.NewRedisPublisher(&notification.RedisPublisherConfig{
		RedisClient: redisClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create event publisher: %w", err)
	}

	statsSink, err := notification.NewStats(&notification.StatsConfig{StatsRepo: statsRepo})
	if err != nil {
		return nil, fmt.Errorf("failed to create stats sink: %w", err)
	}

	sinks := []notification.Sink{publisher, statsSink}

	if cfg.DiscordWebhookURL != "" {
		// Webhook calls carry their own token, so an unauthenticated session is enough
		executor, err := discordgo.New("")
		if err != nil {
			return nil, fmt.Errorf("failed to create webhook client: %w", err)
		}
		webhook, err := notification.NewDiscordWebhook(&notification.DiscordWebhookConfig{
			WebhookURL:       cfg.DiscordWebhookURL,
			Executor:         executor,
			MessagingService: messagingSvc,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create webhook sink: %w", err)
		}
		sinks = append(sinks, webhook)
	}

	return sinks, nil
}
