package main

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

	"golang.org/x/sync/errgroup"

	"github.com/blackmichael/reshare-bot/internal/config"
	"github.com/blackmichael/reshare-bot/internal/domain"
	"github.com/blackmichael/reshare-bot/internal/engage"
	"github.com/blackmichael/reshare-bot/internal/httpserver"
	"github.com/blackmichael/reshare-bot/internal/ledger"
	"github.com/blackmichael/reshare-bot/internal/twitter"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	if cfg.Search.Query == "" {
		return errors.New("SEARCH_QUERY is required in server mode")
	}

	l, err := ledger.Open(cfg.StoreDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}

	// Keep the interface nil when no ledger is configured.
	var repo domain.EngagementRepository
	if l != nil {
		defer l.Close()
		repo = l
		logger.Info("opened engagement ledger", "driver", cfg.StoreDriver)
	}

	client := twitter.NewClient(cfg.APIBaseURL, cfg.APIBearerToken, cfg.APITimeout)
	sink := engage.NewLogSink(logger, cfg.TraceNamespace)

	opts := []engage.Option{engage.WithLogger(logger)}
	if repo != nil {
		opts = append(opts, engage.WithLedger(repo))
	}
	bot := engage.NewBot(client, sink, cfg.AccountHandle, cfg.Policy, opts...)

	runner := engage.NewRunner(bot, cfg.Search.Params(), repo, engage.Retention{
		MaxAge:  cfg.LedgerMaxAge,
		MaxRows: cfg.LedgerMaxRows,
	}, logger)
	server := httpserver.NewServer(cfg.Port, runner, repo, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		runner.Start(ctx, cfg.RunInterval)
		return nil
	})

	g.Go(func() error {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("error shutting down http server", "error", err)
		}
		return nil
	})

	logger.Info("server started",
		"port", cfg.Port,
		"account", cfg.AccountHandle,
		"interval", cfg.RunInterval.String(),
	)

	return g.Wait()
}
