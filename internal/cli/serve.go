package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"journal-backend/internal/config"
	deliveryhttp "journal-backend/internal/delivery/http"
	"journal-backend/internal/delivery/websocket"
	"journal-backend/internal/domain"
	"journal-backend/internal/infrastructure/db"
	"journal-backend/internal/infrastructure/firebase"
	applog "journal-backend/internal/log"
	"journal-backend/internal/repository"
	"journal-backend/internal/usecase"
)

func newServeCmd(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ro.loadConfig(cmd)
			if err != nil {
				return err
			}

			logger, closer, err := applog.New(cfg.Logging)
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger)
		},
	}
}

// serve runs the server until ctx is done, then drains in-flight requests
// for at most the configured shutdown timeout.
func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	srv, cleanup, err := newServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr)
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

	logger.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newServer assembles the store, services and router. cleanup releases the
// database pool, if one was opened.
func newServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*http.Server, func(), error) {
	store, cleanup, err := openStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	fail := func(err error) (*http.Server, func(), error) {
		cleanup()
		return nil, nil, err
	}

	if err := usecase.SeedDemoUser(ctx, store, logger); err != nil {
		return fail(err)
	}

	app, err := firebase.NewApp(ctx, cfg.Firebase, logger)
	if err != nil {
		return fail(err)
	}
	verifier, err := firebase.NewVerifier(ctx, app)
	if err != nil {
		return fail(err)
	}
	notifier, err := firebase.NewNotifier(ctx, app, logger)
	if err != nil {
		return fail(err)
	}

	tokens := repository.NewTokenRepository()
	journal := usecase.NewJournalService(store)
	auth := usecase.NewAuthService(store, verifier, logger)
	billing := usecase.NewBillingService(store, notifier, tokens, cfg.Billing.DefaultUserID, logger)
	feed := websocket.NewHandler(journal, cfg.Websocket.PushInterval, logger)

	router := deliveryhttp.NewRouter(deliveryhttp.Handlers{
		Profile: deliveryhttp.NewProfileHandler(journal, logger),
		Trade:   deliveryhttp.NewTradeHandler(journal, logger),
		Options: deliveryhttp.NewOptionHandler(),
		Auth:    deliveryhttp.NewAuthHandler(auth, logger),
		Billing: deliveryhttp.NewBillingHandler(billing, logger),
		Tokens:  deliveryhttp.NewTokenHandler(tokens, verifier),
		Test:    deliveryhttp.NewTestHandler(notifier, tokens),
		Feed:    feed.Handle,
	}, logger)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
	return srv, cleanup, nil
}

// openStore connects to Postgres when a database URL is configured and
// falls back to the in-memory store otherwise.
func openStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (domain.Store, func(), error) {
	if cfg.URL == "" {
		logger.Info("using in-memory store")
		return repository.NewInMemoryStore(), func() {}, nil
	}

	poolCfg := db.DefaultPoolConfig()
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.RequireSSL = cfg.RequireSSL

	pool, err := db.NewPool(ctx, cfg.URL, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	logger.Info("using postgres store", "max_conns", poolCfg.MaxConns)
	return repository.NewPostgresStore(pool), pool.Close, nil
}
