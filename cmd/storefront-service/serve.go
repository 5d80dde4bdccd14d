package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/events"
	httpapi "github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/metrics"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, logger)
	},
}

func serve(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	repo, closeRepo, err := openCatalog(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	m := metrics.New()
	seq := events.NewSequencer()

	notifiers := events.Fanout{m}
	if cfg.Uses(config.TransportLog) {
		notifiers = append(notifiers, events.NewLogNotifier(logger))
	}
	publishers, err := openPublishers(cfg)
	if err != nil {
		return err
	}
	var async *events.AsyncNotifier
	if len(publishers) > 0 {
		async = events.NewAsyncNotifier(logger, publishers, events.AsyncOptions{Sequencer: seq})
		notifiers = append(notifiers, async)
	}

	sessions := session.NewRegistry(logger,
		session.WithNotifier(notifiers),
		session.WithIdleTTL(cfg.SessionIdleTTL),
		session.WithActiveObserver(m.SetActiveSessions),
		session.WithEvictHook(seq.Forget),
	)

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httpapi.NewRouter(httpapi.Deps{
			Logger:           logger,
			Catalog:          repo,
			Sessions:         sessions,
			Metrics:          m,
			CORSAllowOrigins: cfg.CORSAllowOrigins,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http listening", zap.String("addr", cfg.HTTPAddr), zap.String("catalog", cfg.CatalogSource))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error { return sessions.Run(gctx) })
	if async != nil {
		g.Go(func() error { return async.Run(gctx) })
	}

	err = g.Wait()
	logger.Info("shutdown complete")
	return err
}

// openCatalog builds the configured catalog repository and a func releasing what it holds.
func openCatalog(ctx context.Context, cfg config.Config, logger *zap.Logger) (catalog.Repository, func(), error) {
	if cfg.CatalogSource != config.CatalogPostgres {
		repo, err := catalog.NewMockRepository(cfg.CatalogLatency)
		if err != nil {
			return nil, nil, fmt.Errorf("load mock catalog: %w", err)
		}
		return repo, func() {}, nil
	}

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			return nil, nil, fmt.Errorf("db migrate: %w", err)
		}
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db connect: %w", err)
	}
	repo := catalog.NewPostgresRepository(pool)

	if cfg.SeedCatalog {
		data, err := catalog.LoadMockData()
		if err == nil {
			err = repo.Seed(ctx, data)
		}
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("seed catalog: %w", err)
		}
	}
	return repo, pool.Close, nil
}

func openPublishers(cfg config.Config) ([]events.Publisher, error) {
	var pubs []events.Publisher
	if cfg.Uses(config.TransportAMQP) {
		conn, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			return nil, err
		}
		pub, err := events.NewRabbitPublisher(conn)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		pubs = append(pubs, connClosingPublisher{Publisher: pub, closeConn: conn.Close})
	}
	if cfg.Uses(config.TransportKafka) {
		pubs = append(pubs, events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic))
	}
	return pubs, nil
}

// connClosingPublisher closes the AMQP connection after its channel.
type connClosingPublisher struct {
	events.Publisher
	closeConn func() error
}

func (p connClosingPublisher) Close() error {
	return errors.Join(p.Publisher.Close(), p.closeConn())
}
