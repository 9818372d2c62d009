package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"telehealth_flow/internal/adapter/http/routes"
	"telehealth_flow/internal/config"
	"telehealth_flow/internal/domain/audit"
	"telehealth_flow/internal/infrastructure/catalog"
	"telehealth_flow/internal/infrastructure/database"
	"telehealth_flow/internal/infrastructure/events"
	"telehealth_flow/internal/infrastructure/lock"
	"telehealth_flow/internal/infrastructure/logger"
	"telehealth_flow/internal/infrastructure/observability"
	"telehealth_flow/internal/infrastructure/patients"
	"telehealth_flow/internal/infrastructure/payments"
	"telehealth_flow/internal/usecase"
	"telehealth_flow/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the flow API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Env, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return err
	}

	shutdownTracing, err := observability.InitTracing(ctx, cfg.TracingExporter, cfg.Env, log)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn().Err(err).Msg("tracing shutdown")
		}
	}()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open flow store")
		return err
	}
	defer closeStore()

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return err
	}
	if err := cat.Validate(); err != nil {
		log.Error().Err(err).Msg("catalog is invalid")
		return err
	}

	digester, err := audit.NewDigester(cfg.AuditDigestAlgorithm, cfg.AuditDigestKey)
	if err != nil {
		return err
	}

	var rdb *redis.Client
	if cfg.LockDriver == config.LockRedis || cfg.EventsDriver == config.EventsRedis {
		rdb, err = database.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			log.Error().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect to redis")
			return err
		}
		defer func() { _ = rdb.Close() }()
	}

	var locker interfaces.IFlowLocker = lock.NewMemoryLocker()
	if cfg.LockDriver == config.LockRedis {
		locker = lock.NewRedisLocker(rdb, cfg.LockTTL, log)
	}

	var orders interfaces.IOrderRequester
	var consultations interfaces.IConsultationRequester
	if cfg.EventsDriver == config.EventsRedis {
		pub := events.NewRedisStreamPublisher(rdb, log)
		orders, consultations = pub, pub
	} else {
		pub := events.NewLocalPublisher(log)
		orders, consultations = pub, pub
	}

	invoices, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.PaymentGatewayMock, log)
	if err != nil {
		log.Error().Err(err).Msg("payment gateway not configured")
		return err
	}

	metrics := observability.NewFlowMetrics()

	orchestrator := usecase.NewFlowOrchestrator(usecase.FlowOrchestratorDeps{
		Flows:         store,
		Audit:         usecase.NewAuditTrail(store, store, digester),
		Catalog:       cat,
		Locker:        locker,
		Patients:      patients.NewDirectory(log),
		Orders:        orders,
		Consultations: consultations,
		Invoices:      invoices,
		Metrics:       metrics,
		Logger:        log,
	}, usecase.FlowOrchestratorConfig{
		Currency:                 cfg.Currency,
		MinorUnits:               cfg.CurrencyMinorUnits,
		RecommendationMaxResults: cfg.RecommendationMaxResults,
	})

	router := routes.NewRouter(routes.Options{
		Orchestrator:   orchestrator,
		Logger:         log,
		MetricsHandler: metrics.Handler(),
		RequestTimeout: cfg.RequestTimeout,
		ServiceName:    observability.ServiceName,
		Debug:          cfg.IsDev(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.StoreDriver).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
