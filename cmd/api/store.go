package main

import (
	"context"
	"fmt"

	"telehealth_flow/internal/adapter/persistence/repository"
	"telehealth_flow/internal/config"
	"telehealth_flow/internal/infrastructure/database"
	"telehealth_flow/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

// flowStore is what every STORE_DRIVER provides: flow documents plus their audit stream.
type flowStore interface {
	interfaces.IFlowRepository
	interfaces.IAuditRepository
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (flowStore, func(), error) {
	noop := func() {}

	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn().Msg("using in-memory flow store, data is lost on restart")
		return repository.NewFlowMemoryRepository(), noop, nil

	case config.StoreSQLite:
		repo, err := repository.OpenFlowSQLiteRepository(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return repo, func() { _ = repo.Close() }, nil

	case config.StorePostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, noop, err
		}
		repo := repository.NewFlowPostgresRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return repo, pool.Close, nil

	case config.StoreDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.AWSRegion, cfg.DynamoDBEndpoint)
		if err != nil {
			return nil, noop, err
		}
		repo := repository.NewFlowDynamoRepository(ddb, cfg.FlowsTable, cfg.AuditTable)
		// local endpoints (dynamodb-local, localstack) start empty
		if cfg.DynamoDBEndpoint != "" {
			if err := repo.EnsureTables(ctx); err != nil {
				return nil, noop, err
			}
		}
		return repo, noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
