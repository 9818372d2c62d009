package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"telehealth_flow/internal/domain/entities"
	"telehealth_flow/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS flows (
		id          TEXT PRIMARY KEY,
		category_id TEXT NOT NULL,
		status      TEXT NOT NULL,
		version     BIGINT NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL,
		document    JSONB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS flow_audit_entries (
		entry_id         TEXT PRIMARY KEY,
		flow_id          TEXT NOT NULL,
		sequence         BIGINT NOT NULL,
		from_status      TEXT NOT NULL,
		to_status        TEXT NOT NULL,
		action           TEXT NOT NULL,
		actor            TEXT NOT NULL,
		recorded_at      TIMESTAMPTZ NOT NULL,
		payload_digest   TEXT NOT NULL,
		digest_algorithm TEXT NOT NULL,
		idempotency_key  TEXT NOT NULL,
		UNIQUE (flow_id, sequence),
		UNIQUE (flow_id, idempotency_key)
	)`,
	`CREATE OR REPLACE FUNCTION flow_audit_entries_append_only() RETURNS trigger AS $$
	BEGIN
		RAISE EXCEPTION 'flow_audit_entries is append-only';
	END;
	$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS flow_audit_entries_no_mutation ON flow_audit_entries`,
	`CREATE TRIGGER flow_audit_entries_no_mutation
		BEFORE UPDATE OR DELETE ON flow_audit_entries
		FOR EACH ROW EXECUTE FUNCTION flow_audit_entries_append_only()`,
}

const insertAuditEntrySQL = `
	INSERT INTO flow_audit_entries (
		entry_id, flow_id, sequence, from_status, to_status, action, actor,
		recorded_at, payload_digest, digest_algorithm, idempotency_key
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

// FlowPostgresRepository stores flows as JSONB documents and the audit trail as rows protected
// by an append-only trigger.
type FlowPostgresRepository struct {
	pool *pgxpool.Pool
}

var (
	_ interfaces.IFlowRepository  = (*FlowPostgresRepository)(nil)
	_ interfaces.IAuditRepository = (*FlowPostgresRepository)(nil)
)

func NewFlowPostgresRepository(pool *pgxpool.Pool) *FlowPostgresRepository {
	return &FlowPostgresRepository{pool: pool}
}

func (r *FlowPostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres schema: %w", err)
		}
	}
	return nil
}

func (r *FlowPostgresRepository) Create(ctx context.Context, f entities.Flow, entry entities.AuditEntry) (entities.Flow, error) {
	doc, err := json.Marshal(f)
	if err != nil {
		return entities.Flow{}, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return entities.Flow{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO flows (id, category_id, status, version, updated_at, document) VALUES ($1,$2,$3,$4,$5,$6)`,
		f.ID, f.CategoryID, string(f.Status), f.Version, f.UpdatedAt, doc)
	if err != nil {
		if isPgUniqueViolation(err) {
			return entities.Flow{}, interfaces.ErrFlowExists
		}
		return entities.Flow{}, err
	}
	if err := insertPgEntries(ctx, tx, []entities.AuditEntry{entry}); err != nil {
		return entities.Flow{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return entities.Flow{}, err
	}
	return f, nil
}

func (r *FlowPostgresRepository) GetByID(ctx context.Context, id string) (entities.Flow, error) {
	var (
		version int64
		doc     []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT version, document FROM flows WHERE id = $1`, id).Scan(&version, &doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Flow{}, nil
	}
	if err != nil {
		return entities.Flow{}, err
	}

	var f entities.Flow
	if err := json.Unmarshal(doc, &f); err != nil {
		return entities.Flow{}, fmt.Errorf("decode flow %s: %w", id, err)
	}
	f.Version = version
	return f, nil
}

func (r *FlowPostgresRepository) SaveTransition(ctx context.Context, f entities.Flow, expectedVersion int64, entries []entities.AuditEntry) (entities.Flow, error) {
	doc, err := json.Marshal(f)
	if err != nil {
		return entities.Flow{}, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return entities.Flow{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`UPDATE flows SET status = $2, version = $3, updated_at = $4, document = $5 WHERE id = $1 AND version = $6`,
		f.ID, string(f.Status), f.Version, f.UpdatedAt, doc, expectedVersion)
	if err != nil {
		return entities.Flow{}, err
	}
	if tag.RowsAffected() == 0 {
		return entities.Flow{}, interfaces.ErrVersionConflict
	}
	if err := insertPgEntries(ctx, tx, entries); err != nil {
		return entities.Flow{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return entities.Flow{}, err
	}
	return f, nil
}

func (r *FlowPostgresRepository) Append(ctx context.Context, entry entities.AuditEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := insertPgEntries(ctx, tx, []entities.AuditEntry{entry}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *FlowPostgresRepository) ListByFlowID(ctx context.Context, flowID string) ([]entities.AuditEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT entry_id, flow_id, sequence, from_status, to_status, action, actor,
			recorded_at, payload_digest, digest_algorithm, idempotency_key
		FROM flow_audit_entries WHERE flow_id = $1 ORDER BY sequence`, flowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []entities.AuditEntry{}
	for rows.Next() {
		var (
			e             entities.AuditEntry
			from, to, act string
		)
		if err := rows.Scan(&e.ID, &e.FlowID, &e.Sequence, &from, &to, &act, &e.TriggeredBy,
			&e.Timestamp, &e.PayloadDigest, &e.DigestAlgorithm, &e.IdempotencyKey); err != nil {
			return nil, err
		}
		e.FromStatus = entities.FlowStatus(from)
		e.ToStatus = entities.FlowStatus(to)
		e.Action = entities.AuditAction(act)
		e.Timestamp = e.Timestamp.UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func insertPgEntries(ctx context.Context, tx pgx.Tx, entries []entities.AuditEntry) error {
	for _, e := range entries {
		_, err := tx.Exec(ctx, insertAuditEntrySQL,
			e.ID, e.FlowID, e.Sequence, string(e.FromStatus), string(e.ToStatus), string(e.Action),
			e.TriggeredBy, e.Timestamp, e.PayloadDigest, e.DigestAlgorithm, e.IdempotencyKey)
		if err != nil {
			if isPgUniqueViolation(err) {
				return fmt.Errorf("%w: flow %s sequence %d", interfaces.ErrAuditEntryExists, e.FlowID, e.Sequence)
			}
			return err
		}
	}
	return nil
}

func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
