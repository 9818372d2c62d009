package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"telehealth_flow/internal/domain/entities"
	"telehealth_flow/internal/usecase/interfaces"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS flows (
		id          TEXT PRIMARY KEY,
		category_id TEXT NOT NULL,
		status      TEXT NOT NULL,
		version     INTEGER NOT NULL,
		updated_at  TEXT NOT NULL,
		document    BLOB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS flow_audit_entries (
		entry_id         TEXT PRIMARY KEY,
		flow_id          TEXT NOT NULL,
		sequence         INTEGER NOT NULL,
		from_status      TEXT NOT NULL,
		to_status        TEXT NOT NULL,
		action           TEXT NOT NULL,
		actor            TEXT NOT NULL,
		recorded_at      TEXT NOT NULL,
		payload_digest   TEXT NOT NULL,
		digest_algorithm TEXT NOT NULL,
		idempotency_key  TEXT NOT NULL,
		UNIQUE (flow_id, sequence),
		UNIQUE (flow_id, idempotency_key)
	)`,
	`CREATE TRIGGER IF NOT EXISTS flow_audit_entries_no_update
		BEFORE UPDATE ON flow_audit_entries
		BEGIN SELECT RAISE(ABORT, 'flow_audit_entries is append-only'); END`,
	`CREATE TRIGGER IF NOT EXISTS flow_audit_entries_no_delete
		BEFORE DELETE ON flow_audit_entries
		BEGIN SELECT RAISE(ABORT, 'flow_audit_entries is append-only'); END`,
}

// FlowSQLiteRepository is the single-node durable store. One connection serializes writers.
type FlowSQLiteRepository struct {
	db *sql.DB
}

var (
	_ interfaces.IFlowRepository  = (*FlowSQLiteRepository)(nil)
	_ interfaces.IAuditRepository = (*FlowSQLiteRepository)(nil)
)

// OpenFlowSQLiteRepository opens (or creates) the database file at path and applies the schema.
func OpenFlowSQLiteRepository(ctx context.Context, path string) (*FlowSQLiteRepository, error) {
	if path == "" {
		path = getenvDefault("SQLITE_PATH", "telehealth_flow.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite schema: %w", err)
		}
	}
	return &FlowSQLiteRepository{db: db}, nil
}

func (r *FlowSQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *FlowSQLiteRepository) Create(ctx context.Context, f entities.Flow, entry entities.AuditEntry) (entities.Flow, error) {
	doc, err := json.Marshal(f)
	if err != nil {
		return entities.Flow{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return entities.Flow{}, err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO flows (id, category_id, status, version, updated_at, document) VALUES (?,?,?,?,?,?)`,
		f.ID, f.CategoryID, string(f.Status), f.Version, f.UpdatedAt.UTC().Format(time.RFC3339Nano), doc)
	if err != nil {
		if isSQLiteConstraint(err) {
			return entities.Flow{}, interfaces.ErrFlowExists
		}
		return entities.Flow{}, err
	}
	if err := insertSQLiteEntries(ctx, tx, []entities.AuditEntry{entry}); err != nil {
		return entities.Flow{}, err
	}
	if err := tx.Commit(); err != nil {
		return entities.Flow{}, err
	}
	return f, nil
}

func (r *FlowSQLiteRepository) GetByID(ctx context.Context, id string) (entities.Flow, error) {
	var (
		version int64
		doc     []byte
	)
	err := r.db.QueryRowContext(ctx, `SELECT version, document FROM flows WHERE id = ?`, id).Scan(&version, &doc)
	if errors.Is(err, sql.ErrNoRows) {
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

func (r *FlowSQLiteRepository) SaveTransition(ctx context.Context, f entities.Flow, expectedVersion int64, entries []entities.AuditEntry) (entities.Flow, error) {
	doc, err := json.Marshal(f)
	if err != nil {
		return entities.Flow{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return entities.Flow{}, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE flows SET status = ?, version = ?, updated_at = ?, document = ? WHERE id = ? AND version = ?`,
		string(f.Status), f.Version, f.UpdatedAt.UTC().Format(time.RFC3339Nano), doc, f.ID, expectedVersion)
	if err != nil {
		return entities.Flow{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return entities.Flow{}, err
	}
	if n == 0 {
		return entities.Flow{}, interfaces.ErrVersionConflict
	}
	if err := insertSQLiteEntries(ctx, tx, entries); err != nil {
		return entities.Flow{}, err
	}
	if err := tx.Commit(); err != nil {
		return entities.Flow{}, err
	}
	return f, nil
}

func (r *FlowSQLiteRepository) Append(ctx context.Context, entry entities.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertSQLiteEntries(ctx, tx, []entities.AuditEntry{entry}); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *FlowSQLiteRepository) ListByFlowID(ctx context.Context, flowID string) ([]entities.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT entry_id, flow_id, sequence, from_status, to_status, action, actor,
			recorded_at, payload_digest, digest_algorithm, idempotency_key
		FROM flow_audit_entries WHERE flow_id = ? ORDER BY sequence`, flowID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	entries := []entities.AuditEntry{}
	for rows.Next() {
		var (
			e                 entities.AuditEntry
			from, to, act, ts string
		)
		if err := rows.Scan(&e.ID, &e.FlowID, &e.Sequence, &from, &to, &act, &e.TriggeredBy,
			&ts, &e.PayloadDigest, &e.DigestAlgorithm, &e.IdempotencyKey); err != nil {
			return nil, err
		}
		e.FromStatus = entities.FlowStatus(from)
		e.ToStatus = entities.FlowStatus(to)
		e.Action = entities.AuditAction(act)
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("audit entry %s: timestamp %q: %w", e.ID, ts, err)
		}
		e.Timestamp = parsed
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func insertSQLiteEntries(ctx context.Context, tx *sql.Tx, entries []entities.AuditEntry) error {
	for _, e := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO flow_audit_entries (
				entry_id, flow_id, sequence, from_status, to_status, action, actor,
				recorded_at, payload_digest, digest_algorithm, idempotency_key
			) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
			e.ID, e.FlowID, e.Sequence, string(e.FromStatus), string(e.ToStatus), string(e.Action),
			e.TriggeredBy, e.Timestamp.UTC().Format(time.RFC3339Nano), e.PayloadDigest, e.DigestAlgorithm, e.IdempotencyKey)
		if err != nil {
			if isSQLiteConstraint(err) {
				return fmt.Errorf("%w: flow %s sequence %d", interfaces.ErrAuditEntryExists, e.FlowID, e.Sequence)
			}
			return err
		}
	}
	return nil
}

func isSQLiteConstraint(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT, sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}
