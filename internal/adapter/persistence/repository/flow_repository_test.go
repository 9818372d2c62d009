package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"telehealth_flow/internal/domain/entities"
	"telehealth_flow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type flowStore interface {
	interfaces.IFlowRepository
	interfaces.IAuditRepository
}

func testEntry(flowID string, seq int64, from, to entities.FlowStatus) entities.AuditEntry {
	return entities.AuditEntry{
		ID:              fmt.Sprintf("%s-e%d", flowID, seq),
		FlowID:          flowID,
		Sequence:        seq,
		FromStatus:      from,
		ToStatus:        to,
		Action:          entities.AuditActionTransition,
		TriggeredBy:     "tester",
		Timestamp:       time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		PayloadDigest:   "digest",
		DigestAlgorithm: "sha256",
		IdempotencyKey:  flowID + ":" + string(to),
	}
}

func testFlow(id string) entities.Flow {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return entities.Flow{
		ID:            id,
		CategoryID:    "weight-mgmt",
		Status:        entities.FlowStatusCategorySelected,
		StartedAt:     now,
		UpdatedAt:     now,
		Metadata:      map[string]string{"channel": "web"},
		Version:       1,
		AuditSequence: 1,
	}
}

func runFlowStoreContract(t *testing.T, store flowStore) {
	ctx := context.Background()

	t.Run("missing flow is zero value", func(t *testing.T) {
		f, err := store.GetByID(ctx, "nope")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if f.ID != "" {
			t.Fatalf("expected zero flow, got %+v", f)
		}
	})

	t.Run("create then read", func(t *testing.T) {
		f := testFlow("flow-create")
		if _, err := store.Create(ctx, f, testEntry(f.ID, 1, "", entities.FlowStatusCategorySelected)); err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := store.GetByID(ctx, f.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ID != f.ID || got.Status != f.Status || got.Version != 1 || got.Metadata["channel"] != "web" {
			t.Fatalf("unexpected flow: %+v", got)
		}

		_, err = store.Create(ctx, f, testEntry(f.ID, 1, "", entities.FlowStatusCategorySelected))
		if !errors.Is(err, interfaces.ErrFlowExists) {
			t.Fatalf("expected ErrFlowExists, got %v", err)
		}
	})

	t.Run("save transition checks version", func(t *testing.T) {
		f := testFlow("flow-save")
		if _, err := store.Create(ctx, f, testEntry(f.ID, 1, "", entities.FlowStatusCategorySelected)); err != nil {
			t.Fatalf("create: %v", err)
		}

		next := f.Clone()
		next.Status = entities.FlowStatusProductSelected
		next.ProductID = "semaglutide-1"
		next.Version = 2
		next.AuditSequence = 2
		entry := testEntry(f.ID, 2, entities.FlowStatusCategorySelected, entities.FlowStatusProductSelected)
		if _, err := store.SaveTransition(ctx, next, 1, []entities.AuditEntry{entry}); err != nil {
			t.Fatalf("save: %v", err)
		}

		stale := next.Clone()
		stale.Status = entities.FlowStatusCancelled
		stale.Version = 2
		_, err := store.SaveTransition(ctx, stale, 1, []entities.AuditEntry{
			testEntry(f.ID, 3, entities.FlowStatusProductSelected, entities.FlowStatusCancelled),
		})
		if !errors.Is(err, interfaces.ErrVersionConflict) {
			t.Fatalf("expected ErrVersionConflict, got %v", err)
		}

		got, _ := store.GetByID(ctx, f.ID)
		if got.Status != entities.FlowStatusProductSelected || got.Version != 2 || got.ProductID != "semaglutide-1" {
			t.Fatalf("unexpected flow after conflict: %+v", got)
		}
		entries, err := store.ListByFlowID(ctx, f.ID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
	})

	t.Run("duplicate idempotency key rolls back the flow write", func(t *testing.T) {
		f := testFlow("flow-dup")
		if _, err := store.Create(ctx, f, testEntry(f.ID, 1, "", entities.FlowStatusCategorySelected)); err != nil {
			t.Fatalf("create: %v", err)
		}

		next := f.Clone()
		next.Status = entities.FlowStatusProductSelected
		next.Version = 2
		dup := testEntry(f.ID, 2, entities.FlowStatusCategorySelected, entities.FlowStatusProductSelected)
		dup.IdempotencyKey = f.ID + ":" + string(entities.FlowStatusCategorySelected)

		_, err := store.SaveTransition(ctx, next, 1, []entities.AuditEntry{dup})
		if !errors.Is(err, interfaces.ErrAuditEntryExists) {
			t.Fatalf("expected ErrAuditEntryExists, got %v", err)
		}
		got, _ := store.GetByID(ctx, f.ID)
		if got.Version != 1 || got.Status != entities.FlowStatusCategorySelected {
			t.Fatalf("flow must be unchanged, got %+v", got)
		}
	})

	t.Run("entries are listed in sequence order", func(t *testing.T) {
		f := testFlow("flow-order")
		if _, err := store.Create(ctx, f, testEntry(f.ID, 1, "", entities.FlowStatusCategorySelected)); err != nil {
			t.Fatalf("create: %v", err)
		}
		path := []entities.FlowStatus{
			entities.FlowStatusCategorySelected,
			entities.FlowStatusProductSelected,
			entities.FlowStatusSubscriptionConfigured,
			entities.FlowStatusIntakeStarted,
		}
		cur := f
		for i := 1; i < len(path); i++ {
			next := cur.Clone()
			next.Status = path[i]
			next.Version = cur.Version + 1
			e := testEntry(f.ID, int64(i+1), path[i-1], path[i])
			if _, err := store.SaveTransition(ctx, next, cur.Version, []entities.AuditEntry{e}); err != nil {
				t.Fatalf("save %d: %v", i, err)
			}
			cur = next
		}

		entries, err := store.ListByFlowID(ctx, f.ID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(entries) != len(path) {
			t.Fatalf("expected %d entries, got %d", len(path), len(entries))
		}
		for i, e := range entries {
			if e.Sequence != int64(i+1) || e.ToStatus != path[i] {
				t.Fatalf("entry %d: %+v", i, e)
			}
			if !e.Timestamp.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)) {
				t.Fatalf("timestamp not preserved: %v", e.Timestamp)
			}
		}
	})
}

func TestFlowMemoryRepository_Contract(t *testing.T) {
	runFlowStoreContract(t, NewFlowMemoryRepository())
}

func TestFlowSQLiteRepository_Contract(t *testing.T) {
	repo, err := OpenFlowSQLiteRepository(context.Background(), filepath.Join(t.TempDir(), "flows.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	runFlowStoreContract(t, repo)
}

func TestFlowSQLiteRepository_AuditEntriesAreAppendOnly(t *testing.T) {
	ctx := context.Background()
	repo, err := OpenFlowSQLiteRepository(ctx, filepath.Join(t.TempDir(), "flows.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	f := testFlow("flow-immutable")
	if _, err := repo.Create(ctx, f, testEntry(f.ID, 1, "", entities.FlowStatusCategorySelected)); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := repo.db.ExecContext(ctx, `UPDATE flow_audit_entries SET actor = 'mallory' WHERE flow_id = ?`, f.ID); err == nil {
		t.Fatalf("expected update to be rejected")
	}
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM flow_audit_entries WHERE flow_id = ?`, f.ID); err == nil {
		t.Fatalf("expected delete to be rejected")
	}

	entries, _ := repo.ListByFlowID(ctx, f.ID)
	if len(entries) != 1 || entries[0].TriggeredBy != "tester" {
		t.Fatalf("entry must be untouched, got %+v", entries)
	}
}

func TestFlowSQLiteRepository_ReopenKeepsState(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "flows.db")

	repo, err := OpenFlowSQLiteRepository(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	f := testFlow("flow-reopen")
	if _, err := repo.Create(ctx, f, testEntry(f.ID, 1, "", entities.FlowStatusCategorySelected)); err != nil {
		t.Fatalf("create: %v", err)
	}
	_ = repo.Close()

	repo, err = OpenFlowSQLiteRepository(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	got, err := repo.GetByID(ctx, f.ID)
	if err != nil || got.ID != f.ID {
		t.Fatalf("expected stored flow, got %+v err=%v", got, err)
	}
}

func TestTranslateTransactError(t *testing.T) {
	cancelled := func(codes ...string) error {
		reasons := make([]types.CancellationReason, len(codes))
		for i, c := range codes {
			reasons[i] = types.CancellationReason{Code: aws.String(c)}
		}
		return &types.TransactionCanceledException{CancellationReasons: reasons}
	}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"flow condition", cancelled("ConditionalCheckFailed", "None"), interfaces.ErrVersionConflict},
		{"entry condition", cancelled("None", "None", "ConditionalCheckFailed"), interfaces.ErrAuditEntryExists},
		{"plain error", errors.New("boom"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateTransactError(tt.err, interfaces.ErrVersionConflict)
			if tt.want == nil {
				if got != tt.err {
					t.Fatalf("expected passthrough, got %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFlowItemRoundTripKeepsVersion(t *testing.T) {
	f := testFlow("flow-item")
	f.Version = 7
	it, err := toFlowItem(f)
	if err != nil {
		t.Fatalf("toFlowItem: %v", err)
	}
	if it.Status != string(entities.FlowStatusCategorySelected) || it.Version != 7 {
		t.Fatalf("unexpected item: %+v", it)
	}
	got, err := fromFlowItem(it)
	if err != nil {
		t.Fatalf("fromFlowItem: %v", err)
	}
	if got.ID != f.ID || got.Version != 7 || got.Metadata["channel"] != "web" {
		t.Fatalf("unexpected flow: %+v", got)
	}

	e := testEntry(f.ID, 12, entities.FlowStatusCategorySelected, entities.FlowStatusProductSelected)
	ei := toAuditEntryItem(e)
	if ei.SK != "entry#0000000012" {
		t.Fatalf("unexpected sort key %q", ei.SK)
	}
	back, err := fromAuditEntryItem(ei)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.Sequence != 12 || back.IdempotencyKey != e.IdempotencyKey || !back.Timestamp.Equal(e.Timestamp) {
		t.Fatalf("unexpected entry: %+v", back)
	}
}

func TestFlowSQLiteRepository_ListRejectsCorruptTimestamp(t *testing.T) {
	ctx := context.Background()
	repo, err := OpenFlowSQLiteRepository(ctx, filepath.Join(t.TempDir(), "flows.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	_, err = repo.db.ExecContext(ctx, `
		INSERT INTO flow_audit_entries (
			entry_id, flow_id, sequence, from_status, to_status, action, actor,
			recorded_at, payload_digest, digest_algorithm, idempotency_key
		) VALUES ('e1', 'flow-bad-ts', 1, '', 'CATEGORY_SELECTED', 'transition', 'patient', 'yesterday', 'd', 'sha256', 'k1')`)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := repo.ListByFlowID(ctx, "flow-bad-ts"); err == nil {
		t.Fatalf("expected an error for an unparseable timestamp")
	}
}

func TestFromAuditEntryItem_RejectsCorruptTimestamp(t *testing.T) {
	it := toAuditEntryItem(testEntry("flow-1", 1, "", entities.FlowStatusCategorySelected))
	it.Timestamp = "not-a-time"
	if _, err := fromAuditEntryItem(it); err == nil {
		t.Fatalf("expected an error for an unparseable timestamp")
	}
}
