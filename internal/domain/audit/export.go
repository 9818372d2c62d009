package audit

import (
	"encoding/json"
	"io"
	"time"

	"telehealth_flow/internal/domain/entities"
)

// ExportRecord is one line of an audit export.
type ExportRecord struct {
	EntryID         string    `json:"entry_id"`
	FlowID          string    `json:"flow_id"`
	Sequence        int64     `json:"sequence"`
	FromStatus      string    `json:"from_status"`
	ToStatus        string    `json:"to_status"`
	Action          string    `json:"action"`
	Actor           string    `json:"actor"`
	Timestamp       time.Time `json:"timestamp"`
	PayloadDigest   string    `json:"payload_digest"`
	DigestAlgorithm string    `json:"digest_algorithm"`
}

// WriteNDJSON writes entries one JSON object per line, in the given order.
func WriteNDJSON(w io.Writer, entries []entities.AuditEntry) error {
	enc := json.NewEncoder(w)
	for _, e := range entries {
		rec := ExportRecord{
			EntryID:         e.ID,
			FlowID:          e.FlowID,
			Sequence:        e.Sequence,
			FromStatus:      string(e.FromStatus),
			ToStatus:        string(e.ToStatus),
			Action:          string(e.Action),
			Actor:           e.TriggeredBy,
			Timestamp:       e.Timestamp.UTC(),
			PayloadDigest:   e.PayloadDigest,
			DigestAlgorithm: e.DigestAlgorithm,
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}
