package patients

import (
	"context"
	"testing"

	"telehealth_flow/internal/domain/entities"

	"github.com/rs/zerolog"
)

func TestDirectory_LinkPatient(t *testing.T) {
	ctx := context.Background()
	d := NewDirectory(zerolog.Nop())

	t.Run("explicit id wins", func(t *testing.T) {
		id, _ := d.LinkPatient(ctx, entities.PatientLinkRequest{FlowID: "f1", PatientID: " p-1 ", FormData: map[string]string{"email": "a@b.c"}})
		if id != "p-1" {
			t.Fatalf("expected p-1, got %s", id)
		}
	})

	t.Run("email is normalized", func(t *testing.T) {
		a, _ := d.LinkPatient(ctx, entities.PatientLinkRequest{FlowID: "f1", FormData: map[string]string{"email": "Jane@Example.com"}})
		b, _ := d.LinkPatient(ctx, entities.PatientLinkRequest{FlowID: "f2", FormData: map[string]string{"email": " jane@example.com "}})
		if a == "" || a != b {
			t.Fatalf("same email must map to same patient: %s vs %s", a, b)
		}
	})

	t.Run("falls back to flow id", func(t *testing.T) {
		a, _ := d.LinkPatient(ctx, entities.PatientLinkRequest{FlowID: "f1"})
		b, _ := d.LinkPatient(ctx, entities.PatientLinkRequest{FlowID: "f1"})
		c, _ := d.LinkPatient(ctx, entities.PatientLinkRequest{FlowID: "f2"})
		if a != b || a == c {
			t.Fatalf("unexpected ids: %s %s %s", a, b, c)
		}
	})
}
