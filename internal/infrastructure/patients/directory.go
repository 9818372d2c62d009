package patients

import (
	"context"
	"strings"
	"sync"

	"telehealth_flow/internal/domain/entities"
	"telehealth_flow/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EmailFieldID is the intake field used to match a returning patient.
const EmailFieldID = "email"

var patientNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("telehealth-flow/patients"))

// Directory links an intake submission to a patient record.
//
// A caller-supplied patient id wins. Otherwise the id is derived from the normalized email, so the
// same person gets the same id across flows, or from the flow id when no email is given.
type Directory struct {
	mu    sync.Mutex
	known map[string]struct{}
	log   zerolog.Logger
}

var _ interfaces.IPatientLinker = (*Directory)(nil)

func NewDirectory(log zerolog.Logger) *Directory {
	return &Directory{known: make(map[string]struct{}), log: log.With().Str("component", "patient_directory").Logger()}
}

func (d *Directory) LinkPatient(_ context.Context, req entities.PatientLinkRequest) (string, error) {
	id := strings.TrimSpace(req.PatientID)
	if id == "" {
		if email := strings.ToLower(strings.TrimSpace(req.FormData[EmailFieldID])); email != "" {
			id = uuid.NewSHA1(patientNamespace, []byte("email:"+email)).String()
		} else {
			id = uuid.NewSHA1(patientNamespace, []byte("flow:"+req.FlowID)).String()
		}
	}

	d.mu.Lock()
	_, returning := d.known[id]
	d.known[id] = struct{}{}
	d.mu.Unlock()

	d.log.Debug().Str("flow_id", req.FlowID).Bool("returning", returning).Msg("patient linked")
	return id, nil
}
