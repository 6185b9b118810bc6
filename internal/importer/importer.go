package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"stealthcompany.com/notesync/internal/dal"
	"stealthcompany.com/notesync/internal/legacy"
	"stealthcompany.com/notesync/internal/metrics"
)

// ErrRunInProgress is returned when an import is triggered while another run
// is still active.
var ErrRunInProgress = errors.New("import run already in progress")

// LegacySource provides client and note records from the legacy system.
// Implementations absorb transport failures and return empty slices.
type LegacySource interface {
	FetchAllClients(ctx context.Context) []legacy.ClientRecord
	FetchClientNotes(ctx context.Context, agency, clientGuid string) []legacy.NoteRecord
}

// PatientStore resolves patient profiles by their legacy client GUIDs.
type PatientStore interface {
	FindByLegacyGuids(ctx context.Context, guids []string) ([]dal.PatientProfile, error)
}

// UserStore looks up and creates company users. FindByLogin returns
// (nil, nil) when the login is unknown.
type UserStore interface {
	FindByLogin(ctx context.Context, login string) (*dal.CompanyUser, error)
	Insert(ctx context.Context, user *dal.CompanyUser) error
}

// NoteStore persists patient notes, keyed by external GUID.
// FindByExternalGuid returns (nil, nil) when no note exists.
type NoteStore interface {
	FindByExternalGuid(ctx context.Context, externalGuid string) (*dal.PatientNote, error)
	Insert(ctx context.Context, note *dal.PatientNote) error
	Replace(ctx context.Context, note *dal.PatientNote) error
}

// Importer drives a full synchronization run against the legacy system.
type Importer struct {
	source   LegacySource
	patients PatientStore
	users    UserStore
	notes    NoteStore

	mu      sync.Mutex
	running bool
}

// New creates an importer over the given source and stores.
func New(source LegacySource, patients PatientStore, users UserStore, notes NoteStore) *Importer {
	return &Importer{
		source:   source,
		patients: patients,
		users:    users,
		notes:    notes,
	}
}

// run holds the state owned by a single import run. Discarded at run end;
// never shared across runs.
type run struct {
	log      zerolog.Logger
	stats    *Stats
	patients map[string]*dal.PatientProfile
	users    map[string]*dal.CompanyUser
}

// ImportNotes executes one synchronization run: fetch clients, bulk-resolve
// patients, then reconcile every note of every matched active patient. A
// failure on one client or note is logged and counted, never aborts the run.
// Returns ErrRunInProgress if another run is active.
func (imp *Importer) ImportNotes(ctx context.Context) (*Stats, error) {
	imp.mu.Lock()
	if imp.running {
		imp.mu.Unlock()
		metrics.RecordImportRun("already_running", 0)
		return nil, ErrRunInProgress
	}
	imp.running = true
	imp.mu.Unlock()

	defer func() {
		imp.mu.Lock()
		imp.running = false
		imp.mu.Unlock()
	}()

	start := time.Now()
	r := &run{
		log:   log.With().Str("run_id", uuid.NewString()).Logger(),
		stats: &Stats{},
		users: make(map[string]*dal.CompanyUser),
	}

	r.log.Info().Msg("Starting notes import run")

	clients := imp.source.FetchAllClients(ctx)
	if len(clients) == 0 {
		r.log.Warn().Msg("No clients received from legacy system, aborting import")
		metrics.RecordImportRun("aborted", time.Since(start))
		return r.stats, nil
	}
	r.log.Info().Int("clients", len(clients)).Msg("Fetched clients from legacy system")

	guids := make([]string, 0, len(clients))
	for _, client := range clients {
		if guid := strings.TrimSpace(client.Guid); guid != "" {
			guids = append(guids, guid)
		}
	}

	patients, err := imp.resolvePatients(ctx, guids)
	if err != nil {
		// Without the patient map every client would fail individually;
		// count one run-level error and let the next scheduled run retry.
		r.log.Error().Err(err).Msg("Failed to resolve patients, aborting import")
		r.stats.Errors++
		metrics.RecordImportItem("error")
		metrics.RecordImportRun("aborted", time.Since(start))
		return r.stats, nil
	}
	r.patients = patients
	r.log.Info().Int("matched_patients", len(patients)).Msg("Resolved patient profiles")

	for _, client := range clients {
		if err := imp.processClientSafe(ctx, r, client); err != nil {
			r.log.Error().
				Err(err).
				Str("client_guid", client.Guid).
				Msg("Error processing client")
			r.stats.Errors++
			metrics.RecordImportItem("error")
		}
	}

	r.log.Info().
		Int("imported", r.stats.Imported).
		Int("updated", r.stats.Updated).
		Int("skipped", r.stats.Skipped).
		Int("errors", r.stats.Errors).
		Msg("Import run completed")

	metrics.RecordImportRun("completed", time.Since(start))
	return r.stats, nil
}

// processClientSafe contains a panic from one client's processing so the
// remaining clients still run. Panics and returned errors are both item
// errors at the loop boundary.
func (imp *Importer) processClientSafe(ctx context.Context, r *run, client legacy.ClientRecord) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while processing client: %v", rec)
		}
	}()
	return imp.processClient(ctx, r, client)
}

// processClient handles one legacy client: match to a patient, filter by
// active status, then reconcile each of its notes. Note-level failures are
// contained here so one bad note does not stop the client's remaining notes.
func (imp *Importer) processClient(ctx context.Context, r *run, client legacy.ClientRecord) error {
	guid := strings.TrimSpace(client.Guid)

	patient, ok := r.patients[guid]
	if !ok {
		r.log.Warn().Str("client_guid", guid).Msg("No patient found for legacy client")
		r.stats.Skipped++
		metrics.RecordImportItem("skipped")
		return nil
	}

	if !IsActive(patient) {
		r.log.Warn().
			Str("patient_id", patient.ID).
			Int("status_id", patient.StatusID).
			Msg("Patient is not active, skipping")
		r.stats.Skipped++
		metrics.RecordImportItem("skipped")
		return nil
	}

	notes := imp.source.FetchClientNotes(ctx, client.Agency, client.Guid)
	if len(notes) == 0 {
		r.log.Info().Str("client_guid", guid).Msg("No notes found for client")
		return nil
	}

	r.log.Info().
		Int("notes", len(notes)).
		Str("patient_id", patient.ID).
		Msg("Processing notes for patient")

	for _, note := range notes {
		if err := imp.processNoteSafe(ctx, r, note, patient); err != nil {
			r.log.Error().
				Err(err).
				Str("note_guid", note.Guid).
				Msg("Error processing note")
			r.stats.Errors++
			metrics.RecordImportItem("error")
		}
	}

	return nil
}

// processNoteSafe contains a panic from one note's processing so the
// client's remaining notes still run.
func (imp *Importer) processNoteSafe(ctx context.Context, r *run, rec legacy.NoteRecord, patient *dal.PatientProfile) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic while processing note: %v", p)
		}
	}()
	return imp.processNote(ctx, r, rec, patient)
}

// processNote reconciles one legacy note against the store and persists the
// decision. Each create or replace is committed on its own.
func (imp *Importer) processNote(ctx context.Context, r *run, rec legacy.NoteRecord, patient *dal.PatientProfile) error {
	author, err := imp.resolveUser(ctx, r.users, rec.LoggedUser)
	if err != nil {
		return err
	}

	existing, err := imp.notes.FindByExternalGuid(ctx, rec.Guid)
	if err != nil {
		return err
	}

	result, doc := reconcileNote(rec, patient, author, existing)

	switch result {
	case outcomeCreated:
		if err := imp.notes.Insert(ctx, doc); err != nil {
			return err
		}
		r.stats.Imported++
		metrics.RecordImportItem("imported")
		r.log.Info().Str("note_guid", rec.Guid).Msg("Created new note")
	case outcomeUpdated:
		if err := imp.notes.Replace(ctx, doc); err != nil {
			return err
		}
		r.stats.Updated++
		metrics.RecordImportItem("updated")
		r.log.Info().Str("note_guid", rec.Guid).Msg("Updated note")
	case outcomeSkippedNewerExists:
		r.stats.Skipped++
		metrics.RecordImportItem("skipped")
		r.log.Info().Str("note_guid", rec.Guid).Msg("Skipped note, newer version exists")
	case outcomeSkippedUnchanged:
		r.stats.Skipped++
		metrics.RecordImportItem("skipped")
		r.log.Debug().Str("note_guid", rec.Guid).Msg("Skipped note, no changes")
	}

	return nil
}
