package dal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/couchbase/gocb/v2"
	"github.com/rs/zerolog/log"

	"stealthcompany.com/notesync/internal/metrics"
)

// NoteModel handles patient note persistence. Each Insert/Replace is its own
// unit of work, so a crash mid-run leaves committed notes intact and the next
// run re-processes the remainder idempotently.
type NoteModel struct {
	conn *Connection
}

// NewNoteModel creates a new note model
func NewNoteModel(conn *Connection) *NoteModel {
	return &NoteModel{conn: conn}
}

// FindByExternalGuid retrieves a note by its legacy GUID. Returns (nil, nil)
// when no such note exists.
func (nm *NoteModel) FindByExternalGuid(ctx context.Context, externalGuid string) (*PatientNote, error) {
	docID := PatientNoteKey(externalGuid)

	start := time.Now()
	result, err := nm.conn.Collection().Get(docID, &gocb.GetOptions{Context: ctx})
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, gocb.ErrDocumentNotFound) {
			metrics.RecordCouchbaseOperation("get", "miss")
			metrics.RecordCouchbaseOperationDuration("get", duration)
			return nil, nil
		}
		metrics.RecordCouchbaseOperation("get", "error")
		metrics.RecordCouchbaseOperationDuration("get", duration)
		return nil, fmt.Errorf("failed to get note %s: %w", docID, err)
	}

	var note PatientNote
	if err := result.Content(&note); err != nil {
		metrics.RecordCouchbaseOperation("get", "error")
		metrics.RecordCouchbaseOperationDuration("get", duration)
		return nil, fmt.Errorf("failed to decode note %s: %w", docID, err)
	}

	metrics.RecordCouchbaseOperation("get", "success")
	metrics.RecordCouchbaseOperationDuration("get", duration)
	return &note, nil
}

// Insert persists a newly imported note. The externalGuid-derived document
// key makes duplicate creation impossible across overlapping runs.
func (nm *NoteModel) Insert(ctx context.Context, note *PatientNote) error {
	note.Type = TypePatientNote
	docID := PatientNoteKey(note.ExternalGuid)

	start := time.Now()
	_, err := nm.conn.Collection().Insert(docID, note, &gocb.InsertOptions{Context: ctx})
	duration := time.Since(start)

	if err != nil {
		metrics.RecordCouchbaseOperation("insert", "error")
		metrics.RecordCouchbaseOperationDuration("insert", duration)
		return fmt.Errorf("failed to insert note %s: %w", docID, err)
	}

	metrics.RecordCouchbaseOperation("insert", "success")
	metrics.RecordCouchbaseOperationDuration("insert", duration)

	log.Debug().Str("doc_id", docID).Msg("Successfully inserted note")
	return nil
}

// Replace overwrites an existing note after a newer legacy version won the
// timestamp comparison.
func (nm *NoteModel) Replace(ctx context.Context, note *PatientNote) error {
	note.Type = TypePatientNote
	docID := PatientNoteKey(note.ExternalGuid)

	start := time.Now()
	_, err := nm.conn.Collection().Replace(docID, note, &gocb.ReplaceOptions{Context: ctx})
	duration := time.Since(start)

	if err != nil {
		metrics.RecordCouchbaseOperation("replace", "error")
		metrics.RecordCouchbaseOperationDuration("replace", duration)
		return fmt.Errorf("failed to replace note %s: %w", docID, err)
	}

	metrics.RecordCouchbaseOperation("replace", "success")
	metrics.RecordCouchbaseOperationDuration("replace", duration)

	log.Debug().Str("doc_id", docID).Msg("Successfully replaced note")
	return nil
}
