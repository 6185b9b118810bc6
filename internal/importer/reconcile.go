package importer

import (
	"github.com/google/uuid"

	"stealthcompany.com/notesync/internal/dal"
	"stealthcompany.com/notesync/internal/legacy"
)

// outcome tags the reconciliation decision for one legacy note.
type outcome int

const (
	outcomeCreated outcome = iota
	outcomeUpdated
	outcomeSkippedNewerExists
	outcomeSkippedUnchanged
)

// reconcileNote decides what to do with one legacy note given the stored
// note with the same external GUID (nil if none). It returns the decision
// and the document to persist; the document is nil when nothing changes.
//
// Last-write-wins on the legacy modified timestamp: a stored note is only
// touched by a strictly newer legacy version, and only its body and
// modification metadata move. CreatedAt/CreatedByUserID are permanent once
// set.
func reconcileNote(rec legacy.NoteRecord, patient *dal.PatientProfile, author *dal.CompanyUser, existing *dal.PatientNote) (outcome, *dal.PatientNote) {
	modifiedAt := parseDateTime(rec.ModifiedDateTime)

	if existing == nil {
		return outcomeCreated, &dal.PatientNote{
			ID:                   uuid.NewString(),
			CreatedAt:            parseDateTime(rec.CreatedDateTime),
			LastModifiedAt:       modifiedAt,
			CreatedByUserID:      author.ID,
			LastModifiedByUserID: author.ID,
			Note:                 rec.Comments,
			PatientID:            patient.ID,
			ExternalGuid:         rec.Guid,
		}
	}

	switch {
	case modifiedAt.After(existing.LastModifiedAt):
		updated := *existing
		updated.Note = rec.Comments
		updated.LastModifiedAt = modifiedAt
		updated.LastModifiedByUserID = author.ID
		return outcomeUpdated, &updated
	case existing.LastModifiedAt.After(modifiedAt):
		return outcomeSkippedNewerExists, nil
	default:
		return outcomeSkippedUnchanged, nil
	}
}
