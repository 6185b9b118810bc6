package importer

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"stealthcompany.com/notesync/internal/dal"
)

// activeStatusIDs is the closed allow-list of patient statuses eligible for
// note import. Codes between or adjacent to these are inactive; this is not
// a range.
var activeStatusIDs = map[int]bool{
	200: true,
	210: true,
	230: true,
}

// IsActive reports whether a patient is eligible for note import.
func IsActive(patient *dal.PatientProfile) bool {
	active := activeStatusIDs[patient.StatusID]

	log.Debug().
		Str("patient_id", patient.ID).
		Int("status_id", patient.StatusID).
		Bool("active", active).
		Msg("Patient status check")

	return active
}

// resolvePatients bulk-resolves legacy client GUIDs to patient profiles in a
// single store query, then expands each profile's legacy GUID set into
// individual map entries. Several GUIDs may map to the same profile
// (historical merges). Set members are trimmed of whitespace; comparison is
// exact and case-sensitive.
func (imp *Importer) resolvePatients(ctx context.Context, clientGuids []string) (map[string]*dal.PatientProfile, error) {
	profiles, err := imp.patients.FindByLegacyGuids(ctx, clientGuids)
	if err != nil {
		return nil, err
	}

	byGuid := make(map[string]*dal.PatientProfile, len(clientGuids))
	for i := range profiles {
		profile := &profiles[i]
		for _, guid := range profile.LegacyGuids {
			guid = strings.TrimSpace(guid)
			if guid == "" {
				continue
			}
			byGuid[guid] = profile
		}
	}

	return byGuid, nil
}
