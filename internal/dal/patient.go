package dal

import (
	"context"
	"fmt"
	"time"

	"github.com/couchbase/gocb/v2"
	"github.com/rs/zerolog/log"

	"stealthcompany.com/notesync/internal/metrics"
)

// PatientModel handles patient profile lookups. Profiles are owned by the
// patient-management subsystem; this service never writes them.
type PatientModel struct {
	conn *Connection
}

// NewPatientModel creates a new patient model
func NewPatientModel(conn *Connection) *PatientModel {
	return &PatientModel{conn: conn}
}

// FindByLegacyGuids returns every profile whose legacyGuids set contains at
// least one of the given GUIDs. One query for the whole batch, backed by the
// array index on legacyGuids.
func (pm *PatientModel) FindByLegacyGuids(ctx context.Context, guids []string) ([]PatientProfile, error) {
	if len(guids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(
		"SELECT d.* FROM `%s` AS d WHERE d.`type` = $type AND ANY g IN d.`legacyGuids` SATISFIES g IN $guids END",
		pm.conn.BucketName(),
	)

	start := time.Now()
	rows, err := pm.conn.Cluster().Query(query, &gocb.QueryOptions{
		Context: ctx,
		NamedParameters: map[string]interface{}{
			"type":  TypePatientProfile,
			"guids": guids,
		},
	})
	duration := time.Since(start)

	if err != nil {
		metrics.RecordCouchbaseOperation("query", "error")
		metrics.RecordCouchbaseOperationDuration("query", duration)
		return nil, fmt.Errorf("failed to query patient profiles: %w", err)
	}
	defer rows.Close()

	var profiles []PatientProfile
	for rows.Next() {
		var profile PatientProfile
		if err := rows.Row(&profile); err != nil {
			log.Warn().Err(err).Msg("Failed to read patient profile row")
			continue
		}
		profiles = append(profiles, profile)
	}

	metrics.RecordCouchbaseOperation("query", "success")
	metrics.RecordCouchbaseOperationDuration("query", duration)

	log.Debug().
		Int("requested_guids", len(guids)).
		Int("matched_profiles", len(profiles)).
		Msg("Resolved patient profiles by legacy GUIDs")

	return profiles, nil
}
