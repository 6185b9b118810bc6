package dal

import "time"

// Document types stored in the bucket. Each document carries a `type` field
// for N1QL filtering, following the docId/resourceType denormalization used
// across the platform.
const (
	TypePatientProfile = "PatientProfile"
	TypeCompanyUser    = "CompanyUser"
	TypePatientNote    = "PatientNote"
)

// PatientProfile is a patient record owned by the patient-management
// subsystem. This service only reads it. LegacyGuids holds every legacy
// client GUID that maps to this profile (profiles merged over the years
// carry several).
type PatientProfile struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	StatusID    int      `json:"statusId"`
	LegacyGuids []string `json:"legacyGuids"`
}

// CompanyUser is an internal user. Created lazily on first sight of a legacy
// author login, never updated or deleted here. The document key is derived
// from the login, so the store enforces login uniqueness.
type CompanyUser struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Login string `json:"login"`
}

// PatientNote is an imported clinical note. ExternalGuid is the legacy
// system's note GUID and the idempotency key for upsert: the document key is
// derived from it, so duplicate creation is impossible.
type PatientNote struct {
	ID                   string    `json:"id"`
	Type                 string    `json:"type"`
	CreatedAt            time.Time `json:"createdAt"`
	LastModifiedAt       time.Time `json:"lastModifiedAt"`
	CreatedByUserID      string    `json:"createdByUserId"`
	LastModifiedByUserID string    `json:"lastModifiedByUserId"`
	Note                 string    `json:"note"`
	PatientID            string    `json:"patientId"`
	ExternalGuid         string    `json:"externalGuid"`
}

// Document key builders. Keys follow the platform's Type/<id> convention.

func PatientProfileKey(id string) string {
	return TypePatientProfile + "/" + id
}

func CompanyUserKey(login string) string {
	return TypeCompanyUser + "/" + login
}

func PatientNoteKey(externalGuid string) string {
	return TypePatientNote + "/" + externalGuid
}
