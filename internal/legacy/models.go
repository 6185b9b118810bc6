package legacy

// ClientRecord is a client as returned by the legacy system. Read-only;
// fetched fresh each run and never persisted as-is.
type ClientRecord struct {
	Agency          string `json:"agency"`
	Guid            string `json:"guid"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Status          string `json:"status"`
	DOB             string `json:"dob"`
	CreatedDateTime string `json:"createdDateTime"`
}

// NoteRecord is a clinical note as returned by the legacy system. The
// CreatedDateTime/ModifiedDateTime fields arrive as unparsed strings; the
// importer parses them.
type NoteRecord struct {
	Guid             string `json:"guid"`
	Comments         string `json:"comments"`
	LoggedUser       string `json:"loggedUser"`
	CreatedDateTime  string `json:"createdDateTime"`
	ModifiedDateTime string `json:"modifiedDateTime"`
}

// notesRequest is the body of a POST /notes query.
type notesRequest struct {
	Agency     string `json:"agency"`
	ClientGuid string `json:"clientGuid"`
	DateFrom   string `json:"dateFrom"`
	DateTo     string `json:"dateTo"`
}
