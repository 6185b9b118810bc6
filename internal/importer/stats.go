package importer

// Stats accumulates per-item outcomes over one import run. Ephemeral: logged
// at run end, never persisted.
type Stats struct {
	Imported int `json:"imported"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
}
