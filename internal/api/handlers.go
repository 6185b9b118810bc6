package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"stealthcompany.com/notesync/internal/importer"
)

// ImportRunner triggers a synchronization run. Satisfied by
// *importer.Importer.
type ImportRunner interface {
	ImportNotes(ctx context.Context) (*importer.Stats, error)
}

// HealthHandler reports service liveness
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// RunImportHandler triggers an import run manually. The run executes
// synchronously; the response acknowledges completion with the run's
// statistics regardless of how many per-item errors occurred. Detailed
// outcomes live in the log stream.
func RunImportHandler(runner ImportRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info().
			Str("remote_addr", r.RemoteAddr).
			Msg("Manual import triggered")

		stats, err := runner.ImportNotes(r.Context())
		if err != nil {
			if errors.Is(err, importer.ErrRunInProgress) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "import run already in progress",
				})
				return
			}

			log.Error().Err(err).Msg("Manual import failed")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{
				"error": err.Error(),
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "completed",
			"stats":  stats,
		})
	}
}
