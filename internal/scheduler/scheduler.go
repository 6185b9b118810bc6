package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"stealthcompany.com/notesync/internal/importer"
)

// Runner triggers a synchronization run. Satisfied by *importer.Importer.
type Runner interface {
	ImportNotes(ctx context.Context) (*importer.Stats, error)
}

// Run invokes the import entry point every interval until ctx is cancelled.
// A tick that fires while a run is still active is skipped; any other
// run-level failure is logged and the loop continues, so the scheduler never
// brings the process down.
func Run(ctx context.Context, interval time.Duration, runner Runner) {
	log.Info().Dur("interval", interval).Msg("Starting import scheduler")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Import scheduler stopped")
			return
		case <-ticker.C:
			log.Info().Msg("Starting scheduled import")
			_, err := runner.ImportNotes(ctx)
			if err != nil {
				if errors.Is(err, importer.ErrRunInProgress) {
					log.Warn().Msg("Previous import still running, skipping this tick")
					continue
				}
				log.Error().Err(err).Msg("Error during scheduled import")
				continue
			}
			log.Info().Msg("Scheduled import completed successfully")
		}
	}
}
