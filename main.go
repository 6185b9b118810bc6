package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"stealthcompany.com/notesync/internal/api"
	"stealthcompany.com/notesync/internal/config"
	"stealthcompany.com/notesync/internal/dal"
	"stealthcompany.com/notesync/internal/importer"
	"stealthcompany.com/notesync/internal/legacy"
	"stealthcompany.com/notesync/internal/metrics"
	"stealthcompany.com/notesync/internal/scheduler"
	"stealthcompany.com/notesync/pkg/logging"
)

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Info().Msg("No .env file found, assuming environment variables are set")
	}

	cfg := config.Load()

	logging.Setup(cfg.ElasticsearchURL, "notesync")

	log.Info().Msg("Starting notesync service")

	metrics.StartSystemMetrics(15 * time.Second)

	conn, err := dal.NewConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Couchbase")
	}
	defer conn.Close()

	legacyClient := legacy.NewClient(cfg.LegacyBaseURL, cfg.LegacyTimeout, cfg.NotesDateFrom, cfg.NotesDateTo)

	imp := importer.New(
		legacyClient,
		dal.NewPatientModel(conn),
		dal.NewUserModel(conn),
		dal.NewNoteModel(conn),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Scheduled imports
	go scheduler.Run(ctx, cfg.ImportInterval, imp)

	// HTTP surface: health, manual trigger, metrics
	router := api.SetupRoutes(imp)
	server := &http.Server{
		Addr:    ":" + cfg.ServicePort,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.ServicePort).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("notesync service stopped")
}
