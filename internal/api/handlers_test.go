package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stealthcompany.com/notesync/internal/importer"
)

type fakeRunner struct {
	stats *importer.Stats
	err   error
	calls int
}

func (f *fakeRunner) ImportNotes(ctx context.Context) (*importer.Stats, error) {
	f.calls++
	return f.stats, f.err
}

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()

	HealthHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestRunImportHandler(t *testing.T) {
	tests := []struct {
		name           string
		runner         *fakeRunner
		expectedStatus int
	}{
		{
			name:           "Completed run returns 200 with stats",
			runner:         &fakeRunner{stats: &importer.Stats{Imported: 3, Skipped: 1, Errors: 2}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Run in progress returns 409",
			runner:         &fakeRunner{err: importer.ErrRunInProgress},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/run-import", nil)
			rr := httptest.NewRecorder()

			RunImportHandler(tt.runner)(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, rr.Code)
			}
			if tt.runner.calls != 1 {
				t.Errorf("Expected 1 runner call, got %d", tt.runner.calls)
			}
		})
	}
}

func TestRunImportHandler_ReportsCompletionDespiteItemErrors(t *testing.T) {
	runner := &fakeRunner{stats: &importer.Stats{Errors: 5}}

	req := httptest.NewRequest("POST", "/run-import", nil)
	rr := httptest.NewRecorder()
	RunImportHandler(runner)(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var body struct {
		Status string         `json:"status"`
		Stats  importer.Stats `json:"stats"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("Unexpected decode error: %v", err)
	}
	if body.Status != "completed" {
		t.Errorf("Expected status %q, got %q", "completed", body.Status)
	}
	if body.Stats.Errors != 5 {
		t.Errorf("Expected 5 errors in stats, got %d", body.Stats.Errors)
	}
}

func TestSetupRoutes(t *testing.T) {
	router := SetupRoutes(&fakeRunner{stats: &importer.Stats{}})

	tests := []struct {
		method         string
		path           string
		expectedStatus int
	}{
		{"GET", "/health", http.StatusOK},
		{"POST", "/run-import", http.StatusOK},
		{"GET", "/metrics", http.StatusOK},
		{"GET", "/run-import", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != tt.expectedStatus {
			t.Errorf("%s %s: expected status %d, got %d", tt.method, tt.path, tt.expectedStatus, rr.Code)
		}
	}
}
