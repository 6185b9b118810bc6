package legacy

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"stealthcompany.com/notesync/internal/metrics"
)

// Client talks to the legacy system API. It is a pure translation boundary:
// transport and decoding failures are logged and surfaced as empty result
// sets, never as errors to the caller.
type Client struct {
	httpClient *resty.Client
	dateFrom   string
	dateTo     string
}

// NewClient creates a legacy system API client. dateFrom/dateTo form the
// window sent with every notes query (yyyy-mm-dd).
func NewClient(baseURL string, timeout time.Duration, dateFrom, dateTo string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: httpClient,
		dateFrom:   dateFrom,
		dateTo:     dateTo,
	}
}

// FetchAllClients fetches every client from the legacy system. Returns an
// empty slice on any failure.
func (c *Client) FetchAllClients(ctx context.Context) []ClientRecord {
	var clients []ClientRecord

	start := time.Now()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&clients).
		Post("/clients")
	duration := time.Since(start)

	metrics.RecordLegacyAPICallDuration("clients", duration)

	if err != nil {
		metrics.RecordLegacyAPICall("clients", "error")
		log.Error().Err(err).Msg("Failed to fetch clients from legacy system")
		return nil
	}

	if resp.IsError() {
		metrics.RecordLegacyAPICall("clients", "error")
		log.Error().
			Int("status_code", resp.StatusCode()).
			Msg("Legacy system returned error status for clients")
		return nil
	}

	metrics.RecordLegacyAPICall("clients", "success")
	return clients
}

// FetchClientNotes fetches all notes for one client within the configured
// date window. A 404 means the client has no notes, not a failure. Returns
// an empty slice on any real failure.
func (c *Client) FetchClientNotes(ctx context.Context, agency, clientGuid string) []NoteRecord {
	var notes []NoteRecord

	start := time.Now()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(notesRequest{
			Agency:     agency,
			ClientGuid: clientGuid,
			DateFrom:   c.dateFrom,
			DateTo:     c.dateTo,
		}).
		SetResult(&notes).
		Post("/notes")
	duration := time.Since(start)

	metrics.RecordLegacyAPICallDuration("notes", duration)

	if err != nil {
		metrics.RecordLegacyAPICall("notes", "error")
		log.Error().
			Err(err).
			Str("client_guid", clientGuid).
			Msg("Failed to fetch notes from legacy system")
		return nil
	}

	if resp.StatusCode() == http.StatusNotFound {
		metrics.RecordLegacyAPICall("notes", "success")
		log.Debug().Str("client_guid", clientGuid).Msg("Legacy system has no notes for client")
		return nil
	}

	if resp.IsError() {
		metrics.RecordLegacyAPICall("notes", "error")
		log.Error().
			Int("status_code", resp.StatusCode()).
			Str("client_guid", clientGuid).
			Msg("Legacy system returned error status for notes")
		return nil
	}

	metrics.RecordLegacyAPICall("notes", "success")
	return notes
}
