package legacy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, 5*time.Second, "2000-01-01", "2030-12-31")
}

func TestFetchAllClients(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/clients", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]ClientRecord{
			{Agency: "A", Guid: "c1", FirstName: "Jane", LastName: "Doe", Status: "active"},
			{Agency: "A", Guid: "c2"},
		})
	}))
	defer server.Close()

	clients := newTestClient(server.URL).FetchAllClients(context.Background())
	require.Len(t, clients, 2)
	require.Equal(t, "c1", clients[0].Guid)
	require.Equal(t, "Jane", clients[0].FirstName)
}

func TestFetchAllClients_TransportFailureReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	clients := newTestClient(server.URL).FetchAllClients(context.Background())
	require.Empty(t, clients)
}

func TestFetchAllClients_ServerErrorReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	clients := newTestClient(server.URL).FetchAllClients(context.Background())
	require.Empty(t, clients)
}

func TestFetchAllClients_MalformedResponseReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("{not json"))
	}))
	defer server.Close()

	clients := newTestClient(server.URL).FetchAllClients(context.Background())
	require.Empty(t, clients)
}

func TestFetchClientNotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/notes", r.URL.Path)

		var req notesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "A", req.Agency)
		require.Equal(t, "c1", req.ClientGuid)
		require.Equal(t, "2000-01-01", req.DateFrom)
		require.Equal(t, "2030-12-31", req.DateTo)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]NoteRecord{
			{Guid: "n1", Comments: "hello", LoggedUser: "u1", CreatedDateTime: "2023-01-01 12:00:00", ModifiedDateTime: "2023-01-01 12:00:00"},
		})
	}))
	defer server.Close()

	notes := newTestClient(server.URL).FetchClientNotes(context.Background(), "A", "c1")
	require.Len(t, notes, 1)
	require.Equal(t, "n1", notes[0].Guid)
	require.Equal(t, "hello", notes[0].Comments)
}

func TestFetchClientNotes_NotFoundMeansNoNotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	notes := newTestClient(server.URL).FetchClientNotes(context.Background(), "A", "c1")
	require.Empty(t, notes)
}

func TestFetchClientNotes_ServerErrorReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notes := newTestClient(server.URL).FetchClientNotes(context.Background(), "A", "c1")
	require.Empty(t, notes)
}
