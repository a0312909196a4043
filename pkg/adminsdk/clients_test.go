package adminsdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientsList(t *testing.T) {
	t.Parallel()

	var gotAuth, gotContentType, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/admin/clients", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotQuery = r.URL.RawQuery

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]Client{
			{ID: "1", ClientID: "prod-1", ClientName: "production-app"},
		})
	}))
	defer srv.Close()

	sdk := New(srv.URL)
	clients, err := sdk.Clients().List(context.Background(), "tok-123", 2, 25)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	require.Equal(t, "prod-1", clients[0].ClientID)

	require.Equal(t, "Bearer tok-123", gotAuth)
	require.Equal(t, "application/json", gotContentType)
	require.Equal(t, "page=2&size=25", gotQuery)
}

func TestClientsList_DefaultsPageAndSize(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1", r.URL.Query().Get("page"))
		require.Equal(t, "10", r.URL.Query().Get("size"))
		_ = json.NewEncoder(w).Encode([]Client{})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Clients().List(context.Background(), "tok", 0, 0)
	require.NoError(t, err)
}

func TestClientsCreate(t *testing.T) {
	t.Parallel()

	var got CreateClientPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/clients", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Client{
			ID:         "srv-id-1",
			ClientID:   got.ClientID,
			ClientName: got.ClientName,
			CreatedAt:  "2026-01-02T15:04:05Z",
		})
	}))
	defer srv.Close()

	payload := CreateClientPayload{
		ClientID:       "my-client",
		ClientName:     "My Application",
		ClientSecret:   "s3cret",
		GrantTypes:     []string{"client_credentials"},
		RedirectURIs:   []string{},
		Scopes:         []string{"scim.read"},
		AccessTokenTTL: 3600,
	}

	created, err := New(srv.URL).Clients().Create(context.Background(), "tok", payload)
	require.NoError(t, err)
	require.Equal(t, "srv-id-1", created.ID)
	require.Equal(t, payload, got)
}

func TestClientsUpdate(t *testing.T) {
	t.Parallel()

	var got CreateClientPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/admin/clients/srv-id-1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(Client{ID: "srv-id-1", ClientID: got.ClientID})
	}))
	defer srv.Close()

	payload := CreateClientPayload{
		ClientID:       "my-client",
		ClientName:     "My Application",
		AccessTokenTTL: 120,
	}

	updated, err := New(srv.URL).Clients().Update(context.Background(), "tok", "srv-id-1", payload)
	require.NoError(t, err)
	require.Equal(t, "srv-id-1", updated.ID)
	require.Equal(t, 120, got.AccessTokenTTL)
	require.Equal(t, "my-client", got.ClientID)
}

func TestClientsDelete(t *testing.T) {
	t.Parallel()

	var called bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/admin/clients/srv-id-1", r.URL.Path)
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := New(srv.URL).Clients().Delete(context.Background(), "tok", "srv-id-1")
	require.NoError(t, err)
	require.True(t, called)
}

func TestClientsGet_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":             "client_not_found",
			"error_description": "Client not found",
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Clients().Get(context.Background(), "tok", "missing")

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	require.Equal(t, "client_not_found", httpErr.Code)
}

func TestAuthenticatedCall_401FiresOnAuthLost(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sdk := New(srv.URL)
	lost := 0
	sdk.OnAuthLost = func() { lost++ }

	_, err := sdk.Clients().List(context.Background(), "stale-token", 1, 10)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, 1, lost)
}

func TestNetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse subsequent connections

	_, err := New(srv.URL).Clients().List(context.Background(), "tok", 1, 10)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	require.Error(t, errors.Unwrap(netErr))
}
