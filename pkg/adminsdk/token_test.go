package adminsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordGrant(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/oauth2/token", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		require.Equal(t, "password", r.PostForm.Get("grant_type"))
		require.Equal(t, "operator@example.com", r.PostForm.Get("username"))
		require.Equal(t, "hunter2", r.PostForm.Get("password"))
		require.Equal(t, "admin", r.PostForm.Get("scope"))

		_ = json.NewEncoder(w).Encode(TokenResponse{
			AccessToken: "tok-abc",
			TokenType:   "Bearer",
			ExpiresIn:   3600,
			Scope:       "admin",
		})
	}))
	defer srv.Close()

	tok, err := New(srv.URL).PasswordGrant(context.Background(), "operator@example.com", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "tok-abc", tok.AccessToken)
	require.Equal(t, 3600, tok.ExpiresIn)
}

func TestPasswordGrant_InvalidCredentials(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":             "invalid_grant",
			"error_description": "invalid credentials",
		})
	}))
	defer srv.Close()

	sdk := New(srv.URL)
	lost := 0
	sdk.OnAuthLost = func() { lost++ }

	_, err := sdk.PasswordGrant(context.Background(), "operator@example.com", "wrong")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Contains(t, authErr.Error(), "invalid credentials")

	// A rejected login is not a lost session.
	require.Zero(t, lost)
}

func TestPasswordGrant_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL).PasswordGrant(context.Background(), "operator@example.com", "hunter2")

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
}
