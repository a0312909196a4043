package domain

import (
	"strings"
	"testing"

	"github.com/scimplatform/console/pkg/adminsdk"
	"github.com/stretchr/testify/require"
)

func TestParseList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"messy input", " a, b ,,c ", []string{"a", "b", "c"}},
		{"single entry", "client_credentials", []string{"client_credentials"}},
		{"empty", "", []string{}},
		{"only separators", " , ,, ", []string{}},
		{"duplicates preserved", "scim.read, scim.read", []string{"scim.read", "scim.read"}},
		{"entry order preserved", "c, a, b", []string{"c", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseList(tt.input))
		})
	}
}

func TestFormatListRoundTrip(t *testing.T) {
	in := []string{"openid", "profile", "scim.read"}
	require.Equal(t, in, ParseList(FormatList(in)))
}

func TestNewClientForm(t *testing.T) {
	form := NewClientForm()

	require.Empty(t, form.ClientID)
	require.Empty(t, form.ClientName)
	require.NotEmpty(t, form.ClientSecret)
	require.Equal(t, "client_credentials", form.GrantTypes)
	require.Empty(t, form.RedirectURIs)
	require.Equal(t, "scim.read", form.Scopes)
	require.Equal(t, "3600", form.TTL)

	// Each new form gets a fresh secret.
	require.NotEqual(t, form.ClientSecret, NewClientForm().ClientSecret)
}

func TestFormFromClient(t *testing.T) {
	form := FormFromClient(adminsdk.Client{
		ID:             "srv-1",
		ClientID:       "my-client",
		ClientName:     "My Application",
		GrantTypes:     []string{"client_credentials", "authorization_code"},
		RedirectURIs:   []string{"https://app.example.com/callback"},
		Scopes:         []string{"scim.read", "scim.write"},
		AccessTokenTTL: 120,
	})

	require.Equal(t, "my-client", form.ClientID)
	require.Equal(t, "client_credentials, authorization_code", form.GrantTypes)
	require.Equal(t, "https://app.example.com/callback", form.RedirectURIs)
	require.Equal(t, "scim.read, scim.write", form.Scopes)
	require.Equal(t, "120", form.TTL)
}

func TestClientFormPayload(t *testing.T) {
	form := ClientForm{
		ClientID:     "  my-client  ",
		ClientName:   " My Application ",
		ClientSecret: "s3cret",
		GrantTypes:   "client_credentials",
		RedirectURIs: "",
		Scopes:       " a, b ,,c ",
		TTL:          "3600",
	}

	payload, err := form.Payload()
	require.NoError(t, err)
	require.Equal(t, "my-client", payload.ClientID)
	require.Equal(t, "My Application", payload.ClientName)
	require.Equal(t, []string{"a", "b", "c"}, payload.Scopes)
	require.Equal(t, []string{}, payload.RedirectURIs)
	require.Equal(t, 3600, payload.AccessTokenTTL)
}

func TestClientFormPayload_Validation(t *testing.T) {
	valid := ClientForm{
		ClientID:   "my-client",
		ClientName: "My Application",
		TTL:        "3600",
	}

	tests := []struct {
		name      string
		mutate    func(*ClientForm)
		wantField string
	}{
		{"empty client_id", func(f *ClientForm) { f.ClientID = "   " }, "client_id"},
		{"empty client_name", func(f *ClientForm) { f.ClientName = "" }, "client_name"},
		{"ttl below minimum", func(f *ClientForm) { f.TTL = "59" }, "access_token_ttl"},
		{"non-numeric ttl", func(f *ClientForm) { f.TTL = "soon" }, "access_token_ttl"},
		{"empty ttl", func(f *ClientForm) { f.TTL = "" }, "access_token_ttl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)

			_, err := form.Payload()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.wantField, verr.Field)
		})
	}

	t.Run("minimum ttl accepted", func(t *testing.T) {
		form := valid
		form.TTL = "60"
		payload, err := form.Payload()
		require.NoError(t, err)
		require.Equal(t, 60, payload.AccessTokenTTL)
	})
}

func TestFilterClients(t *testing.T) {
	clients := []adminsdk.Client{
		{ID: "1", ClientID: "prod-1", ClientName: "Primary Sync"},
		{ID: "2", ClientID: "svc-2", ClientName: "production-app"},
		{ID: "3", ClientID: "dev-1", ClientName: "Developer Sandbox"},
	}

	t.Run("case-insensitive over both fields", func(t *testing.T) {
		got := FilterClients(clients, "PROD")
		require.Len(t, got, 2)
		require.Equal(t, "prod-1", got[0].ClientID) // client_id match
		require.Equal(t, "svc-2", got[1].ClientID)  // client_name match
	})

	t.Run("matches client_name", func(t *testing.T) {
		got := FilterClients(clients, "sandbox")
		require.Len(t, got, 1)
		require.Equal(t, "dev-1", got[0].ClientID)
	})

	t.Run("no match", func(t *testing.T) {
		require.Empty(t, FilterClients(clients, "nothing-here"))
	})

	t.Run("empty query returns all", func(t *testing.T) {
		require.Equal(t, clients, FilterClients(clients, "  "))
	})

	t.Run("pure", func(t *testing.T) {
		before := make([]adminsdk.Client, len(clients))
		copy(before, clients)
		_ = FilterClients(clients, "prod")
		require.Equal(t, before, clients)
	})
}

func TestNewClientFormSecretShape(t *testing.T) {
	// The generated secret is UUID-like: 36 chars, four hyphens.
	secret := NewClientForm().ClientSecret
	require.Len(t, secret, 36)
	require.Equal(t, 4, strings.Count(secret, "-"))
}
