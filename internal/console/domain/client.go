package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/scimplatform/console/pkg/adminsdk"
)

// Defaults for newly created clients.
const (
	DefaultGrantType      = "client_credentials"
	DefaultScope          = "scim.read"
	DefaultAccessTokenTTL = 3600

	// MinAccessTokenTTL is the smallest accepted token lifetime in seconds.
	MinAccessTokenTTL = 60
)

// ValidationError reports a client-side validation failure. It is surfaced
// inline before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ClientForm holds the raw text of the client create/edit form. List fields
// are comma-separated free text and the TTL is kept as entered, so a failed
// submission can re-render exactly what the operator typed.
type ClientForm struct {
	ClientID     string
	ClientName   string
	ClientSecret string
	GrantTypes   string
	RedirectURIs string
	Scopes       string
	TTL          string
}

// NewClientForm returns the create-mode form: blank identifiers, a freshly
// generated random secret, and the minimal working defaults.
func NewClientForm() ClientForm {
	return ClientForm{
		ClientSecret: uuid.NewString(),
		GrantTypes:   DefaultGrantType,
		Scopes:       DefaultScope,
		TTL:          strconv.Itoa(DefaultAccessTokenTTL),
	}
}

// FormFromClient returns the edit-mode form prefilled from an existing
// record.
func FormFromClient(c adminsdk.Client) ClientForm {
	return ClientForm{
		ClientID:     c.ClientID,
		ClientName:   c.ClientName,
		ClientSecret: c.ClientSecret,
		GrantTypes:   FormatList(c.GrantTypes),
		RedirectURIs: FormatList(c.RedirectURIs),
		Scopes:       FormatList(c.Scopes),
		TTL:          strconv.Itoa(c.AccessTokenTTL),
	}
}

// Payload validates the form and converts it into an API payload.
//
// client_id and client_name must be non-empty after trimming. The TTL must
// parse as an integer and be at least MinAccessTokenTTL; non-numeric input
// is rejected here rather than passed through. List fields are split on
// commas with empty segments dropped and entries trimmed; duplicates are
// kept as entered.
func (f ClientForm) Payload() (adminsdk.CreateClientPayload, error) {
	clientID := strings.TrimSpace(f.ClientID)
	clientName := strings.TrimSpace(f.ClientName)

	if clientID == "" {
		return adminsdk.CreateClientPayload{}, &ValidationError{
			Field:   "client_id",
			Message: "Client ID is required",
		}
	}
	if clientName == "" {
		return adminsdk.CreateClientPayload{}, &ValidationError{
			Field:   "client_name",
			Message: "Client name is required",
		}
	}

	ttl, err := strconv.Atoi(strings.TrimSpace(f.TTL))
	if err != nil {
		return adminsdk.CreateClientPayload{}, &ValidationError{
			Field:   "access_token_ttl",
			Message: "Access token TTL must be a whole number of seconds",
		}
	}
	if ttl < MinAccessTokenTTL {
		return adminsdk.CreateClientPayload{}, &ValidationError{
			Field:   "access_token_ttl",
			Message: fmt.Sprintf("Access token TTL must be at least %d seconds", MinAccessTokenTTL),
		}
	}

	return adminsdk.CreateClientPayload{
		ClientID:       clientID,
		ClientName:     clientName,
		ClientSecret:   f.ClientSecret,
		GrantTypes:     ParseList(f.GrantTypes),
		RedirectURIs:   ParseList(f.RedirectURIs),
		Scopes:         ParseList(f.Scopes),
		AccessTokenTTL: ttl,
	}, nil
}

// ParseList splits comma-separated free text into entries, trimming
// whitespace and dropping empty segments. Entry order is preserved and
// duplicates are not removed.
func ParseList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FormatList renders entries back into the comma-separated form text.
func FormatList(xs []string) string {
	return strings.Join(xs, ", ")
}

// FilterClients returns the clients whose client_id or client_name contains
// the query, case-insensitively. An empty query returns the input unchanged.
// The function is pure; it never re-queries the server.
func FilterClients(clients []adminsdk.Client, query string) []adminsdk.Client {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return clients
	}

	out := make([]adminsdk.Client, 0, len(clients))
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.ClientID), query) ||
			strings.Contains(strings.ToLower(c.ClientName), query) {
			out = append(out, c)
		}
	}
	return out
}
