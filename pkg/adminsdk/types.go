package adminsdk

// Client is a registered OAuth2 client as returned by the admin API.
type Client struct {
	// ID is the server-assigned identifier, immutable after creation.
	ID string `json:"id"`

	// ClientID is the operator-chosen public identifier, unique and
	// immutable after creation.
	ClientID string `json:"client_id"`

	// ClientName is the human-readable label.
	ClientName string `json:"client_name"`

	// ClientSecret is the confidential credential. The server may omit it
	// on reads.
	ClientSecret string `json:"client_secret,omitempty"`

	// GrantTypes lists the authorization grant identifiers the client may
	// use, in entry order.
	GrantTypes []string `json:"grant_types"`

	// RedirectURIs lists callback URIs, used only for interactive grants.
	RedirectURIs []string `json:"redirect_uris"`

	// Scopes lists permission scope strings, in entry order.
	Scopes []string `json:"scopes"`

	// AccessTokenTTL is the token lifetime in seconds, minimum 60.
	AccessTokenTTL int `json:"access_token_ttl"`

	// CreatedAt is the server-assigned creation timestamp, display only.
	CreatedAt string `json:"created_at"`
}

// CreateClientPayload is the request body for creating or updating a
// client. It excludes the server-assigned fields (id, created_at).
type CreateClientPayload struct {
	ClientID       string   `json:"client_id"`
	ClientName     string   `json:"client_name"`
	ClientSecret   string   `json:"client_secret,omitempty"`
	GrantTypes     []string `json:"grant_types"`
	RedirectURIs   []string `json:"redirect_uris"`
	Scopes         []string `json:"scopes"`
	AccessTokenTTL int      `json:"access_token_ttl"`
}

// TokenResponse is the token endpoint's success response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
}
