package adminsdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the SCIM platform admin API.
// It provides the token exchange operation and typed access to the
// client-registration collection.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// OnAuthLost, when set, is invoked every time an authenticated request
	// is rejected with 401. The hook runs before the call returns its
	// *AuthError. It must not block: the session owner typically just
	// discards its stored token here. Navigation and user notices stay with
	// the caller.
	OnAuthLost func()
}

// New creates a new admin API client.
func New(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Clients returns the client-registration resource.
func (c *SDKClient) Clients() *ClientsService {
	return &ClientsService{c: c}
}

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// authLost fires the OnAuthLost hook if one is registered.
func (c *SDKClient) authLost() {
	if c.OnAuthLost != nil {
		c.OnAuthLost()
	}
}
