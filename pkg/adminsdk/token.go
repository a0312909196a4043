package adminsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// tokenPath is the backend's OAuth2 token endpoint.
const tokenPath = "/oauth2/token"

// adminScope is the fixed scope requested for console sessions.
const adminScope = "admin"

// PasswordGrant exchanges operator credentials for an access token using the
// OAuth2 password grant with the fixed admin scope.
//
// A 401 response means the credentials were rejected and returns *AuthError.
// This is a login failure, not a lost session, so the OnAuthLost hook does
// not fire here.
func (c *SDKClient) PasswordGrant(ctx context.Context, username, password string) (*TokenResponse, error) {
	data := url.Values{
		"grant_type": {"password"},
		"username":   {username},
		"password":   {password},
		"scope":      {adminScope},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.url(tokenPath),
		strings.NewReader(data.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		var eb errorBody
		_ = json.Unmarshal(bodyBytes, &eb)

		if resp.StatusCode == http.StatusUnauthorized {
			return nil, &AuthError{Description: eb.ErrorDescription}
		}
		return nil, &HTTPError{
			StatusCode:  resp.StatusCode,
			Code:        eb.Error,
			Description: eb.ErrorDescription,
		}
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(bodyBytes, &tokenResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &tokenResp, nil
}
