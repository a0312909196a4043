package adminsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// AuthError reports a 401 from any endpoint: an expired or revoked bearer
// token on an authenticated call, or rejected credentials at login.
// Callers must not retry the same request.
type AuthError struct {
	// Description is a human-readable description from the server, if any.
	Description string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Description == "" {
		return "unauthorized"
	}
	return "unauthorized: " + e.Description
}

// HTTPError reports any non-2xx status other than 401.
type HTTPError struct {
	// StatusCode is the HTTP status code of the failed response.
	StatusCode int

	// Code is the machine-readable error code from an RFC 6749 style error
	// body, when the server sent one.
	Code string

	// Description is a human-readable description of the error.
	Description string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("http %d: %s: %s", e.StatusCode, e.Code, e.Description)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// NetworkError reports a request that could not complete: DNS failure,
// refused connection, timeout.
type NetworkError struct {
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return "request failed: " + e.Err.Error()
}

// Unwrap exposes the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// errorBody is the RFC 6749 error object the backend uses for failures.
type errorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// errorFromResponse maps a non-2xx response to a typed error. 401 fires the
// OnAuthLost hook and becomes *AuthError; everything else becomes
// *HTTPError carrying whatever error body the server sent.
func (c *SDKClient) errorFromResponse(statusCode int, body []byte) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	if statusCode == http.StatusUnauthorized {
		c.authLost()
		return &AuthError{Description: eb.ErrorDescription}
	}

	return &HTTPError{
		StatusCode:  statusCode,
		Code:        eb.Error,
		Description: eb.ErrorDescription,
	}
}
