// Package adminsdk is a typed HTTP client for the SCIM platform's
// administrative REST API.
//
// The API exposes OAuth2 client registrations under the /admin base path and
// a password-grant token endpoint at /oauth2/token. The SDK covers both:
//
//	sdk := adminsdk.New("https://scim.example.com")
//
//	tok, err := sdk.PasswordGrant(ctx, "operator@example.com", "secret")
//	if err != nil { ... }
//
//	clients, err := sdk.Clients().List(ctx, tok.AccessToken, 1, 10)
//
// The SDK holds no session state of its own: callers pass the bearer token
// on every authenticated call, and the session owner decides where tokens
// live. When any authenticated request comes back 401 the SDK reports it
// through the OnAuthLost hook (in addition to returning an *AuthError), so
// the session owner can discard the stored token in one place instead of
// every call site handling expiry itself.
//
// Errors are typed: *AuthError for 401s and rejected logins, *HTTPError for
// other non-2xx statuses, *NetworkError when the request never completed.
// All are matchable with errors.As.
package adminsdk
