package web

import (
	"crypto/subtle"
	"net/http"

	"github.com/scimplatform/console/pkg/cryptox"
)

// csrfCookie holds the double-submit CSRF token. Every form carries the
// same value in a hidden csrf_token field; a POST whose field and cookie
// disagree is rejected.
const csrfCookie = "console_csrf"

// csrfToken returns the request's CSRF token, minting and setting one when
// the browser has none yet.
func (rt *Router) csrfToken(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(csrfCookie); err == nil && c.Value != "" {
		return c.Value
	}

	token := cryptox.MustGenerateToken(cryptox.TokenSize256)
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

// RequireCSRF rejects form posts whose csrf_token field does not match the
// CSRF cookie.
func (rt *Router) RequireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(csrfCookie)
		if err != nil || c.Value == "" {
			http.Error(w, "invalid csrf token", http.StatusForbidden)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		field := r.PostFormValue("csrf_token")
		if subtle.ConstantTimeCompare([]byte(c.Value), []byte(field)) != 1 {
			http.Error(w, "invalid csrf token", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
