package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/scimplatform/console/internal/console/domain"
	"github.com/scimplatform/console/internal/console/session"
	"github.com/scimplatform/console/pkg/adminsdk"
	"github.com/scimplatform/console/pkg/idx"
)

// sessionCookie names the browser cookie carrying the session id. The token
// itself never leaves the server.
const sessionCookie = "console_session"

type sessionCtxKey struct{}

// SessionFromContext returns the resolved session for the current request.
// Calling it from a handler that is not behind RequireSession is a
// programming error and panics.
func SessionFromContext(ctx context.Context) domain.Session {
	sess, ok := ctx.Value(sessionCtxKey{}).(domain.Session)
	if !ok {
		panic("web: SessionFromContext called outside RequireSession")
	}
	return sess
}

// RequireSession resolves the session cookie and injects the session into
// the request context. Requests without a usable session are redirected to
// the login view.
func (rt *Router) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := rt.resolveSession(r)
		if err != nil {
			clearSessionCookie(w)
			flashError(w, "Please sign in to continue.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), sessionCtxKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolveSession loads the session named by the request's cookie.
func (rt *Router) resolveSession(r *http.Request) (domain.Session, error) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return domain.Session{}, session.ErrNoSession
	}

	id, err := idx.Parse(c.Value)
	if err != nil {
		return domain.Session{}, session.ErrNoSession
	}

	return rt.Sessions.Resolve(r.Context(), id)
}

// authLost handles a backend 401 mid-request: the stored session is
// discarded and the operator is sent back to the login view with a notice.
func (rt *Router) authLost(w http.ResponseWriter, r *http.Request, sess domain.Session) {
	rt.Sessions.Invalidate(r.Context(), sess.ID)
	clearSessionCookie(w)
	flashError(w, "Session expired. Please sign in again.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// isAuthLost reports whether err is the backend rejecting our token.
func isAuthLost(err error) bool {
	var authErr *adminsdk.AuthError
	return errors.As(err, &authErr)
}

func setSessionCookie(w http.ResponseWriter, id idx.ID) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
