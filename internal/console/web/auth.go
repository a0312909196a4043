package web

import (
	"errors"
	"net/http"

	"github.com/scimplatform/console/internal/console/session"
	"github.com/scimplatform/console/pkg/slogx"
)

// loginView is the data handed to the login template.
type loginView struct {
	Title string
	Flash *Flash
	CSRF  string
	Email string
	Error string
}

// handleLoginForm renders the sign-in form. Operators who already hold a
// usable session are sent straight to the client list.
func (rt *Router) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if _, err := rt.resolveSession(r); err == nil {
		http.Redirect(w, r, "/clients", http.StatusSeeOther)
		return
	}

	rt.render(w, r, http.StatusOK, "login.html", loginView{
		Title: "Sign in",
		Flash: popFlash(w, r),
		CSRF:  rt.csrfToken(w, r),
	})
}

// handleLogin exchanges the submitted credentials for a backend token and
// opens a session. Bad credentials re-render the form with a notice rather
// than redirecting, so the typed email survives.
func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	sess, err := rt.Sessions.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			rt.render(w, r, http.StatusUnauthorized, "login.html", loginView{
				Title: "Sign in",
				CSRF:  rt.csrfToken(w, r),
				Email: email,
				Error: "Invalid credentials.",
			})
			return
		}

		slogx.FromContext(r.Context()).Error("login failed", "error", err)
		rt.render(w, r, http.StatusBadGateway, "login.html", loginView{
			Title: "Sign in",
			CSRF:  rt.csrfToken(w, r),
			Email: email,
			Error: "Sign-in is unavailable right now. Please try again.",
		})
		return
	}

	setSessionCookie(w, sess.ID)
	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}

// handleLogout closes the current session and returns to the login view.
func (rt *Router) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	if err := rt.Sessions.Logout(r.Context(), sess.ID); err != nil {
		slogx.FromContext(r.Context()).Error("logout failed", "error", err)
	}

	clearSessionCookie(w)
	flashSuccess(w, "Signed out.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
