package web

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/scimplatform/console/internal/console/session"
	"github.com/scimplatform/console/internal/console/store"
	"github.com/scimplatform/console/pkg/adminsdk"
	"github.com/scimplatform/console/pkg/httpx"
	"github.com/scimplatform/console/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	templates    map[string]*template.Template

	store    store.Store
	Sessions *session.Manager
	SDK      *adminsdk.SDKClient
}

func NewRouter(
	buildVersion string,
	st store.Store,
	sessions *session.Manager,
	sdk *adminsdk.SDKClient,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		templates:    parseTemplates(),
		store:        st,
		Sessions:     sessions,
		SDK:          sdk,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (rt *Router) ApplyRoutes() {
	rt.registerAuth()
	rt.registerClients()
	rt.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (rt *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(rt.Mux, rt.middlewares...).ServeHTTP(w, req)
}

func (rt *Router) registerAuth() {
	// GET /login - lenient rate limit (just renders a form)
	rt.Mux.Handle("GET /login",
		httpx.Chain(http.HandlerFunc(rt.handleLoginForm),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /login - strict rate limit by IP (credential attempts)
	rt.Mux.Handle("POST /login",
		httpx.Chain(http.HandlerFunc(rt.handleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
			rt.RequireCSRF,
		),
	)

	rt.Mux.Handle("POST /logout",
		httpx.Chain(http.HandlerFunc(rt.handleLogout),
			rt.RequireSession,
			rt.RequireCSRF,
		),
	)

	rt.Mux.Handle("GET /{$}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/clients", http.StatusSeeOther)
	}))
}

func (rt *Router) registerClients() {
	// Every client view requires a resolvable session; RequireSession
	// redirects to /login otherwise.
	secure := func(h http.HandlerFunc) http.Handler {
		return httpx.Chain(h, rt.RequireSession)
	}
	securePost := func(h http.HandlerFunc) http.Handler {
		return httpx.Chain(h, rt.RequireSession, rt.RequireCSRF)
	}

	rt.Mux.Handle("GET /clients", secure(rt.handleClientsList))
	rt.Mux.Handle("GET /clients/new", secure(rt.handleClientNew))
	rt.Mux.Handle("POST /clients", securePost(rt.handleClientCreate))
	rt.Mux.Handle("GET /clients/{id}/edit", secure(rt.handleClientEdit))
	rt.Mux.Handle("POST /clients/{id}", securePost(rt.handleClientUpdate))
	rt.Mux.Handle("GET /clients/{id}/delete", secure(rt.handleClientDeleteConfirm))
	rt.Mux.Handle("POST /clients/{id}/delete", securePost(rt.handleClientDelete))
}

func (rt *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may
	// poll frequently)
	rt.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(rt.startTime, rt.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	rt.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(rt.startTime, rt.buildVersion, rt.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
