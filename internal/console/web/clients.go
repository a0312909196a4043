package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/scimplatform/console/internal/console/domain"
	"github.com/scimplatform/console/pkg/adminsdk"
	"github.com/scimplatform/console/pkg/slogx"
)

// clientsListView is the data handed to the client list template.
type clientsListView struct {
	Title    string
	Flash    *Flash
	CSRF     string
	Query    string
	Clients  []adminsdk.Client
	Total    int
	LoadErr  string
	Filtered bool
}

// clientFormView is the data handed to the create/edit form template.
type clientFormView struct {
	Title      string
	Flash      *Flash
	CSRF       string
	Editing    bool
	EditID     string
	Form       domain.ClientForm
	ErrorField string
	Error      string
}

// clientDeleteView is the data handed to the delete confirmation template.
type clientDeleteView struct {
	Title  string
	Flash  *Flash
	CSRF   string
	Client adminsdk.Client
}

// handleClientsList renders the client registry. The search box filters the
// already-fetched page in memory; it never re-queries the backend.
func (rt *Router) handleClientsList(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	page := queryInt(r, "page", 1)
	size := queryInt(r, "size", 10)
	query := r.URL.Query().Get("q")

	view := clientsListView{
		Title: "Clients",
		Flash: popFlash(w, r),
		CSRF:  rt.csrfToken(w, r),
		Query: query,
	}

	clients, err := rt.SDK.Clients().List(r.Context(), sess.Token, page, size)
	if err != nil {
		if isAuthLost(err) {
			rt.authLost(w, r, sess)
			return
		}

		slogx.FromContext(r.Context()).Error("client list failed", "error", err)
		view.LoadErr = "Could not load clients from the provisioning service."
		rt.render(w, r, http.StatusOK, "clients_list.html", view)
		return
	}

	view.Total = len(clients)
	view.Clients = domain.FilterClients(clients, query)
	view.Filtered = query != ""
	rt.render(w, r, http.StatusOK, "clients_list.html", view)
}

// handleClientNew renders the create form with generated defaults.
func (rt *Router) handleClientNew(w http.ResponseWriter, r *http.Request) {
	rt.render(w, r, http.StatusOK, "client_form.html", clientFormView{
		Title: "New client",
		Flash: popFlash(w, r),
		CSRF:  rt.csrfToken(w, r),
		Form:  domain.NewClientForm(),
	})
}

// handleClientCreate validates the submitted form and registers the client.
// Validation failures re-render the form with everything the operator typed
// and make no backend call.
func (rt *Router) handleClientCreate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	form, err := parseClientForm(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	payload, err := form.Payload()
	if err != nil {
		rt.renderFormError(w, r, clientFormView{Title: "New client", CSRF: rt.csrfToken(w, r), Form: form}, err)
		return
	}

	if _, err := rt.SDK.Clients().Create(r.Context(), sess.Token, payload); err != nil {
		if isAuthLost(err) {
			rt.authLost(w, r, sess)
			return
		}

		slogx.FromContext(r.Context()).Error("client create failed", "error", err)
		rt.render(w, r, http.StatusBadGateway, "client_form.html", clientFormView{
			Title: "New client",
			CSRF:  rt.csrfToken(w, r),
			Form:  form,
			Error: "The provisioning service rejected the request. Please try again.",
		})
		return
	}

	flashSuccess(w, "Client "+payload.ClientID+" created.")
	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}

// handleClientEdit renders the edit form prefilled from the server record.
func (rt *Router) handleClientEdit(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id := r.PathValue("id")

	client, err := rt.SDK.Clients().Get(r.Context(), sess.Token, id)
	if err != nil {
		rt.clientLoadFailed(w, r, sess, err)
		return
	}

	rt.render(w, r, http.StatusOK, "client_form.html", clientFormView{
		Title:   "Edit client",
		Flash:   popFlash(w, r),
		CSRF:    rt.csrfToken(w, r),
		Editing: true,
		EditID:  client.ID,
		Form:    domain.FormFromClient(*client),
	})
}

// handleClientUpdate applies the edit form. The client_id is immutable, so
// the stored record's value is used regardless of what the form carries.
func (rt *Router) handleClientUpdate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id := r.PathValue("id")

	form, err := parseClientForm(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	client, err := rt.SDK.Clients().Get(r.Context(), sess.Token, id)
	if err != nil {
		rt.clientLoadFailed(w, r, sess, err)
		return
	}
	form.ClientID = client.ClientID

	payload, err := form.Payload()
	if err != nil {
		rt.renderFormError(w, r, clientFormView{
			Title:   "Edit client",
			CSRF:    rt.csrfToken(w, r),
			Editing: true,
			EditID:  client.ID,
			Form:    form,
		}, err)
		return
	}

	if _, err := rt.SDK.Clients().Update(r.Context(), sess.Token, id, payload); err != nil {
		if isAuthLost(err) {
			rt.authLost(w, r, sess)
			return
		}

		slogx.FromContext(r.Context()).Error("client update failed", "id", id, "error", err)
		rt.render(w, r, http.StatusBadGateway, "client_form.html", clientFormView{
			Title:   "Edit client",
			CSRF:    rt.csrfToken(w, r),
			Editing: true,
			EditID:  client.ID,
			Form:    form,
			Error:   "The provisioning service rejected the request. Please try again.",
		})
		return
	}

	flashSuccess(w, "Client "+payload.ClientID+" updated.")
	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}

// handleClientDeleteConfirm renders the delete confirmation page. The
// actual DELETE only ever happens from the confirmation's POST.
func (rt *Router) handleClientDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id := r.PathValue("id")

	client, err := rt.SDK.Clients().Get(r.Context(), sess.Token, id)
	if err != nil {
		rt.clientLoadFailed(w, r, sess, err)
		return
	}

	rt.render(w, r, http.StatusOK, "client_delete.html", clientDeleteView{
		Title:  "Delete client",
		Flash:  popFlash(w, r),
		CSRF:   rt.csrfToken(w, r),
		Client: *client,
	})
}

// handleClientDelete removes the client after confirmation.
func (rt *Router) handleClientDelete(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id := r.PathValue("id")

	if err := rt.SDK.Clients().Delete(r.Context(), sess.Token, id); err != nil {
		if isAuthLost(err) {
			rt.authLost(w, r, sess)
			return
		}

		slogx.FromContext(r.Context()).Error("client delete failed", "id", id, "error", err)
		flashError(w, "Could not delete the client. Please try again.")
		http.Redirect(w, r, "/clients", http.StatusSeeOther)
		return
	}

	flashSuccess(w, "Client deleted.")
	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}

// clientLoadFailed handles a failed single-client fetch shared by the edit
// and delete views.
func (rt *Router) clientLoadFailed(w http.ResponseWriter, r *http.Request, sess domain.Session, err error) {
	if isAuthLost(err) {
		rt.authLost(w, r, sess)
		return
	}

	slogx.FromContext(r.Context()).Error("client fetch failed", "error", err)
	flashError(w, "Could not load the client.")
	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}

// renderFormError re-renders the form with an inline validation notice.
func (rt *Router) renderFormError(w http.ResponseWriter, r *http.Request, view clientFormView, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		view.ErrorField = verr.Field
		view.Error = verr.Message
	} else {
		view.Error = err.Error()
	}
	rt.render(w, r, http.StatusUnprocessableEntity, "client_form.html", view)
}

// parseClientForm reads the client form fields from the request body.
func parseClientForm(r *http.Request) (domain.ClientForm, error) {
	if err := r.ParseForm(); err != nil {
		return domain.ClientForm{}, err
	}

	return domain.ClientForm{
		ClientID:     r.PostFormValue("client_id"),
		ClientName:   r.PostFormValue("client_name"),
		ClientSecret: r.PostFormValue("client_secret"),
		GrantTypes:   r.PostFormValue("grant_types"),
		RedirectURIs: r.PostFormValue("redirect_uris"),
		Scopes:       r.PostFormValue("scopes"),
		TTL:          r.PostFormValue("access_token_ttl"),
	}, nil
}

// queryInt reads a positive integer query parameter, falling back to def.
func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}
