package adminsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// clientsPath is the client-registration collection under the admin base path.
const clientsPath = "/admin/clients"

// ClientsService provides typed operations over the client-registration
// collection. All operations require a bearer token and propagate the fetch
// layer's errors unchanged; there is no retry or backoff.
type ClientsService struct {
	c *SDKClient
}

// List returns a page of registered clients.
func (s *ClientsService) List(ctx context.Context, token string, page, size int) ([]Client, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	path := fmt.Sprintf("%s?page=%d&size=%d", clientsPath, page, size)

	var clients []Client
	if err := s.c.doJSON(ctx, http.MethodGet, path, token, nil, &clients, http.StatusOK); err != nil {
		return nil, err
	}
	return clients, nil
}

// Get returns a single client by its server-assigned id.
func (s *ClientsService) Get(ctx context.Context, token, id string) (*Client, error) {
	var client Client
	if err := s.c.doJSON(ctx, http.MethodGet, clientsPath+"/"+url.PathEscape(id), token, nil, &client, http.StatusOK); err != nil {
		return nil, err
	}
	return &client, nil
}

// Create registers a new client. The payload excludes server-assigned
// fields; the response carries them.
func (s *ClientsService) Create(ctx context.Context, token string, payload CreateClientPayload) (*Client, error) {
	var client Client
	if err := s.c.doJSON(ctx, http.MethodPost, clientsPath, token, payload, &client, http.StatusCreated); err != nil {
		return nil, err
	}
	return &client, nil
}

// Update applies the payload onto an existing client by server id.
func (s *ClientsService) Update(ctx context.Context, token, id string, payload CreateClientPayload) (*Client, error) {
	var client Client
	if err := s.c.doJSON(ctx, http.MethodPut, clientsPath+"/"+url.PathEscape(id), token, payload, &client, http.StatusOK); err != nil {
		return nil, err
	}
	return &client, nil
}

// Delete removes a client by server id. The response has no body.
func (s *ClientsService) Delete(ctx context.Context, token, id string) error {
	return s.c.doJSON(ctx, http.MethodDelete, clientsPath+"/"+url.PathEscape(id), token, nil, nil, http.StatusNoContent)
}
