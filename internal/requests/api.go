// Package requests exposes typed operations over the verification
// intake API and the model they exchange.
package requests

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"verification-client/internal/api"
)

// ListFilter narrows List results. Empty fields are omitted from the
// query string entirely so the server treats them as "no filter" rather
// than "match empty string".
type ListFilter struct {
	Name   string
	Status Status
}

// API wraps the transport client with the request operations.
type API struct {
	client *api.Client
}

// NewAPI constructs the façade over an existing transport client.
func NewAPI(client *api.Client) *API {
	return &API{client: client}
}

// List returns requests matching the filter, newest first.
func (a *API) List(ctx context.Context, filter ListFilter) ([]VerificationRequest, error) {
	query := url.Values{}
	if filter.Name != "" {
		query.Set("name", filter.Name)
	}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	path := "/requests"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var items []VerificationRequest
	if err := a.client.Do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Create submits a new verification request.
func (a *API) Create(ctx context.Context, payload CreatePayload) (*VerificationRequest, error) {
	var created VerificationRequest
	if err := a.client.Do(ctx, http.MethodPost, "/requests", payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Get fetches a single request by id.
func (a *API) Get(ctx context.Context, id string) (*VerificationRequest, error) {
	var got VerificationRequest
	if err := a.client.Do(ctx, http.MethodGet, "/requests/"+url.PathEscape(id), nil, &got); err != nil {
		return nil, err
	}
	return &got, nil
}

type updateStatusPayload struct {
	Status Status `json:"status"`
}

// UpdateStatus moves a request to the given lifecycle state and returns
// the server's updated record.
func (a *API) UpdateStatus(ctx context.Context, id string, status Status) (*VerificationRequest, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	var updated VerificationRequest
	path := "/requests/" + url.PathEscape(id) + "/status"
	if err := a.client.Do(ctx, http.MethodPatch, path, updateStatusPayload{Status: status}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a request. The server answers 204 on success.
func (a *API) Delete(ctx context.Context, id string) error {
	return a.client.Do(ctx, http.MethodDelete, "/requests/"+url.PathEscape(id), nil, nil)
}
