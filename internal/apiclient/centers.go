package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/me/insadmin/internal/fetch"
	"github.com/me/insadmin/internal/paging"
	"github.com/me/insadmin/pkg/model"
)

// ListCenters fetches one server-paged page of centers. Filters in
// q.Params (such as "q") are forwarded verbatim.
func (c *Client) ListCenters(ctx context.Context, token string, q fetch.Query) ([]model.Center, *paging.Metadata, error) {
	body, err := c.get(ctx, token, "centers.list", "/admin/centers", q.Values())
	if err != nil {
		return nil, nil, err
	}
	raw, meta, err := decodeList(body)
	if err != nil {
		return nil, nil, err
	}
	items, err := decodeItems(raw, wireCenter.model)
	if err != nil {
		return nil, nil, err
	}
	return items, meta, nil
}

// CenterFetcher binds ListCenters to a token for use with fetch.Adapter.
func (c *Client) CenterFetcher(token string) fetch.Fetcher[model.Center] {
	return fetch.FetcherFunc[model.Center](func(ctx context.Context, q fetch.Query) ([]model.Center, *paging.Metadata, error) {
		return c.ListCenters(ctx, token, q)
	})
}

// AllCenters returns every center, unpaged. Used for selectors.
func (c *Client) AllCenters(ctx context.Context, token string) ([]model.Center, error) {
	body, err := c.get(ctx, token, "centers.all", "/admin/centers", url.Values{"limit": {"1000"}})
	if err != nil {
		return nil, err
	}
	raw, _, err := decodeList(body)
	if err != nil {
		return nil, err
	}
	return decodeItems(raw, wireCenter.model)
}

// CreateCenter creates a center after local validation.
func (c *Client) CreateCenter(ctx context.Context, token string, in model.CenterInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	_, err := c.send(ctx, token, "centers.create", http.MethodPost, "/admin/centers", in)
	return err
}

// UpdateCenter replaces a center's fields.
func (c *Client) UpdateCenter(ctx context.Context, token, id string, in model.CenterInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	_, err := c.send(ctx, token, "centers.update", http.MethodPut, "/admin/centers/"+escape(id), in)
	return err
}

// DeleteCenter deletes a center.
func (c *Client) DeleteCenter(ctx context.Context, token, id string) error {
	_, err := c.send(ctx, token, "centers.delete", http.MethodDelete, "/admin/centers/"+escape(id), nil)
	return err
}
