package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/me/insadmin/pkg/model"
)

type wirePricing struct {
	Internal     map[string]flexFloat         `json:"internal"`
	Border       map[string]flexFloat         `json:"border"`
	InternalMeta map[string]model.PricingMeta `json:"internalMeta"`
	BorderMeta   map[string]model.PricingMeta `json:"borderMeta"`
	Version      int                          `json:"version"`
	UpdatedAt    flexTime                     `json:"updatedAt"`
}

func (w wirePricing) model() *model.PricingConfig {
	cfg := &model.PricingConfig{
		Internal:     make(map[string]float64, len(w.Internal)),
		Border:       make(map[string]float64, len(w.Border)),
		InternalMeta: make(map[string]model.PricingMeta, len(w.InternalMeta)),
		BorderMeta:   make(map[string]model.PricingMeta, len(w.BorderMeta)),
		Version:      w.Version,
		UpdatedAt:    w.UpdatedAt.ptr(),
	}
	for k, v := range w.Internal {
		cfg.Internal[k] = float64(v)
	}
	for k, v := range w.Border {
		cfg.Border[k] = float64(v)
	}
	for k, v := range w.InternalMeta {
		cfg.InternalMeta[k] = v
	}
	for k, v := range w.BorderMeta {
		cfg.BorderMeta[k] = v
	}
	return cfg
}

// decodePricing finds the configuration under data.data, data or the
// body itself.
func decodePricing(body []byte) (*model.PricingConfig, error) {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode pricing: %w", err)
	}
	raw := json.RawMessage(body)
	for _, k := range []string{"data.data", "data"} {
		if v, ok := lookup(env, k); ok {
			if t := bytes.TrimSpace(v); len(t) > 0 && t[0] == '{' {
				raw = v
				break
			}
		}
	}
	var w wirePricing
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode pricing: %w", err)
	}
	return w.model(), nil
}

// GetPricing returns the saved pricing configuration as the remote holds
// it, without meta defaults applied.
func (c *Client) GetPricing(ctx context.Context, token string) (*model.PricingConfig, error) {
	body, err := c.get(ctx, token, "pricing.get", "/admin/pricing", nil)
	if err != nil {
		return nil, err
	}
	return decodePricing(body)
}

// PutPricing replaces the whole configuration.
func (c *Client) PutPricing(ctx context.Context, token string, cfg *model.PricingConfig) error {
	body := map[string]any{
		"internal":     cfg.Prices(model.ScopeInternal),
		"border":       cfg.Prices(model.ScopeBorder),
		"internalMeta": cfg.MetaFor(model.ScopeInternal),
		"borderMeta":   cfg.MetaFor(model.ScopeBorder),
	}
	_, err := c.send(ctx, token, "pricing.put", http.MethodPut, "/admin/pricing", body)
	return err
}

// ResetPricing restores the remote's default configuration.
func (c *Client) ResetPricing(ctx context.Context, token string) error {
	_, err := c.send(ctx, token, "pricing.reset", http.MethodPost, "/admin/pricing/reset", nil)
	return err
}

// PatchPricingItem saves one row and returns the new config version, or
// 0 when the remote does not echo it.
func (c *Client) PatchPricingItem(ctx context.Context, token string, p model.PricingItemPatch) (version int, err error) {
	body, err := c.send(ctx, token, "pricing.patch", http.MethodPatch, "/admin/pricing/item", p)
	if err != nil {
		return 0, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return 0, nil
	}
	cfg, err := decodePricing(body)
	if err != nil {
		// The row was saved; an unreadable echo only loses the version.
		c.logger.Debug("pricing patch echo not decodable", "error", err)
		return 0, nil
	}
	return cfg.Version, nil
}

// DeletePricingItem deletes one saved row. The reference travels in the
// request body.
func (c *Client) DeletePricingItem(ctx context.Context, token string, ref model.PricingItemRef) error {
	_, err := c.send(ctx, token, "pricing.delete", http.MethodDelete, "/admin/pricing/item", ref)
	return err
}
