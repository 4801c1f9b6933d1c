package model

import "time"

// PricingScope selects one of the two tariff tables.
type PricingScope string

const (
	ScopeInternal PricingScope = "internal"
	ScopeBorder   PricingScope = "border"
)

// ParsePricingScope returns the scope for s, defaulting to ScopeInternal.
func ParsePricingScope(s string) PricingScope {
	if PricingScope(s) == ScopeBorder {
		return ScopeBorder
	}
	return ScopeInternal
}

// PricingMeta describes a pricing key for display and filtering.
type PricingMeta struct {
	Label    string `json:"label,omitempty" yaml:"label"`
	Group    string `json:"group,omitempty" yaml:"group"`
	Duration string `json:"duration,omitempty" yaml:"duration"`
}

// PricingConfig is the tariff configuration stored by the remote API.
type PricingConfig struct {
	Internal     map[string]float64     `json:"internal"`
	Border       map[string]float64     `json:"border"`
	InternalMeta map[string]PricingMeta `json:"internalMeta"`
	BorderMeta   map[string]PricingMeta `json:"borderMeta"`
	Version      int                    `json:"version,omitempty"`
	UpdatedAt    *time.Time             `json:"updatedAt,omitempty"`
}

// Prices returns the value map for scope, allocating it if needed.
func (c *PricingConfig) Prices(scope PricingScope) map[string]float64 {
	if scope == ScopeBorder {
		if c.Border == nil {
			c.Border = map[string]float64{}
		}
		return c.Border
	}
	if c.Internal == nil {
		c.Internal = map[string]float64{}
	}
	return c.Internal
}

// MetaFor returns the metadata map for scope, allocating it if needed.
func (c *PricingConfig) MetaFor(scope PricingScope) map[string]PricingMeta {
	if scope == ScopeBorder {
		if c.BorderMeta == nil {
			c.BorderMeta = map[string]PricingMeta{}
		}
		return c.BorderMeta
	}
	if c.InternalMeta == nil {
		c.InternalMeta = map[string]PricingMeta{}
	}
	return c.InternalMeta
}

// Clone returns a deep copy.
func (c *PricingConfig) Clone() *PricingConfig {
	out := &PricingConfig{Version: c.Version, UpdatedAt: c.UpdatedAt}
	out.Internal = cloneMap(c.Internal)
	out.Border = cloneMap(c.Border)
	out.InternalMeta = cloneMap(c.InternalMeta)
	out.BorderMeta = cloneMap(c.BorderMeta)
	return out
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// PricingItemPatch updates a single key of one scope.
type PricingItemPatch struct {
	Scope PricingScope `json:"scope"`
	Key   string       `json:"key"`
	Value float64      `json:"value"`
	Meta  PricingMeta  `json:"meta"`
}

// PricingItemRef identifies a key to delete.
type PricingItemRef struct {
	Scope PricingScope `json:"scope"`
	Key   string       `json:"key"`
}
