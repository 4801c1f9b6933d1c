// Package pricing turns the remote tariff configuration into editable
// table rows: meta defaults, filtering, bulk percent changes and dirty-row
// detection for per-item saves.
package pricing

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/me/insadmin/pkg/model"
	"gopkg.in/yaml.v3"
)

//go:embed meta_defaults.yaml
var defaultsYAML []byte

// FilterAll is the filter value that disables a group or duration filter.
const FilterAll = "all"

var (
	ErrInvalidPercent = errors.New("percent must be a non-zero number")
	ErrEmptyKey       = errors.New("key is required")
	ErrInvalidValue   = errors.New("value must be a finite number")
)

// Defaults is the fixed metadata per scope.
type Defaults struct {
	Internal map[string]model.PricingMeta `yaml:"internal"`
	Border   map[string]model.PricingMeta `yaml:"border"`
}

// For returns the defaults of scope.
func (d Defaults) For(scope model.PricingScope) map[string]model.PricingMeta {
	if scope == model.ScopeBorder {
		return d.Border
	}
	return d.Internal
}

// IsFixed reports whether key has fixed metadata in scope.
func (d Defaults) IsFixed(scope model.PricingScope, key string) bool {
	_, ok := d.For(scope)[key]
	return ok
}

// ParseDefaults decodes a defaults document.
func ParseDefaults(data []byte) (Defaults, error) {
	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Defaults{}, fmt.Errorf("parse pricing defaults: %w", err)
	}
	if d.Internal == nil {
		d.Internal = map[string]model.PricingMeta{}
	}
	if d.Border == nil {
		d.Border = map[string]model.PricingMeta{}
	}
	return d, nil
}

var builtin = sync.OnceValue(func() Defaults {
	d, err := ParseDefaults(defaultsYAML)
	if err != nil {
		panic(err)
	}
	return d
})

// BuiltinDefaults returns the embedded defaults.
func BuiltinDefaults() Defaults {
	return builtin()
}

// Normalize returns a copy of cfg with the defaults written over the
// remote meta of the same keys.
func Normalize(cfg *model.PricingConfig, d Defaults) *model.PricingConfig {
	out := cfg.Clone()
	for _, scope := range []model.PricingScope{model.ScopeInternal, model.ScopeBorder} {
		meta := out.MetaFor(scope)
		for k, m := range d.For(scope) {
			meta[k] = m
		}
	}
	return out
}

// Row is one line of the pricing table.
type Row struct {
	Key      string
	Value    float64
	Label    string
	Group    string
	Duration string
	Fixed    bool
}

// Filter narrows the rows. Q matches key, label, group or duration
// case-insensitively; Group and Duration match exactly unless empty or
// FilterAll.
type Filter struct {
	Q        string
	Group    string
	Duration string
}

// Active reports whether any filter narrows the rows.
func (f Filter) Active() bool {
	return strings.TrimSpace(f.Q) != "" || !isAll(f.Group) || !isAll(f.Duration)
}

func isAll(v string) bool {
	return v == "" || v == FilterAll
}

func (f Filter) match(r Row) bool {
	if !isAll(f.Group) && r.Group != f.Group {
		return false
	}
	if !isAll(f.Duration) && r.Duration != f.Duration {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Q))
	if q == "" {
		return true
	}
	for _, s := range []string{r.Key, r.Label, r.Group, r.Duration} {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

// Rows lists the priced keys of scope that pass f, sorted by key.
func Rows(cfg *model.PricingConfig, scope model.PricingScope, d Defaults, f Filter) []Row {
	prices := cfg.Prices(scope)
	meta := cfg.MetaFor(scope)
	rows := make([]Row, 0, len(prices))
	for k, v := range prices {
		m := meta[k]
		r := Row{Key: k, Value: v, Label: m.Label, Group: m.Group, Duration: m.Duration, Fixed: d.IsFixed(scope, k)}
		if f.match(r) {
			rows = append(rows, r)
		}
	}
	slices.SortFunc(rows, func(a, b Row) int { return strings.Compare(a.Key, b.Key) })
	return rows
}

// Groups returns the distinct non-empty groups of scope, sorted.
func Groups(cfg *model.PricingConfig, scope model.PricingScope) []string {
	return distinct(cfg.MetaFor(scope), func(m model.PricingMeta) string { return m.Group })
}

// Durations returns the distinct non-empty durations of scope, sorted.
func Durations(cfg *model.PricingConfig, scope model.PricingScope) []string {
	return distinct(cfg.MetaFor(scope), func(m model.PricingMeta) string { return m.Duration })
}

func distinct(meta map[string]model.PricingMeta, field func(model.PricingMeta) string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range meta {
		if v := field(m); v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}

// ApplyPercent returns a copy of cfg with every row's value of scope
// scaled by (1 + p/100), rounded half up and floored at zero. Keys not in
// rows are untouched.
func ApplyPercent(cfg *model.PricingConfig, scope model.PricingScope, rows []Row, p float64) (*model.PricingConfig, error) {
	if p == 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return nil, ErrInvalidPercent
	}
	out := cfg.Clone()
	prices := out.Prices(scope)
	factor := 1 + p/100
	for _, r := range rows {
		prices[r.Key] = math.Max(0, math.Floor(prices[r.Key]*factor+0.5))
	}
	return out, nil
}

// IsDirty reports whether key in draft differs from saved. Metadata only
// counts for keys without fixed defaults.
func IsDirty(saved, draft *model.PricingConfig, scope model.PricingScope, key string, d Defaults) bool {
	if saved.Prices(scope)[key] != draft.Prices(scope)[key] {
		return true
	}
	if d.IsFixed(scope, key) {
		return false
	}
	return saved.MetaFor(scope)[key] != draft.MetaFor(scope)[key]
}

// DirtyKeys lists the dirty keys of scope, sorted.
func DirtyKeys(saved, draft *model.PricingConfig, scope model.PricingScope, d Defaults) []string {
	var out []string
	for k := range draft.Prices(scope) {
		if _, ok := saved.Prices(scope)[k]; !ok || IsDirty(saved, draft, scope, k, d) {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// Patch builds the single-item save for key. Fixed keys always send their
// default metadata.
func Patch(cfg *model.PricingConfig, scope model.PricingScope, key string, d Defaults) model.PricingItemPatch {
	meta := cfg.MetaFor(scope)[key]
	if fixed, ok := d.For(scope)[key]; ok {
		meta = fixed
	}
	return model.PricingItemPatch{Scope: scope, Key: key, Value: cfg.Prices(scope)[key], Meta: meta}
}

// SetItem adds or replaces key in a copy of cfg. It reports whether the
// key already existed so callers can ask before replacing. Fixed keys
// ignore the given meta.
func SetItem(cfg *model.PricingConfig, scope model.PricingScope, key string, value float64, meta model.PricingMeta, d Defaults) (out *model.PricingConfig, existed bool, err error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, false, ErrInvalidValue
	}
	out = cfg.Clone()
	_, existed = out.Prices(scope)[key]
	out.Prices(scope)[key] = value
	if fixed, ok := d.For(scope)[key]; ok {
		meta = fixed
	}
	out.MetaFor(scope)[key] = meta
	return out, existed, nil
}

// RemoveItem deletes key from a copy of cfg.
func RemoveItem(cfg *model.PricingConfig, scope model.PricingScope, key string) *model.PricingConfig {
	out := cfg.Clone()
	delete(out.Prices(scope), key)
	delete(out.MetaFor(scope), key)
	return out
}
