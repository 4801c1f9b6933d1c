package ui

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/me/insadmin/internal/pricing"
	"github.com/me/insadmin/pkg/model"
)

// previewRow is one line of a bulk percent preview.
type previewRow struct {
	pricing.Row
	NewValue float64
}

// pricingFilter reads the list filter. Row forms carry it under an "f"
// prefix because their own group and duration fields are item meta.
func pricingFilter(v url.Values, prefix string) pricing.Filter {
	return pricing.Filter{
		Q:        strings.TrimSpace(v.Get(prefix + "q")),
		Group:    v.Get(prefix + "group"),
		Duration: v.Get(prefix + "duration"),
	}
}

// pricingURL links the pricing page for scope and f.
func pricingURL(scope model.PricingScope, f pricing.Filter, key, msg string) string {
	q := url.Values{"scope": {string(scope)}}
	if f.Q != "" {
		q.Set("q", f.Q)
	}
	if f.Group != "" {
		q.Set("group", f.Group)
	}
	if f.Duration != "" {
		q.Set("duration", f.Duration)
	}
	if msg != "" {
		q.Set(key, msg)
	}
	return "/admin/pricing?" + q.Encode()
}

// loadPricing fetches the configuration with the fixed meta applied.
func (ui *UI) loadPricing(r *http.Request) (*model.PricingConfig, error) {
	sess := SessionFromContext(r.Context())
	cfg, err := ui.client.GetPricing(r.Context(), sess.Token)
	if err != nil {
		return nil, err
	}
	return pricing.Normalize(cfg, ui.defaults), nil
}

func (ui *UI) pricingData(r *http.Request, cfg *model.PricingConfig, scope model.PricingScope, f pricing.Filter) map[string]any {
	data := ui.page(r, "Pricing")
	data["Scope"] = string(scope)
	data["Filter"] = f
	data["Config"] = cfg
	data["Rows"] = pricing.Rows(cfg, scope, ui.defaults, f)
	data["Groups"] = pricing.Groups(cfg, scope)
	data["Durations"] = pricing.Durations(cfg, scope)
	return data
}

// HandlePricing renders the pricing table of one scope.
func (ui *UI) HandlePricing(w http.ResponseWriter, r *http.Request) {
	scope := model.ParsePricingScope(r.URL.Query().Get("scope"))
	f := pricingFilter(r.URL.Query(), "")

	cfg, err := ui.loadPricing(r)
	if err != nil {
		ui.remoteError(w, r, "Failed to load pricing", err)
		return
	}
	ui.render(w, "admin/pricing", ui.pricingData(r, cfg, scope, f))
}

// HandlePricingPercent previews or applies a percent change to the rows
// that pass the current filter.
func (ui *UI) HandlePricingPercent(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/pricing?error=Invalid+request", http.StatusSeeOther)
		return
	}
	scope := model.ParsePricingScope(r.FormValue("scope"))
	f := pricingFilter(r.PostForm, "")

	p, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("percent")), 64)
	if err != nil {
		http.Redirect(w, r, pricingURL(scope, f, "error", pricing.ErrInvalidPercent.Error()), http.StatusSeeOther)
		return
	}

	saved, err := ui.loadPricing(r)
	if err != nil {
		ui.remoteError(w, r, "Failed to load pricing", err)
		return
	}
	rows := pricing.Rows(saved, scope, ui.defaults, f)
	draft, err := pricing.ApplyPercent(saved, scope, rows, p)
	if err != nil {
		http.Redirect(w, r, pricingURL(scope, f, "error", err.Error()), http.StatusSeeOther)
		return
	}

	if r.FormValue("action") != "apply" {
		preview := make([]previewRow, len(rows))
		for i, row := range rows {
			preview[i] = previewRow{Row: row, NewValue: draft.Prices(scope)[row.Key]}
		}
		data := ui.pricingData(r, saved, scope, f)
		data["Preview"] = preview
		data["Percent"] = p
		data["Changed"] = len(pricing.DirtyKeys(saved, draft, scope, ui.defaults))
		ui.render(w, "admin/pricing", data)
		return
	}

	if err := ui.client.PutPricing(r.Context(), sess.Token, draft); err != nil {
		if ui.expired(w, r, err) {
			return
		}
		http.Redirect(w, r, pricingURL(scope, f, "error", model.ValidationMessage(err)), http.StatusSeeOther)
		return
	}
	ui.logger.Info("pricing percent applied", "scope", string(scope), "percent", p, "rows", len(rows), "user", sess.Username)
	http.Redirect(w, r, pricingURL(scope, f, "msg", fmt.Sprintf("Applied %g%% to %d rows", p, len(rows))), http.StatusSeeOther)
}

// HandlePricingItem adds or saves one key. Adding over an existing key
// needs the replace box checked.
func (ui *UI) HandlePricingItem(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/pricing?error=Invalid+request", http.StatusSeeOther)
		return
	}
	scope := model.ParsePricingScope(r.FormValue("scope"))
	f := pricingFilter(r.PostForm, "f")
	key := strings.TrimSpace(r.FormValue("key"))

	value, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("value")), 64)
	if err != nil {
		http.Redirect(w, r, pricingURL(scope, f, "error", pricing.ErrInvalidValue.Error()), http.StatusSeeOther)
		return
	}
	meta := model.PricingMeta{
		Label:    strings.TrimSpace(r.FormValue("label")),
		Group:    strings.TrimSpace(r.FormValue("group")),
		Duration: strings.TrimSpace(r.FormValue("duration")),
	}

	saved, err := ui.loadPricing(r)
	if err != nil {
		ui.remoteError(w, r, "Failed to load pricing", err)
		return
	}
	draft, existed, err := pricing.SetItem(saved, scope, key, value, meta, ui.defaults)
	if err != nil {
		http.Redirect(w, r, pricingURL(scope, f, "error", err.Error()), http.StatusSeeOther)
		return
	}
	if existed && r.FormValue("mode") == "add" && r.FormValue("replace") == "" {
		http.Redirect(w, r, pricingURL(scope, f, "error", "Key "+key+" already exists; check replace to overwrite it"), http.StatusSeeOther)
		return
	}
	if existed && !pricing.IsDirty(saved, draft, scope, key, ui.defaults) {
		http.Redirect(w, r, pricingURL(scope, f, "msg", "No changes to "+key), http.StatusSeeOther)
		return
	}

	version, err := ui.client.PatchPricingItem(r.Context(), sess.Token, pricing.Patch(draft, scope, key, ui.defaults))
	if err != nil {
		if ui.expired(w, r, err) {
			return
		}
		http.Redirect(w, r, pricingURL(scope, f, "error", model.ValidationMessage(err)), http.StatusSeeOther)
		return
	}
	ui.logger.Info("pricing item saved", "scope", string(scope), "key", key, "version", version)
	http.Redirect(w, r, pricingURL(scope, f, "msg", "Saved "+key), http.StatusSeeOther)
}

// HandlePricingItemDelete removes one key.
func (ui *UI) HandlePricingItemDelete(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/pricing?error=Invalid+request", http.StatusSeeOther)
		return
	}
	scope := model.ParsePricingScope(r.FormValue("scope"))
	f := pricingFilter(r.PostForm, "f")
	key := strings.TrimSpace(r.FormValue("key"))
	if key == "" {
		http.Redirect(w, r, pricingURL(scope, f, "error", pricing.ErrEmptyKey.Error()), http.StatusSeeOther)
		return
	}

	err := ui.client.DeletePricingItem(r.Context(), sess.Token, model.PricingItemRef{Scope: scope, Key: key})
	if err != nil {
		if ui.expired(w, r, err) {
			return
		}
		http.Redirect(w, r, pricingURL(scope, f, "error", model.ValidationMessage(err)), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, pricingURL(scope, f, "msg", "Deleted "+key), http.StatusSeeOther)
}

// HandlePricingReset restores the remote's default tariffs.
func (ui *UI) HandlePricingReset(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	err := ui.client.ResetPricing(r.Context(), sess.Token)
	if err == nil {
		ui.logger.Info("pricing reset", "user", sess.Username)
	}
	ui.backTo(w, r, "/admin/pricing", "Pricing reset to defaults", err)
}
