package ui

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/me/insadmin/internal/cache"
	"github.com/me/insadmin/internal/fetch"
	"github.com/me/insadmin/internal/paging"
	"github.com/me/insadmin/pkg/model"
)

const centerDefaultSize = 20

// HandleCenters renders the server-paged center list. The search box
// reloads it through htmx after a short pause in typing.
func (ui *UI) HandleCenters(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	req := paging.FromQuery(r.URL.Query(), centerDefaultSize, paging.CenterSizes)
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	params := url.Values{}
	if q != "" {
		params.Set("q", q)
	}

	adapter := fetch.NewAdapter("centers", ui.client.CenterFetcher(sess.Token), ui.logger)
	res, err := adapter.Fetch(r.Context(), params, req.Page, req.PageSize)
	if err != nil && ui.expired(w, r, err) {
		return
	}

	data := ui.page(r, "Centers")
	data["Query"] = q
	data["Limit"] = paging.SizeLabel(req.PageSize)
	data["Centers"] = res.Items
	switch {
	case err != nil && len(res.Items) > 0:
		// Show-all stopped early: keep what arrived and warn.
		data["Warning"] = "Only part of the list could be loaded: " + err.Error()
		data["Pager"] = ui.newPager(r, res.Meta.Window(req.PageSize), req.PageSize, paging.CenterSizes)
	case err != nil:
		data["Error"] = "Failed to load centers: " + model.ValidationMessage(err)
		data["Pager"] = ui.emptyPager(r, req.PageSize, paging.CenterSizes)
	default:
		data["Pager"] = ui.newPager(r, res.Meta.Window(req.PageSize), req.PageSize, paging.CenterSizes)
	}
	ui.render(w, "admin/centers", data)
}

func centerInput(r *http.Request) model.CenterInput {
	return model.CenterInput{
		Name:    r.FormValue("name"),
		Code:    r.FormValue("code"),
		IP:      r.FormValue("ip"),
		Address: r.FormValue("address"),
		City:    r.FormValue("city"),
	}
}

// HandleCenterCreate creates a center.
func (ui *UI) HandleCenterCreate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, "/admin/centers", "error", "Invalid request")
		return
	}
	err := ui.client.CreateCenter(r.Context(), sess.Token, centerInput(r))
	if err == nil {
		ui.cache.Invalidate(sess.Token, "centers")
	}
	ui.backTo(w, r, "/admin/centers", "Center created", err)
}

// HandleCenterUpdate updates a center.
func (ui *UI) HandleCenterUpdate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, "/admin/centers", "error", "Invalid request")
		return
	}
	err := ui.client.UpdateCenter(r.Context(), sess.Token, ui.pathParam(r, "id"), centerInput(r))
	if err == nil {
		ui.cache.Invalidate(sess.Token, "centers")
	}
	ui.backTo(w, r, "/admin/centers", "Center updated", err)
}

// HandleCenterDelete deletes a center.
func (ui *UI) HandleCenterDelete(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	err := ui.client.DeleteCenter(r.Context(), sess.Token, ui.pathParam(r, "id"))
	if err == nil {
		ui.cache.Invalidate(sess.Token, "centers")
	}
	ui.backTo(w, r, "/admin/centers", "Center deleted", err)
}

// allCenters returns the cached center list used by selectors.
func (ui *UI) allCenters(r *http.Request) ([]model.Center, error) {
	sess := SessionFromContext(r.Context())
	return cache.GetOrLoad(ui.cache, sess.Token, "centers.all", func() ([]model.Center, error) {
		return ui.client.AllCenters(r.Context(), sess.Token)
	})
}
