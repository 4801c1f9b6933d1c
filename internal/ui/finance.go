package ui

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/me/insadmin/internal/apiclient"
	"github.com/me/insadmin/pkg/model"
)

// Finance report sources selectable on the breakdown page.
const (
	sourceLive      = "live"
	sourceSaved     = "saved"
	sourceBreakdown = "breakdown"
)

func financeFilter(r *http.Request) apiclient.FinanceFilter {
	return apiclient.FinanceFilter{
		Range:    dateRange(r),
		CenterID: strings.TrimSpace(r.URL.Query().Get("centerId")),
	}
}

// HandleFinance renders the per-center totals with grand totals. Admins
// can also rebuild the saved totals from here.
func (ui *UI) HandleFinance(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	f := financeFilter(r)
	source := r.URL.Query().Get("source")

	var (
		report *model.FinanceBreakdown
		err    error
	)
	switch source {
	case sourceLive:
		report, err = ui.client.FinanceByCenter(r.Context(), sess.Token, f)
	case sourceSaved:
		report, err = ui.client.SavedFinanceByCenter(r.Context(), sess.Token, f.Range)
	default:
		source = sourceBreakdown
		report, err = ui.client.FinanceBreakdown(r.Context(), sess.Token, f)
	}

	data := ui.page(r, "Finance")
	data["Filter"] = f
	data["Source"] = source
	if err != nil {
		if ui.expired(w, r, err) {
			return
		}
		data["Error"] = "Failed to load finance report: " + model.ValidationMessage(err)
		report = &model.FinanceBreakdown{}
	}
	data["Report"] = report

	if centers, err := ui.allCenters(r); err == nil {
		data["Centers"] = centers
	}
	ui.render(w, "finance", data)
}

// HandleFinanceRebuild recomputes the saved totals for a date range.
func (ui *UI) HandleFinanceRebuild(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, "/admin/finance", "error", "Invalid request")
		return
	}
	rng := model.DateRange{From: strings.TrimSpace(r.FormValue("from")), To: strings.TrimSpace(r.FormValue("to"))}
	err := ui.client.RebuildFinance(r.Context(), sess.Token, rng)
	if err != nil {
		ui.backTo(w, r, "/admin/finance", "", err)
		return
	}
	ui.logger.Info("finance totals rebuilt", "from", rng.From, "to", rng.To, "user", sess.Username)
	q := url.Values{"msg": {"Saved totals rebuilt"}, "source": {sourceSaved}}
	if rng.From != "" {
		q.Set("from", rng.From)
	}
	if rng.To != "" {
		q.Set("to", rng.To)
	}
	http.Redirect(w, r, "/admin/finance?"+q.Encode(), http.StatusSeeOther)
}

// HandleFinanceDistribution renders the per-company distribution.
func (ui *UI) HandleFinanceDistribution(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	f := financeFilter(r)

	data := ui.page(r, "Distribution")
	data["Filter"] = f
	report, err := ui.client.FinanceDistribution(r.Context(), sess.Token, f)
	if err != nil {
		if ui.expired(w, r, err) {
			return
		}
		data["Error"] = "Failed to load distribution: " + model.ValidationMessage(err)
		report = &model.FinanceDistribution{}
	}
	data["Report"] = report
	if centers, err := ui.allCenters(r); err == nil {
		data["Centers"] = centers
	}
	ui.render(w, "admin/distribution", data)
}
