package ui

import (
	"net/http"
	"time"

	"github.com/me/insadmin/internal/apiclient"
	"github.com/me/insadmin/internal/cache"
	"github.com/me/insadmin/internal/paging"
	"github.com/me/insadmin/pkg/model"
)

const (
	paymentDefaultSize = 50
	recordDefaultSize  = 50
)

// payments returns the cached payment list, newest first.
func (ui *UI) payments(r *http.Request) ([]model.Payment, error) {
	sess := SessionFromContext(r.Context())
	return cache.GetOrLoad(ui.cache, sess.Token, "payments", func() ([]model.Payment, error) {
		return ui.client.ListPayments(r.Context(), sess.Token)
	})
}

// HandlePayments renders the client-paged payment list for admins and for
// assistants holding view_payments.
func (ui *UI) HandlePayments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	data := ui.page(r, "Payments")
	data["Query"] = q

	all, err := ui.payments(r)
	if err != nil {
		if ui.expired(w, r, err) {
			return
		}
		data["Error"] = "Failed to load payments: " + model.ValidationMessage(err)
		data["Pager"] = ui.emptyPager(r, paymentDefaultSize, paging.PaymentSizes)
		ui.render(w, "payments", data)
		return
	}

	matched := paging.Filter(all, func(p model.Payment) bool { return p.Matches(q) })
	visible, pager := clientPage(ui, r, matched, paymentDefaultSize, paging.PaymentSizes)
	data["Payments"] = visible
	data["Pager"] = pager
	data["MatchedTotal"] = sumAmounts(matched)
	ui.render(w, "payments", data)
}

func sumAmounts(ps []model.Payment) float64 {
	var total float64
	for _, p := range ps {
		total += p.Amount
	}
	return total
}

// todayRevenue sums the payments made since local midnight.
func todayRevenue(ps []model.Payment, now time.Time) (float64, int) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var total float64
	n := 0
	for _, p := range ps {
		if !p.When().Before(midnight) {
			total += p.Amount
			n++
		}
	}
	return total, n
}

// HandleRecords renders the vehicle register of one kind, each row joined
// with its newest payment.
func (ui *UI) HandleRecords(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	kind := model.ParseVehicleKind(r.URL.Query().Get("tab"))
	q := r.URL.Query().Get("q")

	data := ui.page(r, "Records")
	data["Query"] = q
	data["Tab"] = string(kind)

	vehicles, err := cache.GetOrLoad(ui.cache, sess.Token, "vehicles."+string(kind), func() ([]model.Vehicle, error) {
		return ui.client.ListVehicles(r.Context(), sess.Token, kind)
	})
	if err != nil {
		if ui.expired(w, r, err) {
			return
		}
		data["Error"] = "Failed to load vehicles: " + model.ValidationMessage(err)
		data["Pager"] = ui.emptyPager(r, recordDefaultSize, paging.DefaultSizes)
		ui.render(w, "admin/records", data)
		return
	}

	payments, err := ui.payments(r)
	if err != nil {
		if ui.expired(w, r, err) {
			return
		}
		data["Warning"] = "Latest payments are unavailable: " + model.ValidationMessage(err)
	}

	matched := paging.Filter(vehicles, func(v model.Vehicle) bool { return v.Matches(q) })
	visible, pager := clientPage(ui, r, matched, recordDefaultSize, paging.DefaultSizes)
	data["Vehicles"] = apiclient.AttachLatestPayments(visible, payments)
	data["Pager"] = pager
	ui.render(w, "admin/records", data)
}
