package ui

import (
	"net/http"
	"strings"
	"time"

	"github.com/me/insadmin/internal/fetch"
	"github.com/me/insadmin/pkg/model"
)

// Tile is one dashboard entry.
type Tile struct {
	Title string
	Href  string
	Value string
	Note  string
}

// HandleAdminDashboard renders the admin landing page. Each count loads
// independently so one failing collection does not blank the page.
func (ui *UI) HandleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	data := ui.page(r, "Dashboard")
	var failures []string

	centers := "-"
	_, meta, err := ui.client.ListCenters(r.Context(), sess.Token, fetch.Query{Page: 1, Limit: 1})
	switch {
	case err != nil:
		if ui.expired(w, r, err) {
			return
		}
		failures = append(failures, "centers")
	case meta != nil:
		centers = formatCount(meta.Total)
	default:
		// No metadata: count the unpaged list instead.
		if all, err := ui.allCenters(r); err == nil {
			centers = formatCount(len(all))
		}
	}

	employees := "-"
	if users, err := ui.users(r); err == nil {
		n := 0
		for _, u := range users {
			if u.Role == model.RoleEmployee {
				n++
			}
		}
		employees = formatCount(n)
	} else {
		if ui.expired(w, r, err) {
			return
		}
		failures = append(failures, "employees")
	}

	payments, revenue, todayCount := "-", "-", ""
	if ps, err := ui.payments(r); err == nil {
		payments = formatCount(len(ps))
		amount, n := todayRevenue(ps, time.Now())
		revenue = formatMoney(amount)
		todayCount = formatCount(n) + " payments today"
	} else {
		if ui.expired(w, r, err) {
			return
		}
		failures = append(failures, "payments")
	}

	data["Tiles"] = []Tile{
		{Title: "Centers", Href: "/admin/centers", Value: centers},
		{Title: "Employees", Href: "/admin/employees", Value: employees},
		{Title: "Payments", Href: "/admin/payments", Value: payments},
		{Title: "Today's revenue", Href: "/admin/finance", Value: revenue, Note: todayCount},
	}
	if len(failures) > 0 {
		data["Warning"] = "Some figures could not be loaded: " + strings.Join(failures, ", ")
	}
	data["Uptime"] = time.Since(ui.startTime).Round(time.Second).String()
	ui.render(w, "admin/dashboard", data)
}

// HandleAssistantDashboard shows the tiles the assistant's permissions
// allow.
func (ui *UI) HandleAssistantDashboard(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	var tiles []Tile
	if sess.Can(model.PermViewPayments) {
		tiles = append(tiles, Tile{Title: "Payments", Href: "/assistant/payments", Note: "Browse and search payments"})
	}
	if sess.Can(model.PermViewFinance) {
		tiles = append(tiles, Tile{Title: "Finance", Href: "/assistant/finance", Note: "Per-center totals"})
	}
	if sess.Can(model.PermExportReports) {
		tiles = append(tiles, Tile{Title: "Reports", Href: "/assistant/reports", Note: "Download PDF, Excel or CSV"})
	}
	data := ui.page(r, "Assistant")
	data["Tiles"] = tiles
	ui.render(w, "assistant/dashboard", data)
}
