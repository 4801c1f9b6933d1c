package ui

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/me/insadmin/internal/apiclient"
	"github.com/me/insadmin/internal/paging"
	"github.com/me/insadmin/pkg/model"
)

// HandleCompanies renders the companies merged with their stats.
func (ui *UI) HandleCompanies(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	rng := dateRange(r)

	data := ui.page(r, "Insurance companies")
	data["Range"] = rng

	rows, unassigned, err := ui.client.CompanyRows(r.Context(), sess.Token, rng)
	if err != nil {
		if ui.expired(w, r, err) {
			return
		}
		data["Error"] = "Failed to load companies: " + model.ValidationMessage(err)
	}
	share := model.TotalActiveShare(rows)
	data["Rows"] = rows
	data["Unassigned"] = unassigned
	data["TotalShare"] = share
	data["ShareWarning"] = len(rows) > 0 && math.Round(share) != 100
	ui.render(w, "admin/companies", data)
}

func companyInput(r *http.Request) (model.CompanyInput, error) {
	in := model.CompanyInput{
		Name:     r.FormValue("name"),
		IsActive: r.FormValue("isActive") != "",
	}
	share := strings.TrimSpace(r.FormValue("sharePercent"))
	if share == "" {
		return in, nil
	}
	v, err := strconv.ParseFloat(share, 64)
	if err != nil {
		return in, model.NewValidationError("Invalid company", model.FieldError{Field: "sharePercent", Message: "must be a number"})
	}
	in.SharePercent = v
	return in, nil
}

// HandleCompanyCreate creates a company.
func (ui *UI) HandleCompanyCreate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, "/admin/companies", "error", "Invalid request")
		return
	}
	in, err := companyInput(r)
	if err == nil {
		err = ui.client.CreateCompany(r.Context(), sess.Token, in)
	}
	ui.backTo(w, r, "/admin/companies", "Company created", err)
}

// HandleCompanyUpdate updates a company.
func (ui *UI) HandleCompanyUpdate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, "/admin/companies", "error", "Invalid request")
		return
	}
	in, err := companyInput(r)
	if err == nil {
		err = ui.client.UpdateCompany(r.Context(), sess.Token, ui.pathParam(r, "id"), in)
	}
	ui.backTo(w, r, "/admin/companies", "Company updated", err)
}

// HandleCompanyDelete deletes a company.
func (ui *UI) HandleCompanyDelete(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	err := ui.client.DeleteCompany(r.Context(), sess.Token, ui.pathParam(r, "id"))
	ui.backTo(w, r, "/admin/companies", "Company deleted", err)
}

// HandleCompanyPayments renders one company's server-paged payments.
func (ui *UI) HandleCompanyPayments(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id := ui.pathParam(r, "id")
	rng := dateRange(r)
	req := paging.FromQuery(r.URL.Query(), apiclient.CompanyPaymentsLimit, nil)

	data := ui.page(r, "Company payments")
	data["CompanyID"] = id
	data["CompanyName"] = id
	data["Range"] = rng

	items, stats, meta, err := ui.client.CompanyPayments(r.Context(), sess.Token, id, rng, req.Page)
	if err != nil {
		if ui.expired(w, r, err) {
			return
		}
		data["Error"] = "Failed to load payments: " + model.ValidationMessage(err)
		data["Pager"] = ui.emptyPager(r, apiclient.CompanyPaymentsLimit, nil)
		ui.render(w, "admin/company_payments", data)
		return
	}

	m := paging.Synthesize(len(items))
	if meta != nil {
		m = meta.Normalize()
	}
	data["Payments"] = items
	data["Stats"] = stats
	data["Pager"] = ui.newPager(r, m.Window(apiclient.CompanyPaymentsLimit), apiclient.CompanyPaymentsLimit, nil)

	// The company name comes from the list; a missing company keeps the id.
	if companies, err := ui.client.ListCompanies(r.Context(), sess.Token); err == nil {
		for _, c := range companies {
			if c.ID == id {
				data["CompanyName"] = c.Name
				break
			}
		}
	}
	ui.render(w, "admin/company_payments", data)
}
