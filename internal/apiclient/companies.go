package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/me/insadmin/internal/paging"
	"github.com/me/insadmin/pkg/model"
)

// CompanyPaymentsLimit is the page size of a company's payment list.
const CompanyPaymentsLimit = 50

// ListCompanies returns the insurance companies.
func (c *Client) ListCompanies(ctx context.Context, token string) ([]model.InsuranceCompany, error) {
	body, err := c.get(ctx, token, "companies.list", "/admin/insurance-companies", nil)
	if err != nil {
		return nil, err
	}
	raw, _, err := decodeList(body)
	if err != nil {
		return nil, err
	}
	return decodeItems(raw, wireCompany.model)
}

// CreateCompany creates a company.
func (c *Client) CreateCompany(ctx context.Context, token string, in model.CompanyInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	_, err := c.send(ctx, token, "companies.create", http.MethodPost, "/admin/insurance-companies", in)
	return err
}

// UpdateCompany saves a company's name, share and active flag.
func (c *Client) UpdateCompany(ctx context.Context, token, id string, in model.CompanyInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	_, err := c.send(ctx, token, "companies.update", http.MethodPut, "/admin/insurance-companies/"+escape(id), in)
	return err
}

// DeleteCompany deletes a company.
func (c *Client) DeleteCompany(ctx context.Context, token, id string) error {
	_, err := c.send(ctx, token, "companies.delete", http.MethodDelete, "/admin/insurance-companies/"+escape(id), nil)
	return err
}

// CompanyStats returns per-company contract totals for r and the totals
// of contracts assigned to no company. The rows may arrive under data,
// rows or as the payload itself.
func (c *Client) CompanyStats(ctx context.Context, token string, r model.DateRange) ([]model.CompanyStats, model.Unassigned, error) {
	body, err := c.get(ctx, token, "companies.stats", "/admin/insurance-companies/stats", rangeValues(r))
	if err != nil {
		return nil, model.Unassigned{}, err
	}

	raw, _, err := decodeList(body, "data", "rows", "items", "data.data", "data.rows", "data.items")
	if err != nil {
		return nil, model.Unassigned{}, err
	}
	stats, err := decodeItems(raw, wireCompanyStats.model)
	if err != nil {
		return nil, model.Unassigned{}, err
	}

	var un model.Unassigned
	var env map[string]json.RawMessage
	if json.Unmarshal(body, &env) == nil {
		for _, k := range []string{"data.unassigned", "unassigned"} {
			if rawUn, ok := lookup(env, k); ok {
				var w struct {
					ContractsCount flexFloat `json:"contractsCount"`
					TotalAmount    flexFloat `json:"totalAmount"`
				}
				if err := json.Unmarshal(rawUn, &w); err != nil {
					return nil, model.Unassigned{}, fmt.Errorf("decode unassigned: %w", err)
				}
				un = model.Unassigned{ContractsCount: int(w.ContractsCount), TotalAmount: float64(w.TotalAmount)}
				break
			}
		}
	}
	return stats, un, nil
}

// CompanyRows merges ListCompanies and CompanyStats.
func (c *Client) CompanyRows(ctx context.Context, token string, r model.DateRange) ([]model.CompanyRow, model.Unassigned, error) {
	companies, err := c.ListCompanies(ctx, token)
	if err != nil {
		return nil, model.Unassigned{}, err
	}
	stats, un, err := c.CompanyStats(ctx, token, r)
	if err != nil {
		return nil, model.Unassigned{}, err
	}
	return model.MergeCompanyStats(companies, stats), un, nil
}

// CompanyPayments returns one server-paged page of a company's payments
// plus the company's stats for the range.
func (c *Client) CompanyPayments(ctx context.Context, token, id string, r model.DateRange, page int) ([]model.CompanyPayment, model.CompanyStats, *paging.Metadata, error) {
	q := rangeValues(r)
	q.Set("page", fmt.Sprint(max(1, page)))
	q.Set("limit", fmt.Sprint(CompanyPaymentsLimit))

	body, err := c.get(ctx, token, "companies.payments", "/admin/insurance-companies/"+escape(id)+"/payments", q)
	if err != nil {
		return nil, model.CompanyStats{}, nil, err
	}
	raw, meta, err := decodeList(body, "items", "data.items", "data")
	if err != nil {
		return nil, model.CompanyStats{}, nil, err
	}
	items, err := decodeItems(raw, wireCompanyPayment.model)
	if err != nil {
		return nil, model.CompanyStats{}, nil, err
	}

	var w struct {
		Stats wireCompanyStats `json:"stats"`
	}
	_ = json.Unmarshal(payload(body), &w)
	stats := w.Stats.model()
	stats.CompanyID = id

	if meta != nil && meta.Limit == 0 {
		m := paging.Metadata{Page: meta.Page, Limit: CompanyPaymentsLimit, Total: meta.Total}.Normalize()
		meta = &m
	}
	return items, stats, meta, nil
}

func rangeValues(r model.DateRange) url.Values {
	return FinanceFilter{Range: r}.values()
}
