package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/me/insadmin/pkg/model"
)

// FinanceFilter narrows finance reports. Empty fields are omitted.
type FinanceFilter struct {
	Range    model.DateRange
	CenterID string
}

func (f FinanceFilter) values() url.Values {
	v := url.Values{}
	if f.Range.From != "" {
		v.Set("from", f.Range.From)
	}
	if f.Range.To != "" {
		v.Set("to", f.Range.To)
	}
	if f.CenterID != "" && f.CenterID != "all" {
		v.Set("centerId", f.CenterID)
	}
	return v
}

type wireBreakdownResponse struct {
	Grand *wireTotals `json:"grand"`
}

// FinanceByCenter returns the live per-center totals.
func (c *Client) FinanceByCenter(ctx context.Context, token string, f FinanceFilter) (*model.FinanceBreakdown, error) {
	return c.centerBreakdown(ctx, token, "finance.centers", "/admin/finance/centers", f)
}

// SavedFinanceByCenter returns the last rebuilt per-center totals.
func (c *Client) SavedFinanceByCenter(ctx context.Context, token string, r model.DateRange) (*model.FinanceBreakdown, error) {
	return c.centerBreakdown(ctx, token, "finance.saved", "/admin/finance/centers/saved", FinanceFilter{Range: r})
}

// FinanceBreakdown returns the detailed per-center breakdown with grand
// totals. When the remote omits grand, the rows are summed.
func (c *Client) FinanceBreakdown(ctx context.Context, token string, f FinanceFilter) (*model.FinanceBreakdown, error) {
	return c.centerBreakdown(ctx, token, "finance.breakdown", "/admin/finance/breakdown", f)
}

func (c *Client) centerBreakdown(ctx context.Context, token, op, path string, f FinanceFilter) (*model.FinanceBreakdown, error) {
	body, err := c.get(ctx, token, op, path, f.values())
	if err != nil {
		return nil, err
	}
	raw, _, err := decodeList(body)
	if err != nil {
		return nil, err
	}
	rows, err := decodeItems(raw, wireCenterFinance.model)
	if err != nil {
		return nil, err
	}
	out := &model.FinanceBreakdown{Rows: rows}
	grand, err := decodeGrand(body)
	if err != nil {
		return nil, err
	}
	if grand != nil {
		out.Grand = *grand
	} else {
		out.Grand = model.SumCenterRows(rows)
	}
	return out, nil
}

// FinanceDistribution returns the per-company distribution.
func (c *Client) FinanceDistribution(ctx context.Context, token string, f FinanceFilter) (*model.FinanceDistribution, error) {
	body, err := c.get(ctx, token, "finance.distribution", "/admin/finance/distribution", f.values())
	if err != nil {
		return nil, err
	}
	raw, _, err := decodeList(body)
	if err != nil {
		return nil, err
	}
	rows, err := decodeItems(raw, wireCompanyFinance.model)
	if err != nil {
		return nil, err
	}
	out := &model.FinanceDistribution{Rows: rows}
	grand, err := decodeGrand(body)
	if err != nil {
		return nil, err
	}
	if grand != nil {
		out.Grand = *grand
	} else {
		out.Grand = model.SumCompanyRows(rows)
	}
	return out, nil
}

// RebuildFinance asks the remote to recompute the saved totals for r.
func (c *Client) RebuildFinance(ctx context.Context, token string, r model.DateRange) error {
	if !r.Valid() {
		return model.NewValidationError("Invalid date range", model.FieldError{Field: "from", Message: "from and to must be dates with from <= to"})
	}
	_, err := c.send(ctx, token, "finance.rebuild", http.MethodPost, "/admin/finance/centers/rebuild", r)
	return err
}

func decodeGrand(body []byte) (*model.FinanceTotals, error) {
	var w wireBreakdownResponse
	if err := json.Unmarshal(payload(body), &w); err != nil {
		// Bare-array responses carry no grand totals.
		if isArray(body) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode grand totals: %w", err)
	}
	if w.Grand == nil {
		return nil, nil
	}
	t := w.Grand.model()
	return &t, nil
}
