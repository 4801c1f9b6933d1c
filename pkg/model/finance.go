package model

// FinanceTotals are the fee columns shared by every finance report.
type FinanceTotals struct {
	TotalAmount       float64 `json:"totalAmount"`
	PaymentsCount     int     `json:"paymentsCount"`
	MartyrTotal       float64 `json:"martyrTotal"`
	WarTotal          float64 `json:"warTotal"`
	StampTotal        float64 `json:"stampTotal"`
	AgesTotal         float64 `json:"agesTotal"`
	LocalTotal        float64 `json:"localTotal"`
	ProposedTotal     float64 `json:"proposedTotal"`
	StateShareTotal   float64 `json:"stateShareTotal"`
	FederationTotal   float64 `json:"federationTotal"`
	CompanyShareTotal float64 `json:"companyShareTotal"`
}

// Add accumulates o into t.
func (t *FinanceTotals) Add(o FinanceTotals) {
	t.TotalAmount += o.TotalAmount
	t.PaymentsCount += o.PaymentsCount
	t.MartyrTotal += o.MartyrTotal
	t.WarTotal += o.WarTotal
	t.StampTotal += o.StampTotal
	t.AgesTotal += o.AgesTotal
	t.LocalTotal += o.LocalTotal
	t.ProposedTotal += o.ProposedTotal
	t.StateShareTotal += o.StateShareTotal
	t.FederationTotal += o.FederationTotal
	t.CompanyShareTotal += o.CompanyShareTotal
}

// CenterFinanceRow is one center's totals in the breakdown report.
type CenterFinanceRow struct {
	CenterID   string `json:"centerId"`
	CenterName string `json:"centerName"`
	CenterCode string `json:"centerCode,omitempty"`
	CenterIP   string `json:"centerIp,omitempty"`
	Province   string `json:"province,omitempty"`
	FinanceTotals
}

// CompanyFinanceRow is one insurance company's totals in the distribution report.
type CompanyFinanceRow struct {
	CompanyID   string `json:"insuranceCompanyId"`
	CompanyName string `json:"insuranceCompanyName"`
	FinanceTotals
}

// FinanceBreakdown is the per-center report with grand totals.
type FinanceBreakdown struct {
	Rows  []CenterFinanceRow `json:"rows"`
	Grand FinanceTotals      `json:"grand"`
}

// FinanceDistribution is the per-company report with grand totals.
type FinanceDistribution struct {
	Rows  []CompanyFinanceRow `json:"rows"`
	Grand FinanceTotals       `json:"grand"`
}

// SumCenterRows totals a breakdown's rows, for when the server omits grand.
func SumCenterRows(rows []CenterFinanceRow) FinanceTotals {
	var t FinanceTotals
	for _, r := range rows {
		t.Add(r.FinanceTotals)
	}
	return t
}

// SumCompanyRows totals a distribution's rows.
func SumCompanyRows(rows []CompanyFinanceRow) FinanceTotals {
	var t FinanceTotals
	for _, r := range rows {
		t.Add(r.FinanceTotals)
	}
	return t
}
