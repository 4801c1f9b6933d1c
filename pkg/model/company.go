package model

import (
	"math"
	"strings"
	"time"
)

// UnknownCompanyName labels stats rows whose company is missing from the list.
const UnknownCompanyName = "(unknown company)"

// InsuranceCompany is a company that receives a share of policy revenue.
type InsuranceCompany struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	SharePercent float64 `json:"sharePercent"`
	IsActive     bool    `json:"isActive"`
}

// CompanyInput creates or updates a company.
type CompanyInput struct {
	Name         string  `json:"name"`
	SharePercent float64 `json:"sharePercent"`
	IsActive     bool    `json:"isActive"`
}

// Validate checks the name and that the share lies in [0, 100].
func (in *CompanyInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	var details []FieldError
	if in.Name == "" {
		details = append(details, FieldError{Field: "name", Message: "required"})
	}
	if math.IsNaN(in.SharePercent) || in.SharePercent < 0 || in.SharePercent > 100 {
		details = append(details, FieldError{Field: "sharePercent", Message: "must be between 0 and 100"})
	}
	if len(details) > 0 {
		return NewValidationError("Invalid company", details...)
	}
	return nil
}

// CompanyStats are a company's contract count and revenue in a date range.
type CompanyStats struct {
	CompanyID      string  `json:"companyId"`
	ContractsCount int     `json:"contractsCount"`
	TotalAmount    float64 `json:"totalAmount"`
}

// Unassigned are contracts not yet attributed to any company.
type Unassigned struct {
	ContractsCount int     `json:"contractsCount"`
	TotalAmount    float64 `json:"totalAmount"`
}

// CompanyRow is a company merged with its stats.
type CompanyRow struct {
	CompanyID      string  `json:"companyId"`
	Name           string  `json:"name"`
	SharePercent   float64 `json:"sharePercent"`
	IsActive       bool    `json:"isActive"`
	ContractsCount int     `json:"contractsCount"`
	TotalAmount    float64 `json:"totalAmount"`
	Known          bool    `json:"known"`
}

// MergeCompanyStats joins companies with their stats rows. Stats for a
// company missing from the list become an inactive row with zero share.
func MergeCompanyStats(companies []InsuranceCompany, stats []CompanyStats) []CompanyRow {
	byID := make(map[string]CompanyStats, len(stats))
	for _, s := range stats {
		if s.CompanyID != "" {
			byID[s.CompanyID] = s
		}
	}

	rows := make([]CompanyRow, 0, len(companies))
	seen := make(map[string]bool, len(companies))
	for _, c := range companies {
		s := byID[c.ID]
		seen[c.ID] = true
		rows = append(rows, CompanyRow{
			CompanyID:      c.ID,
			Name:           c.Name,
			SharePercent:   c.SharePercent,
			IsActive:       c.IsActive,
			ContractsCount: s.ContractsCount,
			TotalAmount:    s.TotalAmount,
			Known:          true,
		})
	}
	for _, s := range stats {
		if s.CompanyID == "" || seen[s.CompanyID] {
			continue
		}
		seen[s.CompanyID] = true
		rows = append(rows, CompanyRow{
			CompanyID:      s.CompanyID,
			Name:           UnknownCompanyName,
			ContractsCount: s.ContractsCount,
			TotalAmount:    s.TotalAmount,
		})
	}
	return rows
}

// TotalActiveShare sums SharePercent over active rows.
func TotalActiveShare(rows []CompanyRow) float64 {
	var total float64
	for _, r := range rows {
		if r.IsActive {
			total += r.SharePercent
		}
	}
	return total
}

// ShareBalanced reports whether the active shares round to 100%.
func ShareBalanced(rows []CompanyRow) bool {
	return math.Round(TotalActiveShare(rows)) == 100
}

// CompanyPayment is one payment attributed to a company.
type CompanyPayment struct {
	ID            string     `json:"id"`
	PolicyNumber  string     `json:"policyNumber,omitempty"`
	ReceiptNumber string     `json:"receiptNumber,omitempty"`
	Amount        float64    `json:"amount"`
	Method        string     `json:"method,omitempty"`
	PaidBy        string     `json:"paidBy,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
}

