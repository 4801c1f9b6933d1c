package model

import (
	"sort"
	"strings"
	"time"
)

// VehicleKind selects the vehicle register.
type VehicleKind string

const (
	VehicleSyrian  VehicleKind = "syrian"
	VehicleForeign VehicleKind = "foreign"
)

// ParseVehicleKind returns the kind for s, defaulting to VehicleSyrian.
func ParseVehicleKind(s string) VehicleKind {
	if strings.EqualFold(strings.TrimSpace(s), string(VehicleForeign)) {
		return VehicleForeign
	}
	return VehicleSyrian
}

// Payment is an insurance policy payment.
type Payment struct {
	ID            string     `json:"id"`
	VehicleID     string     `json:"vehicleId,omitempty"`
	VehicleModel  string     `json:"vehicleModel,omitempty"`
	PolicyNumber  string     `json:"policyNumber,omitempty"`
	ReceiptNumber string     `json:"receiptNumber,omitempty"`
	PaidBy        string     `json:"paidBy,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Amount        float64    `json:"amount"`
	Status        string     `json:"status,omitempty"`
	Method        string     `json:"method,omitempty"`
	CenterName    string     `json:"centerName,omitempty"`
	CompanyName   string     `json:"companyName,omitempty"`
	PolicyStartAt *time.Time `json:"policyStartAt,omitempty"`
	PolicyEndAt   *time.Time `json:"policyEndAt,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	PaymentDate   *time.Time `json:"paymentDate,omitempty"`
}

// When returns the creation time, falling back to the payment date.
func (p *Payment) When() time.Time {
	if p.CreatedAt != nil {
		return *p.CreatedAt
	}
	if p.PaymentDate != nil {
		return *p.PaymentDate
	}
	return time.Time{}
}

// Matches reports whether q (case-insensitive) appears in the receipt,
// policy, payer or phone fields. An empty q matches everything.
func (p *Payment) Matches(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, f := range []string{p.ReceiptNumber, p.PolicyNumber, p.PaidBy, p.Phone} {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// SortPaymentsNewestFirst orders payments by When, newest first.
func SortPaymentsNewestFirst(ps []Payment) {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].When().After(ps[j].When())
	})
}

// LatestByVehicle maps each vehicle id to its newest payment.
func LatestByVehicle(ps []Payment) map[string]Payment {
	out := make(map[string]Payment)
	for _, p := range ps {
		if p.VehicleID == "" {
			continue
		}
		if cur, ok := out[p.VehicleID]; !ok || p.When().After(cur.When()) {
			out[p.VehicleID] = p
		}
	}
	return out
}

// Vehicle is a registered vehicle.
type Vehicle struct {
	ID            string      `json:"id"`
	Kind          VehicleKind `json:"kind"`
	PlateNumber   string      `json:"plateNumber,omitempty"`
	OwnerName     string      `json:"ownerName,omitempty"`
	NationalID    string      `json:"nationalId,omitempty"`
	Model         string      `json:"model,omitempty"`
	Phone         string      `json:"phone,omitempty"`
	CreatedAt     *time.Time  `json:"createdAt,omitempty"`
	LatestPayment *Payment    `json:"latestPayment,omitempty"`
}

// Matches reports whether q appears in the plate, owner or national id.
func (v *Vehicle) Matches(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, f := range []string{v.PlateNumber, v.OwnerName, v.NationalID} {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
