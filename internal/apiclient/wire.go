package apiclient

import (
	"github.com/me/insadmin/pkg/model"
)

// Wire shapes of the remote API. Each is converted to a fixed model type
// right after decoding; nothing outside this package sees them.

type wireCenter struct {
	MongoID   oid      `json:"_id"`
	ID        oid      `json:"id"`
	Name      string   `json:"name"`
	Code      string   `json:"code"`
	IP        string   `json:"ip"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	Province  string   `json:"province"`
	CreatedAt flexTime `json:"createdAt"`
}

func (w wireCenter) model() model.Center {
	return model.Center{
		ID:        firstNonEmpty(string(w.MongoID), string(w.ID)),
		Name:      w.Name,
		Code:      w.Code,
		IP:        w.IP,
		Address:   w.Address,
		City:      w.City,
		Province:  firstNonEmpty(w.Province, w.City),
		CreatedAt: w.CreatedAt.ptr(),
	}
}

type wireUser struct {
	MongoID     oid      `json:"_id"`
	ID          oid      `json:"id"`
	Username    string   `json:"username"`
	FullName    string   `json:"fullName"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	EmployeeID  string   `json:"employeeId"`
	Center      ref      `json:"center"`
	CenterID    ref      `json:"centerId"`
	CenterName  string   `json:"centerName"`
	LastLoginIP string   `json:"lastLoginIp"`
	LastLoginAt flexTime `json:"lastLoginAt"`
	IsActive    *bool    `json:"isActive"`
	IsOnline    bool     `json:"isOnline"`
	LastSeenAt  flexTime `json:"lastSeenAt"`
	CreatedAt   flexTime `json:"createdAt"`
}

func (w wireUser) model() model.User {
	return model.User{
		ID:          firstNonEmpty(string(w.MongoID), string(w.ID)),
		Username:    w.Username,
		FullName:    w.FullName,
		Email:       w.Email,
		Role:        model.ParseRole(w.Role),
		EmployeeID:  w.EmployeeID,
		CenterID:    firstNonEmpty(w.Center.ID, w.CenterID.ID),
		CenterName:  firstNonEmpty(w.Center.Name, w.CenterID.Name, w.CenterName),
		LastLoginIP: w.LastLoginIP,
		LastLoginAt: w.LastLoginAt.ptr(),
		IsActive:    w.IsActive == nil || *w.IsActive,
		IsOnline:    w.IsOnline,
		LastSeenAt:  w.LastSeenAt.ptr(),
		CreatedAt:   w.CreatedAt.ptr(),
	}
}

type wirePayment struct {
	MongoID          oid            `json:"_id"`
	ID               oid            `json:"id"`
	VehicleID        ref            `json:"vehicleId"`
	VehicleModel     string         `json:"vehicleModel"`
	PolicyNumber     string         `json:"policyNumber"`
	ReceiptNumber    *string        `json:"receiptNumber"`
	Reference        string         `json:"reference"`
	PaidBy           string         `json:"paidBy"`
	PayerPhone       string         `json:"payerPhone"`
	Phone            string         `json:"phone"`
	Amount           *flexFloat     `json:"amount"`
	Total            *flexFloat     `json:"total"`
	Breakdown        *wireBreakdown `json:"breakdown"`
	PaymentStatus    *string        `json:"paymentStatus"`
	Status           string         `json:"status"`
	PaymentMethod    *string        `json:"paymentMethod"`
	Method           string         `json:"method"`
	Center           ref            `json:"center"`
	InsuranceCompany ref            `json:"insuranceCompany"`
	PolicyStartAt    flexTime       `json:"policyStartAt"`
	PolicyEndAt      flexTime       `json:"policyEndAt"`
	PaymentDate      flexTime       `json:"paymentDate"`
	CreatedAt        flexTime       `json:"createdAt"`
}

type wireBreakdown struct {
	Total *flexFloat `json:"total"`
}

func (w wirePayment) model() model.Payment {
	var breakdownTotal *flexFloat
	if w.Breakdown != nil {
		breakdownTotal = w.Breakdown.Total
	}
	return model.Payment{
		ID:            firstNonEmpty(string(w.MongoID), string(w.ID)),
		VehicleID:     w.VehicleID.ID,
		VehicleModel:  w.VehicleModel,
		PolicyNumber:  w.PolicyNumber,
		ReceiptNumber: coalesce(w.ReceiptNumber, w.Reference),
		PaidBy:        w.PaidBy,
		Phone:         firstNonEmpty(w.PayerPhone, w.Phone),
		Amount:        firstFloat(w.Amount, w.Total, breakdownTotal),
		Status:        coalesce(w.PaymentStatus, w.Status),
		Method:        coalesce(w.PaymentMethod, w.Method),
		CenterName:    firstNonEmpty(w.Center.Name, w.Center.ID),
		CompanyName:   firstNonEmpty(w.InsuranceCompany.Name, w.InsuranceCompany.ID),
		PolicyStartAt: w.PolicyStartAt.ptr(),
		PolicyEndAt:   w.PolicyEndAt.ptr(),
		PaymentDate:   w.PaymentDate.ptr(),
		CreatedAt:     w.CreatedAt.ptr(),
	}
}

// coalesce mirrors a nullish fallback: a present value wins even if empty.
func coalesce(primary *string, fallback string) string {
	if primary != nil {
		return *primary
	}
	return fallback
}

type wireVehicle struct {
	MongoID      oid      `json:"_id"`
	ID           oid      `json:"id"`
	VehicleType  string   `json:"vehicleType"`
	PlateNumber  string   `json:"plateNumber"`
	OwnerName    string   `json:"ownerName"`
	NationalID   string   `json:"nationalId"`
	Model        string   `json:"model"`
	VehicleModel string   `json:"vehicleModel"`
	Phone        string   `json:"phone"`
	CreatedAt    flexTime `json:"createdAt"`
}

func (w wireVehicle) model(kind model.VehicleKind) model.Vehicle {
	if w.VehicleType != "" {
		kind = model.ParseVehicleKind(w.VehicleType)
	}
	return model.Vehicle{
		ID:          firstNonEmpty(string(w.MongoID), string(w.ID)),
		Kind:        kind,
		PlateNumber: w.PlateNumber,
		OwnerName:   w.OwnerName,
		NationalID:  w.NationalID,
		Model:       firstNonEmpty(w.Model, w.VehicleModel),
		Phone:       w.Phone,
		CreatedAt:   w.CreatedAt.ptr(),
	}
}

type wireCompany struct {
	MongoID      oid       `json:"_id"`
	ID           oid       `json:"id"`
	Name         string    `json:"name"`
	SharePercent flexFloat `json:"sharePercent"`
	IsActive     *bool     `json:"isActive"`
}

func (w wireCompany) model() model.InsuranceCompany {
	return model.InsuranceCompany{
		ID:           firstNonEmpty(string(w.MongoID), string(w.ID)),
		Name:         w.Name,
		SharePercent: float64(w.SharePercent),
		IsActive:     w.IsActive == nil || *w.IsActive,
	}
}

type wireCompanyStats struct {
	CompanyID      oid       `json:"companyId"`
	MongoID        oid       `json:"_id"`
	ID             oid       `json:"id"`
	ContractsCount flexFloat `json:"contractsCount"`
	TotalAmount    flexFloat `json:"totalAmount"`
}

func (w wireCompanyStats) model() model.CompanyStats {
	return model.CompanyStats{
		CompanyID:      firstNonEmpty(string(w.CompanyID), string(w.MongoID), string(w.ID)),
		ContractsCount: int(w.ContractsCount),
		TotalAmount:    float64(w.TotalAmount),
	}
}

type wireCompanyPayment struct {
	MongoID       oid       `json:"_id"`
	ID            oid       `json:"id"`
	ReceiptNumber string    `json:"receiptNumber"`
	PolicyNumber  string    `json:"policyNumber"`
	Amount        flexFloat `json:"amount"`
	PaymentMethod string    `json:"paymentMethod"`
	PaidBy        string    `json:"paidBy"`
	PayerPhone    string    `json:"payerPhone"`
	PaidAt        flexTime  `json:"paidAt"`
	CreatedAt     flexTime  `json:"createdAt"`
}

func (w wireCompanyPayment) model() model.CompanyPayment {
	paid := w.PaidAt.ptr()
	if paid == nil {
		paid = w.CreatedAt.ptr()
	}
	return model.CompanyPayment{
		ID:            firstNonEmpty(string(w.MongoID), string(w.ID)),
		PolicyNumber:  w.PolicyNumber,
		ReceiptNumber: w.ReceiptNumber,
		Amount:        float64(w.Amount),
		Method:        w.PaymentMethod,
		PaidBy:        w.PaidBy,
		Phone:         w.PayerPhone,
		PaidAt:        paid,
	}
}

// wireTotals carries the finance columns. Grand totals use grandTotal and
// grandCount where rows use totalAmount and paymentsCount.
type wireTotals struct {
	TotalAmount       *flexFloat `json:"totalAmount"`
	GrandTotal        *flexFloat `json:"grandTotal"`
	PaymentsCount     *flexFloat `json:"paymentsCount"`
	GrandCount        *flexFloat `json:"grandCount"`
	MartyrTotal       flexFloat  `json:"martyrTotal"`
	WarTotal          flexFloat  `json:"warTotal"`
	StampTotal        flexFloat  `json:"stampTotal"`
	AgesTotal         flexFloat  `json:"agesTotal"`
	LocalTotal        flexFloat  `json:"localTotal"`
	ProposedTotal     flexFloat  `json:"proposedTotal"`
	StateShareTotal   flexFloat  `json:"stateShareTotal"`
	FederationTotal   flexFloat  `json:"federationTotal"`
	CompanyShareTotal flexFloat  `json:"companyShareTotal"`
}

func (w wireTotals) model() model.FinanceTotals {
	return model.FinanceTotals{
		TotalAmount:       firstFloat(w.TotalAmount, w.GrandTotal),
		PaymentsCount:     int(firstFloat(w.PaymentsCount, w.GrandCount)),
		MartyrTotal:       float64(w.MartyrTotal),
		WarTotal:          float64(w.WarTotal),
		StampTotal:        float64(w.StampTotal),
		AgesTotal:         float64(w.AgesTotal),
		LocalTotal:        float64(w.LocalTotal),
		ProposedTotal:     float64(w.ProposedTotal),
		StateShareTotal:   float64(w.StateShareTotal),
		FederationTotal:   float64(w.FederationTotal),
		CompanyShareTotal: float64(w.CompanyShareTotal),
	}
}

type wireCenterFinance struct {
	CenterID   ref    `json:"centerId"`
	CenterName string `json:"centerName"`
	CenterCode string `json:"centerCode"`
	CenterIP   string `json:"centerIp"`
	Province   string `json:"province"`
	wireTotals
}

func (w wireCenterFinance) model() model.CenterFinanceRow {
	return model.CenterFinanceRow{
		CenterID:      w.CenterID.ID,
		CenterName:    firstNonEmpty(w.CenterName, w.CenterID.Name),
		CenterCode:    w.CenterCode,
		CenterIP:      w.CenterIP,
		Province:      w.Province,
		FinanceTotals: w.wireTotals.model(),
	}
}

type wireCompanyFinance struct {
	CompanyID   ref    `json:"insuranceCompanyId"`
	CompanyName string `json:"insuranceCompanyName"`
	wireTotals
}

func (w wireCompanyFinance) model() model.CompanyFinanceRow {
	return model.CompanyFinanceRow{
		CompanyID:     w.CompanyID.ID,
		CompanyName:   firstNonEmpty(w.CompanyName, w.CompanyID.Name, model.UnknownCompanyName),
		FinanceTotals: w.wireTotals.model(),
	}
}

type wireAssistant struct {
	MongoID     oid      `json:"_id"`
	ID          oid      `json:"id"`
	Username    string   `json:"username"`
	FullName    string   `json:"fullName"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
	IsActive    *bool    `json:"isActive"`
	CreatedAt   flexTime `json:"createdAt"`
}

func (w wireAssistant) model() model.AssistantAdmin {
	return model.AssistantAdmin{
		ID:          firstNonEmpty(string(w.MongoID), string(w.ID)),
		Username:    w.Username,
		FullName:    w.FullName,
		Email:       w.Email,
		Permissions: model.ParsePermissions(w.Permissions).List(),
		IsActive:    w.IsActive == nil || *w.IsActive,
		CreatedAt:   w.CreatedAt.ptr(),
	}
}
