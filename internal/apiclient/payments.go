package apiclient

import (
	"context"
	"net/url"

	"github.com/me/insadmin/pkg/model"
)

// ListPayments returns every payment with center and company populated,
// newest first. The collection is client-paged.
func (c *Client) ListPayments(ctx context.Context, token string) ([]model.Payment, error) {
	body, err := c.get(ctx, token, "payments.list", "/payments", url.Values{"populate": {"1"}})
	if err != nil {
		return nil, err
	}
	raw, _, err := decodeList(body)
	if err != nil {
		return nil, err
	}
	items, err := decodeItems(raw, wirePayment.model)
	if err != nil {
		return nil, err
	}
	model.SortPaymentsNewestFirst(items)
	return items, nil
}

// ListVehicles returns the registered vehicles of one kind.
func (c *Client) ListVehicles(ctx context.Context, token string, kind model.VehicleKind) ([]model.Vehicle, error) {
	body, err := c.get(ctx, token, "vehicles.list", "/vehicles", url.Values{"vehicleType": {string(kind)}})
	if err != nil {
		return nil, err
	}
	raw, _, err := decodeList(body)
	if err != nil {
		return nil, err
	}
	return decodeItems(raw, func(w wireVehicle) model.Vehicle { return w.model(kind) })
}

// AttachLatestPayments sets LatestPayment on each vehicle from payments.
// It returns a new slice; vehicles is not modified.
func AttachLatestPayments(vehicles []model.Vehicle, payments []model.Payment) []model.Vehicle {
	latest := model.LatestByVehicle(payments)
	out := make([]model.Vehicle, len(vehicles))
	for i, v := range vehicles {
		if p, ok := latest[v.ID]; ok {
			v.LatestPayment = &p
		}
		out[i] = v
	}
	return out
}
