package merchant

import (
	"context"
	"fmt"

	"github.com/deliverylivre/storefront/models"
)

// Orders lists the orders placed with the store.
func (s *Service) Orders(ctx context.Context) ([]models.Order, error) {
	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	if err := s.api.GetJSON(ctx, "/orders-store", &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// UpdateOrderStatus requests a status transition for one of the store's
// orders (e.g. processing -> ready_for_pickup).
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID int, status string) error {
	return s.api.PatchJSON(ctx, fmt.Sprintf("/orders-store/%d/status", orderID),
		map[string]string{"status": status}, nil)
}
