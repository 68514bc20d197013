package orders

import (
	"context"
	"fmt"

	"github.com/deliverylivre/storefront/apiclient"
	"github.com/deliverylivre/storefront/models"
)

// Service lists the customer's orders and requests status transitions. The
// backend owns the status machine; the client only asks and displays.
type Service struct {
	api *apiclient.Client
	Pix *PixManager
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api, Pix: NewPixManager(api)}
}

// List fetches the customer's orders.
func (s *Service) List(ctx context.Context) ([]models.Order, error) {
	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	if err := s.api.GetJSON(ctx, "/orders", &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// UpdateStatus requests a status transition for one of the customer's
// orders. It does not touch local PIX state; the next List reflects the
// backend's decision.
func (s *Service) UpdateStatus(ctx context.Context, orderID int, status string) error {
	return s.api.PutJSON(ctx, fmt.Sprintf("/orders-client/%d/status", orderID),
		map[string]string{"status": status}, nil)
}

// ConfirmPixPaid reports that the customer already paid via PIX.
func (s *Service) ConfirmPixPaid(ctx context.Context, orderID int) error {
	return s.UpdateStatus(ctx, orderID, models.OrderAwaitingConfirmation)
}

// ConfirmPickup confirms a pay-on-pickup order.
func (s *Service) ConfirmPickup(ctx context.Context, orderID int) error {
	return s.UpdateStatus(ctx, orderID, models.OrderPendingPayment)
}

// StatusLabel maps a backend status to its pt-BR display label.
func StatusLabel(status string) string {
	switch status {
	case models.OrderPending:
		return "pendente"
	case models.OrderProcessing:
		return "em processamento"
	case models.OrderCompleted:
		return "concluído"
	case models.OrderCanceled:
		return "cancelado"
	case models.OrderReadyForPickup:
		return "pronto para retirada"
	case models.OrderAwaitingConfirmation:
		return "aguardando confirmação do pagamento (PIX)"
	case models.OrderPendingPayment:
		return "aguardando pagamento na retirada"
	default:
		return status
	}
}
