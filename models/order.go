package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses driven entirely by backend transitions.
const (
	OrderPending              = "pending"
	OrderProcessing           = "processing"
	OrderCompleted            = "completed"
	OrderCanceled             = "canceled"
	OrderReadyForPickup       = "ready_for_pickup"
	OrderAwaitingConfirmation = "awaiting_confirmation"
	OrderPendingPayment       = "pending_payment"
)

type OrderItem struct {
	ID         int                `json:"id"`
	Product    Product            `json:"product"`
	Quantity   int                `json:"quantity"`
	Price      decimal.Decimal    `json:"price"`
	Variations []ProductVariation `json:"variations"`
}

// OrderStore is the store reference embedded in a customer's order.
type OrderStore struct {
	ID        int    `json:"id"`
	FinalName string `json:"final_name"`
}

// OrderCustomer is the customer reference embedded in a store's order.
type OrderCustomer struct {
	Name string `json:"name"`
}

type Order struct {
	ID        int             `json:"id"`
	Code      string          `json:"code"`
	CreatedAt time.Time       `json:"created_at"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	Store     OrderStore      `json:"store"`
	User      *OrderCustomer  `json:"user,omitempty"`
	Items     []OrderItem     `json:"items"`
}

// PixCode is a payment code held in memory only, keyed by order id, and
// discarded once ExpiresAt (epoch seconds) passes.
type PixCode struct {
	Code      string `json:"pix_code"`
	ExpiresAt int64  `json:"expira_em"`
}
