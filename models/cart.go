package models

import "github.com/shopspring/decimal"

// CartItem is a line in the server-held cart. Price and Subtotal are
// computed server-side; the client never derives them locally.
type CartItem struct {
	ID           int                `json:"id"`
	Product      Product            `json:"product"`
	Quantity     int                `json:"quantity"`
	Price        decimal.Decimal    `json:"price"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	Variations   []ProductVariation `json:"variations"`
	VariationKey string             `json:"variation_key,omitempty"`
}

// DeliveryInfo is the fee/distance pair returned by /delivery/calc.
type DeliveryInfo struct {
	Fee      decimal.Decimal `json:"fee"`
	Distance float64         `json:"distance"`
}

// Quote is the displayed totals breakdown. Invariant:
// Total = (Subtotal - Discount) + DeliveryFee.
type Quote struct {
	Subtotal        decimal.Decimal
	Discount        decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountType    string
	DeliveryFee     decimal.Decimal
	Total           decimal.Decimal
}
