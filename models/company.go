package models

import "github.com/shopspring/decimal"

// Company is a store on the platform. The first-purchase discount fields
// drive the client-side quote breakdown; the values are percentages.
type Company struct {
	ID             int             `json:"id"`
	CNPJ           string          `json:"cnpj"`
	LegalName      string          `json:"legal_name"`
	FinalName      string          `json:"final_name"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	Plan           string          `json:"plan,omitempty"`
	Active         bool            `json:"active"`
	Email          string          `json:"email"`
	Category       string          `json:"category,omitempty"`
	Status         string          `json:"status,omitempty"`
	Logo           *string         `json:"logo"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
	DeliveryRadius float64         `json:"delivery_radius"`
	OpeningHours   []OpeningHours  `json:"opening_hours,omitempty"`
	FreeShipping   bool            `json:"free_shipping"`

	FirstPurchaseDiscountStore      bool                `json:"first_purchase_discount_store"`
	FirstPurchaseDiscountStoreValue decimal.NullDecimal `json:"first_purchase_discount_store_value"`
	FirstPurchaseDiscountApp        bool                `json:"first_purchase_discount_app"`
	FirstPurchaseDiscountAppValue   decimal.NullDecimal `json:"first_purchase_discount_app_value"`
}

type OpeningHours struct {
	Day   string `json:"day"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

// CompanyAdmin is the administrator account embedded in an admin-side
// company create/update payload.
type CompanyAdmin struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// CompanyWithProducts is the customer-browsing projection returned by
// /companies-with-products.
type CompanyWithProducts struct {
	Company
	Products []Product `json:"products"`
}
