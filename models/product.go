package models

import "github.com/shopspring/decimal"

// Product statuses as the backend stores them.
const (
	ProductActive     = "ativo"
	ProductOutOfStock = "em_falta"
	ProductHidden     = "oculto"
)

type ProductImage struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	ImagePath string `json:"image_path"`
}

type ProductVariation struct {
	ID    int    `json:"id"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

type Product struct {
	ID            int                `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Price         decimal.Decimal    `json:"price"`
	StockQuantity int                `json:"stock_quantity"`
	CompanyID     int                `json:"company_id"`
	Category      string             `json:"category,omitempty"`
	Status        string             `json:"status"`
	Images        []ProductImage     `json:"images"`
	Variations    []ProductVariation `json:"variations"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
