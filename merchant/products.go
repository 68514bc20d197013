package merchant

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/deliverylivre/storefront/apiclient"
	"github.com/deliverylivre/storefront/models"
)

// ProductForm carries the editable product fields. Category takes a new
// category name; CategoryID selects an existing one. Images are appended to
// the product; ExistingImages lists the image paths to keep on update.
// Variations is the raw JSON array the backend expects in the `variations`
// field.
type ProductForm struct {
	Name           string
	Description    string
	Price          decimal.Decimal
	StockQuantity  int
	Status         string
	Category       string
	CategoryID     int
	Variations     string
	ExistingImages []string
	Images         []Upload
}

func (f ProductForm) validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: name", ErrMissingFields)
	}
	return nil
}

func (f ProductForm) encode() *apiclient.Form {
	form := apiclient.NewForm().
		Set("name", f.Name).
		Set("description", f.Description).
		Set("price", f.Price.String()).
		Set("stock_quantity", strconv.Itoa(f.StockQuantity)).
		Set("status", f.Status)

	if trimmed := strings.TrimSpace(f.Category); trimmed != "" {
		form.Set("category", trimmed)
	} else if f.CategoryID > 0 {
		form.Set("category_id", strconv.Itoa(f.CategoryID))
	}
	if f.Variations != "" {
		form.Set("variations", f.Variations)
	}

	for _, img := range f.ExistingImages {
		form.Set("existing_images[]", img)
	}
	for _, img := range f.Images {
		form.File("images[]", img.Name, img.Content)
	}
	return form
}

// Products lists the store's products.
func (s *Service) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.api.GetJSON(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Categories lists the categories available to the store.
func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.api.GetJSON(ctx, "/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateProduct posts a new product as a multipart form.
func (s *Service) CreateProduct(ctx context.Context, form ProductForm) error {
	if err := form.validate(); err != nil {
		return err
	}
	return s.api.PostMultipart(ctx, "/products", form.encode(), nil)
}

// UpdateProduct updates an existing product. The backend expects a POST
// with a `_method=PUT` override because multipart PUT is not supported.
func (s *Service) UpdateProduct(ctx context.Context, productID int, form ProductForm) error {
	if err := form.validate(); err != nil {
		return err
	}
	path := fmt.Sprintf("/products/%d?_method=PUT", productID)
	return s.api.PostMultipart(ctx, path, form.encode(), nil)
}

// DeleteProduct removes a product.
func (s *Service) DeleteProduct(ctx context.Context, productID int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/products/%d", productID))
}
