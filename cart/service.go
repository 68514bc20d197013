package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/deliverylivre/storefront/apiclient"
	"github.com/deliverylivre/storefront/logger"
	"github.com/deliverylivre/storefront/models"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrNoAddress    = errors.New("no delivery address selected")
	ErrItemNotFound = errors.New("item not in cart")
	ErrMinQuantity  = errors.New("quantity is already at the minimum")
	ErrStockLimit   = errors.New("quantity is at the product's stock limit")
)

var oneHundred = decimal.NewFromInt(100)

// Service keeps the displayed cart consistent with server state. Every
// mutation is one backend call followed by an unconditional refetch; the
// client never mutates item state optimistically, so server-side pricing
// stays authoritative.
type Service struct {
	api *apiclient.Client

	mu              sync.Mutex
	items           []models.CartItem
	company         *models.Company
	selectedAddress *models.Address
	delivery        *models.DeliveryInfo
	discountPercent decimal.Decimal
	discountType    string
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

type fetchResponse struct {
	Cart struct {
		Items []models.CartItem `json:"items"`
	} `json:"cart"`
	Company *models.Company `json:"company"`
}

// Fetch replaces the full item list and discount fields from GET /cart.
// An empty cart also clears the company, the selected address and any
// delivery quote.
func (s *Service) Fetch(ctx context.Context) error {
	var resp fetchResponse
	if err := s.api.GetJSON(ctx, "/cart", &resp); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(resp.Cart.Items) == 0 {
		s.items = nil
		s.company = nil
		s.selectedAddress = nil
		s.delivery = nil
		s.discountPercent = decimal.Zero
		s.discountType = ""
		return nil
	}

	s.items = resp.Cart.Items
	s.company = resp.Company
	s.discountPercent = decimal.Zero
	s.discountType = ""
	if c := resp.Company; c != nil {
		switch {
		case c.FirstPurchaseDiscountApp && c.FirstPurchaseDiscountAppValue.Valid:
			s.discountPercent = c.FirstPurchaseDiscountAppValue.Decimal
			s.discountType = "app"
		case c.FirstPurchaseDiscountStore && c.FirstPurchaseDiscountStoreValue.Valid:
			s.discountPercent = c.FirstPurchaseDiscountStoreValue.Decimal
			s.discountType = "store"
		}
	}
	return nil
}

// Selection is a product picked on a store page, with the chosen variation
// ids.
type Selection struct {
	ProductID    int   `json:"id"`
	Quantity     int   `json:"quantity"`
	VariationIDs []int `json:"variation_ids"`
}

// AddProducts posts the picked products to the cart and refetches.
func (s *Service) AddProducts(ctx context.Context, selections []Selection) error {
	if len(selections) == 0 {
		return ErrEmptyCart
	}
	err := s.api.PostJSON(ctx, "/cart", map[string]interface{}{"products": selections}, nil)
	return s.refetchAfter(ctx, err)
}

// Increment raises an item's quantity by one. Refused locally, without a
// request, when the quantity already matches the product's stock.
func (s *Service) Increment(ctx context.Context, itemID int) error {
	item, err := s.item(itemID)
	if err != nil {
		return err
	}
	if item.Quantity >= item.Product.StockQuantity {
		return ErrStockLimit
	}
	err = s.api.PutJSON(ctx, fmt.Sprintf("/cart/items/%d/increment", itemID), nil, nil)
	return s.refetchAfter(ctx, err)
}

// Decrement lowers an item's quantity by one, never below one. Removal is a
// distinct action.
func (s *Service) Decrement(ctx context.Context, itemID int) error {
	item, err := s.item(itemID)
	if err != nil {
		return err
	}
	if item.Quantity <= 1 {
		return ErrMinQuantity
	}
	err = s.api.PutJSON(ctx, fmt.Sprintf("/cart/items/%d/decrement", itemID), nil, nil)
	return s.refetchAfter(ctx, err)
}

// Remove deletes an item from the cart entirely.
func (s *Service) Remove(ctx context.Context, itemID int) error {
	if _, err := s.item(itemID); err != nil {
		return err
	}
	err := s.api.Delete(ctx, fmt.Sprintf("/cart/items/%d", itemID))
	return s.refetchAfter(ctx, err)
}

// refetchAfter runs the unconditional post-mutation refetch. The mutation's
// own error takes precedence over a refetch error.
func (s *Service) refetchAfter(ctx context.Context, mutErr error) error {
	fetchErr := s.Fetch(ctx)
	if mutErr != nil {
		if fetchErr != nil {
			logger.Warn("refetch after failed mutation also failed", zap.Error(fetchErr))
		}
		return mutErr
	}
	return fetchErr
}

// SelectAddress marks a saved address as the delivery target. Selection is
// transient UI state; it reaches the backend only at quote and checkout.
func (s *Service) SelectAddress(addr models.Address) {
	s.mu.Lock()
	s.selectedAddress = &addr
	s.delivery = nil
	s.mu.Unlock()
}

// QuoteDelivery asks the backend for the delivery fee to the selected
// address. Free-shipping stores short-circuit to a zero fee without a call.
func (s *Service) QuoteDelivery(ctx context.Context) error {
	s.mu.Lock()
	addr := s.selectedAddress
	company := s.company
	empty := len(s.items) == 0
	s.mu.Unlock()

	if empty {
		return ErrEmptyCart
	}
	if addr == nil {
		return ErrNoAddress
	}
	if company != nil && company.FreeShipping {
		s.mu.Lock()
		s.delivery = &models.DeliveryInfo{Fee: decimal.Zero, Distance: 0}
		s.mu.Unlock()
		return nil
	}

	var info models.DeliveryInfo
	err := s.api.PostJSON(ctx, "/delivery/calc", map[string]string{
		"address": addr.Format(),
	}, &info)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.delivery = &info
	s.mu.Unlock()
	return nil
}

// Quote builds the displayed totals from the last fetched state:
// total = (subtotal - discount) + delivery fee.
func (s *Service) Quote() models.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()

	subtotal := decimal.Zero
	for _, item := range s.items {
		subtotal = subtotal.Add(item.Subtotal)
	}

	discount := subtotal.Mul(s.discountPercent).Div(oneHundred)

	fee := decimal.Zero
	if s.delivery != nil {
		fee = s.delivery.Fee
	}

	return models.Quote{
		Subtotal:        subtotal,
		Discount:        discount,
		DiscountPercent: s.discountPercent,
		DiscountType:    s.discountType,
		DeliveryFee:     fee,
		Total:           subtotal.Sub(discount).Add(fee),
	}
}

type checkoutItem struct {
	ProductID    int   `json:"product_id"`
	Quantity     int   `json:"quantity"`
	VariationIDs []int `json:"variation_ids"`
}

type checkoutRequest struct {
	AddressID int             `json:"address_id"`
	Total     decimal.Decimal `json:"total"`
	Items     []checkoutItem  `json:"items"`
}

// Checkout submits the order. Refused without a network call when the cart
// is empty or no address is selected. On success local cart state is
// cleared; on failure it is preserved so the user can retry.
func (s *Service) Checkout(ctx context.Context) error {
	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		return ErrEmptyCart
	}
	if s.selectedAddress == nil {
		s.mu.Unlock()
		return ErrNoAddress
	}
	req := checkoutRequest{
		AddressID: s.selectedAddress.ID,
		Items:     make([]checkoutItem, 0, len(s.items)),
	}
	for _, item := range s.items {
		ids := make([]int, 0, len(item.Variations))
		for _, v := range item.Variations {
			ids = append(ids, v.ID)
		}
		req.Items = append(req.Items, checkoutItem{
			ProductID:    item.Product.ID,
			Quantity:     item.Quantity,
			VariationIDs: ids,
		})
	}
	s.mu.Unlock()

	req.Total = s.Quote().Total

	if err := s.api.PostJSON(ctx, "/cart/checkout", req, nil); err != nil {
		return err
	}

	s.mu.Lock()
	s.items = nil
	s.company = nil
	s.selectedAddress = nil
	s.delivery = nil
	s.discountPercent = decimal.Zero
	s.discountType = ""
	s.mu.Unlock()

	logger.Info("checkout complete")
	return nil
}

// Items returns a copy of the last fetched item list.
func (s *Service) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Company returns the store the cart belongs to, if any.
func (s *Service) Company() *models.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.company
}

// SelectedAddress returns the transiently selected delivery address.
func (s *Service) SelectedAddress() *models.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedAddress
}

// Delivery returns the last quoted fee/distance, if any.
func (s *Service) Delivery() *models.DeliveryInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delivery
}

func (s *Service) item(itemID int) (models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return models.CartItem{}, ErrItemNotFound
}
