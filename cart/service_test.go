package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deliverylivre/storefront/apiclient"
	"github.com/deliverylivre/storefront/models"
)

// cartBackend is a scriptable /cart double that records every request it
// receives.
type cartBackend struct {
	mu       sync.Mutex
	requests []string
	payload  fetchResponse
	failWith int
}

func (b *cartBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.requests = append(b.requests, r.Method+" "+r.URL.Path)
	fail := b.failWith
	payload := b.payload
	b.mu.Unlock()

	if fail != 0 && r.Method != http.MethodGet {
		w.WriteHeader(fail)
		w.Write([]byte(`{"message":"refused"}`))
		return
	}
	if r.Method == http.MethodGet && r.URL.Path == "/cart" {
		json.NewEncoder(w).Encode(payload)
		return
	}
	if r.URL.Path == "/delivery/calc" {
		json.NewEncoder(w).Encode(models.DeliveryInfo{Fee: decimal.NewFromInt(5), Distance: 3.2})
		return
	}
	w.Write([]byte(`{}`))
}

func (b *cartBackend) seen() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.requests))
	copy(out, b.requests)
	return out
}

func (b *cartBackend) setPayload(p fetchResponse) {
	b.mu.Lock()
	b.payload = p
	b.mu.Unlock()
}

func newTestService(t *testing.T) (*Service, *cartBackend) {
	t.Helper()
	backend := &cartBackend{}
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)
	return NewService(apiclient.New(server.URL, 2*time.Second)), backend
}

func storeWithDiscount() *models.Company {
	return &models.Company{
		ID:                              1,
		FinalName:                       "Mercado do Bairro",
		DeliveryFee:                     decimal.NewFromInt(5),
		FirstPurchaseDiscountStore:      true,
		FirstPurchaseDiscountStoreValue: decimal.NewNullDecimal(decimal.NewFromInt(10)),
	}
}

func coffeeItems() []models.CartItem {
	return []models.CartItem{{
		ID: 11,
		Product: models.Product{
			ID:            5,
			Name:          "Café Torrado 500g",
			Price:         decimal.NewFromInt(10),
			StockQuantity: 5,
		},
		Quantity: 2,
		Price:    decimal.NewFromInt(10),
		Subtotal: decimal.NewFromInt(20),
	}}
}

func payloadWith(items []models.CartItem, company *models.Company) fetchResponse {
	var resp fetchResponse
	resp.Cart.Items = items
	resp.Company = company
	return resp
}

func TestQuoteAppliesDiscountThenFee(t *testing.T) {
	svc, backend := newTestService(t)
	backend.setPayload(payloadWith(coffeeItems(), storeWithDiscount()))

	require.NoError(t, svc.Fetch(context.Background()))
	svc.SelectAddress(models.Address{ID: 1, Street: "Avenida Paulista", Number: "1000"})
	require.NoError(t, svc.QuoteDelivery(context.Background()))

	quote := svc.Quote()
	assert.True(t, quote.Subtotal.Equal(decimal.NewFromInt(20)), "subtotal %s", quote.Subtotal)
	assert.True(t, quote.Discount.Equal(decimal.NewFromInt(2)), "discount %s", quote.Discount)
	assert.True(t, quote.DeliveryFee.Equal(decimal.NewFromInt(5)), "fee %s", quote.DeliveryFee)
	assert.True(t, quote.Total.Equal(decimal.NewFromInt(23)), "total %s", quote.Total)
	assert.Equal(t, "store", quote.DiscountType)

	// Invariant: total = (subtotal - discount) + fee.
	recomposed := quote.Subtotal.Sub(quote.Discount).Add(quote.DeliveryFee)
	assert.True(t, quote.Total.Equal(recomposed))
}

func TestAppDiscountWinsOverStore(t *testing.T) {
	svc, backend := newTestService(t)
	company := storeWithDiscount()
	company.FirstPurchaseDiscountApp = true
	company.FirstPurchaseDiscountAppValue = decimal.NewNullDecimal(decimal.NewFromInt(15))
	backend.setPayload(payloadWith(coffeeItems(), company))

	require.NoError(t, svc.Fetch(context.Background()))

	quote := svc.Quote()
	assert.Equal(t, "app", quote.DiscountType)
	assert.True(t, quote.DiscountPercent.Equal(decimal.NewFromInt(15)))
}

func TestDiscountFlagWithoutValueIgnored(t *testing.T) {
	svc, backend := newTestService(t)
	company := storeWithDiscount()
	company.FirstPurchaseDiscountStoreValue = decimal.NullDecimal{}
	backend.setPayload(payloadWith(coffeeItems(), company))

	require.NoError(t, svc.Fetch(context.Background()))

	quote := svc.Quote()
	assert.Empty(t, quote.DiscountType)
	assert.True(t, quote.Discount.IsZero())
}

func TestEmptyFetchClearsEverything(t *testing.T) {
	svc, backend := newTestService(t)
	backend.setPayload(payloadWith(coffeeItems(), storeWithDiscount()))
	require.NoError(t, svc.Fetch(context.Background()))
	svc.SelectAddress(models.Address{ID: 1})
	require.NoError(t, svc.QuoteDelivery(context.Background()))

	backend.setPayload(payloadWith(nil, nil))
	require.NoError(t, svc.Fetch(context.Background()))

	assert.Empty(t, svc.Items())
	assert.Nil(t, svc.Company())
	assert.Nil(t, svc.SelectedAddress())
	assert.Nil(t, svc.Delivery())
	assert.True(t, svc.Quote().Total.IsZero())
}

func TestMutationsRefetchUnconditionally(t *testing.T) {
	svc, backend := newTestService(t)
	backend.setPayload(payloadWith(coffeeItems(), storeWithDiscount()))
	require.NoError(t, svc.Fetch(context.Background()))

	require.NoError(t, svc.Increment(context.Background(), 11))
	assert.Equal(t, []string{
		"GET /cart",
		"PUT /cart/items/11/increment",
		"GET /cart",
	}, backend.seen())
}

func TestFailedMutationStillRefetchesAndReportsMutationError(t *testing.T) {
	svc, backend := newTestService(t)
	backend.setPayload(payloadWith(coffeeItems(), storeWithDiscount()))
	require.NoError(t, svc.Fetch(context.Background()))

	backend.mu.Lock()
	backend.failWith = http.StatusUnprocessableEntity
	backend.mu.Unlock()

	err := svc.Remove(context.Background(), 11)
	assert.True(t, apiclient.IsStatus(err, http.StatusUnprocessableEntity))
	assert.Equal(t, []string{
		"GET /cart",
		"DELETE /cart/items/11",
		"GET /cart",
	}, backend.seen())
}

func TestIncrementRefusedAtStockLimit(t *testing.T) {
	svc, backend := newTestService(t)
	items := coffeeItems()
	items[0].Quantity = 5 // matches StockQuantity
	backend.setPayload(payloadWith(items, storeWithDiscount()))
	require.NoError(t, svc.Fetch(context.Background()))

	before := len(backend.seen())
	assert.ErrorIs(t, svc.Increment(context.Background(), 11), ErrStockLimit)
	assert.Len(t, backend.seen(), before, "local refusal must not reach the network")
}

func TestDecrementRefusedAtOne(t *testing.T) {
	svc, backend := newTestService(t)
	items := coffeeItems()
	items[0].Quantity = 1
	backend.setPayload(payloadWith(items, storeWithDiscount()))
	require.NoError(t, svc.Fetch(context.Background()))

	before := len(backend.seen())
	assert.ErrorIs(t, svc.Decrement(context.Background(), 11), ErrMinQuantity)
	assert.Len(t, backend.seen(), before)
}

func TestUnknownItemRefusedLocally(t *testing.T) {
	svc, backend := newTestService(t)
	backend.setPayload(payloadWith(coffeeItems(), storeWithDiscount()))
	require.NoError(t, svc.Fetch(context.Background()))

	before := len(backend.seen())
	assert.ErrorIs(t, svc.Increment(context.Background(), 999), ErrItemNotFound)
	assert.ErrorIs(t, svc.Decrement(context.Background(), 999), ErrItemNotFound)
	assert.ErrorIs(t, svc.Remove(context.Background(), 999), ErrItemNotFound)
	assert.Len(t, backend.seen(), before)
}

func TestQuoteDeliveryPreconditions(t *testing.T) {
	svc, backend := newTestService(t)

	assert.ErrorIs(t, svc.QuoteDelivery(context.Background()), ErrEmptyCart)

	backend.setPayload(payloadWith(coffeeItems(), storeWithDiscount()))
	require.NoError(t, svc.Fetch(context.Background()))
	assert.ErrorIs(t, svc.QuoteDelivery(context.Background()), ErrNoAddress)
}

func TestFreeShippingSkipsDeliveryRequest(t *testing.T) {
	svc, backend := newTestService(t)
	company := storeWithDiscount()
	company.FreeShipping = true
	backend.setPayload(payloadWith(coffeeItems(), company))
	require.NoError(t, svc.Fetch(context.Background()))
	svc.SelectAddress(models.Address{ID: 1})

	before := len(backend.seen())
	require.NoError(t, svc.QuoteDelivery(context.Background()))
	assert.Len(t, backend.seen(), before, "free shipping must not call /delivery/calc")

	delivery := svc.Delivery()
	require.NotNil(t, delivery)
	assert.True(t, delivery.Fee.IsZero())
}

func TestSelectAddressResetsDeliveryQuote(t *testing.T) {
	svc, backend := newTestService(t)
	backend.setPayload(payloadWith(coffeeItems(), storeWithDiscount()))
	require.NoError(t, svc.Fetch(context.Background()))
	svc.SelectAddress(models.Address{ID: 1})
	require.NoError(t, svc.QuoteDelivery(context.Background()))
	require.NotNil(t, svc.Delivery())

	svc.SelectAddress(models.Address{ID: 2})
	assert.Nil(t, svc.Delivery(), "a new address invalidates the old quote")
}

func TestCheckoutRefusedWithoutNetwork(t *testing.T) {
	svc, backend := newTestService(t)

	assert.ErrorIs(t, svc.Checkout(context.Background()), ErrEmptyCart)

	backend.setPayload(payloadWith(coffeeItems(), storeWithDiscount()))
	require.NoError(t, svc.Fetch(context.Background()))
	before := len(backend.seen())
	assert.ErrorIs(t, svc.Checkout(context.Background()), ErrNoAddress)
	assert.Len(t, backend.seen(), before)
}

func TestCheckoutSendsDisplayedTotalAndClearsState(t *testing.T) {
	backend := &cartBackend{}
	var checkoutBody checkoutRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/cart/checkout" {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&checkoutBody))
			w.Write([]byte(`{}`))
			return
		}
		backend.ServeHTTP(w, r)
	}))
	defer server.Close()

	svc := NewService(apiclient.New(server.URL, 2*time.Second))
	backend.setPayload(payloadWith(coffeeItems(), storeWithDiscount()))
	require.NoError(t, svc.Fetch(context.Background()))
	svc.SelectAddress(models.Address{ID: 42, Street: "Avenida Paulista", Number: "1000"})
	require.NoError(t, svc.QuoteDelivery(context.Background()))

	require.NoError(t, svc.Checkout(context.Background()))

	assert.Equal(t, 42, checkoutBody.AddressID)
	assert.True(t, checkoutBody.Total.Equal(decimal.NewFromInt(23)), "total %s", checkoutBody.Total)
	require.Len(t, checkoutBody.Items, 1)
	assert.Equal(t, 5, checkoutBody.Items[0].ProductID)
	assert.Equal(t, 2, checkoutBody.Items[0].Quantity)

	assert.Empty(t, svc.Items())
	assert.Nil(t, svc.SelectedAddress())
}

func TestCheckoutFailurePreservesState(t *testing.T) {
	svc, backend := newTestService(t)
	backend.setPayload(payloadWith(coffeeItems(), storeWithDiscount()))
	require.NoError(t, svc.Fetch(context.Background()))
	svc.SelectAddress(models.Address{ID: 1})

	backend.mu.Lock()
	backend.failWith = http.StatusUnprocessableEntity
	backend.mu.Unlock()

	err := svc.Checkout(context.Background())
	assert.True(t, apiclient.IsStatus(err, http.StatusUnprocessableEntity))
	assert.NotEmpty(t, svc.Items(), "failed checkout keeps the cart for retry")
	assert.NotNil(t, svc.SelectedAddress())
}
