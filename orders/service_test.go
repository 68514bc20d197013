package orders

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deliverylivre/storefront/apiclient"
	"github.com/deliverylivre/storefront/models"
)

func TestListUnwrapsOrders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"orders": []models.Order{
				{ID: 1, Code: "A1B2C3", Status: models.OrderPending},
				{ID: 2, Code: "D4E5F6", Status: models.OrderCompleted},
			},
		})
	}))
	defer server.Close()

	svc := NewService(apiclient.New(server.URL, 2*time.Second))
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A1B2C3", list[0].Code)
}

func TestStatusConfirmations(t *testing.T) {
	var gotPath, gotStatus string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		var body map[string]string
		json.Unmarshal(raw, &body)
		gotStatus = body["status"]
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	svc := NewService(apiclient.New(server.URL, 2*time.Second))

	require.NoError(t, svc.ConfirmPixPaid(context.Background(), 9))
	assert.Equal(t, "PUT /orders-client/9/status", gotPath)
	assert.Equal(t, models.OrderAwaitingConfirmation, gotStatus)

	require.NoError(t, svc.ConfirmPickup(context.Background(), 9))
	assert.Equal(t, models.OrderPendingPayment, gotStatus)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "pendente", StatusLabel(models.OrderPending))
	assert.Equal(t, "pronto para retirada", StatusLabel(models.OrderReadyForPickup))
	assert.Equal(t, "aguardando confirmação do pagamento (PIX)", StatusLabel(models.OrderAwaitingConfirmation))
	assert.Equal(t, "aguardando pagamento na retirada", StatusLabel(models.OrderPendingPayment))
	assert.Equal(t, "alien_status", StatusLabel("alien_status"), "unknown statuses pass through")
}
