package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deliverylivre/storefront/apiclient"
)

func newCEPService(t *testing.T, handler http.HandlerFunc) *CEPService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewCEPService(apiclient.New(server.URL, 2*time.Second))
}

func TestLookupAcceptsFormattedCEP(t *testing.T) {
	svc := newCEPService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cep/01310100", r.URL.Path)
		w.Write([]byte(`{"logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
	})

	result, err := svc.Lookup(context.Background(), "01310-100")
	require.NoError(t, err)
	assert.Equal(t, "Avenida Paulista", result.Street)
	assert.Equal(t, "Bela Vista", result.Neighborhood)
	assert.Equal(t, "São Paulo", result.City)
	assert.Equal(t, "SP", result.State)
}

func TestLookupRejectsShortCEP(t *testing.T) {
	var called bool
	svc := newCEPService(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := svc.Lookup(context.Background(), "1310")
	assert.ErrorIs(t, err, ErrInvalidCEP)
	assert.False(t, called)
}

func TestLookupNotFoundFlag(t *testing.T) {
	svc := newCEPService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"erro":true}`))
	})

	_, err := svc.Lookup(context.Background(), "99999999")
	assert.ErrorIs(t, err, ErrCEPNotFound)
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "01310100", digits("01310-100"))
	assert.Equal(t, "12345678000190", digits("12.345.678/0001-90"))
	assert.Equal(t, "", digits("abc"))
}
