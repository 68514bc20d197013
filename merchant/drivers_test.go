package merchant

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deliverylivre/storefront/models"
)

func validDriverForm() DriverForm {
	return DriverForm{
		Name:     "Carlos Lima",
		Email:    "carlos@example.com",
		Password: "Entrega@123",
		Phone:    "11988887777",
		Vehicle:  "Moto",
		Plate:    "ABC1D23",
		Status:   "ativo",
	}
}

func TestCreateDriverRequiresEveryField(t *testing.T) {
	var called bool
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte(`{}`))
	})

	blank := func(mutate func(*DriverForm)) DriverForm {
		form := validDriverForm()
		mutate(&form)
		return form
	}

	forms := []DriverForm{
		blank(func(f *DriverForm) { f.Name = "" }),
		blank(func(f *DriverForm) { f.Email = " " }),
		blank(func(f *DriverForm) { f.Password = "" }),
		blank(func(f *DriverForm) { f.Phone = "" }),
		blank(func(f *DriverForm) { f.Vehicle = "" }),
		blank(func(f *DriverForm) { f.Plate = "" }),
		blank(func(f *DriverForm) { f.Status = "" }),
	}
	for _, form := range forms {
		_, err := svc.CreateDriver(context.Background(), form)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
	assert.False(t, called)
}

func TestCreateDriverReturnsCreated(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST /drivers", r.Method+" "+r.URL.Path)
		var form DriverForm
		require.NoError(t, json.NewDecoder(r.Body).Decode(&form))
		json.NewEncoder(w).Encode(models.Driver{ID: 8, Name: form.Name, Plate: form.Plate})
	})

	driver, err := svc.CreateDriver(context.Background(), validDriverForm())
	require.NoError(t, err)
	assert.Equal(t, 8, driver.ID)
	assert.Equal(t, "ABC1D23", driver.Plate)
}

func TestUpdateDriverPutsToID(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT /drivers/8", r.Method+" "+r.URL.Path)
		json.NewEncoder(w).Encode(models.Driver{ID: 8, Name: "Carlos Lima"})
	})

	driver, err := svc.UpdateDriver(context.Background(), 8, validDriverForm())
	require.NoError(t, err)
	assert.Equal(t, 8, driver.ID)
}
