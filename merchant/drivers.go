package merchant

import (
	"context"
	"fmt"
	"strings"

	"github.com/deliverylivre/storefront/models"
)

// DriverForm carries the driver account fields. Every field is required.
type DriverForm struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Vehicle  string `json:"vehicle"`
	Plate    string `json:"plate"`
	Status   string `json:"status"`
}

func (f DriverForm) validate() error {
	required := map[string]string{
		"name":     f.Name,
		"email":    f.Email,
		"password": f.Password,
		"phone":    f.Phone,
		"vehicle":  f.Vehicle,
		"plate":    f.Plate,
		"status":   f.Status,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingFields, field)
		}
	}
	return nil
}

// Drivers lists the store's delivery drivers.
func (s *Service) Drivers(ctx context.Context) ([]models.Driver, error) {
	var drivers []models.Driver
	if err := s.api.GetJSON(ctx, "/drivers", &drivers); err != nil {
		return nil, err
	}
	return drivers, nil
}

// CreateDriver registers a new driver.
func (s *Service) CreateDriver(ctx context.Context, form DriverForm) (*models.Driver, error) {
	if err := form.validate(); err != nil {
		return nil, err
	}
	var driver models.Driver
	if err := s.api.PostJSON(ctx, "/drivers", form, &driver); err != nil {
		return nil, err
	}
	return &driver, nil
}

// UpdateDriver updates an existing driver.
func (s *Service) UpdateDriver(ctx context.Context, driverID int, form DriverForm) (*models.Driver, error) {
	if err := form.validate(); err != nil {
		return nil, err
	}
	var driver models.Driver
	if err := s.api.PutJSON(ctx, fmt.Sprintf("/drivers/%d", driverID), form, &driver); err != nil {
		return nil, err
	}
	return &driver, nil
}

// DeleteDriver removes a driver.
func (s *Service) DeleteDriver(ctx context.Context, driverID int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/drivers/%d", driverID))
}
