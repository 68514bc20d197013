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

// CompanyInfoForm carries the store profile fields submitted to
// /companies/addInfo. Discount values are sent empty when the matching flag
// is off.
type CompanyInfoForm struct {
	FinalName      string
	Phone          string
	Email          string
	CEP            string
	Street         string
	Number         string
	Neighborhood   string
	City           string
	State          string
	PixKey         string
	PixKeyType     string
	Category       string
	Status         string
	DeliveryFee    decimal.Decimal
	DeliveryRadius float64
	FreeShipping   bool

	FirstPurchaseDiscountStore      bool
	FirstPurchaseDiscountStoreValue decimal.Decimal
	FirstPurchaseDiscountApp        bool
	FirstPurchaseDiscountAppValue   decimal.Decimal

	OpeningHours []models.OpeningHours
	Logo         *Upload
}

func (f CompanyInfoForm) validate() error {
	if strings.TrimSpace(f.FinalName) == "" {
		return fmt.Errorf("%w: final_name", ErrMissingFields)
	}
	return nil
}

func boolField(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func (f CompanyInfoForm) encode() *apiclient.Form {
	form := apiclient.NewForm().
		Set("final_name", f.FinalName).
		Set("phone", f.Phone).
		Set("email", f.Email).
		Set("cep", f.CEP).
		Set("street", f.Street).
		Set("number", f.Number).
		Set("neighborhood", f.Neighborhood).
		Set("city", f.City).
		Set("state", f.State).
		Set("pix_key", f.PixKey).
		Set("pix_key_type", f.PixKeyType).
		Set("category", f.Category).
		Set("status", f.Status).
		Set("delivery_fee", f.DeliveryFee.String()).
		Set("delivery_radius", strconv.FormatFloat(f.DeliveryRadius, 'f', -1, 64)).
		Set("free_shipping", boolField(f.FreeShipping))

	form.Set("first_purchase_discount_store", boolField(f.FirstPurchaseDiscountStore))
	if f.FirstPurchaseDiscountStore {
		form.Set("first_purchase_discount_store_value", f.FirstPurchaseDiscountStoreValue.String())
	} else {
		form.Set("first_purchase_discount_store_value", "")
	}
	form.Set("first_purchase_discount_app", boolField(f.FirstPurchaseDiscountApp))
	if f.FirstPurchaseDiscountApp {
		form.Set("first_purchase_discount_app_value", f.FirstPurchaseDiscountAppValue.String())
	} else {
		form.Set("first_purchase_discount_app_value", "")
	}

	for i, h := range f.OpeningHours {
		prefix := "opening_hours[" + strconv.Itoa(i) + "]"
		form.Set(prefix+"[day]", h.Day)
		form.Set(prefix+"[open]", h.Open)
		form.Set(prefix+"[close]", h.Close)
	}
	if f.Logo != nil {
		form.File("logo", f.Logo.Name, f.Logo.Content)
	}
	return form
}

// Company fetches the signed-in store's own profile.
func (s *Service) Company(ctx context.Context) (*models.Company, error) {
	var company models.Company
	if err := s.api.GetJSON(ctx, "/companies/me", &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// UpdateCompanyInfo submits the store profile as a multipart form.
func (s *Service) UpdateCompanyInfo(ctx context.Context, form CompanyInfoForm) (*models.Company, error) {
	if err := form.validate(); err != nil {
		return nil, err
	}
	var company models.Company
	if err := s.api.PostMultipart(ctx, "/companies/addInfo", form.encode(), &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// Banners lists the banners targeting this store.
func (s *Service) Banners(ctx context.Context) ([]models.Banner, error) {
	var banners []models.Banner
	if err := s.api.GetJSON(ctx, "/banners-company", &banners); err != nil {
		return nil, err
	}
	return banners, nil
}
