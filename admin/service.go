package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/deliverylivre/storefront/apiclient"
	"github.com/deliverylivre/storefront/models"
)

var ErrMissingFields = errors.New("required fields are missing")

// Service covers platform administration: banners and companies.
type Service struct {
	api *apiclient.Client
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

// Banners lists every banner.
func (s *Service) Banners(ctx context.Context) ([]models.Banner, error) {
	var banners []models.Banner
	if err := s.api.GetJSON(ctx, "/banners", &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

// SaveBanner creates the banner, or updates it when it carries an id.
// Title and image are required.
func (s *Service) SaveBanner(ctx context.Context, banner models.Banner) error {
	if banner.Title == "" || banner.ImageURL == "" {
		return fmt.Errorf("%w: title and image", ErrMissingFields)
	}
	if banner.ID != 0 {
		return s.api.PutJSON(ctx, fmt.Sprintf("/banners/%d", banner.ID), banner, nil)
	}
	return s.api.PostJSON(ctx, "/banners", banner, nil)
}

// DeleteBanner removes a banner.
func (s *Service) DeleteBanner(ctx context.Context, bannerID int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/banners/%d", bannerID))
}

// Companies lists every company on the platform.
func (s *Service) Companies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	if err := s.api.GetJSON(ctx, "/companies", &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

type companyPayload struct {
	models.Company
	Admin models.CompanyAdmin `json:"admin"`
}

// SaveCompany creates the company, or updates it when it carries an id. The
// payload embeds the administrator account the backend provisions for new
// companies.
func (s *Service) SaveCompany(ctx context.Context, company models.Company, admin models.CompanyAdmin) error {
	if company.CNPJ == "" || company.LegalName == "" {
		return fmt.Errorf("%w: cnpj and legal_name", ErrMissingFields)
	}
	payload := companyPayload{Company: company, Admin: admin}
	if company.ID != 0 {
		return s.api.PutJSON(ctx, fmt.Sprintf("/companies/%d", company.ID), payload, nil)
	}
	return s.api.PostJSON(ctx, "/companies", payload, nil)
}

// DeleteCompany removes a company.
func (s *Service) DeleteCompany(ctx context.Context, companyID int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/companies/%d", companyID))
}
