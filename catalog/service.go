package catalog

import (
	"context"
	"strings"

	"github.com/deliverylivre/storefront/apiclient"
	"github.com/deliverylivre/storefront/models"
)

// Service covers customer-side browsing: stores, categories and banners.
type Service struct {
	api *apiclient.Client
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

// Companies lists every active store together with its products.
func (s *Service) Companies(ctx context.Context) ([]models.CompanyWithProducts, error) {
	var companies []models.CompanyWithProducts
	if err := s.api.GetJSON(ctx, "/companies-with-products", &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

// CompaniesByCategory filters the store list by category name.
func (s *Service) CompaniesByCategory(ctx context.Context, category string) ([]models.CompanyWithProducts, error) {
	companies, err := s.Companies(ctx)
	if err != nil {
		return nil, err
	}
	filtered := companies[:0]
	for _, c := range companies {
		if strings.EqualFold(c.Category, category) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// Search matches stores whose name, or any of whose product names, contains
// the query.
func (s *Service) Search(ctx context.Context, query string) ([]models.CompanyWithProducts, error) {
	companies, err := s.Companies(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(query)
	matched := companies[:0]
	for _, c := range companies {
		if strings.Contains(strings.ToLower(c.FinalName), query) {
			matched = append(matched, c)
			continue
		}
		for _, p := range c.Products {
			if strings.Contains(strings.ToLower(p.Name), query) {
				matched = append(matched, c)
				break
			}
		}
	}
	return matched, nil
}

// Categories lists the product categories.
func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.api.GetJSON(ctx, "/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Banners lists the platform banners shown on the customer home screen.
func (s *Service) Banners(ctx context.Context) ([]models.Banner, error) {
	var banners []models.Banner
	if err := s.api.GetJSON(ctx, "/banners", &banners); err != nil {
		return nil, err
	}
	return banners, nil
}
