package fakebackend

import (
	"github.com/shopspring/decimal"

	"github.com/deliverylivre/storefront/models"
)

// SeedResult exposes the fixture entities so tests and the dev CLI can log
// in and reference them.
type SeedResult struct {
	Client         models.User
	ClientPassword string
	Store          models.User
	StorePassword  string
	Admin          models.User
	AdminPassword  string
	Company        models.Company
	Products       []models.Product
}

// Seed loads a small demo dataset: one store with products and a
// first-purchase discount, one client with a saved address, one admin.
func (s *Server) Seed() SeedResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	company := &models.Company{
		ID:          s.id(),
		CNPJ:        "12345678000190",
		LegalName:   "Mercado do Bairro LTDA",
		FinalName:   "Mercado do Bairro",
		Phone:       "11999990000",
		Email:       "loja@mercadodobairro.com.br",
		Active:      true,
		Category:    "Supermercado",
		DeliveryFee: decimal.NewFromInt(5),

		FirstPurchaseDiscountStore:      true,
		FirstPurchaseDiscountStoreValue: decimal.NewNullDecimal(decimal.NewFromInt(10)),
	}
	s.companies[company.ID] = company

	coffee := &models.Product{
		ID:            s.id(),
		Name:          "Café Torrado 500g",
		Description:   "Café torrado e moído",
		Price:         decimal.NewFromInt(10),
		StockQuantity: 5,
		CompanyID:     company.ID,
		Category:      "Mercearia",
		Status:        models.ProductActive,
	}
	bread := &models.Product{
		ID:            s.id(),
		Name:          "Pão Francês",
		Description:   "Unidade",
		Price:         decimal.RequireFromString("2.50"),
		StockQuantity: 100,
		CompanyID:     company.ID,
		Category:      "Padaria",
		Status:        models.ProductActive,
	}
	s.products[coffee.ID] = coffee
	s.products[bread.ID] = bread

	client := models.User{
		ID:    s.id(),
		Name:  "Maria Souza",
		Email: "maria@example.com",
		Role:  models.RoleClient,
	}
	client.Addresses = []models.Address{{
		ID:           s.id(),
		Label:        "Casa",
		CEP:          "01310100",
		Street:       "Avenida Paulista",
		Neighborhood: "Bela Vista",
		City:         "São Paulo",
		State:        "SP",
		Number:       "1000",
	}}
	s.accounts[client.ID] = &account{user: client, password: "Cliente@123"}

	store := models.User{
		ID:    s.id(),
		Name:  "Mercado do Bairro",
		Email: company.Email,
		Role:  models.RoleStore,
	}
	s.accounts[store.ID] = &account{user: store, password: "Loja@1234"}

	admin := models.User{
		ID:    s.id(),
		Name:  "Plataforma",
		Email: "admin@deliverylivre.com.br",
		Role:  models.RoleAdmin,
	}
	s.accounts[admin.ID] = &account{user: admin, password: "Admin@1234"}

	driver := &models.Driver{
		ID:      s.id(),
		Name:    "Carlos Lima",
		Email:   "carlos@mercadodobairro.com.br",
		Phone:   "11988887777",
		Vehicle: "Moto",
		Plate:   "ABC1D23",
		Status:  "ativo",
	}
	s.drivers[driver.ID] = driver

	target := company.ID
	banner := &models.Banner{
		ID:              s.id(),
		Title:           "Semana do Café",
		ImageURL:        "banners/semana-do-cafe.jpg",
		TargetCompanyID: &target,
	}
	s.banners[banner.ID] = banner

	s.ceps["01310100"] = cepEntry{
		Street:       "Avenida Paulista",
		Neighborhood: "Bela Vista",
		City:         "São Paulo",
		State:        "SP",
	}

	return SeedResult{
		Client:         client,
		ClientPassword: "Cliente@123",
		Store:          store,
		StorePassword:  "Loja@1234",
		Admin:          admin,
		AdminPassword:  "Admin@1234",
		Company:        *company,
		Products:       []models.Product{*coffee, *bread},
	}
}

// AddCEP registers a postal-code fixture.
func (s *Server) AddCEP(cep, street, neighborhood, city, state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ceps[cep] = cepEntry{
		Street:       street,
		Neighborhood: neighborhood,
		City:         city,
		State:        state,
	}
}
