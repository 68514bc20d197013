package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deliverylivre/storefront/apiclient"
)

var (
	ErrInvalidCEP  = errors.New("cep must have 8 digits")
	ErrCEPNotFound = errors.New("cep not found")
)

// CEPResult carries the address fields used to auto-fill an address form.
type CEPResult struct {
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
	NotFound     bool   `json:"erro"`
}

// CEPService resolves Brazilian postal codes through the backend's proxy
// endpoint.
type CEPService struct {
	api *apiclient.Client
}

func NewCEPService(api *apiclient.Client) *CEPService {
	return &CEPService{api: api}
}

// digits strips everything but 0-9.
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Lookup resolves a CEP, accepting formatted input ("01310-100").
func (s *CEPService) Lookup(ctx context.Context, cep string) (*CEPResult, error) {
	cleaned := digits(cep)
	if len(cleaned) != 8 {
		return nil, ErrInvalidCEP
	}

	var result CEPResult
	if err := s.api.GetJSON(ctx, fmt.Sprintf("/cep/%s", cleaned), &result); err != nil {
		return nil, err
	}
	if result.NotFound {
		return nil, ErrCEPNotFound
	}
	return &result, nil
}
