package merchant

import (
	"errors"
	"io"

	"github.com/deliverylivre/storefront/apiclient"
)

var ErrMissingFields = errors.New("required fields are missing")

// Service covers the store role: products, drivers, incoming orders and the
// company profile.
type Service struct {
	api *apiclient.Client
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

// Upload is a file attached to a multipart form (product image, store
// logo).
type Upload struct {
	Name    string
	Content io.Reader
}
