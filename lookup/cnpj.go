package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const brasilAPIBaseURL = "https://brasilapi.com.br/api"

var (
	ErrInvalidCNPJ  = errors.New("cnpj must have 14 digits")
	ErrCNPJNotFound = errors.New("cnpj not found")
)

// CNPJResult carries the company registry fields used to auto-fill the
// admin company form.
type CNPJResult struct {
	LegalName string
	Phone     string
	Address   string
}

// CNPJProvider resolves CNPJs against BrasilAPI. Unlike the storefront
// endpoints this talks to a third party directly, so it carries its own
// client and timeout.
type CNPJProvider struct {
	baseURL    string
	httpClient *http.Client
}

func NewCNPJProvider() *CNPJProvider {
	return &CNPJProvider{
		baseURL: brasilAPIBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type cnpjResponse struct {
	RazaoSocial    string `json:"razao_social"`
	DDDTelefone1   string `json:"ddd_telefone_1"`
	TipoLogradouro string `json:"descricao_tipo_de_logradouro"`
	Logradouro     string `json:"logradouro"`
	Numero         string `json:"numero"`
	Bairro         string `json:"bairro"`
	Municipio      string `json:"municipio"`
	UF             string `json:"uf"`
	CEP            string `json:"cep"`
}

// Lookup resolves a CNPJ, accepting formatted input
// ("12.345.678/0001-90").
func (p *CNPJProvider) Lookup(ctx context.Context, cnpj string) (*CNPJResult, error) {
	cleaned := digits(cnpj)
	if len(cleaned) != 14 {
		return nil, ErrInvalidCNPJ
	}

	url := fmt.Sprintf("%s/cnpj/v1/%s", p.baseURL, cleaned)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest {
		return nil, ErrCNPJNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cnpj lookup: unexpected status %d", resp.StatusCode)
	}

	var data cnpjResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}

	return &CNPJResult{
		LegalName: data.RazaoSocial,
		Phone:     data.DDDTelefone1,
		Address: fmt.Sprintf("%s %s, %s - %s, %s - %s, %s",
			data.TipoLogradouro, data.Logradouro, data.Numero,
			data.Bairro, data.Municipio, data.UF, data.CEP),
	}, nil
}
