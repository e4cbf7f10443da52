// Package viacep resolves Brazilian postal codes to structured addresses.
package viacep

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/adesao-api/internal/domain"
)

// Address holds the fields auto-filled from a resolved postal code.
type Address struct {
	Street   string
	District string
	City     string
	State    string
}

// Client calls the ViaCEP lookup endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type lookupResponse struct {
	Street   string `json:"logradouro"`
	District string `json:"bairro"`
	City     string `json:"localidade"`
	State    string `json:"uf"`
	Erro     bool   `json:"erro"`
}

// Lookup resolves a normalized 8-digit postal code. A code the service does
// not know returns domain.ErrNotFound.
func (c *Client) Lookup(ctx context.Context, cep string) (*Address, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ws/"+cep+"/json/", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("viacep lookup: %w", err)
	}
	defer resp.Body.Close()

	var out lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode viacep response: %w", err)
	}
	if out.Erro {
		return nil, fmt.Errorf("cep %s: %w", cep, domain.ErrNotFound)
	}
	return &Address{
		Street:   out.Street,
		District: out.District,
		City:     out.City,
		State:    out.State,
	}, nil
}
