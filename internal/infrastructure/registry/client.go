// Package registry queries the external CPF registry used to confirm an
// identifier against its holder's birth date.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Match is a positive registry lookup: the CPF and birth date belong to a
// registered person.
type Match struct {
	ID   string
	Name string
}

// Client calls the CPF registry search endpoint.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type searchResponse struct {
	Data struct {
		ID   json.Number `json:"id"`
		Name string      `json:"nome_da_pf"`
	} `json:"data"`
}

// Search looks the CPF up by number and birth date (YYYY-MM-DD). Returns
// (nil, nil) when the registry has no matching record.
func (c *Client) Search(ctx context.Context, cpf, birthISO string) (*Match, error) {
	parts := strings.Split(birthISO, "-")
	if len(parts) != 3 {
		return nil, fmt.Errorf("birth date must be YYYY-MM-DD, got %q", birthISO)
	}
	// The registry expects day-month-year.
	birth := parts[2] + "-" + parts[1] + "-" + parts[0]

	q := url.Values{}
	q.Set("numeroDeCpf", cpf)
	q.Set("dataNascimento", birth)
	q.Set("token", c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/cpf/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry search: %w", err)
	}
	defer resp.Body.Close()

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode registry response: %w", err)
	}
	if out.Data.ID == "" {
		return nil, nil
	}
	return &Match{ID: out.Data.ID.String(), Name: out.Data.Name}, nil
}
