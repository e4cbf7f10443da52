// Package partner wraps the upstream association's public endpoints. The
// registration endpoint is a legacy form post that renders HTML; the check
// endpoints return small JSON bodies.
package partner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// UpstreamResult carries the raw outcome of the registration form post. The
// body shape is ambiguous (HTML or JSON) so callers classify it textually.
type UpstreamResult struct {
	StatusCode int
	Body       string
}

// StatusResponse is the shape of the partner's check endpoints.
type StatusResponse struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
}

// ExistsResponse is the shape of the partner's CPF existence check.
type ExistsResponse struct {
	Exists bool   `json:"exists"`
	Status string `json:"status"`
}

// Client calls the upstream partner system.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SubmitRegistration forwards a proxied registration as a form-encoded POST
// and returns the raw response for textual classification.
func (c *Client) SubmitRegistration(ctx context.Context, name, cpf, email, phone, referralID string) (*UpstreamResult, error) {
	form := url.Values{}
	form.Set("nome", name)
	form.Set("cpf", cpf)
	form.Set("email", email)
	form.Set("celular", phone)
	form.Set("representanteId", referralID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/registroSave", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit registration: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read registration response: %w", err)
	}
	return &UpstreamResult{StatusCode: resp.StatusCode, Body: string(body)}, nil
}

// CheckEmail asks the partner whether the email is free to use.
func (c *Client) CheckEmail(ctx context.Context, email string) (*StatusResponse, error) {
	var out StatusResponse
	if err := c.getJSON(ctx, "/getEmail/"+url.PathEscape(email), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckCoupon validates a coupon code.
func (c *Client) CheckCoupon(ctx context.Context, code string) (*StatusResponse, error) {
	var out StatusResponse
	if err := c.getJSON(ctx, "/getValidateCoupon/"+url.PathEscape(code), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckCPFExists asks the partner whether the CPF is already registered.
func (c *Client) CheckCPFExists(ctx context.Context, cpf string) (*ExistsResponse, error) {
	var out ExistsResponse
	if err := c.getJSON(ctx, "/checkCpfExists/"+url.PathEscape(cpf), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("partner request %s: %w", path, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode partner response %s: %w", path, err)
	}
	return nil
}
