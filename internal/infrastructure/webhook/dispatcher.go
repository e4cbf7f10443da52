// Package webhook delivers post-registration summaries to representative
// specific endpoints. Delivery is fire-and-forget: outcomes are logged,
// never surfaced to the user and never retried.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/adesao-api/internal/domain"
)

// Dispatcher routes notification summaries by referral id.
type Dispatcher struct {
	endpoints  map[string]string
	httpClient *http.Client
}

// NewDispatcher builds a dispatcher over the referral id -> URL table.
func NewDispatcher(endpoints map[string]string) *Dispatcher {
	return &Dispatcher{
		endpoints:  endpoints,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Dispatch posts the summary to the webhook mapped to its referral id.
// Unmapped referral ids are skipped silently.
func (d *Dispatcher) Dispatch(ctx context.Context, summary domain.NotificationSummary) error {
	endpoint, ok := d.endpoints[summary.ReferralID]
	if !ok {
		slog.Debug("no webhook for referral", "referral_id", summary.ReferralID)
		return nil
	}

	body, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("dispatch webhook: %w", err)
	}
	defer resp.Body.Close()
	// No response contract is enforced; a non-2xx is only worth a log line.
	if resp.StatusCode >= 300 {
		slog.Warn("webhook returned non-success", "referral_id", summary.ReferralID, "status", resp.StatusCode)
	}
	return nil
}
