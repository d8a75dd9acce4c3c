package tuma

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AccessStatus is the tri-state answer from the access gate.
type AccessStatus string

const (
	// AccessPending means payment has not (yet) been confirmed.
	AccessPending AccessStatus = "pending"
	// AccessConfirmed means payment is confirmed and the document may
	// be surfaced to the recipient.
	AccessConfirmed AccessStatus = "confirmed"
	// AccessError means the gate reported a payment failure.
	AccessError AccessStatus = "error"
)

// AccessGate decides whether a non-sending participant may retrieve a
// document. It is an external collaborator: this SDK only consumes its
// binary paid/unpaid answer. Anything other than an explicit
// AccessConfirmed is treated as not yet accessible.
type AccessGate interface {
	// Status resolves the access status for a charge reference.
	Status(ctx context.Context, chargeRef string) (AccessStatus, error)
}

// ChargeGate queries an HTTP charge-status endpoint shaped like
// GET {base}/api/chargeStatus?chargeId=...  ->  {"statusName": "..."}.
type ChargeGate struct {
	baseURL    string
	httpClient *http.Client
}

// NewChargeGate creates a gate against the given base URL.
func NewChargeGate(baseURL string) *ChargeGate {
	return &ChargeGate{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Status implements AccessGate.
func (g *ChargeGate) Status(ctx context.Context, chargeRef string) (AccessStatus, error) {
	endpoint := g.baseURL + "/api/chargeStatus?chargeId=" + url.QueryEscape(chargeRef)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return AccessPending, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return AccessPending, fmt.Errorf("charge status request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return AccessPending, fmt.Errorf("charge status request: HTTP %d", resp.StatusCode)
	}

	var body struct {
		StatusName string `json:"statusName"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return AccessPending, fmt.Errorf("charge status response: %w", err)
	}

	return normalizeChargeStatus(body.StatusName), nil
}

// normalizeChargeStatus maps provider status names onto the gate's
// tri-state. Unknown statuses are pending, never confirmed.
func normalizeChargeStatus(statusName string) AccessStatus {
	switch status := strings.ToLower(statusName); {
	case status == "confirmed", status == "completed", status == "resolved",
		status == "paid", status == "success":
		return AccessConfirmed
	case strings.Contains(status, "error"), strings.Contains(status, "fail"):
		return AccessError
	default:
		return AccessPending
	}
}
