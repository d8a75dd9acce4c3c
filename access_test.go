package tuma

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeChargeStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusName string
		want       AccessStatus
	}{
		{"confirmed", "confirmed", AccessConfirmed},
		{"completed", "completed", AccessConfirmed},
		{"resolved", "resolved", AccessConfirmed},
		{"paid", "paid", AccessConfirmed},
		{"success", "success", AccessConfirmed},
		{"mixed case", "CONFIRMED", AccessConfirmed},
		{"error", "error", AccessError},
		{"failed", "failed", AccessError},
		{"charge_failed", "charge_failed", AccessError},
		{"internal error", "internal_error", AccessError},
		{"pending", "pending", AccessPending},
		{"processing", "processing", AccessPending},
		{"empty", "", AccessPending},
		{"unknown never confirms", "definitely-not-a-status", AccessPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeChargeStatus(tt.statusName); got != tt.want {
				t.Errorf("normalizeChargeStatus(%q) = %q, want %q", tt.statusName, got, tt.want)
			}
		})
	}
}

func TestChargeGate_Status(t *testing.T) {
	var gotChargeID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chargeStatus" {
			http.NotFound(w, r)
			return
		}
		gotChargeID = r.URL.Query().Get("chargeId")
		json.NewEncoder(w).Encode(map[string]string{"statusName": "Completed"})
	}))
	defer srv.Close()

	gate := NewChargeGate(srv.URL + "/")

	status, err := gate.Status(context.Background(), "charge-123")
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status != AccessConfirmed {
		t.Errorf("status = %q, want %q", status, AccessConfirmed)
	}
	if gotChargeID != "charge-123" {
		t.Errorf("chargeId = %q, want %q", gotChargeID, "charge-123")
	}
}

func TestChargeGate_StatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"http error",
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			"malformed body",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			gate := NewChargeGate(srv.URL)
			status, err := gate.Status(context.Background(), "charge-1")
			if err == nil {
				t.Fatal("expected error")
			}
			if status != AccessPending {
				t.Errorf("status = %q, want pending on failure", status)
			}
		})
	}
}
