package tuma

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestErrorSentinelMatching(t *testing.T) {
	inner := errors.New("inner")
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"decryption", &DecryptionError{ContentID: "tx1", Err: inner}, ErrDecryption},
		{"integrity", &IntegrityError{ContentID: "tx1", Expected: "aa", Actual: "bb"}, ErrIntegrity},
		{"upload incomplete", &UploadIncompleteError{ContentID: "tx1", Err: inner}, ErrUploadIncomplete},
		{"confirmation timeout", &ConfirmationTimeoutError{ContentID: "tx1", Timeout: time.Minute}, ErrConfirmationTimeout},
		{"retrieval", &RetrievalError{ContentID: "tx1", Gateways: []string{"a", "b"}, Err: inner}, ErrRetrieval},
		{"permission", &PermissionError{ContentID: "tx1", Caller: "0xabc"}, ErrPermission},
		{"access pending", &AccessPendingError{ContentID: "tx1", Status: AccessPending}, ErrAccessPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%T, sentinel) = false", tt.err)
			}
			if errors.Is(tt.err, ErrNotFound) {
				t.Errorf("%T matches unrelated sentinel", tt.err)
			}
			var te TumaError
			if !errors.As(tt.err, &te) {
				t.Errorf("%T does not implement TumaError", tt.err)
			}
			// Wrapping must not break sentinel matching.
			wrapped := fmt.Errorf("context: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("wrapped %T lost sentinel match", tt.err)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")

	var de *DecryptionError
	err := fmt.Errorf("open: %w", &DecryptionError{ContentID: "tx1", Err: inner})
	if !errors.As(err, &de) {
		t.Fatal("errors.As failed for DecryptionError")
	}
	if de.ContentID != "tx1" {
		t.Errorf("ContentID = %q", de.ContentID)
	}
	if !errors.Is(de, ErrDecryption) || de.Unwrap() != inner {
		t.Error("DecryptionError does not unwrap to its cause")
	}

	re := &RetrievalError{ContentID: "tx1", Gateways: []string{"a"}, Err: inner}
	if !errors.Is(re, inner) {
		t.Error("RetrievalError does not unwrap to the last gateway error")
	}
}

func TestDecryptionErrorMessageAvoidsDetail(t *testing.T) {
	inner := errors.New("cipher: message authentication failed")
	e := &DecryptionError{ContentID: "tx1", Err: inner}
	if strings.Contains(e.Error(), "authentication") {
		t.Errorf("message leaks cipher internals: %q", e.Error())
	}
	if !strings.Contains(e.Error(), "tx1") {
		t.Errorf("message omits content ID: %q", e.Error())
	}
}

func TestUploadIncompleteError_Message(t *testing.T) {
	withID := &UploadIncompleteError{ContentID: "tx1", Err: errors.New("chunk 3 rejected")}
	if !strings.Contains(withID.Error(), "tx1") {
		t.Errorf("message omits content ID: %q", withID.Error())
	}
	withoutID := &UploadIncompleteError{Err: errors.New("anchor fetch failed")}
	if strings.Contains(withoutID.Error(), "  ") || !strings.Contains(withoutID.Error(), "anchor") {
		t.Errorf("message malformed: %q", withoutID.Error())
	}
}
