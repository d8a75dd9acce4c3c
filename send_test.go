package tuma

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tuma-exchange/client-go/internal/gateway"
)

const (
	testSender    = "0xAAA0000000000000000000000000000000000001"
	testRecipient = "0xBBB0000000000000000000000000000000000002"
	testStranger  = "0xCCC0000000000000000000000000000000000003"
)

func testSendRequest() SendRequest {
	return SendRequest{
		FileName:    "contract.pdf",
		ContentType: "application/pdf",
		Sender:      testSender,
		Recipient:   testRecipient,
		Description: "Q3 agreement",
	}
}

func TestSend_RoundTrip(t *testing.T) {
	stub := newExchangeStub(t)
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	client := testClientForStubs(t, nil, srv)

	plaintext := make([]byte, 300*1024) // spans two chunks
	rand.Read(plaintext)

	var pcts []float64
	result, err := client.Send(context.Background(), plaintext, testSendRequest(),
		WithProgress(func(pct float64) { pcts = append(pcts, pct) }))
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if result.ContentID == "" {
		t.Fatal("no content ID returned")
	}
	if !result.Confirmed {
		t.Error("send not confirmed against confirming stub")
	}
	if result.DocumentID == "" || !strings.HasPrefix(result.DocumentID, "doc_") {
		t.Errorf("document ID = %q", result.DocumentID)
	}
	if result.Metadata.Sender != strings.ToLower(testSender) {
		t.Errorf("sender tag not lower-cased: %q", result.Metadata.Sender)
	}
	if result.Metadata.IV == "" || result.Metadata.ContentHash == "" {
		t.Error("metadata missing IV or content hash")
	}

	if len(pcts) == 0 || pcts[len(pcts)-1] != 100 {
		t.Errorf("progress = %v, want ending at 100", pcts)
	}
	for i := 1; i < len(pcts); i++ {
		if pcts[i] < pcts[i-1] {
			t.Errorf("progress not monotonic: %v", pcts)
		}
	}

	// The recipient opens the document.
	doc, err := client.Open(context.Background(), result.ContentID, testRecipient)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !bytes.Equal(doc.Plaintext, plaintext) {
		t.Error("decrypted plaintext does not match original")
	}
	if doc.LegacyUnverified {
		t.Error("freshly sent document flagged as legacy unverified")
	}
	if doc.Metadata.Name != "contract.pdf" {
		t.Errorf("metadata name = %q", doc.Metadata.Name)
	}

	// The sender can open their own document too.
	if _, err := client.Open(context.Background(), result.ContentID, testSender); err != nil {
		t.Errorf("sender Open() error = %v", err)
	}
}

func TestSend_RequiresCredential(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.Send(context.Background(), []byte("data"), testSendRequest())
	if !errors.Is(err, ErrMissingCredential) {
		t.Errorf("error = %v, want ErrMissingCredential", err)
	}
}

func TestSend_RequiresIdentities(t *testing.T) {
	stub := newExchangeStub(t)
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	client := testClientForStubs(t, nil, srv)

	req := testSendRequest()
	req.Recipient = ""
	if _, err := client.Send(context.Background(), []byte("data"), req); !errors.Is(err, ErrMissingIdentity) {
		t.Errorf("error = %v, want ErrMissingIdentity", err)
	}
}

func TestSend_ConfirmationTimeoutIsSoft(t *testing.T) {
	stub := newExchangeStub(t)
	stub.confirm = false // network never confirms
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	client := testClientForStubs(t, nil, srv)

	result, err := client.Send(context.Background(), []byte("small document"), testSendRequest())
	if !errors.Is(err, ErrConfirmationTimeout) {
		t.Fatalf("error = %v, want ErrConfirmationTimeout", err)
	}

	// The result must still carry the usable content ID.
	if result == nil || result.ContentID == "" {
		t.Fatal("confirmation timeout discarded the content ID")
	}
	if result.Confirmed {
		t.Error("unconfirmed send reports Confirmed")
	}

	// The document is retrievable regardless of confirmation.
	doc, err := client.Open(context.Background(), result.ContentID, testRecipient)
	if err != nil {
		t.Fatalf("Open() after soft timeout error = %v", err)
	}
	if string(doc.Plaintext) != "small document" {
		t.Error("plaintext mismatch after soft timeout")
	}
}

func TestSend_WithoutConfirmationWait(t *testing.T) {
	stub := newExchangeStub(t)
	stub.confirm = false
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	client := testClientForStubs(t, nil, srv)

	result, err := client.Send(context.Background(), []byte("data"), testSendRequest(),
		WithoutConfirmationWait())
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if result.Confirmed {
		t.Error("unpolled send reports Confirmed")
	}
	if result.ContentID == "" {
		t.Error("no content ID")
	}
}

func TestSend_PinnedDocumentID(t *testing.T) {
	stub := newExchangeStub(t)
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	client := testClientForStubs(t, nil, srv)

	result, err := client.Send(context.Background(), []byte("data"), testSendRequest(),
		WithDocumentID("doc_1700000000_xyz"), WithoutConfirmationWait())
	if err != nil {
		t.Fatal(err)
	}
	if result.DocumentID != "doc_1700000000_xyz" {
		t.Errorf("document ID = %q", result.DocumentID)
	}
}

func TestSend_UploadIncompleteCarriesContentID(t *testing.T) {
	stub := newExchangeStub(t)
	srv := httptest.NewServer(stub.handler())
	client := testClientForStubs(t, nil, srv)

	// Kill the stub after client construction: the header post and
	// every chunk will fail.
	srv.Close()

	_, err := client.Send(context.Background(), []byte("data"), testSendRequest())
	var incomplete *UploadIncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("error = %v, want *UploadIncompleteError", err)
	}
	if !errors.Is(err, ErrUploadIncomplete) {
		t.Error("errors.Is(err, ErrUploadIncomplete) = false")
	}
}

func TestSend_TagSchema(t *testing.T) {
	stub := newExchangeStub(t)
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	client := testClientForStubs(t, nil, srv)

	req := testSendRequest()
	req.ChargeID = "charge-42"
	result, err := client.Send(context.Background(), []byte("tagged"), req, WithoutConfirmationWait())
	if err != nil {
		t.Fatal(err)
	}

	stub.mu.Lock()
	tx := stub.txs[result.ContentID]
	stub.mu.Unlock()
	if tx == nil {
		t.Fatal("transaction not stored by stub")
	}

	tags := gateway.DecodeWireTags(tx.Tags)
	want := map[string]string{
		"App-Name":      AppName,
		"Content-Type":  "application/pdf",
		"Document-Name": "contract.pdf",
		"Document-Type": "application/pdf",
		"Document-Size": "6",
		"Sender":        strings.ToLower(testSender),
		"Recipient":     strings.ToLower(testRecipient),
		"Description":   "Q3 agreement",
		"Charge-Id":     "charge-42",
		"Document-Id":   result.DocumentID,
	}
	for name, value := range want {
		if tags[name] != value {
			t.Errorf("tag %s = %q, want %q", name, tags[name], value)
		}
	}
	if tags["IV"] == "" || tags["sha256"] == "" {
		t.Error("IV or sha256 tag missing")
	}
	if tags["Timestamp"] == "" {
		t.Error("Timestamp tag missing")
	}
}
