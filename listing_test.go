package tuma

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListSentAndReceived(t *testing.T) {
	stub := newExchangeStub(t)
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	client := testClientForStubs(t, nil, srv)
	ctx := context.Background()

	first, err := client.Send(ctx, []byte("first document"), SendRequest{
		FileName:    "first.txt",
		ContentType: "text/plain",
		Sender:      testSender,
		Recipient:   testRecipient,
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if _, err := client.Send(ctx, []byte("second document"), SendRequest{
		FileName:    "second.txt",
		ContentType: "text/plain",
		Sender:      testRecipient,
		Recipient:   testStranger,
	}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	sent, err := client.ListSent(ctx, testSender)
	if err != nil {
		t.Fatalf("ListSent() error = %v", err)
	}
	if len(sent) != 1 {
		t.Fatalf("ListSent() returned %d documents, want 1", len(sent))
	}
	if sent[0].ContentID != first.ContentID {
		t.Errorf("ContentID = %q, want %q", sent[0].ContentID, first.ContentID)
	}
	if sent[0].Metadata.Name != "first.txt" {
		t.Errorf("Name = %q, want first.txt", sent[0].Metadata.Name)
	}
	if sent[0].Metadata.Recipient != strings.ToLower(testRecipient) {
		t.Errorf("Recipient = %q, want %q", sent[0].Metadata.Recipient, strings.ToLower(testRecipient))
	}

	received, err := client.ListReceived(ctx, testRecipient)
	if err != nil {
		t.Fatalf("ListReceived() error = %v", err)
	}
	if len(received) != 1 || received[0].ContentID != first.ContentID {
		t.Errorf("ListReceived() = %+v, want only the first document", received)
	}

	none, err := client.ListSent(ctx, "0xDDD0000000000000000000000000000000000004")
	if err != nil {
		t.Fatalf("ListSent() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("ListSent() for unknown identity returned %d documents", len(none))
	}
}

func TestList_IdentityCaseInsensitive(t *testing.T) {
	stub := newExchangeStub(t)
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	client := testClientForStubs(t, nil, srv)
	ctx := context.Background()

	if _, err := client.Send(ctx, []byte("payload"), testSendRequest()); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	sent, err := client.ListSent(ctx, strings.ToUpper(testSender))
	if err != nil {
		t.Fatalf("ListSent() error = %v", err)
	}
	if len(sent) != 1 {
		t.Errorf("ListSent() with mixed-case identity returned %d documents, want 1", len(sent))
	}
}

func TestList_RequiresIdentity(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.ListSent(context.Background(), ""); !errors.Is(err, ErrMissingIdentity) {
		t.Errorf("ListSent(\"\") error = %v, want ErrMissingIdentity", err)
	}
	if _, err := client.ListReceived(context.Background(), ""); !errors.Is(err, ErrMissingIdentity) {
		t.Errorf("ListReceived(\"\") error = %v, want ErrMissingIdentity", err)
	}
}

func TestList_GatewayFallback(t *testing.T) {
	stub := newExchangeStub(t)
	healthy := httptest.NewServer(stub.handler())
	defer healthy.Close()

	broken := httptest.NewServer(stub.handler())
	broken.Close()

	client := testClientForStubs(t, nil, healthy)
	ctx := context.Background()
	if _, err := client.Send(ctx, []byte("payload"), testSendRequest()); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	client = testClientForStubs(t, nil, broken, healthy)
	sent, err := client.ListSent(ctx, testSender)
	if err != nil {
		t.Fatalf("ListSent() error = %v", err)
	}
	if len(sent) != 1 {
		t.Errorf("ListSent() via fallback gateway returned %d documents, want 1", len(sent))
	}
}
