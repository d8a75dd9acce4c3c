package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func TestDeriveDocumentKey_OrderIndependence(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"addresses", "0xAAA0000000000000000000000000000000000001", "0xBBB0000000000000000000000000000000000002"},
		{"mixed case", "0xAbCdEf", "0x123456"},
		{"same identity twice", "0xaaa", "0xaaa"},
	}

	salt := []byte("doc_1700000000_xyz")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k1, err := DeriveDocumentKey(tt.a, tt.b, salt)
			if err != nil {
				t.Fatalf("DeriveDocumentKey() error = %v", err)
			}
			k2, err := DeriveDocumentKey(tt.b, tt.a, salt)
			if err != nil {
				t.Fatalf("DeriveDocumentKey() error = %v", err)
			}

			if !bytes.Equal(k1, k2) {
				t.Error("key differs when identity order is swapped")
			}
			if len(k1) != AESKeySize {
				t.Errorf("key length = %d, want %d", len(k1), AESKeySize)
			}
		})
	}
}

func TestDeriveDocumentKey_CaseInsensitive(t *testing.T) {
	salt := []byte("doc_1700000000_xyz")

	k1, err := DeriveDocumentKey("0xABCDEF", "0x123456", salt)
	if err != nil {
		t.Fatal(err)
	}
	k2, err := DeriveDocumentKey("0xabcdef", "0x123456", salt)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(k1, k2) {
		t.Error("key differs when identity case differs")
	}
}

func TestDeriveDocumentKey_Deterministic(t *testing.T) {
	salt := []byte("doc_1700000000_xyz")

	k1, err := DeriveDocumentKey("0xaaa", "0xbbb", salt)
	if err != nil {
		t.Fatal(err)
	}
	k2, err := DeriveDocumentKey("0xaaa", "0xbbb", salt)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(k1, k2) {
		t.Error("repeated derivation is not byte-identical")
	}
}

func TestDeriveDocumentKey_SaltChangesKey(t *testing.T) {
	k1, err := DeriveDocumentKey("0xaaa", "0xbbb", []byte("doc_1700000000_xyz"))
	if err != nil {
		t.Fatal(err)
	}
	k2, err := DeriveDocumentKey("0xaaa", "0xbbb", []byte("doc_1700000000_abc"))
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(k1, k2) {
		t.Error("different salts produced the same key")
	}
}

func TestDeriveDocumentKey_InvalidInputs(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		salt    []byte
		wantErr error
	}{
		{"empty first identity", "", "0xbbb", []byte("salt"), ErrMissingIdentity},
		{"empty second identity", "0xaaa", "", []byte("salt"), ErrMissingIdentity},
		{"nil salt", "0xaaa", "0xbbb", nil, ErrMissingSalt},
		{"empty salt", "0xaaa", "0xbbb", []byte{}, ErrMissingSalt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeriveDocumentKey(tt.a, tt.b, tt.salt)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
