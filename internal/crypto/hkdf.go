package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"
)

// DeriveDocumentKey derives the AES-256 key shared by the two
// participants of a document exchange.
//
// Both identities are lower-cased and sorted before combination so the
// result is independent of which side performs the derivation. The IKM
// is the Keccak-256 digest of the concatenated pair, expanded with
// HKDF-SHA-256 under the given salt and the fixed HKDFInfo context.
// The derivation is fully deterministic: no randomness, no I/O.
func DeriveDocumentKey(identityA, identityB string, salt []byte) ([]byte, error) {
	if identityA == "" || identityB == "" {
		return nil, ErrMissingIdentity
	}
	if len(salt) == 0 {
		return nil, ErrMissingSalt
	}

	pair := []string{strings.ToLower(identityA), strings.ToLower(identityB)}
	sort.Strings(pair)

	keccak := sha3.NewLegacyKeccak256()
	keccak.Write([]byte(pair[0] + pair[1]))
	ikm := keccak.Sum(nil)

	reader := hkdf.New(sha256.New, ikm, salt, []byte(HKDFInfo))
	key := make([]byte, AESKeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	return key, nil
}
