package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Digest computes the hex-encoded SHA-256 digest of the raw ciphertext
// bytes. The digest is always taken over the ciphertext before any
// transport encoding, on both the upload and download paths.
func Digest(ciphertext []byte) string {
	sum := sha256.Sum256(ciphertext)
	return hex.EncodeToString(sum[:])
}

// VerifyDigest recomputes the digest of ciphertext and compares it to
// the expected hex value. Comparison is case-insensitive; the digest is
// public so no constant-time comparison is required.
func VerifyDigest(ciphertext []byte, expectedHex string) bool {
	return strings.EqualFold(Digest(ciphertext), expectedHex)
}

// GenerateSalt returns a random hex string of SaltSize bytes, suitable
// as a per-document salt.
func GenerateSalt() (string, error) {
	buf := make([]byte, SaltSize)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
