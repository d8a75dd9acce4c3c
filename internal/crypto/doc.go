// Package crypto implements the document encryption primitives:
// identity-pair key derivation (Keccak-256 IKM + HKDF-SHA-256),
// AES-256-GCM authenticated encryption with detached nonces, and
// SHA-256 ciphertext digests for integrity tags.
//
// Key derivation is deterministic and symmetric in the two participant
// identities: both sides of an exchange derive the identical key from
// the same salt regardless of argument order. All failures are
// surfaced as typed sentinel errors; authentication failures in
// particular are never retryable.
package crypto
