package crypto

import "errors"

var (
	// ErrMissingIdentity is returned when one of the participant
	// identities is empty.
	ErrMissingIdentity = errors.New("missing participant identity")

	// ErrMissingSalt is returned when key derivation is attempted
	// without a salt.
	ErrMissingSalt = errors.New("missing key derivation salt")

	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrDecryptionFailed is returned when AES-GCM authentication fails.
	// The ciphertext, IV, or key do not match what was used to encrypt.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrDigestMismatch is returned when a ciphertext digest does not
	// match its expected value.
	ErrDigestMismatch = errors.New("ciphertext digest mismatch")
)
