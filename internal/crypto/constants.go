package crypto

const (
	// HKDFInfo is the context string used in HKDF key derivation
	// for domain separation. It must match on both sides of an
	// exchange or derived keys will not interoperate.
	HKDFInfo = "TUMA-Document-Key"

	// AESKeySize is the size of an AES-256 key in bytes.
	AESKeySize = 32
	// AESNonceSize is the size of an AES-GCM nonce in bytes.
	AESNonceSize = 12
	// AESTagSize is the size of an AES-GCM authentication tag in bytes.
	AESTagSize = 16

	// SaltSize is the size in bytes of a randomly generated document salt.
	SaltSize = 16
)
