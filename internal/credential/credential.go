package credential

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cloudflare/circl/sign/ed25519"
)

// randReader is the random source used for key generation. It defaults
// to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

var (
	// ErrInvalidKeyFile is returned when a credential key file cannot
	// be parsed or has the wrong key sizes.
	ErrInvalidKeyFile = errors.New("invalid credential key file")
)

// Credential is the application's durable-storage signing identity.
// Every uploaded record is signed with this key; individual end users
// are never the storage principal.
type Credential struct {
	public  ed25519.PublicKey
	private ed25519.PrivateKey
}

// keyFile is the on-disk JSON representation of a credential.
type keyFile struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"` // public key, base64url
	D   string `json:"d"` // private seed, base64url
}

// Generate creates a new random credential.
func Generate() (*Credential, error) {
	pub, priv, err := ed25519.GenerateKey(randReader)
	if err != nil {
		return nil, err
	}
	return &Credential{public: pub, private: priv}, nil
}

// Parse loads a credential from its JSON key-file representation.
func Parse(data []byte) (*Credential, error) {
	var kf keyFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFile, err)
	}
	if kf.Kty != "OKP" || kf.Crv != "Ed25519" {
		return nil, fmt.Errorf("%w: unsupported key type %q/%q", ErrInvalidKeyFile, kf.Kty, kf.Crv)
	}

	seed, err := base64.RawURLEncoding.DecodeString(kf.D)
	if err != nil {
		return nil, fmt.Errorf("%w: decode private seed: %v", ErrInvalidKeyFile, err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: private seed size %d", ErrInvalidKeyFile, len(seed))
	}

	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)

	if kf.X != "" {
		declared, err := base64.RawURLEncoding.DecodeString(kf.X)
		if err != nil || !pub.Equal(ed25519.PublicKey(declared)) {
			return nil, fmt.Errorf("%w: public key does not match private seed", ErrInvalidKeyFile)
		}
	}

	return &Credential{public: pub, private: priv}, nil
}

// Load reads and parses a credential key file from disk.
func Load(path string) (*Credential, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credential file: %w", err)
	}
	return Parse(data)
}

// Marshal serializes the credential to its JSON key-file form.
func (c *Credential) Marshal() ([]byte, error) {
	return json.Marshal(keyFile{
		Kty: "OKP",
		Crv: "Ed25519",
		X:   base64.RawURLEncoding.EncodeToString(c.public),
		D:   base64.RawURLEncoding.EncodeToString(c.private.Seed()),
	})
}

// Sign signs a message with the credential's private key.
func (c *Credential) Sign(message []byte) []byte {
	return ed25519.Sign(c.private, message)
}

// Verify reports whether sig is a valid signature of message under
// this credential's public key.
func (c *Credential) Verify(message, sig []byte) bool {
	return ed25519.Verify(c.public, message, sig)
}

// Owner returns the base64url-encoded public key, the owner field of
// a transaction.
func (c *Credential) Owner() string {
	return base64.RawURLEncoding.EncodeToString(c.public)
}

// Address returns the credential's network address: the base64url of
// the SHA-256 digest of the raw public key.
func (c *Credential) Address() string {
	sum := sha256.Sum256(c.public)
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
