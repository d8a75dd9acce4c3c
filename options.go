package tuma

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Default gateways tried in order. All mirror the same underlying
// network data.
var defaultGateways = []string{"arweave.net", "g8way.io", "arweave.dev"}

const (
	defaultTimeout             = 30 * time.Second
	defaultConfirmationTimeout = 5 * time.Minute
	defaultPollInterval        = 5 * time.Second
	defaultListLimit           = 100
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	gateways            []string
	httpClient          *http.Client
	timeout             time.Duration
	retries             int
	chunkSize           int
	confirmationTimeout time.Duration
	pollInterval        time.Duration
	listLimit           int
	logger              logrus.FieldLogger
	accessGate          AccessGate
	credentialJSON      []byte
	credentialPath      string
}

// sendConfig holds per-send configuration.
type sendConfig struct {
	documentID string
	onProgress func(pct float64)
	noConfirm  bool
}

// Option configures the client.
type Option func(*clientConfig)

// SendOption configures a single send operation.
type SendOption func(*sendConfig)

// WithGateways sets the ordered list of gateway hosts. The first is
// used for uploads and queries; the rest are retrieval fallbacks.
func WithGateways(hosts ...string) Option {
	return func(c *clientConfig) {
		if len(hosts) > 0 {
			c.gateways = hosts
		}
	}
}

// WithHTTPClient sets a custom HTTP client shared by all gateways.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetries sets the per-request retry budget for gateway calls.
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.retries = count
	}
}

// WithChunkSize sets the upload chunk size in bytes.
func WithChunkSize(size int) Option {
	return func(c *clientConfig) {
		c.chunkSize = size
	}
}

// WithConfirmationTimeout sets the wall-clock bound on waiting for
// network confirmation after an upload. Default: 5 minutes.
func WithConfirmationTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.confirmationTimeout = timeout
	}
}

// WithPollInterval sets the confirmation poll interval. Default: 5s.
func WithPollInterval(interval time.Duration) Option {
	return func(c *clientConfig) {
		c.pollInterval = interval
	}
}

// WithListLimit caps the number of results returned by ListSent and
// ListReceived. Default: 100.
func WithListLimit(limit int) Option {
	return func(c *clientConfig) {
		c.listLimit = limit
	}
}

// WithLogger sets the structured logger. By default the client logs
// nothing. Plaintext is never logged regardless of level.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithAccessGate sets the payment gate consulted before a recipient
// may open a document. Without a gate, no payment check is performed.
func WithAccessGate(gate AccessGate) Option {
	return func(c *clientConfig) {
		c.accessGate = gate
	}
}

// WithCredentialJSON provides the storage credential key material
// directly. Required for sending; fetch-only clients can omit it.
func WithCredentialJSON(data []byte) Option {
	return func(c *clientConfig) {
		c.credentialJSON = data
	}
}

// WithCredentialFile loads the storage credential from a JSON key
// file at construction time.
func WithCredentialFile(path string) Option {
	return func(c *clientConfig) {
		c.credentialPath = path
	}
}

// WithDocumentID pins the per-document identifier (and so the key
// derivation salt) instead of generating a fresh one.
func WithDocumentID(id string) SendOption {
	return func(c *sendConfig) {
		c.documentID = id
	}
}

// WithProgress registers a callback invoked with the percent of the
// payload uploaded so far (0–100, non-decreasing).
func WithProgress(fn func(pct float64)) SendOption {
	return func(c *sendConfig) {
		c.onProgress = fn
	}
}

// WithoutConfirmationWait skips the post-upload confirmation poll.
// The send returns as soon as the chunk loop completes.
func WithoutConfirmationWait() SendOption {
	return func(c *sendConfig) {
		c.noConfirm = true
	}
}
