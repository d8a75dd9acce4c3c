package tuma

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tuma-exchange/client-go/internal/credential"
	"github.com/tuma-exchange/client-go/internal/gateway"
)

// Client is the document-exchange client. It is constructed explicitly
// with its gateways, credential, and collaborators injected; there is
// no module-level shared state, so tests run against stub gateways.
type Client struct {
	gateways   []*gateway.Client
	credential *credential.Credential
	accessGate AccessGate
	logger     logrus.FieldLogger
	cfg        *clientConfig
}

// New creates a document-exchange client.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		gateways:            defaultGateways,
		timeout:             defaultTimeout,
		confirmationTimeout: defaultConfirmationTimeout,
		pollInterval:        defaultPollInterval,
		listLimit:           defaultListLimit,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	gateways := make([]*gateway.Client, 0, len(cfg.gateways))
	for _, host := range cfg.gateways {
		gwOpts := []gateway.Option{
			gateway.WithTimeout(cfg.timeout),
		}
		if cfg.httpClient != nil {
			gwOpts = append(gwOpts, gateway.WithHTTPClient(cfg.httpClient))
		}
		if cfg.retries > 0 {
			retry := gateway.DefaultRetryConfig()
			retry.MaxRetries = cfg.retries
			gwOpts = append(gwOpts, gateway.WithRetryConfig(retry))
		}
		gateways = append(gateways, gateway.New(host, gwOpts...))
	}

	c := &Client{
		gateways:   gateways,
		accessGate: cfg.accessGate,
		logger:     cfg.logger,
		cfg:        cfg,
	}
	if c.logger == nil {
		discard := logrus.New()
		discard.SetOutput(nopWriter{})
		c.logger = discard
	}

	switch {
	case cfg.credentialPath != "":
		cred, err := credential.Load(cfg.credentialPath)
		if err != nil {
			return nil, fmt.Errorf("load credential: %w", err)
		}
		c.credential = cred
	case len(cfg.credentialJSON) > 0:
		cred, err := credential.Parse(cfg.credentialJSON)
		if err != nil {
			return nil, fmt.Errorf("parse credential: %w", err)
		}
		c.credential = cred
	}

	return c, nil
}

// Gateways returns the configured gateway hosts in fallback order.
func (c *Client) Gateways() []string {
	hosts := make([]string, len(c.gateways))
	for i, gw := range c.gateways {
		hosts[i] = gw.Host()
	}
	return hosts
}

// CanSend reports whether the client holds a storage credential.
func (c *Client) CanSend() bool {
	return c.credential != nil
}

// StorageAddress returns the network address of the storage
// credential, or "" for a fetch-only client.
func (c *Client) StorageAddress() string {
	if c.credential == nil {
		return ""
	}
	return c.credential.Address()
}

// GenerateCredential creates fresh storage credential key material in
// the JSON key-file format accepted by WithCredentialJSON.
func GenerateCredential() ([]byte, error) {
	cred, err := credential.Generate()
	if err != nil {
		return nil, err
	}
	return cred.Marshal()
}

// primary returns the gateway used for uploads and queries.
func (c *Client) primary() *gateway.Client {
	return c.gateways[0]
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
