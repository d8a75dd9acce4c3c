package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is the HTTP client for a single storage-network gateway.
type Client struct {
	host       string
	baseURL    string
	httpClient *http.Client
	retry      *RetryConfig
}

// Option configures the gateway client.
type Option func(*Client)

// WithBaseURL overrides the base URL derived from the host. Intended
// for tests and non-TLS private gateways.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithRetryConfig sets the retry behavior for failed requests.
func WithRetryConfig(retry *RetryConfig) Option {
	return func(c *Client) {
		c.retry = retry
	}
}

// New creates a client for the given gateway host (e.g. "arweave.net").
func New(host string, opts ...Option) *Client {
	c := &Client{
		host:    host,
		baseURL: "https://" + host,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retry: DefaultRetryConfig(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Host returns the gateway host this client talks to.
func (c *Client) Host() string {
	return c.host
}

// do performs an HTTP request with retries on network errors and
// retryable status codes. The request body, if any, is JSON.
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = &NetworkError{Err: err, URL: c.baseURL + path, Attempt: attempt}
			if attempt >= c.retry.MaxRetries {
				return lastErr
			}
			if err := c.retry.Wait(ctx, attempt); err != nil {
				return err
			}
			continue
		}

		if c.retry.ShouldRetry(attempt, resp.StatusCode) {
			resp.Body.Close()
			lastErr = &GatewayError{Host: c.host, StatusCode: resp.StatusCode}
			if err := c.retry.Wait(ctx, attempt); err != nil {
				return err
			}
			continue
		}

		return c.handleResponse(resp, result)
	}
}

func (c *Client) handleResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.parseErrorResponse(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) parseErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	gwErr := &GatewayError{
		Host:       c.host,
		StatusCode: resp.StatusCode,
		Message:    string(bytes.TrimSpace(body)),
	}

	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		gwErr.Message = errResp.Error
	}

	return gwErr
}

// SubmitTransaction posts a signed transaction header to the gateway.
// For chunked uploads the payload travels separately via SubmitChunk.
func (c *Client) SubmitTransaction(ctx context.Context, tx *Transaction) error {
	return c.do(ctx, http.MethodPost, "/tx", tx, nil)
}

// SubmitChunk posts one payload chunk of a previously submitted transaction.
func (c *Client) SubmitChunk(ctx context.Context, chunk *Chunk) error {
	return c.do(ctx, http.MethodPost, "/chunk", chunk, nil)
}

// Anchor fetches the current transaction anchor used as last_tx when
// building a new transaction.
func (c *Client) Anchor(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/tx_anchor", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{Err: err, URL: c.baseURL + "/tx_anchor"}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &GatewayError{Host: c.host, StatusCode: resp.StatusCode}
	}

	anchor, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", fmt.Errorf("failed to read anchor: %w", err)
	}
	return string(bytes.TrimSpace(anchor)), nil
}

// Price returns the network fee in winston for storing the given
// number of bytes.
func (c *Client) Price(ctx context.Context, size int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/price/"+strconv.Itoa(size), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{Err: err, URL: c.baseURL + "/price"}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &GatewayError{Host: c.host, StatusCode: resp.StatusCode}
	}

	price, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", fmt.Errorf("failed to read price: %w", err)
	}
	return string(bytes.TrimSpace(price)), nil
}

// GetTransaction fetches a transaction record by its identifier.
func (c *Client) GetTransaction(ctx context.Context, id string) (*Transaction, error) {
	var tx Transaction
	if err := c.do(ctx, http.MethodGet, "/tx/"+url.PathEscape(id), nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetStatus fetches the confirmation status of a transaction. A
// transaction that has been accepted but not yet mined reports
// ErrPendingConfirmation.
func (c *Client) GetStatus(ctx context.Context, id string) (*TxStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/tx/"+url.PathEscape(id)+"/status", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err, URL: c.baseURL + "/tx/" + id + "/status"}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusAccepted:
		return nil, ErrPendingConfirmation
	case resp.StatusCode >= 400:
		return nil, c.parseErrorResponse(resp)
	}

	var status TxStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode status: %w", err)
	}
	return &status, nil
}

// GetData fetches the raw payload of a transaction. Gateways serve the
// payload at the bare identifier path; older ones only expose the
// base64url form under /tx/{id}/data, so that path is the fallback.
// Either way the caller receives raw bytes.
func (c *Client) GetData(ctx context.Context, id string) ([]byte, error) {
	data, err := c.getRaw(ctx, "/"+url.PathEscape(id))
	if err == nil {
		return data, nil
	}

	encoded, fallbackErr := c.getRaw(ctx, "/tx/"+url.PathEscape(id)+"/data")
	if fallbackErr != nil {
		return nil, err
	}

	decoded, decodeErr := decodeBase64URL(string(bytes.TrimSpace(encoded)))
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode transaction data: %w", decodeErr)
	}
	return decoded, nil
}

func (c *Client) getRaw(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err, URL: c.baseURL + path}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.parseErrorResponse(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read transaction data: %w", err)
	}
	return data, nil
}
