// Package gateway implements the HTTP client for storage-network
// gateways: transaction and chunk submission, confirmation status,
// payload retrieval, and tag-filtered GraphQL queries.
//
// One Client speaks to one gateway host. Redundancy across mirrored
// gateways is layered above this package by iterating clients in
// order. Requests retry transparently on network errors and on
// retryable status codes with exponential backoff and jitter.
package gateway
