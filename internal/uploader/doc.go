// Package uploader implements the durable chunked-upload engine:
// transaction assembly and signing, the chunk submission loop with
// progress reporting, and confirmation polling.
//
// The invariant the package exists to protect: a transaction ID is
// only treated as a successful upload once the chunk loop has reported
// completion. Confirmation is a softer property: a transaction that
// misses the confirmation window is still durably submitted, and its
// ID remains valid.
package uploader
