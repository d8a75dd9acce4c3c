package tuma

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrMissingCredential is returned when a send is attempted on a
	// client constructed without a storage credential.
	ErrMissingCredential = errors.New("storage credential is required")

	// ErrMissingIdentity is returned when sender or recipient is empty.
	ErrMissingIdentity = errors.New("sender and recipient identities are required")

	// ErrKeyDerivation is returned when the document key cannot be
	// derived. Not retryable: the inputs are malformed.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrEncryption is returned when document encryption fails.
	ErrEncryption = errors.New("encryption failed")

	// ErrDecryption is returned when document decryption fails. The
	// key, IV, or ciphertext do not match; retrying with the same
	// inputs can never succeed.
	ErrDecryption = errors.New("decryption failed")

	// ErrIntegrity is returned when the fetched ciphertext does not
	// match its integrity tag. Decryption is never attempted.
	ErrIntegrity = errors.New("integrity check failed")

	// ErrUploadIncomplete is returned when the chunk loop stopped
	// before every chunk was accepted.
	ErrUploadIncomplete = errors.New("upload incomplete")

	// ErrConfirmationTimeout is returned when an uploaded document was
	// not confirmed within the wall-clock bound. The upload itself
	// succeeded and the content ID is usable.
	ErrConfirmationTimeout = errors.New("confirmation timed out")

	// ErrRetrieval is returned when a document could not be fetched
	// from any configured gateway.
	ErrRetrieval = errors.New("retrieval failed")

	// ErrPermission is returned when the caller is neither the sender
	// nor the recipient of a document.
	ErrPermission = errors.New("caller is not a participant of this document")

	// ErrAccessPending is returned when the access gate has not yet
	// confirmed payment for a document.
	ErrAccessPending = errors.New("document access not yet confirmed")

	// ErrNotFound is returned when no document exists for a content ID.
	ErrNotFound = errors.New("document not found")
)

// TumaError is implemented by all SDK error types.
type TumaError interface {
	error
	TumaError() // marker method
}

// DecryptionError represents a failure to decrypt a document. It means
// wrong key material, wrong IV, or tampered ciphertext; it is not a
// permissions or network problem and must not be retried.
type DecryptionError struct {
	ContentID string
	Err       error
}

func (e *DecryptionError) Error() string {
	return fmt.Sprintf("cannot decrypt document %s: you may not be authorized or the data is corrupted", e.ContentID)
}

// Unwrap returns the underlying error.
func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *DecryptionError) Is(target error) bool {
	return target == ErrDecryption
}

// TumaError implements the TumaError interface.
func (e *DecryptionError) TumaError() {}

// IntegrityError indicates the fetched ciphertext digest does not
// match the stored integrity tag: tampering or transmission
// corruption, distinct from a wrong-key decryption failure.
type IntegrityError struct {
	ContentID string
	Expected  string
	Actual    string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("document %s failed integrity check: digest %s, expected %s", e.ContentID, e.Actual, e.Expected)
}

// Is implements errors.Is for sentinel error matching.
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

// TumaError implements the TumaError interface.
func (e *IntegrityError) TumaError() {}

// UploadIncompleteError indicates the chunk loop did not finish. If a
// content ID was assigned before the failure it is carried here: the
// upload may in fact have succeeded, and the caller must be able to
// check rather than being told the document was lost.
type UploadIncompleteError struct {
	ContentID string
	Err       error
}

func (e *UploadIncompleteError) Error() string {
	if e.ContentID != "" {
		return fmt.Sprintf("upload of %s incomplete: %v", e.ContentID, e.Err)
	}
	return fmt.Sprintf("upload incomplete: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *UploadIncompleteError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *UploadIncompleteError) Is(target error) bool {
	return target == ErrUploadIncomplete
}

// TumaError implements the TumaError interface.
func (e *UploadIncompleteError) TumaError() {}

// ConfirmationTimeoutError is a soft failure: the payload was durably
// submitted under ContentID but the network had not confirmed it
// within the timeout. Callers should treat this as "check back later",
// not as a lost upload.
type ConfirmationTimeoutError struct {
	ContentID string
	Timeout   time.Duration
}

func (e *ConfirmationTimeoutError) Error() string {
	return fmt.Sprintf("document %s uploaded but not confirmed within %v", e.ContentID, e.Timeout)
}

// Is implements errors.Is for sentinel error matching.
func (e *ConfirmationTimeoutError) Is(target error) bool {
	return target == ErrConfirmationTimeout
}

// TumaError implements the TumaError interface.
func (e *ConfirmationTimeoutError) TumaError() {}

// RetrievalError aggregates the failure after every configured gateway
// has been tried. Err holds the last underlying error.
type RetrievalError struct {
	ContentID string
	Gateways  []string
	Err       error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("failed to retrieve %s from %d gateways: %v", e.ContentID, len(e.Gateways), e.Err)
}

// Unwrap returns the last underlying gateway error.
func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *RetrievalError) Is(target error) bool {
	return target == ErrRetrieval
}

// TumaError implements the TumaError interface.
func (e *RetrievalError) TumaError() {}

// PermissionError is raised before any decryption attempt when the
// caller identity is neither the document's sender nor its recipient.
type PermissionError struct {
	ContentID string
	Caller    string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("identity %s is not a participant of document %s", e.Caller, e.ContentID)
}

// Is implements errors.Is for sentinel error matching.
func (e *PermissionError) Is(target error) bool {
	return target == ErrPermission
}

// TumaError implements the TumaError interface.
func (e *PermissionError) TumaError() {}

// AccessPendingError indicates the access gate has not confirmed
// payment for the document. Anything short of an explicit confirmation
// is treated as not yet accessible. When the gate itself could not be
// reached, the transport error is carried in Err so callers can tell
// an unreachable gate from a genuinely pending charge.
type AccessPendingError struct {
	ContentID string
	Status    AccessStatus
	Err       error
}

func (e *AccessPendingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("access to document %s not confirmed (status %s): %v", e.ContentID, e.Status, e.Err)
	}
	return fmt.Sprintf("access to document %s not confirmed (status %s)", e.ContentID, e.Status)
}

// Unwrap returns the gate transport error, if any.
func (e *AccessPendingError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *AccessPendingError) Is(target error) bool {
	return target == ErrAccessPending
}

// TumaError implements the TumaError interface.
func (e *AccessPendingError) TumaError() {}
