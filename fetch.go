package tuma

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tuma-exchange/client-go/internal/crypto"
	"github.com/tuma-exchange/client-go/internal/gateway"
)

// Fetch retrieves the ciphertext and metadata for a content ID,
// trying each configured gateway in order and stopping at the first
// that yields both the record and its payload. Fetch performs no
// integrity check and no decryption; see Open for the full path.
func (c *Client) Fetch(ctx context.Context, contentID string) (*EncryptedDocument, error) {
	if contentID == "" {
		return nil, fmt.Errorf("%w: empty content ID", ErrRetrieval)
	}

	var lastErr error
	for _, gw := range c.gateways {
		tx, err := gw.GetTransaction(ctx, contentID)
		if err != nil {
			c.logger.WithFields(logrus.Fields{
				"gateway":    gw.Host(),
				"content_id": contentID,
			}).WithError(err).Debug("gateway record fetch failed")
			lastErr = err
			continue
		}

		data, err := gw.GetData(ctx, contentID)
		if err != nil {
			c.logger.WithFields(logrus.Fields{
				"gateway":    gw.Host(),
				"content_id": contentID,
			}).WithError(err).Debug("gateway payload fetch failed")
			lastErr = err
			continue
		}

		return &EncryptedDocument{
			ContentID:  contentID,
			Ciphertext: data,
			Metadata:   metadataFromTags(gateway.DecodeWireTags(tx.Tags)),
		}, nil
	}

	return nil, &RetrievalError{
		ContentID: contentID,
		Gateways:  c.Gateways(),
		Err:       lastErr,
	}
}

// Open fetches, verifies, authorizes, and decrypts a document for the
// calling participant, strictly in that order. The integrity and
// authorization checks both happen before any decryption attempt.
func (c *Client) Open(ctx context.Context, contentID, callerIdentity string) (*Document, error) {
	enc, err := c.Fetch(ctx, contentID)
	if err != nil {
		return nil, err
	}

	if err := c.verifyIntegrity(enc); err != nil {
		return nil, err
	}

	if err := c.authorize(enc, callerIdentity); err != nil {
		return nil, err
	}

	if err := c.checkAccessGate(ctx, enc, callerIdentity); err != nil {
		return nil, err
	}

	plaintext, err := c.Decrypt(enc, callerIdentity)
	if err != nil {
		return nil, err
	}

	return &Document{
		ContentID:        enc.ContentID,
		Metadata:         enc.Metadata,
		Plaintext:        plaintext,
		LegacyUnverified: enc.LegacyUnverified,
	}, nil
}

// verifyIntegrity recomputes the ciphertext digest and compares it to
// the stored tag. A record with no integrity tag predates integrity
// tagging: verification is skipped explicitly, flagged on the
// document, and logged rather than silently treated as verified.
func (c *Client) verifyIntegrity(enc *EncryptedDocument) error {
	if enc.Metadata.ContentHash == "" {
		enc.LegacyUnverified = true
		c.logger.WithField("content_id", enc.ContentID).
			Warn("record has no integrity tag; verification skipped (legacy document)")
		return nil
	}

	if !crypto.VerifyDigest(enc.Ciphertext, enc.Metadata.ContentHash) {
		return &IntegrityError{
			ContentID: enc.ContentID,
			Expected:  enc.Metadata.ContentHash,
			Actual:    crypto.Digest(enc.Ciphertext),
		}
	}
	return nil
}

// authorize enforces that the caller is one of the two participants.
// Must run before any decryption attempt, even though the derived key
// would be wrong for anyone else.
func (c *Client) authorize(enc *EncryptedDocument, callerIdentity string) error {
	caller := strings.ToLower(callerIdentity)
	if caller == "" ||
		(caller != strings.ToLower(enc.Metadata.Sender) &&
			caller != strings.ToLower(enc.Metadata.Recipient)) {
		return &PermissionError{ContentID: enc.ContentID, Caller: callerIdentity}
	}
	return nil
}

// checkAccessGate consults the payment gate for callers other than the
// original uploader. Anything short of an explicit confirmation keeps
// the document inaccessible.
func (c *Client) checkAccessGate(ctx context.Context, enc *EncryptedDocument, callerIdentity string) error {
	if c.accessGate == nil {
		return nil
	}
	if strings.EqualFold(callerIdentity, enc.Metadata.Sender) {
		return nil
	}

	ref := enc.Metadata.ChargeID
	if ref == "" {
		ref = enc.ContentID
	}

	status, err := c.accessGate.Status(ctx, ref)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"content_id": enc.ContentID,
			"charge_ref": ref,
		}).WithError(err).Warn("access gate unreachable; treating document as not yet accessible")
		return &AccessPendingError{ContentID: enc.ContentID, Status: AccessPending, Err: err}
	}
	if status != AccessConfirmed {
		return &AccessPendingError{ContentID: enc.ContentID, Status: status}
	}
	return nil
}

// Decrypt decrypts a fetched document for the calling participant.
// The caller must be one of the document's two participants; this is
// re-checked here so direct Decrypt calls cannot bypass Open's
// authorization. The salt is the document's DocumentID; records from
// before per-document salts fall back to the content ID itself.
func (c *Client) Decrypt(enc *EncryptedDocument, callerIdentity string) ([]byte, error) {
	if err := c.authorize(enc, callerIdentity); err != nil {
		return nil, err
	}

	meta := &enc.Metadata

	salt := meta.DocumentID
	if salt == "" {
		salt = enc.ContentID
		c.logger.WithField("content_id", enc.ContentID).
			Info("record has no document ID; using content ID as key salt (legacy document)")
	}

	if meta.IV == "" {
		return nil, &DecryptionError{
			ContentID: enc.ContentID,
			Err:       fmt.Errorf("record has no IV tag"),
		}
	}

	nonce, err := crypto.DecodeBase64(meta.IV)
	if err != nil {
		return nil, &DecryptionError{
			ContentID: enc.ContentID,
			Err:       fmt.Errorf("decode IV: %w", err),
		}
	}

	key, err := crypto.DeriveDocumentKey(meta.Sender, meta.Recipient, []byte(salt))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}

	plaintext, err := crypto.DecryptGCM(key, nonce, enc.Ciphertext)
	if err != nil {
		return nil, &DecryptionError{ContentID: enc.ContentID, Err: err}
	}

	return plaintext, nil
}
