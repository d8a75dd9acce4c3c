package tuma

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tuma-exchange/client-go/internal/crypto"
	"github.com/tuma-exchange/client-go/internal/uploader"
)

// SendRequest describes the document to send.
type SendRequest struct {
	// FileName is the original file name.
	FileName string
	// ContentType is the MIME type of the plaintext.
	ContentType string
	// Sender is the sending participant identity (e.g. wallet address).
	Sender string
	// Recipient is the receiving participant identity.
	Recipient string
	// Description is optional free text stored as a tag.
	Description string
	// ChargeID optionally references the payment charge gating access.
	ChargeID string
}

// SendResult reports a completed (or submitted-but-unconfirmed) send.
type SendResult struct {
	// ContentID addresses the uploaded record on the storage network.
	// It must be communicated to the recipient out-of-band.
	ContentID string
	// DocumentID is the per-document salt used for key derivation.
	DocumentID string
	// Metadata is the metadata as uploaded.
	Metadata DocumentMetadata
	// Confirmed reports whether the network confirmed the record
	// before the confirmation timeout.
	Confirmed bool
}

// Send encrypts plaintext for the request's participant pair and
// uploads it durably. Steps run strictly in order: derive key, encrypt,
// digest, upload chunks, then wait for confirmation.
//
// If the record was uploaded but not confirmed in time, Send returns
// the result together with a *ConfirmationTimeoutError: the content ID
// is valid and usable, the record just may not be queryable yet.
// If the chunk loop failed after a content ID was assigned, the
// *UploadIncompleteError carries that ID so the caller is never told a
// possibly-successful upload was lost.
func (c *Client) Send(ctx context.Context, plaintext []byte, req SendRequest, opts ...SendOption) (*SendResult, error) {
	if c.credential == nil {
		return nil, ErrMissingCredential
	}
	if req.Sender == "" || req.Recipient == "" {
		return nil, ErrMissingIdentity
	}

	cfg := &sendConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	docID := cfg.documentID
	if docID == "" {
		docID = NewDocumentID()
	}

	key, err := crypto.DeriveDocumentKey(req.Sender, req.Recipient, []byte(docID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}

	ciphertext, nonce, err := crypto.EncryptGCM(key, plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryption, err)
	}

	// The integrity digest binds the raw ciphertext bytes, computed
	// before any transport encoding.
	meta := DocumentMetadata{
		Name:        req.FileName,
		ContentType: req.ContentType,
		Size:        int64(len(plaintext)),
		Sender:      strings.ToLower(req.Sender),
		Recipient:   strings.ToLower(req.Recipient),
		Timestamp:   time.Now().UnixMilli(),
		Description: req.Description,
		IV:          crypto.ToBase64(nonce),
		ContentHash: crypto.Digest(ciphertext),
		ChargeID:    req.ChargeID,
		DocumentID:  docID,
	}

	contentID, err := c.upload(ctx, ciphertext, &meta, cfg.onProgress)
	if err != nil {
		return nil, err
	}

	result := &SendResult{
		ContentID:  contentID,
		DocumentID: docID,
		Metadata:   meta,
	}

	if cfg.noConfirm {
		return result, nil
	}

	err = uploader.WaitForConfirmation(ctx, c.primary(), contentID, c.cfg.confirmationTimeout, c.cfg.pollInterval)
	switch {
	case err == nil:
		result.Confirmed = true
		return result, nil
	case errors.Is(err, uploader.ErrNotConfirmed):
		c.logger.WithFields(logrus.Fields{
			"content_id": contentID,
			"timeout":    c.cfg.confirmationTimeout,
		}).Warn("upload submitted but not yet confirmed")
		return result, &ConfirmationTimeoutError{
			ContentID: contentID,
			Timeout:   c.cfg.confirmationTimeout,
		}
	default:
		// Cancelled mid-poll. The upload itself completed; keep the
		// result available alongside the error.
		return result, err
	}
}

// upload builds, signs, and chunk-uploads the transaction, returning
// its content ID only after the chunk loop has completed.
func (c *Client) upload(ctx context.Context, ciphertext []byte, meta *DocumentMetadata, onProgress func(float64)) (string, error) {
	upCfg := uploader.Config{
		Gateway:    c.primary(),
		Credential: c.credential,
		ChunkSize:  c.cfg.chunkSize,
		Logger:     c.logger,
	}

	tx, err := uploader.BuildTransaction(ctx, upCfg, ciphertext, encodeTags(meta))
	if err != nil {
		return "", &UploadIncompleteError{Err: err}
	}

	up := uploader.New(upCfg, tx, ciphertext)
	if err := up.Run(ctx, onProgress); err != nil {
		// The transaction ID was assigned before the chunk loop began;
		// surface it so the caller can check whether the upload in
		// fact went through.
		return "", &UploadIncompleteError{ContentID: tx.ID, Err: err}
	}

	if !up.IsComplete() {
		return "", &UploadIncompleteError{ContentID: tx.ID, Err: uploader.ErrIncomplete}
	}

	return tx.ID, nil
}
