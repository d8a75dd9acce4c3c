package tuma

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/tuma-exchange/client-go/internal/gateway"
)

// AppName is the application identifier tag value shared by every
// record of the exchange. Queries filter on it; changing it would
// orphan all previously uploaded documents.
const AppName = "TUMA-Document-Exchange"

// Tag names of the storage-network record schema.
const (
	tagAppName      = "App-Name"
	tagContentType  = "Content-Type"
	tagDocumentName = "Document-Name"
	tagDocumentType = "Document-Type"
	tagDocumentSize = "Document-Size"
	tagSender       = "Sender"
	tagRecipient    = "Recipient"
	tagTimestamp    = "Timestamp"
	tagDescription  = "Description"
	tagIV           = "IV"
	tagSHA256       = "sha256"
	tagChargeID     = "Charge-Id"
	tagDocumentID   = "Document-Id"
)

// DocumentMetadata describes one exchanged document. It is flattened
// into record tags at upload time and parsed back from tags on
// retrieval. Once a document is encrypted, IV and ContentHash must
// accompany it; without them the document is undecryptable and
// unverifiable, deliberately.
type DocumentMetadata struct {
	// Name is the original file name.
	Name string
	// ContentType is the MIME type of the plaintext.
	ContentType string
	// Size is the plaintext size in bytes.
	Size int64
	// Sender is the sending participant identity, lower-cased.
	Sender string
	// Recipient is the receiving participant identity, lower-cased.
	Recipient string
	// Timestamp is the creation time in milliseconds since epoch.
	Timestamp int64
	// Description is optional free text.
	Description string
	// IV is the base64-encoded AES-GCM nonce.
	IV string
	// ContentHash is the hex SHA-256 digest of the raw ciphertext.
	ContentHash string
	// ChargeID optionally references the payment charge gating access.
	ChargeID string
	// DocumentID is the per-document salt for key derivation. Legacy
	// documents without one fall back to the content ID as salt.
	DocumentID string
}

// CreatedAt returns the document's creation time.
func (m *DocumentMetadata) CreatedAt() time.Time {
	return time.UnixMilli(m.Timestamp)
}

// StoredDocument is a listing entry: a content identifier plus the
// metadata recoverable from tags alone.
type StoredDocument struct {
	ContentID string
	Metadata  DocumentMetadata
}

// EncryptedDocument is a fetched record before decryption: the raw
// ciphertext bytes and the metadata parsed from its tags.
type EncryptedDocument struct {
	ContentID  string
	Ciphertext []byte
	Metadata   DocumentMetadata

	// LegacyUnverified is set when the record carries no integrity tag
	// (uploaded before integrity tagging existed) and verification was
	// therefore skipped instead of performed.
	LegacyUnverified bool
}

// Document is a fully retrieved and decrypted document.
type Document struct {
	ContentID string
	Metadata  DocumentMetadata
	Plaintext []byte

	// LegacyUnverified mirrors EncryptedDocument: true when no
	// integrity tag existed and the ciphertext digest was not checked.
	LegacyUnverified bool
}

// NewDocumentID generates a fresh per-document identifier, used both
// as the Document-Id tag and as the key-derivation salt.
func NewDocumentID() string {
	return fmt.Sprintf("doc_%d_%s", time.Now().UnixMilli(), uuid.NewString())
}

// encodeTags flattens metadata into the wire tag list. Optional fields
// produce no tag when empty; consumers treat absent tags as defaults.
func encodeTags(m *DocumentMetadata) []gateway.Tag {
	tags := []gateway.Tag{
		gateway.EncodeTag(tagContentType, m.ContentType),
		gateway.EncodeTag(tagAppName, AppName),
		gateway.EncodeTag(tagDocumentName, m.Name),
		gateway.EncodeTag(tagDocumentType, m.ContentType),
		gateway.EncodeTag(tagDocumentSize, strconv.FormatInt(m.Size, 10)),
		gateway.EncodeTag(tagSender, m.Sender),
		gateway.EncodeTag(tagRecipient, m.Recipient),
		gateway.EncodeTag(tagTimestamp, strconv.FormatInt(m.Timestamp, 10)),
	}
	if m.Description != "" {
		tags = append(tags, gateway.EncodeTag(tagDescription, m.Description))
	}
	if m.IV != "" {
		tags = append(tags, gateway.EncodeTag(tagIV, m.IV))
	}
	if m.ContentHash != "" {
		tags = append(tags, gateway.EncodeTag(tagSHA256, m.ContentHash))
	}
	if m.ChargeID != "" {
		tags = append(tags, gateway.EncodeTag(tagChargeID, m.ChargeID))
	}
	if m.DocumentID != "" {
		tags = append(tags, gateway.EncodeTag(tagDocumentID, m.DocumentID))
	}
	return tags
}

// metadataFromTags rebuilds metadata from a decoded tag map. Missing
// optional tags default to zero values rather than erroring.
func metadataFromTags(tags map[string]string) DocumentMetadata {
	size, _ := strconv.ParseInt(tags[tagDocumentSize], 10, 64)
	ts, _ := strconv.ParseInt(tags[tagTimestamp], 10, 64)

	hash := tags[tagSHA256]
	if hash == "" {
		// Some early uploads tagged the digest upper-case.
		hash = tags["SHA256"]
	}

	return DocumentMetadata{
		Name:        tags[tagDocumentName],
		ContentType: tags[tagDocumentType],
		Size:        size,
		Sender:      tags[tagSender],
		Recipient:   tags[tagRecipient],
		Timestamp:   ts,
		Description: tags[tagDescription],
		IV:          tags[tagIV],
		ContentHash: hash,
		ChargeID:    tags[tagChargeID],
		DocumentID:  tags[tagDocumentID],
	}
}
