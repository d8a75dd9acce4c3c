package uploader

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/tuma-exchange/client-go/internal/credential"
	"github.com/tuma-exchange/client-go/internal/gateway"
)

var (
	// ErrIncomplete is returned when the chunk loop exits before every
	// chunk has been accepted by the network.
	ErrIncomplete = errors.New("upload incomplete")
)

// Config holds the collaborators an upload needs. Nothing here is
// global state: callers construct and inject everything.
type Config struct {
	Gateway    *gateway.Client
	Credential *credential.Credential
	ChunkSize  int
	Logger     logrus.FieldLogger
}

// Progress is invoked after each accepted chunk with the percentage of
// the payload uploaded so far (0–100, non-decreasing, ending at 100).
type Progress func(pct float64)

// BuildTransaction assembles and signs a chunked-upload transaction
// for the given payload and tags. The returned transaction carries the
// data root and size but not the payload itself; chunks travel
// separately through an Uploader.
func BuildTransaction(ctx context.Context, cfg Config, data []byte, tags []gateway.Tag) (*gateway.Transaction, error) {
	anchor, err := cfg.Gateway.Anchor(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch anchor: %w", err)
	}

	reward, err := cfg.Gateway.Price(ctx, len(data))
	if err != nil {
		return nil, fmt.Errorf("fetch price: %w", err)
	}

	chunks := splitChunks(data, cfg.ChunkSize)
	root := dataRoot(chunks)

	tx := &gateway.Transaction{
		Format:   2,
		LastTx:   anchor,
		Owner:    cfg.Credential.Owner(),
		Tags:     tags,
		Quantity: "0",
		DataRoot: base64.RawURLEncoding.EncodeToString(root),
		DataSize: strconv.Itoa(len(data)),
		Reward:   reward,
	}

	sig := cfg.Credential.Sign(signaturePayload(tx))
	tx.Signature = base64.RawURLEncoding.EncodeToString(sig)

	id := sha256.Sum256(sig)
	tx.ID = base64.RawURLEncoding.EncodeToString(id[:])

	return tx, nil
}

// signaturePayload builds the deterministic byte string the credential
// signs. Every field is length-prefixed so no two distinct
// transactions can produce the same payload.
func signaturePayload(tx *gateway.Transaction) []byte {
	var buf []byte
	appendField := func(s string) {
		var l [4]byte
		binary.BigEndian.PutUint32(l[:], uint32(len(s)))
		buf = append(buf, l[:]...)
		buf = append(buf, s...)
	}

	appendField(strconv.Itoa(tx.Format))
	appendField(tx.LastTx)
	appendField(tx.Owner)
	appendField(tx.Target)
	appendField(tx.Quantity)
	appendField(tx.Reward)
	appendField(tx.DataRoot)
	appendField(tx.DataSize)
	for _, tag := range tx.Tags {
		appendField(tag.Name)
		appendField(tag.Value)
	}
	return buf
}

// Uploader drives the chunk loop for one transaction. It is not safe
// for concurrent use; uploads of different documents use separate
// Uploaders.
type Uploader struct {
	cfg      Config
	tx       *gateway.Transaction
	chunks   []chunkRef
	dataSize int
	next     int
	complete bool
}

// New prepares an upload of data for a previously built transaction.
func New(cfg Config, tx *gateway.Transaction, data []byte) *Uploader {
	return &Uploader{
		cfg:      cfg,
		tx:       tx,
		chunks:   splitChunks(data, cfg.ChunkSize),
		dataSize: len(data),
	}
}

// IsComplete reports whether every chunk has been accepted.
func (u *Uploader) IsComplete() bool {
	return u.complete
}

// PctComplete returns the percentage of the payload uploaded so far.
func (u *Uploader) PctComplete() float64 {
	if len(u.chunks) == 0 {
		if u.complete {
			return 100
		}
		return 0
	}
	return float64(u.next) / float64(len(u.chunks)) * 100
}

// TotalChunks returns the number of chunks in the payload.
func (u *Uploader) TotalChunks() int {
	return len(u.chunks)
}

// UploadChunk submits the next pending chunk. Transient gateway
// failures are retried with backoff inside the gateway client; an
// error here means the chunk could not be delivered at all.
func (u *Uploader) UploadChunk(ctx context.Context) error {
	if u.complete {
		return nil
	}
	if u.next >= len(u.chunks) {
		u.complete = true
		return nil
	}

	c := u.chunks[u.next]
	chunk := &gateway.Chunk{
		DataRoot: u.tx.DataRoot,
		DataSize: u.tx.DataSize,
		Offset:   strconv.Itoa(c.offset),
		Chunk:    base64.RawURLEncoding.EncodeToString(c.data),
	}

	if err := u.cfg.Gateway.SubmitChunk(ctx, chunk); err != nil {
		return fmt.Errorf("chunk %d/%d: %w", u.next+1, len(u.chunks), err)
	}

	u.next++
	if u.next == len(u.chunks) {
		u.complete = true
	}
	return nil
}

// Run submits the transaction header and then every chunk in order,
// reporting progress after each accepted chunk. It returns
// ErrIncomplete (wrapped) if the loop stops before completion; the
// transaction ID in u.tx remains valid either way since the header may
// already have been accepted.
func (u *Uploader) Run(ctx context.Context, onProgress Progress) error {
	if err := u.cfg.Gateway.SubmitTransaction(ctx, u.tx); err != nil {
		return fmt.Errorf("%w: submit transaction: %v", ErrIncomplete, err)
	}

	log := u.logger().WithField("tx", u.tx.ID)

	for !u.complete {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrIncomplete, err)
		}
		if err := u.UploadChunk(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrIncomplete, err)
		}

		log.WithFields(logrus.Fields{
			"pct":    u.PctComplete(),
			"chunks": u.next,
			"total":  len(u.chunks),
		}).Debug("chunk accepted")

		if onProgress != nil {
			onProgress(u.PctComplete())
		}
	}

	return nil
}

func (u *Uploader) logger() logrus.FieldLogger {
	if u.cfg.Logger != nil {
		return u.cfg.Logger
	}
	return discardLogger
}

var discardLogger logrus.FieldLogger = func() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return l
}()

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
