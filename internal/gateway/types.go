package gateway

import (
	"encoding/base64"
)

// Tag is one key/value pair attached to a transaction. On the
// transaction endpoints both fields are base64url-encoded; GraphQL
// returns them as plain strings.
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Transaction is the wire representation of a storage-network record.
// Binary fields (owner, data root, signature, tag names and values)
// are base64url-encoded without padding.
type Transaction struct {
	Format    int    `json:"format"`
	ID        string `json:"id"`
	LastTx    string `json:"last_tx"`
	Owner     string `json:"owner"`
	Tags      []Tag  `json:"tags"`
	Target    string `json:"target"`
	Quantity  string `json:"quantity"`
	DataRoot  string `json:"data_root"`
	DataSize  string `json:"data_size"`
	Data      string `json:"data"`
	Reward    string `json:"reward"`
	Signature string `json:"signature"`
}

// Chunk is one piece of a transaction payload submitted via the
// chunked-upload endpoint.
type Chunk struct {
	DataRoot string `json:"data_root"`
	DataSize string `json:"data_size"`
	Offset   string `json:"offset"`
	Chunk    string `json:"chunk"`
}

// TxStatus is the confirmation status of a mined transaction.
type TxStatus struct {
	BlockHeight   int64  `json:"block_height"`
	BlockHash     string `json:"block_indep_hash"`
	Confirmations int    `json:"number_of_confirmations"`
}

// EncodeTag builds a wire tag from a plain name/value pair.
func EncodeTag(name, value string) Tag {
	return Tag{
		Name:  base64.RawURLEncoding.EncodeToString([]byte(name)),
		Value: base64.RawURLEncoding.EncodeToString([]byte(value)),
	}
}

// DecodeWireTags normalizes a transaction-endpoint tag list into a
// plain key/value map, base64url-decoding each name and value. A tag
// that fails to decode is kept verbatim rather than dropped.
func DecodeWireTags(tags []Tag) map[string]string {
	out := make(map[string]string, len(tags))
	for _, tag := range tags {
		name := tag.Name
		if decoded, err := decodeBase64URL(tag.Name); err == nil {
			name = string(decoded)
		}
		value := tag.Value
		if decoded, err := decodeBase64URL(tag.Value); err == nil {
			value = string(decoded)
		}
		out[name] = value
	}
	return out
}

// TagMap normalizes an already-decoded tag list (as returned by
// GraphQL) into a key/value map. Together with DecodeWireTags this
// makes the flat tag list the contract: callers never see the
// representation a particular endpoint used.
func TagMap(tags []Tag) map[string]string {
	out := make(map[string]string, len(tags))
	for _, tag := range tags {
		out[tag.Name] = tag.Value
	}
	return out
}

// decodeBase64URL decodes base64url with or without padding.
func decodeBase64URL(s string) ([]byte, error) {
	if data, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.URLEncoding.DecodeString(s)
}
