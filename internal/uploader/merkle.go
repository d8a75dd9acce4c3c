package uploader

import (
	"crypto/sha256"
)

// DefaultChunkSize is the payload chunk size for uploads.
const DefaultChunkSize = 256 * 1024

// chunkRef is one payload chunk with its absolute byte offset.
type chunkRef struct {
	offset int
	data   []byte
}

// splitChunks slices data into chunks of at most size bytes.
func splitChunks(data []byte, size int) []chunkRef {
	if size <= 0 {
		size = DefaultChunkSize
	}

	chunks := make([]chunkRef, 0, (len(data)+size-1)/size)
	for offset := 0; offset < len(data); offset += size {
		end := offset + size
		if end > len(data) {
			end = len(data)
		}
		chunks = append(chunks, chunkRef{offset: offset, data: data[offset:end]})
	}
	return chunks
}

// dataRoot computes the Merkle root binding the payload to the
// transaction header: leaf hashes are the SHA-256 of each chunk, and
// interior nodes hash the concatenation of their children. An odd node
// is promoted unchanged to the next level.
func dataRoot(chunks []chunkRef) []byte {
	if len(chunks) == 0 {
		sum := sha256.Sum256(nil)
		return sum[:]
	}

	level := make([][]byte, len(chunks))
	for i, c := range chunks {
		sum := sha256.Sum256(c.data)
		level[i] = sum[:]
	}

	for len(level) > 1 {
		next := make([][]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next = append(next, level[i])
				break
			}
			h := sha256.New()
			h.Write(level[i])
			h.Write(level[i+1])
			next = append(next, h.Sum(nil))
		}
		level = next
	}

	return level[0]
}
