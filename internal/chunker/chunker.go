// Package chunker splits document content into fixed-size chunks,
// the page-like units the search index is built over.
package chunker

import "github.com/docdeck/docdeck-cli/internal/core/domain"

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 2000

// Chunker produces ordered, bounded-size content chunks. Chunk order
// is stable: re-splitting the same content yields identical chunks.
type Chunker struct {
	chunkSize int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Split divides content into consecutive chunks of at most chunkSize
// bytes, indexed from 0. Empty content produces no chunks.
func (c *Chunker) Split(docID, content string) []domain.ContentChunk {
	if content == "" {
		return nil
	}

	chunks := make([]domain.ContentChunk, 0, len(content)/c.chunkSize+1)
	index := 0

	for start := 0; start < len(content); start += c.chunkSize {
		end := start + c.chunkSize
		if end > len(content) {
			end = len(content)
		}

		chunks = append(chunks, domain.ContentChunk{
			DocumentID: docID,
			Index:      index,
			Content:    content[start:end],
		})
		index++
	}

	return chunks
}
