package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunker_Split(t *testing.T) {
	c := New(WithChunkSize(10))

	chunks := c.Split("doc-1", "0123456789abcdefghij12345")

	require.Len(t, chunks, 3)
	assert.Equal(t, "0123456789", chunks[0].Content)
	assert.Equal(t, "abcdefghij", chunks[1].Content)
	assert.Equal(t, "12345", chunks[2].Content)
	for i, chunk := range chunks {
		assert.Equal(t, "doc-1", chunk.DocumentID)
		assert.Equal(t, i, chunk.Index)
	}
}

func TestChunker_Split_ExactMultiple(t *testing.T) {
	c := New(WithChunkSize(5))

	chunks := c.Split("doc-1", "aaaaabbbbb")

	require.Len(t, chunks, 2)
	assert.Equal(t, "aaaaa", chunks[0].Content)
	assert.Equal(t, "bbbbb", chunks[1].Content)
}

func TestChunker_Split_Empty(t *testing.T) {
	c := New()

	assert.Empty(t, c.Split("doc-1", ""))
}

func TestChunker_Split_Reassembles(t *testing.T) {
	c := New(WithChunkSize(7))
	content := strings.Repeat("the quick brown fox ", 20)

	chunks := c.Split("doc-1", content)

	var b strings.Builder
	for _, chunk := range chunks {
		b.WriteString(chunk.Content)
	}
	assert.Equal(t, content, b.String())
}

func TestChunker_WithChunkSize_IgnoresNonPositive(t *testing.T) {
	c := New(WithChunkSize(0))
	assert.Equal(t, DefaultChunkSize, c.chunkSize)

	c = New(WithChunkSize(-5))
	assert.Equal(t, DefaultChunkSize, c.chunkSize)
}

func TestChunker_Split_Deterministic(t *testing.T) {
	c := New(WithChunkSize(8))
	content := "stable chunking output every time"

	assert.Equal(t, c.Split("doc-1", content), c.Split("doc-1", content))
}
