// Package vectorstore abstracts the chunk store written by the ingestion
// pipeline. Embedding generation and similarity search live in the backing
// store; this package only reads chunk metadata and removes chunks.
package vectorstore

import (
	"context"
	"io"
	"strconv"
	"strings"

	"campusapi/internal/model"
)

// Metadata keys written alongside every chunk at ingestion time.
const (
	MetaSource   = "source"
	MetaFilename = "filename"
	MetaPage     = "page"
)

// ChunkStore is the data access contract for stored document chunks.
type ChunkStore interface {
	// All returns every stored chunk in the store's natural order.
	All(ctx context.Context) ([]model.DocumentChunk, error)

	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int, error)

	// Delete removes the given chunk ids in one batch and returns how many
	// were actually removed. Unknown ids are ignored.
	Delete(ctx context.Context, ids ...string) (int, error)

	// Reset irreversibly removes every chunk and returns how many were removed.
	Reset(ctx context.Context) (int, error)

	// Location echoes where the store keeps its data.
	Location() string
}

// Exporter is implemented by stores that can serialize their full content.
type Exporter interface {
	Export(ctx context.Context, w io.Writer) error
}

// ChunkFromMetadata builds a chunk from the flat metadata map used by
// embedded vector stores. The filename falls back to the base name of the
// source path; a missing or non-numeric page yields nil.
func ChunkFromMetadata(id, content string, meta map[string]string) model.DocumentChunk {
	chunk := model.DocumentChunk{
		ID:       id,
		Source:   meta[MetaSource],
		Filename: strings.TrimSpace(meta[MetaFilename]),
		Content:  content,
	}
	if chunk.Filename == "" {
		chunk.Filename = model.FilenameFromSource(chunk.Source)
	}
	if raw, ok := meta[MetaPage]; ok {
		if page, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			chunk.Page = &page
		}
	}
	return chunk
}
