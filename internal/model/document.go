package model

import (
	"path"
	"strings"
	"time"
)

// DocumentChunk is one stored fragment of an ingested file. The embedding
// vector stays inside the vector store and is never loaded here.
type DocumentChunk struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Source   string `json:"source"`
	Page     *int   `json:"page"`
	Content  string `json:"content"`
}

// DocumentSummary aggregates the chunks of one filename. It is derived on
// every request and never persisted.
type DocumentSummary struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	Source     string `json:"source"`
	Page       *int   `json:"page"`
	Preview    string `json:"preview"`
	ChunkCount int    `json:"chunk_count"`
}

// DocumentList is the listing of every stored file.
type DocumentList struct {
	Total       int               `json:"total"`
	TotalChunks int               `json:"total_chunks"`
	Documents   []DocumentSummary `json:"documents"`
}

// DocumentStats reports counts plus configuration echoes.
type DocumentStats struct {
	TotalFiles     int    `json:"total_files"`
	TotalChunks    int    `json:"total_chunks"`
	StoragePath    string `json:"storage_path"`
	EmbeddingModel string `json:"embedding_model"`
}

// DeleteResult is returned by destructive document operations.
type DeleteResult struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	DeletedChunks int    `json:"deleted_chunks"`
}

// Snapshot describes an exported copy of the vector store.
type Snapshot struct {
	Key       string    `json:"key"`
	Size      int64     `json:"size"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FilenameFromSource returns the base name of a source path recorded at
// ingestion time. Both slash and backslash separators are accepted.
func FilenameFromSource(source string) string {
	source = strings.ReplaceAll(source, `\`, "/")
	if source == "" {
		return ""
	}
	base := path.Base(source)
	if base == "." || base == "/" {
		return ""
	}
	return base
}
