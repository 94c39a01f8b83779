package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"campusapi/internal/model"
	"campusapi/internal/storage"
	"campusapi/internal/vectorstore"
)

const (
	previewLength   = 100
	unknownFilename = "unknown"
)

// DocumentService defines the management use cases over ingested documents.
// A document is the set of chunks sharing one filename.
type DocumentService interface {
	// ListAll returns one summary per filename with overall counts.
	ListAll(ctx context.Context) (*model.DocumentList, error)

	// SearchByFilename returns the summaries whose filename contains query,
	// ignoring case. No match yields an empty slice.
	SearchByFilename(ctx context.Context, query string) ([]model.DocumentSummary, error)

	// DeleteBySource removes every chunk whose filename equals filename exactly.
	DeleteBySource(ctx context.Context, filename string) (*model.DeleteResult, error)

	// DeleteAll irreversibly removes every chunk, taking a snapshot first
	// when snapshot storage is configured.
	DeleteAll(ctx context.Context) (*model.DeleteResult, error)

	// Stats reports counts plus configuration echoes.
	Stats(ctx context.Context) (*model.DocumentStats, error)

	// Snapshot exports the store to object storage and returns a download link.
	Snapshot(ctx context.Context) (*model.Snapshot, error)
}

// DocumentServiceConfig holds the static values echoed or used by the service.
type DocumentServiceConfig struct {
	Collection     string
	EmbeddingModel string
	URLExpiry      time.Duration
}

type documentService struct {
	store   vectorstore.ChunkStore
	objects storage.Storage
	cfg     DocumentServiceConfig
	now     func() time.Time
}

// NewDocumentService constructs a DocumentService. objects may be nil, in
// which case snapshots are disabled.
func NewDocumentService(store vectorstore.ChunkStore, objects storage.Storage, cfg DocumentServiceConfig) DocumentService {
	if cfg.URLExpiry <= 0 {
		cfg.URLExpiry = 15 * time.Minute
	}
	return &documentService{store: store, objects: objects, cfg: cfg, now: time.Now}
}

func (s *documentService) ListAll(ctx context.Context) (*model.DocumentList, error) {
	chunks, err := s.store.All(ctx)
	if err != nil {
		return nil, unavailable("list chunks", err)
	}
	docs := summarize(chunks)
	return &model.DocumentList{
		Total:       len(docs),
		TotalChunks: len(chunks),
		Documents:   docs,
	}, nil
}

func (s *documentService) SearchByFilename(ctx context.Context, query string) ([]model.DocumentSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, NewValidationError(map[string]string{"filename": "field required"})
	}

	chunks, err := s.store.All(ctx)
	if err != nil {
		return nil, unavailable("list chunks", err)
	}

	needle := strings.ToLower(query)
	matched := make([]model.DocumentChunk, 0, len(chunks))
	for _, c := range chunks {
		if strings.Contains(strings.ToLower(filenameOf(c)), needle) {
			matched = append(matched, c)
		}
	}
	return summarize(matched), nil
}

func (s *documentService) DeleteBySource(ctx context.Context, filename string) (*model.DeleteResult, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, NewValidationError(map[string]string{"filename": "field required"})
	}

	chunks, err := s.store.All(ctx)
	if err != nil {
		return nil, unavailable("list chunks", err)
	}

	var ids []string
	for _, c := range chunks {
		if filenameOf(c) == filename {
			ids = append(ids, c.ID)
		}
	}
	if len(ids) == 0 {
		return nil, notFound("document %s", filename)
	}

	n, err := s.store.Delete(ctx, ids...)
	if err != nil {
		return nil, unavailable("delete chunks", err)
	}
	return &model.DeleteResult{
		Status:        "success",
		Message:       fmt.Sprintf("Deleted document: %s", filename),
		DeletedChunks: n,
	}, nil
}

func (s *documentService) DeleteAll(ctx context.Context) (*model.DeleteResult, error) {
	if s.snapshotsEnabled() {
		count, err := s.store.Count(ctx)
		if err != nil {
			return nil, unavailable("count chunks", err)
		}
		if count > 0 {
			if _, err := s.takeSnapshot(ctx); err != nil {
				return nil, err
			}
		}
	}

	n, err := s.store.Reset(ctx)
	if err != nil {
		return nil, unavailable("reset store", err)
	}
	return &model.DeleteResult{
		Status:        "success",
		Message:       "All documents have been deleted",
		DeletedChunks: n,
	}, nil
}

func (s *documentService) Stats(ctx context.Context) (*model.DocumentStats, error) {
	chunks, err := s.store.All(ctx)
	if err != nil {
		return nil, unavailable("list chunks", err)
	}
	files := make(map[string]struct{})
	for _, c := range chunks {
		files[filenameOf(c)] = struct{}{}
	}
	return &model.DocumentStats{
		TotalFiles:     len(files),
		TotalChunks:    len(chunks),
		StoragePath:    s.store.Location(),
		EmbeddingModel: s.cfg.EmbeddingModel,
	}, nil
}

func (s *documentService) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	snap, err := s.takeSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	url, err := s.objects.PresignGet(ctx, snap.Key, s.cfg.URLExpiry)
	if err != nil {
		return nil, unavailable("presign snapshot", err)
	}
	snap.URL = url
	return snap, nil
}

func (s *documentService) snapshotsEnabled() bool {
	if s.objects == nil {
		return false
	}
	_, ok := s.store.(vectorstore.Exporter)
	return ok
}

// takeSnapshot streams the store export straight into object storage.
func (s *documentService) takeSnapshot(ctx context.Context) (*model.Snapshot, error) {
	if !s.snapshotsEnabled() {
		return nil, fmt.Errorf("%w: snapshots are not configured", ErrUnavailable)
	}
	exporter := s.store.(vectorstore.Exporter)

	created := s.now().UTC()
	key := fmt.Sprintf("snapshots/%s/%s-%s.gob", s.cfg.Collection, created.Format("20060102T150405Z"), uuid.NewString())

	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(exporter.Export(ctx, pw))
	}()

	info, err := s.objects.Put(ctx, key, pr, storage.PutObjectOptions{
		Size:        -1,
		ContentType: "application/octet-stream",
		Metadata:    map[string]string{"collection": s.cfg.Collection},
	})
	// Unblocks the exporter if Put returned before draining the pipe.
	_ = pr.CloseWithError(io.ErrClosedPipe)
	if err != nil {
		return nil, unavailable("upload snapshot", err)
	}

	return &model.Snapshot{Key: info.Key, Size: info.Size, CreatedAt: created}, nil
}

// summarize groups chunks by filename. The first chunk seen for a filename
// provides the id, source, page and preview. Output is sorted by filename.
func summarize(chunks []model.DocumentChunk) []model.DocumentSummary {
	index := make(map[string]int)
	docs := make([]model.DocumentSummary, 0)
	for _, c := range chunks {
		name := filenameOf(c)
		if i, ok := index[name]; ok {
			docs[i].ChunkCount++
			continue
		}
		index[name] = len(docs)
		docs = append(docs, model.DocumentSummary{
			ID:         c.ID,
			Filename:   name,
			Source:     c.Source,
			Page:       c.Page,
			Preview:    preview(c.Content),
			ChunkCount: 1,
		})
	}
	sort.SliceStable(docs, func(i, j int) bool { return docs[i].Filename < docs[j].Filename })
	return docs
}

func filenameOf(c model.DocumentChunk) string {
	if c.Filename != "" {
		return c.Filename
	}
	if name := model.FilenameFromSource(c.Source); name != "" {
		return name
	}
	return unknownFilename
}

func preview(content string) string {
	if utf8.RuneCountInString(content) <= previewLength {
		return content
	}
	return string([]rune(content)[:previewLength]) + "..."
}
