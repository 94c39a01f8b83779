package chromem

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/philippgille/chromem-go"

	"campusapi/internal/config"
	"campusapi/internal/model"
	"campusapi/internal/vectorstore"
)

// Store is a vectorstore.ChunkStore backed by a chromem-go collection.
type Store struct {
	db       *chromem.DB
	name     string
	location string
	compress bool
	probe    []float32

	mu         sync.RWMutex
	collection *chromem.Collection
}

var (
	_ vectorstore.ChunkStore = (*Store)(nil)
	_ vectorstore.Exporter   = (*Store)(nil)
)

// NewPersistentStore opens (or creates) the persistent chromem database at
// cfg.Path and binds the configured collection.
func NewPersistentStore(cfg config.VectorConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("vector db path is required")
	}
	db, err := chromem.NewPersistentDB(cfg.Path, cfg.Compress)
	if err != nil {
		return nil, fmt.Errorf("open chromem db: %w", err)
	}
	return NewStore(db, cfg)
}

// NewStore binds the configured collection of an already opened database.
func NewStore(db *chromem.DB, cfg config.VectorConfig) (*Store, error) {
	if cfg.Collection == "" {
		return nil, fmt.Errorf("vector collection name is required")
	}
	if cfg.Dimensions <= 0 {
		return nil, fmt.Errorf("embedding dimensions must be positive")
	}

	// Embeddings are produced at ingestion time, so no embedding func is bound.
	c, err := db.GetOrCreateCollection(cfg.Collection, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get or create collection: %w", err)
	}

	// Any unit vector of the model's dimension ranks every chunk, which is
	// how the whole collection is read back.
	probe := make([]float32, cfg.Dimensions)
	probe[0] = 1

	return &Store{
		db:         db,
		name:       cfg.Collection,
		location:   cfg.Path,
		compress:   cfg.Compress,
		probe:      probe,
		collection: c,
	}, nil
}

func (s *Store) current() *chromem.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collection
}

// All returns every chunk ordered by source, page and id.
func (s *Store) All(ctx context.Context) ([]model.DocumentChunk, error) {
	c := s.current()
	n := c.Count()
	if n == 0 {
		return []model.DocumentChunk{}, nil
	}

	results, err := c.QueryEmbedding(ctx, s.probe, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", s.name, err)
	}

	chunks := make([]model.DocumentChunk, len(results))
	for i, r := range results {
		chunks[i] = vectorstore.ChunkFromMetadata(r.ID, r.Content, r.Metadata)
	}
	sort.SliceStable(chunks, func(i, j int) bool {
		a, b := chunks[i], chunks[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if pa, pb := pageOf(a), pageOf(b); pa != pb {
			return pa < pb
		}
		return a.ID < b.ID
	})
	return chunks, nil
}

// Count returns the number of documents in the collection.
func (s *Store) Count(_ context.Context) (int, error) {
	return s.current().Count(), nil
}

// Delete removes the given ids and returns how many disappeared.
func (s *Store) Delete(ctx context.Context, ids ...string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	c := s.current()
	before := c.Count()
	if err := c.Delete(ctx, nil, nil, ids...); err != nil {
		return 0, fmt.Errorf("delete from collection %s: %w", s.name, err)
	}
	return before - c.Count(), nil
}

// Reset drops the collection and creates it again empty.
func (s *Store) Reset(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.collection.Count()
	if err := s.db.DeleteCollection(s.name); err != nil {
		return 0, fmt.Errorf("drop collection %s: %w", s.name, err)
	}
	c, err := s.db.GetOrCreateCollection(s.name, nil, nil)
	if err != nil {
		return 0, fmt.Errorf("recreate collection %s: %w", s.name, err)
	}
	s.collection = c
	return n, nil
}

// Location returns the persistence directory.
func (s *Store) Location() string {
	return s.location
}

// Export writes a gob snapshot of the collection to w.
func (s *Store) Export(_ context.Context, w io.Writer) error {
	pattern := "chromem-*.gob"
	if s.compress {
		pattern += ".gz"
	}
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	path := f.Name()
	_ = f.Close()
	defer os.Remove(path)

	s.mu.RLock()
	err = s.db.ExportToFile(path, s.compress, "", s.name)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("export collection %s: %w", s.name, err)
	}

	f, err = os.Open(path)
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copy export: %w", err)
	}
	return nil
}

func pageOf(c model.DocumentChunk) int {
	if c.Page == nil {
		return -1
	}
	return *c.Page
}
