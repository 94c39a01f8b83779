package pgvector

import (
	"context"
	"database/sql"
	"fmt"

	pgv "github.com/pgvector/pgvector-go"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/extra/bundebug"

	"campusapi/internal/model"
	"campusapi/internal/vectorstore"
)

// TableName is the table the ingestion pipeline writes chunks to.
const TableName = "document_chunks"

// ChunkRow maps one row of the chunk table.
type ChunkRow struct {
	bun.BaseModel `bun:"table:document_chunks,alias:dc"`

	ID        string     `bun:"id,pk"`
	Filename  string     `bun:"filename,notnull"`
	Source    string     `bun:"source,notnull"`
	Page      *int       `bun:"page"`
	Content   string     `bun:"content,notnull"`
	Embedding pgv.Vector `bun:"embedding,type:vector"`
}

// Store is a vectorstore.ChunkStore backed by a pgvector table accessed through bun.
type Store struct {
	db   *bun.DB
	dims int
}

var _ vectorstore.ChunkStore = (*Store)(nil)

// NewStore wraps an open database handle. When debug is set every query is
// printed by bundebug.
func NewStore(sqldb *sql.DB, dims int, debug bool) *Store {
	db := bun.NewDB(sqldb, pgdialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return &Store{db: db, dims: dims}
}

// EnsureSchema creates the vector extension and the chunk table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s.dims <= 0 {
		return fmt.Errorf("embedding dimensions must be positive")
	}
	if _, err := s.db.ExecContext(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("create vector extension: %w", err)
	}

	// The column type depends on the embedding model, so it cannot live in a struct tag.
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
  id        TEXT PRIMARY KEY,
  filename  TEXT NOT NULL,
  source    TEXT NOT NULL,
  page      INTEGER,
  content   TEXT NOT NULL,
  embedding vector(%d)
)`, TableName, s.dims)
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create %s: %w", TableName, err)
	}
	return nil
}

// All returns every chunk ordered by source, page and id.
func (s *Store) All(ctx context.Context) ([]model.DocumentChunk, error) {
	var rows []ChunkRow
	err := s.db.NewSelect().
		Model(&rows).
		Column("id", "filename", "source", "page", "content").
		OrderExpr("source ASC, page ASC NULLS FIRST, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select chunks: %w", err)
	}

	chunks := make([]model.DocumentChunk, len(rows))
	for i, r := range rows {
		chunks[i] = model.DocumentChunk{
			ID:       r.ID,
			Filename: r.Filename,
			Source:   r.Source,
			Page:     r.Page,
			Content:  r.Content,
		}
		if chunks[i].Filename == "" {
			chunks[i].Filename = model.FilenameFromSource(r.Source)
		}
	}
	return chunks, nil
}

// Count returns the number of rows in the chunk table.
func (s *Store) Count(ctx context.Context) (int, error) {
	n, err := s.db.NewSelect().Model((*ChunkRow)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return n, nil
}

// Delete removes the given ids in one statement.
func (s *Store) Delete(ctx context.Context, ids ...string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.db.NewDelete().
		Model((*ChunkRow)(nil)).
		Where("id IN (?)", bun.In(ids)).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete chunks: %w", err)
	}
	return affected(res)
}

// Reset removes every row of the chunk table.
func (s *Store) Reset(ctx context.Context) (int, error) {
	res, err := s.db.NewDelete().
		Model((*ChunkRow)(nil)).
		Where("TRUE").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("reset chunks: %w", err)
	}
	return affected(res)
}

// Location names the backing table.
func (s *Store) Location() string {
	return "postgres:" + TableName
}

func affected(res sql.Result) (int, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
