// ABOUTME: Service ties ingestion, the index, and retrieval together
// ABOUTME: Owns index lifecycle: load-or-build, rebuild on add, persistence
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kensakuhq/kensaku/internal/index"
	"github.com/kensakuhq/kensaku/internal/lang"
	"github.com/kensakuhq/kensaku/internal/models"
)

// DocumentProcessor converts document files into chunk records.
// Implemented by ingest.Processor; an interface here keeps the
// dependency pointing one way.
type DocumentProcessor interface {
	ProcessFile(path string) ([]models.Chunk, error)
	ProcessDir(dir string) ([]models.Chunk, error)
}

// Service is the engine facade the CLI and MCP surfaces talk to. All
// operations leave the index and its on-disk snapshot consistent: a
// successful mutation is always followed by a save.
type Service struct {
	documentsDir string
	indexDir     string

	index     *index.Index
	encoder   index.Encoder
	processor DocumentProcessor
	retriever *Retriever
}

// NewService wires the engine together.
func NewService(documentsDir, indexDir string, ix *index.Index, enc index.Encoder, proc DocumentProcessor, det lang.Detector) *Service {
	return &Service{
		documentsDir: documentsDir,
		indexDir:     indexDir,
		index:        ix,
		encoder:      enc,
		processor:    proc,
		retriever:    NewRetriever(ix, enc, det),
	}
}

// Initialize makes the index ready: it loads the persisted snapshot
// when one exists, and otherwise (or when rebuild is set) ingests the
// documents directory, builds, and saves. An empty documents directory
// leaves the index empty without error.
func (s *Service) Initialize(ctx context.Context, rebuild bool) error {
	if !rebuild {
		err := s.index.Load(s.indexDir)
		if err == nil {
			slog.Info("loaded persisted index", "chunks", s.index.Count())
			return nil
		}
		if !errors.Is(err, index.ErrIndexNotFound) {
			return fmt.Errorf("loading index: %w", err)
		}
		slog.Info("no persisted index, building from documents")
	}

	chunks, err := s.processor.ProcessDir(s.documentsDir)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		slog.Warn("no documents to index", "dir", s.documentsDir)
		return nil
	}
	if err := s.index.Build(ctx, chunks, s.encoder); err != nil {
		return err
	}
	if err := s.index.Save(s.indexDir); err != nil {
		return fmt.Errorf("persisting index: %w", err)
	}
	slog.Info("built index", "chunks", s.index.Count())
	return nil
}

// AddDocument ingests one file and folds it into the corpus. The
// whole index is rebuilt from the existing chunks plus the new ones,
// then saved; on any failure the previous index state survives
// untouched in memory and on disk.
func (s *Service) AddDocument(ctx context.Context, path string) (int, error) {
	added, err := s.processor.ProcessFile(path)
	if err != nil {
		return 0, err
	}
	if len(added) == 0 {
		return 0, fmt.Errorf("%s produced no indexable chunks", path)
	}

	chunks := append(s.index.Chunks(), added...)
	if err := s.index.Build(ctx, chunks, s.encoder); err != nil {
		return 0, err
	}
	if err := s.index.Save(s.indexDir); err != nil {
		return 0, fmt.Errorf("persisting index: %w", err)
	}
	slog.Info("added document", "path", path, "chunks", len(added), "total", s.index.Count())
	return len(added), nil
}

// Ask retrieves the top-k passages for a query in its detected
// language.
func (s *Service) Ask(ctx context.Context, query string, k int) ([]models.SearchResult, models.Language, error) {
	if k <= 0 {
		k = DefaultTopK
	}
	return s.retriever.Retrieve(ctx, query, k)
}

// Ready reports whether the index holds any chunks.
func (s *Service) Ready() bool { return s.index.Ready() }

// Stats summarizes the indexed corpus.
func (s *Service) Stats() models.IndexStats { return s.index.Stats() }
