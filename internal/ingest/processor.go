// ABOUTME: Document ingestion: file discovery, text extraction, chunking
// ABOUTME: Produces Chunk records with detected language and sequence order
package ingest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kensakuhq/kensaku/internal/core"
	"github.com/kensakuhq/kensaku/internal/lang"
	"github.com/kensakuhq/kensaku/internal/models"
)

// Extractor pulls plain text out of a document file.
type Extractor interface {
	// Extensions lists the lowercase file extensions (with dot) this
	// extractor handles.
	Extensions() []string
	// Extract returns the document's text content.
	Extract(path string) (string, error)
}

// PlainTextExtractor reads .txt and .md files verbatim.
type PlainTextExtractor struct{}

func (PlainTextExtractor) Extensions() []string { return []string{".txt", ".md"} }

func (PlainTextExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// Processor turns document files into chunk records ready for
// indexing. Extraction failures skip the file with a warning rather
// than aborting the whole ingest.
type Processor struct {
	chunker    *core.TextChunker
	detector   lang.Detector
	extractors map[string]Extractor
}

// NewProcessor creates a processor with the plain-text extractor
// registered. Additional extractors can be added with Register.
func NewProcessor(chunker *core.TextChunker, detector lang.Detector) *Processor {
	p := &Processor{
		chunker:    chunker,
		detector:   detector,
		extractors: make(map[string]Extractor),
	}
	p.Register(PlainTextExtractor{})
	return p
}

// Register wires an extractor for each of its extensions, replacing
// any previous handler for the same extension.
func (p *Processor) Register(e Extractor) {
	for _, ext := range e.Extensions() {
		p.extractors[strings.ToLower(ext)] = e
	}
}

// Supported reports whether the file's extension has an extractor.
func (p *Processor) Supported(path string) bool {
	_, ok := p.extractors[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ProcessFile extracts, detects the language of, and chunks a single
// document. The file's base name becomes the chunks' source ID, and
// sequence indexes restart at zero for each document.
func (p *Processor) ProcessFile(path string) ([]models.Chunk, error) {
	ext := strings.ToLower(filepath.Ext(path))
	extractor, ok := p.extractors[ext]
	if !ok {
		return nil, fmt.Errorf("no extractor for %s files", ext)
	}

	text, err := extractor.Extract(path)
	if err != nil {
		return nil, err
	}

	language := p.detector.Detect(text)
	sourceID := filepath.Base(path)

	pieces := p.chunker.Split(text, language)
	chunks := make([]models.Chunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, models.Chunk{
			Text:          piece,
			SourceID:      sourceID,
			Language:      language,
			SequenceIndex: i,
		})
	}
	return chunks, nil
}

// ProcessDir walks dir non-recursively and processes every supported
// file in lexical order. Files that fail to extract are logged and
// skipped; the error return covers only the directory read itself.
func (p *Processor) ProcessDir(dir string) ([]models.Chunk, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading documents directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !p.Supported(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var all []models.Chunk
	for _, name := range names {
		path := filepath.Join(dir, name)
		chunks, err := p.ProcessFile(path)
		if err != nil {
			slog.Warn("skipping document", "path", path, "error", err)
			continue
		}
		if len(chunks) == 0 {
			slog.Warn("document produced no chunks", "path", path)
			continue
		}
		all = append(all, chunks...)
	}
	return all, nil
}
