// ABOUTME: Tests for document ingestion
// ABOUTME: Verifies extraction, sequencing, language tagging, and skip-on-error

package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kensakuhq/kensaku/internal/core"
	"github.com/kensakuhq/kensaku/internal/lang"
	"github.com/kensakuhq/kensaku/internal/models"
)

const sampleEN = "The company reported strong revenue growth this quarter. " +
	"Operating margins improved across all business segments. " +
	"The board approved a new dividend policy for shareholders."

const sampleJP = "当社は今四半期に力強い売上成長を報告しました。" +
	"すべての事業部門で営業利益率が改善しました。" +
	"取締役会は株主のための新しい配当方針を承認しました。"

func newProcessor() *Processor {
	return NewProcessor(core.NewTextChunker(core.DefaultChunkSize), lang.NewDetector())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestProcessFile_English(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "report.txt", sampleEN)

	chunks, err := newProcessor().ProcessFile(path)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	if len(chunks) == 0 {
		t.Fatal("ProcessFile() returned no chunks")
	}
	for i, c := range chunks {
		if c.SourceID != "report.txt" {
			t.Errorf("chunk %d SourceID = %q, want report.txt", i, c.SourceID)
		}
		if c.Language != models.LanguageEnglish {
			t.Errorf("chunk %d Language = %q, want en", i, c.Language)
		}
		if c.SequenceIndex != i {
			t.Errorf("chunk %d SequenceIndex = %d", i, c.SequenceIndex)
		}
		if err := c.Validate(); err != nil {
			t.Errorf("chunk %d invalid: %v", i, err)
		}
	}
}

func TestProcessFile_Japanese(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "houkoku.md", sampleJP)

	chunks, err := newProcessor().ProcessFile(path)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	if len(chunks) == 0 {
		t.Fatal("ProcessFile() returned no chunks")
	}
	for i, c := range chunks {
		if c.Language != models.LanguageJapanese {
			t.Errorf("chunk %d Language = %q, want jp", i, c.Language)
		}
	}
}

func TestProcessFile_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "report.pdf", "%PDF-1.4")

	if _, err := newProcessor().ProcessFile(path); err == nil {
		t.Error("ProcessFile(.pdf) expected error, got nil")
	}
}

func TestProcessFile_SequenceRestartsPerDocument(t *testing.T) {
	dir := t.TempDir()
	p := newProcessor()

	long := strings.Repeat(sampleEN+" ", 5)
	first, err := p.ProcessFile(writeFile(t, dir, "a.txt", long))
	if err != nil {
		t.Fatalf("ProcessFile(a) error = %v", err)
	}
	second, err := p.ProcessFile(writeFile(t, dir, "b.txt", long))
	if err != nil {
		t.Fatalf("ProcessFile(b) error = %v", err)
	}

	if len(first) < 2 || len(second) < 2 {
		t.Fatalf("expected multiple chunks per file, got %d and %d", len(first), len(second))
	}
	if second[0].SequenceIndex != 0 {
		t.Errorf("second document first SequenceIndex = %d, want 0", second[0].SequenceIndex)
	}
}

func TestProcessDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "en.txt", sampleEN)
	writeFile(t, dir, "jp.txt", sampleJP)
	writeFile(t, dir, "ignored.pdf", "%PDF-1.4")
	writeFile(t, dir, "noise.txt", "too short")
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatal(err)
	}

	chunks, err := newProcessor().ProcessDir(dir)
	if err != nil {
		t.Fatalf("ProcessDir() error = %v", err)
	}

	sources := make(map[string]bool)
	for _, c := range chunks {
		sources[c.SourceID] = true
	}
	if !sources["en.txt"] || !sources["jp.txt"] {
		t.Errorf("sources = %v, want en.txt and jp.txt", sources)
	}
	if sources["ignored.pdf"] {
		t.Error("unsupported .pdf file was ingested")
	}
	if sources["noise.txt"] {
		t.Error("noise-only file produced chunks")
	}
}

func TestProcessDir_MissingDirectory(t *testing.T) {
	if _, err := newProcessor().ProcessDir(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("ProcessDir(absent) expected error, got nil")
	}
}

func TestRegister_CustomExtractor(t *testing.T) {
	p := newProcessor()
	if p.Supported("notes.rst") {
		t.Fatal("unexpected .rst support before Register")
	}
	p.Register(stubExtractor{})
	if !p.Supported("notes.rst") {
		t.Error("Supported(.rst) = false after Register")
	}
}

type stubExtractor struct{}

func (stubExtractor) Extensions() []string { return []string{".rst"} }
func (stubExtractor) Extract(path string) (string, error) {
	return sampleEN, nil
}
