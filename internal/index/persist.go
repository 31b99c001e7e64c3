// ABOUTME: On-disk persistence for the vector index
// ABOUTME: Binary float32 vector artifact plus JSON chunk metadata, written atomically
package index

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/kensakuhq/kensaku/internal/models"
)

const (
	// VectorArtifact holds dimension, count, and row-major float32
	// values, little-endian, behind a magic/version header.
	VectorArtifact = "vectors.bin"
	// MetadataArtifact holds the ordered chunk records, one per
	// embedding row, same ordering as the vector artifact.
	MetadataArtifact = "chunks.json"

	vectorMagic   = uint32(0x4B494458) // "KIDX"
	vectorVersion = uint32(1)
)

// Save serializes the index into the two companion artifacts under
// dir, creating it if needed. Each artifact is written to a temp file
// and renamed into place so a crash never leaves a torn snapshot.
// Saving an index that is not ready fails with ErrNotBuilt.
func (ix *Index) Save(dir string) error {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if len(ix.vectors) == 0 {
		return fmt.Errorf("saving to %s: %w", dir, ErrNotBuilt)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	if err := writeAtomic(filepath.Join(dir, VectorArtifact), func(w io.Writer) error {
		return writeVectors(w, ix.dimension, ix.vectors)
	}); err != nil {
		return fmt.Errorf("writing vector artifact: %w", err)
	}

	if err := writeAtomic(filepath.Join(dir, MetadataArtifact), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		return enc.Encode(ix.chunks)
	}); err != nil {
		return fmt.Errorf("writing metadata artifact: %w", err)
	}
	return nil
}

// Load reads both artifacts from dir and atomically replaces the
// in-memory state. A missing artifact yields ErrIndexNotFound; any
// parse failure or disagreement between the artifacts yields
// ErrCorruptIndex.
func (ix *Index) Load(dir string) error {
	vectorPath := filepath.Join(dir, VectorArtifact)
	metaPath := filepath.Join(dir, MetadataArtifact)

	vf, err := os.Open(vectorPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("opening %s: %w", vectorPath, ErrIndexNotFound)
		}
		return fmt.Errorf("opening %s: %w", vectorPath, err)
	}
	defer vf.Close()

	mf, err := os.Open(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("opening %s: %w", metaPath, ErrIndexNotFound)
		}
		return fmt.Errorf("opening %s: %w", metaPath, err)
	}
	defer mf.Close()

	dimension, vectors, err := readVectors(vf)
	if err != nil {
		return fmt.Errorf("reading vector artifact: %w", err)
	}

	var chunks []models.Chunk
	if err := json.NewDecoder(mf).Decode(&chunks); err != nil {
		return fmt.Errorf("reading metadata artifact: %w: %v", ErrCorruptIndex, err)
	}

	if len(chunks) != len(vectors) {
		return fmt.Errorf("%w: %d vectors but %d chunk records",
			ErrCorruptIndex, len(vectors), len(chunks))
	}
	for i, c := range chunks {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("%w: chunk record %d: %v", ErrCorruptIndex, i, err)
		}
	}

	ix.mu.Lock()
	ix.dimension = dimension
	ix.vectors = vectors
	ix.chunks = chunks
	ix.mu.Unlock()
	return nil
}

// writeAtomic writes via a uuid-suffixed temp file and renames into
// place. The handle is closed on every exit path.
func writeAtomic(path string, write func(io.Writer) error) error {
	tmp := fmt.Sprintf("%s.%s.tmp", path, uuid.New().String()[:8])
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func writeVectors(w io.Writer, dimension int, vectors [][]float32) error {
	header := []uint32{vectorMagic, vectorVersion, uint32(dimension), uint32(len(vectors))}
	for _, v := range header {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	for _, row := range vectors {
		if err := binary.Write(w, binary.LittleEndian, row); err != nil {
			return err
		}
	}
	return nil
}

func readVectors(r io.Reader) (int, [][]float32, error) {
	var magic, version, dimension, count uint32
	for _, dst := range []*uint32{&magic, &version, &dimension, &count} {
		if err := binary.Read(r, binary.LittleEndian, dst); err != nil {
			return 0, nil, fmt.Errorf("%w: truncated header: %v", ErrCorruptIndex, err)
		}
	}
	if magic != vectorMagic {
		return 0, nil, fmt.Errorf("%w: bad magic %#x", ErrCorruptIndex, magic)
	}
	if version != vectorVersion {
		return 0, nil, fmt.Errorf("%w: unsupported format version %d", ErrCorruptIndex, version)
	}
	if dimension == 0 || count == 0 {
		return 0, nil, fmt.Errorf("%w: empty index artifact (dim=%d count=%d)",
			ErrCorruptIndex, dimension, count)
	}

	vectors := make([][]float32, count)
	for i := range vectors {
		row := make([]float32, dimension)
		if err := binary.Read(r, binary.LittleEndian, row); err != nil {
			return 0, nil, fmt.Errorf("%w: truncated vector row %d: %v", ErrCorruptIndex, i, err)
		}
		vectors[i] = row
	}

	// Trailing bytes mean the header lied about the layout.
	var extra [1]byte
	if n, _ := r.Read(extra[:]); n != 0 {
		return 0, nil, fmt.Errorf("%w: trailing bytes after %d rows", ErrCorruptIndex, count)
	}
	return int(dimension), vectors, nil
}
