// ABOUTME: Chunk is the atomic unit of retrievable text with source metadata
// ABOUTME: Defines the Language enum shared by chunking, detection, and search
package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Language tags the language of a chunk or query.
type Language string

const (
	LanguageEnglish  Language = "en"
	LanguageJapanese Language = "jp"
)

// MinChunkRunes is the noise threshold: chunks whose trimmed text is
// this many runes or fewer are discarded and never indexed.
const MinChunkRunes = 20

// ParseLanguage maps a language tag to a supported Language.
// "ja" is accepted as an alias for "jp"; anything else is an error.
func ParseLanguage(tag string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "en":
		return LanguageEnglish, nil
	case "jp", "ja":
		return LanguageJapanese, nil
	default:
		return "", fmt.Errorf("unsupported language %q", tag)
	}
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageJapanese
}

// Chunk is a bounded passage extracted from one document. Chunks are
// value types and are never mutated after creation; their position in
// the index is the sole join key to the embedding rows.
type Chunk struct {
	Text          string   `json:"text"`
	SourceID      string   `json:"source_id"`
	Language      Language `json:"language"`
	SequenceIndex int      `json:"sequence_index"`
}

// Validate enforces the persisted-chunk invariant: non-empty trimmed
// text longer than MinChunkRunes and a supported language tag.
func (c Chunk) Validate() error {
	trimmed := strings.TrimSpace(c.Text)
	if utf8.RuneCountInString(trimmed) <= MinChunkRunes {
		return fmt.Errorf("chunk text too short: %d runes (minimum %d)",
			utf8.RuneCountInString(trimmed), MinChunkRunes)
	}
	if !c.Language.Valid() {
		return fmt.Errorf("chunk has unsupported language %q", c.Language)
	}
	return nil
}
