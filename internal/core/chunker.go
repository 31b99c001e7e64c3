// ABOUTME: TextChunker splits raw document text into bounded-size chunks
// ABOUTME: Normalizes, segments on language-specific terminators, greedily packs
package core

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kensakuhq/kensaku/internal/models"
)

// DefaultChunkSize is the per-chunk character budget in runes.
const DefaultChunkSize = 500

// TextChunker converts raw text into ordered chunk strings respecting
// a rune budget and language-specific sentence boundaries. It holds no
// state beyond its configuration; Split is a pure function.
type TextChunker struct {
	chunkSize int
}

// NewTextChunker creates a chunker with the given rune budget.
// Non-positive sizes fall back to DefaultChunkSize.
func NewTextChunker(chunkSize int) *TextChunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &TextChunker{chunkSize: chunkSize}
}

// ChunkSize returns the configured rune budget.
func (tc *TextChunker) ChunkSize() int { return tc.chunkSize }

// Split chunks text for the given language. Empty input, or input that
// normalizes to nothing but noise, yields an empty slice and no error.
func (tc *TextChunker) Split(text string, language models.Language) []string {
	normalized := normalizeText(text)
	if normalized == "" {
		return nil
	}

	sentences := splitSentences(normalized, language)

	var chunks []string
	var current strings.Builder
	currentRunes := 0

	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		sentRunes := utf8.RuneCountInString(sentence)

		// Appending costs the sentence plus the joining space.
		cost := sentRunes
		if current.Len() > 0 {
			cost++
		}

		// Close the running chunk when the next sentence would blow the
		// budget. A single oversized sentence stays whole and becomes
		// its own chunk.
		if currentRunes+cost > tc.chunkSize {
			if current.Len() > 0 {
				chunks = append(chunks, current.String())
				current.Reset()
			}
			current.WriteString(sentence)
			currentRunes = sentRunes
			continue
		}

		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
		currentRunes += cost
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	// Drop noise below the minimum length threshold.
	filtered := chunks[:0]
	for _, c := range chunks {
		if utf8.RuneCountInString(strings.TrimSpace(c)) > models.MinChunkRunes {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}

// normalizeText collapses whitespace runs to single spaces and strips
// runes outside the allow-list, preserving Japanese text.
func normalizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	lastSpace := true // leading whitespace collapses away

	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		case allowedRune(r):
			b.WriteRune(r)
			lastSpace = false
		default:
			// Disallowed runes become a (collapsed) space, matching the
			// substitution behavior of the cleaning pass upstream text
			// sources expect.
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// allowedRune reports whether r survives normalization: Unicode
// letters/digits, basic punctuation, and the Japanese script ranges.
// Ideographic punctuation is kept so sentence segmentation can fire.
func allowedRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
		return true
	}
	switch r {
	case '.', ',', '!', '?', ';', ':', '(', ')', '-':
		return true
	case '。', '、', '！', '？', '・', 'ー':
		return true
	}
	// Hiragana, Katakana, CJK ideographs (URO subset + extension A).
	// Letter runes in these ranges are already admitted above; this
	// keeps the remaining marks and iteration signs of the blocks.
	switch {
	case r >= 0x3040 && r <= 0x309F:
		return true
	case r >= 0x30A0 && r <= 0x30FF:
		return true
	case r >= 0x4E00 && r <= 0x9FAF:
		return true
	case r >= 0x3400 && r <= 0x4DBF:
		return true
	}
	return false
}

// splitSentences cuts normalized text on language-appropriate
// terminators. Terminators are consumed; newlines never survive
// normalization but are honored as boundaries regardless.
func splitSentences(text string, language models.Language) []string {
	var terminators string
	if language == models.LanguageJapanese {
		terminators = "。\n"
	} else {
		terminators = ".!?\n"
	}
	return strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(terminators, r)
	})
}
