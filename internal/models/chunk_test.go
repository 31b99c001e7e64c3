// ABOUTME: Tests for Chunk validation and Language parsing
// ABOUTME: Covers the 20-rune noise threshold and language aliasing

package models

import (
	"strings"
	"testing"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		want    Language
		wantErr bool
	}{
		{"english", "en", LanguageEnglish, false},
		{"japanese", "jp", LanguageJapanese, false},
		{"iso alias ja", "ja", LanguageJapanese, false},
		{"uppercase", "EN", LanguageEnglish, false},
		{"padded", " jp ", LanguageJapanese, false},
		{"unknown", "fr", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLanguage(tt.tag)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLanguage(%q) error = %v, wantErr %v", tt.tag, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLanguage(%q) = %q, want %q", tt.tag, got, tt.want)
			}
		})
	}
}

func TestLanguage_Valid(t *testing.T) {
	if !LanguageEnglish.Valid() || !LanguageJapanese.Valid() {
		t.Error("supported languages should be valid")
	}
	if Language("de").Valid() {
		t.Error("unsupported language should not be valid")
	}
	if Language("").Valid() {
		t.Error("empty language should not be valid")
	}
}

func TestChunk_Validate(t *testing.T) {
	longText := strings.Repeat("word ", 10)

	tests := []struct {
		name    string
		chunk   Chunk
		wantErr bool
	}{
		{"valid english", Chunk{Text: longText, SourceID: "a.txt", Language: LanguageEnglish}, false},
		{"valid japanese", Chunk{Text: strings.Repeat("売上高", 10), SourceID: "b.txt", Language: LanguageJapanese}, false},
		{"too short", Chunk{Text: "short text", Language: LanguageEnglish}, true},
		{"exactly at threshold", Chunk{Text: strings.Repeat("a", MinChunkRunes), Language: LanguageEnglish}, true},
		{"one over threshold", Chunk{Text: strings.Repeat("a", MinChunkRunes+1), Language: LanguageEnglish}, false},
		{"whitespace padding not counted", Chunk{Text: "  short  ", Language: LanguageEnglish}, true},
		{"bad language", Chunk{Text: longText, Language: Language("xx")}, true},
		{"empty text", Chunk{Language: LanguageEnglish}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.chunk.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestChunk_Validate_RuneCounting(t *testing.T) {
	// 21 Japanese characters are 63 bytes but must pass the 20-rune
	// threshold; byte counting would have passed 7 characters already.
	jp := strings.Repeat("字", MinChunkRunes+1)
	c := Chunk{Text: jp, SourceID: "doc.txt", Language: LanguageJapanese}
	if err := c.Validate(); err != nil {
		t.Errorf("21-rune Japanese chunk should validate, got %v", err)
	}

	short := strings.Repeat("字", 8) // 24 bytes, 8 runes
	c = Chunk{Text: short, SourceID: "doc.txt", Language: LanguageJapanese}
	if err := c.Validate(); err == nil {
		t.Error("8-rune Japanese chunk should fail validation despite 24 bytes")
	}
}
