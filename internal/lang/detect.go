// ABOUTME: Best-effort language detection for queries and documents
// ABOUTME: Japanese script short-circuit plus whatlanggo, defaulting to English
package lang

import (
	"unicode"

	"github.com/abadojack/whatlanggo"

	"github.com/kensakuhq/kensaku/internal/models"
)

// sampleRunes caps how much text feeds detection; the opening of a
// document is plenty.
const sampleRunes = 1000

// Detector resolves the language of a piece of text.
type Detector interface {
	Detect(text string) models.Language
}

// ScriptDetector detects en/jp from text content. Any Hiragana or
// Katakana rune marks the text Japanese immediately: kana is
// unambiguous, whereas short CJK-only strings trip up statistical
// detection. Everything else goes through whatlanggo, and anything
// ambiguous or unsupported defaults to English.
type ScriptDetector struct{}

// NewDetector creates the default detector.
func NewDetector() *ScriptDetector { return &ScriptDetector{} }

// Detect returns the detected language tag, "en" when unsure.
func (d *ScriptDetector) Detect(text string) models.Language {
	sample := sampleText(text)
	if sample == "" {
		return models.LanguageEnglish
	}

	for _, r := range sample {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana) {
			return models.LanguageJapanese
		}
	}

	info := whatlanggo.Detect(sample)
	if info.Lang == whatlanggo.Jpn && info.IsReliable() {
		return models.LanguageJapanese
	}
	return models.LanguageEnglish
}

func sampleText(text string) string {
	runes := []rune(text)
	if len(runes) > sampleRunes {
		runes = runes[:sampleRunes]
	}
	return string(runes)
}
