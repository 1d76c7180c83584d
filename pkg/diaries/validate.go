package diaries

import (
	"fmt"
	"strings"
	"unicode"
)

// restrictedScript covers Hiragana, Katakana, CJK Extension A and the CJK
// Unified Ideographs block up to U+9FAF.
var restrictedScript = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3040, Hi: 0x30ff, Stride: 1},
		{Lo: 0x3400, Hi: 0x4dbf, Stride: 1},
		{Lo: 0x4e00, Hi: 0x9faf, Stride: 1},
	},
}

// ContainsRestrictedScript reports whether text has any rune the diary refuses to store.
func ContainsRestrictedScript(text string) bool {
	return strings.IndexFunc(text, func(r rune) bool {
		return unicode.Is(restrictedScript, r)
	}) >= 0
}

// ValidateText checks entry text before a save. The script check runs first,
// so whitespace plus a kana reports ErrRestrictedScript.
func ValidateText(text string) error {
	trimmed := strings.TrimSpace(text)
	if ContainsRestrictedScript(trimmed) {
		return ErrRestrictedScript
	}
	if trimmed == "" {
		return ErrEmptyText
	}
	return nil
}

// normalize validates entry and returns the form that gets stored.
func normalize(entry Entry) (Entry, error) {
	if strings.TrimSpace(entry.Date) == "" {
		return Entry{}, ErrMissingDate
	}
	if err := ValidateText(entry.Text); err != nil {
		return Entry{}, err
	}
	entry.Text = strings.TrimSpace(entry.Text)

	if entry.Emotion == "" {
		entry.Emotion = DefaultEmotion
	}
	if !entry.Emotion.Valid() {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownEmotion, entry.Emotion)
	}
	return entry, nil
}
