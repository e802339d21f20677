package synthesis

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Tokenize splits free text into lowercase word tokens. Hyphens are kept
// inside words ("eye-catching" stays one token); every other non-alphanumeric
// rune is a separator.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "-")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// FilenameWords splits a filename stem on non-alphanumeric separators.
func FilenameWords(filename string) []string {
	stem := Stem(filename)
	return strings.FieldsFunc(stem, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Stem returns the filename without directory or extension.
func Stem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TitleCaseWord uppercases the first rune of w.
func TitleCaseWord(w string) string {
	if w == "" {
		return w
	}
	runes := []rune(w)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Capitalize uppercases the first rune of a sentence, leaving the rest alone.
func Capitalize(s string) string {
	return TitleCaseWord(s)
}

// hasLetterOrDigit reports whether the token carries any real content; pure
// punctuation tokens are discarded by the keyword filter.
func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// truncateAtWord trims s to at most limit bytes, cutting at the last word
// boundary rather than mid-word.
func truncateAtWord(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := s[:limit]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,;:-")
}
