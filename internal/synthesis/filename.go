package synthesis

import (
	"fmt"
	"path/filepath"
	"strings"

	"stock-image-tagger/internal/config"
	"stock-image-tagger/pkg/models"
)

// FilenameBuilder derives the new, abbreviated filename for one image. The
// caller supplies the set of names already assigned in the current batch;
// the returned name is guaranteed unique against it, non-empty, within the
// length limit and carrying the original extension.
type FilenameBuilder struct {
	tables *config.Tables
}

// NewFilenameBuilder creates a filename builder.
func NewFilenameBuilder(tables *config.Tables) *FilenameBuilder {
	return &FilenameBuilder{tables: tables}
}

// Build computes the new filename. The descriptive stem comes from the
// analysis subject and style mapped through the abbreviation table with
// longest-match-first phrase resolution; unknown words are shortened to four
// characters. The stem falls back to the original filename when analysis
// yields nothing.
func (b *FilenameBuilder) Build(originalFilename string, analysis *models.AnalysisResult, assigned map[string]bool) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))

	stem := b.stemFromAnalysis(analysis)
	if stem == "" {
		stem = b.fallbackStem(originalFilename)
	}

	stem = sanitizeStem(stem)
	if stem == "" {
		stem = sanitizeStem(b.fallbackStem(originalFilename))
	}
	if stem == "" {
		stem = "Img_Data"
	}

	maxStem := b.tables.Limits.MaxFilenameLength - len(ext)
	if maxStem > 0 && len(stem) > maxStem {
		stem = strings.TrimRight(stem[:maxStem], "_")
	}

	return uniqueName(stem, ext, b.tables.Limits.MaxFilenameLength, assigned)
}

// stemFromAnalysis builds the descriptive phrase (subject plus style) and
// abbreviates it. Phrase-level table entries win over their component words.
func (b *FilenameBuilder) stemFromAnalysis(analysis *models.AnalysisResult) string {
	if analysis.IsEmpty() {
		return ""
	}

	var phrase []string
	if analysis.Title != "" {
		phrase = append(phrase, firstWords(analysis.Title, 2)...)
	}
	if len(analysis.Entities) > 0 {
		phrase = append(phrase, analysis.Entities[0])
	}
	if analysis.Scene != "" {
		phrase = append(phrase, analysis.Scene)
	}
	if len(analysis.Styles) > 0 {
		phrase = append(phrase, analysis.Styles[0])
	}

	tokens := b.tables.AbbreviateTokens(strings.Join(phrase, " "))
	for i, tok := range tokens {
		if isShortForm(b.tables, tok) {
			continue
		}
		tokens[i] = shortenWord(tok)
	}
	return strings.Join(tokens, "_")
}

// isShortForm reports whether tok is already an abbreviation produced by the
// table, which must not be shortened again.
func isShortForm(tables *config.Tables, tok string) bool {
	for _, a := range tables.Abbreviations {
		if a.Short == tok {
			return true
		}
	}
	return false
}

// fallbackStem abbreviates the first words of the original filename.
func (b *FilenameBuilder) fallbackStem(originalFilename string) string {
	words := FilenameWords(originalFilename)
	if len(words) > 3 {
		words = words[:3]
	}
	for i, w := range words {
		if short, ok := b.tables.AbbrevFor(w); ok {
			words[i] = short
		} else {
			words[i] = shortenWord(w)
		}
	}
	words = append(words, "Img")
	return strings.Join(words, "_")
}

// shortenWord truncates an unmapped word to four characters, capitalized.
func shortenWord(w string) string {
	if len(w) > 4 {
		w = w[:4]
	}
	return TitleCaseWord(w)
}

// sanitizeStem strips filesystem-invalid characters, keeping letters, digits,
// underscores and hyphens.
func sanitizeStem(stem string) string {
	stem = strings.ReplaceAll(stem, " ", "_")
	var sb strings.Builder
	for _, r := range stem {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			sb.WriteRune(r)
		}
	}
	return strings.Trim(sb.String(), "_-")
}

// uniqueName appends an incrementing numeric suffix until the name does not
// collide with one assigned earlier in the run, shortening the stem when the
// suffix would overflow the length limit. The assigned set is keyed by
// lowercased name; collisions are case-insensitive.
func uniqueName(stem, ext string, maxLen int, assigned map[string]bool) string {
	name := stem + ext
	for counter := 1; assigned[strings.ToLower(name)]; counter++ {
		suffix := fmt.Sprintf("_%d", counter)
		trimmed := stem
		if maxLen > 0 && len(trimmed)+len(suffix)+len(ext) > maxLen {
			trimmed = trimmed[:maxLen-len(suffix)-len(ext)]
		}
		name = trimmed + suffix + ext
	}
	return name
}

func firstWords(s string, n int) []string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return words
}
