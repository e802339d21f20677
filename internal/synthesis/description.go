package synthesis

import (
	"strings"

	"stock-image-tagger/internal/config"
	"stock-image-tagger/pkg/models"
)

// DescriptionBuilder assembles the marketplace description, capped at the
// configured maximum length with truncation at a sentence or clause boundary.
type DescriptionBuilder struct {
	tables *config.Tables
}

// NewDescriptionBuilder creates a description builder.
func NewDescriptionBuilder(tables *config.Tables) *DescriptionBuilder {
	return &DescriptionBuilder{tables: tables}
}

// Build joins the available description material into one capped paragraph.
// When the analysis carries no description at all, a generic description is
// templated from the filename words.
func (b *DescriptionBuilder) Build(analysis *models.AnalysisResult, fallbackFilename string) string {
	var parts []string
	if analysis != nil {
		if analysis.Description != "" {
			parts = append(parts, ensurePeriod(analysis.Description))
		}
		if analysis.PersuasiveDescription != "" {
			parts = append(parts, ensurePeriod(analysis.PersuasiveDescription))
		}
		if len(analysis.Styles) > 0 {
			parts = append(parts, "Featuring elements of "+strings.Join(analysis.Styles, ", ")+".")
		}
		if len(analysis.Entities) > 0 {
			parts = append(parts, "Notably showcasing "+strings.Join(analysis.Entities, ", ")+".")
		}
	}
	if len(parts) == 0 {
		return b.truncate(DefaultDescription(fallbackFilename))
	}
	return b.truncate(strings.Join(parts, " "))
}

// DefaultDescription templates a generic description from filename words.
func DefaultDescription(filename string) string {
	words := FilenameWords(filename)
	subject := "image"
	if len(words) > 0 {
		subject = strings.ToLower(strings.Join(words, " "))
	}
	return "A visually compelling " + subject + " ready for licensing. Perfect for your next project."
}

// truncate cuts the description to the configured maximum, preferring a
// sentence boundary, then a clause boundary, and never cutting mid-word.
func (b *DescriptionBuilder) truncate(s string) string {
	limit := b.tables.Limits.MaxDescriptionLength
	if limit <= 0 || len(s) <= limit {
		return s
	}

	cut := s[:limit]
	if idx := strings.LastIndexByte(cut, '.'); idx > 0 {
		return strings.TrimSpace(cut[:idx+1])
	}
	if idx := strings.LastIndexAny(cut, ",;:"); idx > 0 {
		return strings.TrimSpace(cut[:idx])
	}
	return truncateAtWord(s, limit)
}

func ensurePeriod(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	}
	return s + "."
}
