package synthesis

import (
	"sort"
	"strings"

	"stock-image-tagger/internal/config"
	"stock-image-tagger/pkg/models"
)

// TitleBuilder assembles the marketplace title for one image. It is a pure
// function of the analysis result, the fallback filename and the tables; the
// produced title never exceeds Limits.MaxTitleLength.
type TitleBuilder struct {
	tables *config.Tables
}

// NewTitleBuilder creates a title builder.
func NewTitleBuilder(tables *config.Tables) *TitleBuilder {
	return &TitleBuilder{tables: tables}
}

// Build derives a title, trying in order: the analysis-supplied title (when
// present and within the word budget), a title synthesized from the detected
// terms, and finally a default derived from the filename. A configured title
// prefix is guaranteed to be present, and the first call-to-action phrase
// that fits the length budget is appended.
func (b *TitleBuilder) Build(analysis *models.AnalysisResult, fallbackFilename string) string {
	limits := b.tables.Limits

	title := ""
	if analysis.HasTitle() && len(strings.Fields(analysis.Title)) <= limits.MaxTitleWords {
		title = analysis.Title
	}
	if title == "" {
		title = b.fromTerms(analysis)
	}
	if title == "" {
		title = DefaultTitle(fallbackFilename)
	}

	title = b.ensurePrefix(title)
	title = truncateAtWord(title, limits.MaxTitleLength)
	title = b.appendCallToAction(title)
	return title
}

// fromTerms builds a title from the detected entities, scene and styles,
// longest-informative-first, capped at the word budget.
func (b *TitleBuilder) fromTerms(analysis *models.AnalysisResult) string {
	terms := analysis.Terms()
	if len(terms) == 0 {
		return ""
	}

	// Longer terms carry more information; ties keep detection order.
	ordered := append([]string(nil), terms...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})

	var words []string
	for _, term := range ordered {
		for _, w := range strings.Fields(term) {
			if len(words) >= b.tables.Limits.MaxTitleWords {
				break
			}
			words = append(words, w)
		}
	}
	return Capitalize(strings.Join(words, " "))
}

// ensurePrefix prepends the marketplace-mandated disclosure string when one
// is configured and not already present.
func (b *TitleBuilder) ensurePrefix(title string) string {
	prefix := strings.TrimSpace(b.tables.TitlePrefix)
	if prefix == "" {
		return title
	}
	if strings.HasPrefix(strings.ToLower(title), strings.ToLower(prefix)) {
		return title
	}
	return prefix + " " + title
}

// appendCallToAction appends the first configured phrase that fits within
// the title length budget. First fit wins; configuration order is the
// tie-break. If none fit the title is left unmodified.
func (b *TitleBuilder) appendCallToAction(title string) string {
	const separator = " - "
	for _, phrase := range b.tables.CallToAction {
		if len(title)+len(separator)+len(phrase) <= b.tables.Limits.MaxTitleLength {
			return title + separator + phrase
		}
	}
	return title
}

// DefaultTitle derives a title from the filename alone: split on
// non-alphanumeric separators and title-case each word. Used both as the last
// step of the fallback chain and when a builder failure forces a regenerate.
func DefaultTitle(filename string) string {
	words := FilenameWords(filename)
	if len(words) == 0 {
		return "Untitled Image"
	}
	for i, w := range words {
		words[i] = TitleCaseWord(w)
	}
	return strings.Join(words, " ") + " Image"
}
