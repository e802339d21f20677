package synthesis

import (
	"strings"

	"stock-image-tagger/internal/config"
	"stock-image-tagger/pkg/models"
)

// KeywordExpander generates the ordered, deduplicated keyword list for one
// image from the analysis terms plus the already-built title and description.
type KeywordExpander struct {
	tables *config.Tables
}

// NewKeywordExpander creates a keyword expander.
func NewKeywordExpander(tables *config.Tables) *KeywordExpander {
	return &KeywordExpander{tables: tables}
}

// Generate builds the keyword list. Candidates are filtered against the
// common-word stoplist, deduplicated case-insensitively in first-seen order,
// and expanded through the synonym table exactly one level deep: synonyms of
// synonyms are never looked up. When the list exceeds the configured cap,
// synonym-only entries are dropped first so original candidates survive.
func (e *KeywordExpander) Generate(analysis *models.AnalysisResult, title, description string) []string {
	var candidates []string
	if analysis != nil {
		for _, term := range analysis.Terms() {
			candidates = append(candidates, strings.ToLower(term))
		}
		for _, u := range analysis.UseCases {
			candidates = append(candidates, strings.ToLower(u))
		}
		for _, a := range analysis.Audiences {
			candidates = append(candidates, strings.ToLower(a))
		}
	}
	candidates = append(candidates, Tokenize(title)...)
	candidates = append(candidates, Tokenize(description)...)

	seen := make(map[string]bool)
	var keywords []string
	add := func(kw string) bool {
		kw = strings.TrimSpace(kw)
		key := strings.ToLower(kw)
		if len(kw) < 2 || !hasLetterOrDigit(kw) || e.tables.IsCommonWord(kw) || seen[key] {
			return false
		}
		seen[key] = true
		keywords = append(keywords, key)
		return true
	}

	for _, c := range candidates {
		add(c)
	}

	// One level of synonym expansion over the original candidates only.
	originals := len(keywords)
	for i := 0; i < originals; i++ {
		for _, syn := range e.tables.SynonymsOf(keywords[i]) {
			add(syn)
		}
	}

	// Enforce the cap. Synonym-only entries sit after the originals, so
	// truncating the tail drops them first; originals are lost only when
	// they alone exceed the limit.
	limit := e.tables.Limits.MaxKeywords
	if limit > 0 && len(keywords) > limit {
		keywords = keywords[:limit]
	}
	return keywords
}
