package synthesis

import (
	"strings"

	"github.com/arbovm/levenshtein"

	"stock-image-tagger/internal/config"
	"stock-image-tagger/pkg/models"
)

// suggestionRule maps a suggestion label to the detected-term triggers that
// activate it. Rules are evaluated in order; output order follows the table.
type suggestionRule struct {
	Label    string
	Triggers []string
}

// useCaseRules keys marketplace use cases on scene, object and style
// vocabulary commonly returned by the vision model.
var useCaseRules = []suggestionRule{
	{Label: "Commercial", Triggers: []string{"product", "business", "corporate", "commercial", "professional"}},
	{Label: "Advertising", Triggers: []string{"advertising", "promotion", "banner", "billboard", "campaign"}},
	{Label: "Marketing", Triggers: []string{"marketing", "brand", "branding", "promotional"}},
	{Label: "Editorial", Triggers: []string{"editorial", "news", "journalism", "documentary", "article"}},
	{Label: "Social Media", Triggers: []string{"social", "instagram", "vibrant", "trendy", "lifestyle"}},
	{Label: "Web Design", Triggers: []string{"website", "background", "header", "minimal", "interface"}},
	{Label: "Creative", Triggers: []string{"creative", "artistic", "abstract", "fantasy", "surreal", "illustration", "painting"}},
}

// audienceRules keys target audiences the same way.
var audienceRules = []suggestionRule{
	{Label: "Artists", Triggers: []string{"artistic", "painting", "illustration", "drawing", "fantasy", "surreal"}},
	{Label: "Designers", Triggers: []string{"design", "minimal", "layout", "geometric", "interface", "stylized"}},
	{Label: "Marketers", Triggers: []string{"marketing", "brand", "product", "commercial", "promotional"}},
	{Label: "Editors", Triggers: []string{"editorial", "news", "documentary", "journalism"}},
	{Label: "Content Creators", Triggers: []string{"social", "vibrant", "lifestyle", "trendy", "creative"}},
	{Label: "Small Business", Triggers: []string{"business", "shop", "local", "storefront", "service"}},
}

// Fixed defaults for images the model could not characterize.
var (
	defaultUseCases  = []string{"Creative", "Editorial"}
	defaultAudiences = []string{"Artists", "Designers"}
)

// UseCaseAudienceSuggester derives use-case and target-audience suggestions
// from a deterministic rule table keyed by the detected scene, object and
// style categories.
type UseCaseAudienceSuggester struct {
	tables *config.Tables
}

// NewUseCaseAudienceSuggester creates a suggester.
func NewUseCaseAudienceSuggester(tables *config.Tables) *UseCaseAudienceSuggester {
	return &UseCaseAudienceSuggester{tables: tables}
}

// Suggest returns ordered, deduplicated, abbreviation-mapped use-case and
// audience lists, each capped at the configured top-K. Model-supplied
// suggestions are honored first, then the rule table fills the remainder.
// Empty analysis yields the fixed default sets rather than empty lists.
func (s *UseCaseAudienceSuggester) Suggest(analysis *models.AnalysisResult, title, description string) (useCases, audiences []string) {
	tokens := s.detectedTokens(analysis, title, description)

	var modelUseCases, modelAudiences []string
	if analysis != nil {
		modelUseCases = analysis.UseCases
		modelAudiences = analysis.Audiences
	}

	useCases = s.pick(modelUseCases, useCaseRules, tokens, defaultUseCases)
	audiences = s.pick(modelAudiences, audienceRules, tokens, defaultAudiences)
	return useCases, audiences
}

// detectedTokens gathers the lowercase vocabulary the rules match against.
func (s *UseCaseAudienceSuggester) detectedTokens(analysis *models.AnalysisResult, title, description string) []string {
	var tokens []string
	for _, term := range analysis.Terms() {
		tokens = append(tokens, Tokenize(term)...)
	}
	tokens = append(tokens, Tokenize(title)...)
	tokens = append(tokens, Tokenize(description)...)

	out := tokens[:0]
	for _, tok := range tokens {
		if !s.tables.IsCommonWord(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// pick assembles one suggestion list: model-supplied entries first, then
// rule-table matches, abbreviation-mapped and deduplicated, capped at top-K.
func (s *UseCaseAudienceSuggester) pick(supplied []string, rules []suggestionRule, tokens []string, defaults []string) []string {
	topK := s.tables.Limits.SuggestionTopK
	seen := make(map[string]bool)
	var out []string
	add := func(label string) {
		mapped := s.mapLabel(label)
		key := strings.ToLower(mapped)
		if mapped == "" || seen[key] || (topK > 0 && len(out) >= topK) {
			return
		}
		seen[key] = true
		out = append(out, mapped)
	}

	for _, label := range supplied {
		add(label)
	}
	for _, rule := range rules {
		if ruleMatches(rule, tokens) {
			add(rule.Label)
		}
	}
	if len(out) == 0 {
		for _, label := range defaults {
			add(label)
		}
	}
	return out
}

// mapLabel passes a suggestion label through the abbreviation table.
func (s *UseCaseAudienceSuggester) mapLabel(label string) string {
	label = strings.TrimSpace(label)
	if short, ok := s.tables.AbbrevFor(label); ok {
		return short
	}
	return label
}

// ruleMatches reports whether any detected token activates the rule. Tokens
// of five or more characters tolerate an edit distance of one, absorbing
// plurals and near-misses in the model's free-text output.
func ruleMatches(rule suggestionRule, tokens []string) bool {
	for _, trigger := range rule.Triggers {
		for _, tok := range tokens {
			if tok == trigger {
				return true
			}
			if len(trigger) >= 5 && len(tok) >= 5 && levenshtein.Distance(tok, trigger) <= 1 {
				return true
			}
		}
	}
	return false
}
