package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Tables is the immutable set of lookup tables and limits consumed by every
// synthesis builder. It is loaded once at startup from an optional YAML
// document layered over built-in defaults and passed around explicitly;
// nothing in this package mutates it after Load returns.
type Tables struct {
	Abbreviations []Abbreviation
	Synonyms      map[string][]string
	CommonWords   map[string]bool
	CallToAction  []string
	Limits        Limits

	TitlePrefix     string
	DefaultCategory string
	DefaultReleases string

	Logging LoggingSection
	API     APISection
}

// Abbreviation maps a descriptive word or multi-word phrase to the short form
// used when building filenames. Entries are kept sorted longest phrase first
// so multi-word phrases are matched as a unit before their component words.
type Abbreviation struct {
	Phrase string
	Short  string

	re *regexp.Regexp
}

// Limits carries the numeric constraints for generated metadata.
type Limits struct {
	MaxTitleLength       int `yaml:"max_title_length"`
	MaxDescriptionLength int `yaml:"max_description_length"`
	MaxFilenameLength    int `yaml:"max_filename_length"`
	MaxTitleWords        int `yaml:"max_title_words"`
	MaxKeywords          int `yaml:"max_keywords"`
	SuggestionTopK       int `yaml:"suggestion_top_k"`
}

// APISection mirrors the api section of the tables document.
type APISection struct {
	Endpoint          string   `yaml:"endpoint"`
	Model             string   `yaml:"model"`
	MaxAttempts       int      `yaml:"max_attempts"`
	InitialDelay      Duration `yaml:"initial_delay"`
	InterRequestDelay Duration `yaml:"inter_request_delay"`
	RequestTimeout    Duration `yaml:"request_timeout"`
}

// LoggingSection mirrors the logging section of the tables document.
type LoggingSection struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Duration wraps time.Duration with YAML support for "2s" style values.
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	d.Duration = parsed
	return nil
}

// tablesDocument is the on-disk shape. Every section is optional so older
// configuration files lacking newer sections keep working.
type tablesDocument struct {
	API        *APISection        `yaml:"api"`
	AdobeStock *adobeStockSection `yaml:"adobe_stock"`
	Prompt     *promptSection     `yaml:"prompt"`
	Logging    *LoggingSection    `yaml:"logging"`

	Abbreviations map[string]string   `yaml:"abbreviations"`
	Synonyms      map[string][]string `yaml:"synonyms"`
	CommonWords   []string            `yaml:"common_words"`
	CallToAction  []string            `yaml:"call_to_action"`
}

type adobeStockSection struct {
	MaxTitleLength       int    `yaml:"max_title_length"`
	MaxDescriptionLength int    `yaml:"max_description_length"`
	MaxFilenameLength    int    `yaml:"max_filename_length"`
	TitlePrefix          string `yaml:"title_prefix"`
	DefaultCategory      string `yaml:"default_category"`
	DefaultReleases      string `yaml:"default_releases"`
}

type promptSection struct {
	MaxTitleWords  int `yaml:"max_title_words"`
	MaxKeywords    int `yaml:"max_keywords"`
	SuggestionTopK int `yaml:"suggestion_top_k"`
}

// LoadTables reads the tables document from path and layers it over the
// built-in defaults. An empty path yields the defaults unchanged.
func LoadTables(path string) (*Tables, error) {
	t := defaultTables()
	if path == "" {
		t.compile()
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables document: %w", err)
	}

	var doc tablesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse tables document: %w", err)
	}

	if doc.API != nil {
		t.API = *doc.API
	}
	if doc.AdobeStock != nil {
		s := doc.AdobeStock
		if s.MaxTitleLength > 0 {
			t.Limits.MaxTitleLength = s.MaxTitleLength
		}
		if s.MaxDescriptionLength > 0 {
			t.Limits.MaxDescriptionLength = s.MaxDescriptionLength
		}
		if s.MaxFilenameLength > 0 {
			t.Limits.MaxFilenameLength = s.MaxFilenameLength
		}
		t.TitlePrefix = s.TitlePrefix
		if s.DefaultCategory != "" {
			t.DefaultCategory = s.DefaultCategory
		}
		if s.DefaultReleases != "" {
			t.DefaultReleases = s.DefaultReleases
		}
	}
	if doc.Prompt != nil {
		if doc.Prompt.MaxTitleWords > 0 {
			t.Limits.MaxTitleWords = doc.Prompt.MaxTitleWords
		}
		if doc.Prompt.MaxKeywords > 0 {
			t.Limits.MaxKeywords = doc.Prompt.MaxKeywords
		}
		if doc.Prompt.SuggestionTopK > 0 {
			t.Limits.SuggestionTopK = doc.Prompt.SuggestionTopK
		}
	}
	if doc.Logging != nil {
		t.Logging = *doc.Logging
	}
	if doc.Abbreviations != nil {
		t.Abbreviations = abbreviationList(doc.Abbreviations)
	}
	if doc.Synonyms != nil {
		t.Synonyms = lowerKeys(doc.Synonyms)
	}
	if doc.CommonWords != nil {
		t.CommonWords = wordSet(doc.CommonWords)
	}
	if doc.CallToAction != nil {
		t.CallToAction = doc.CallToAction
	}

	t.compile()
	return t, nil
}

// IsCommonWord reports whether w belongs to the case-insensitive stoplist.
func (t *Tables) IsCommonWord(w string) bool {
	return t.CommonWords[strings.ToLower(w)]
}

// SynonymsOf returns the configured alternates for term, or nil. Lookup is
// case-insensitive; callers must not expand the returned terms again.
func (t *Tables) SynonymsOf(term string) []string {
	return t.Synonyms[strings.ToLower(term)]
}

// AbbrevFor returns the short form for a single word or phrase, if any.
func (t *Tables) AbbrevFor(phrase string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(phrase))
	for _, a := range t.Abbreviations {
		if a.Phrase == needle {
			return a.Short, true
		}
	}
	return "", false
}

// AbbreviateTokens maps the words of a free-text phrase through the
// abbreviation table. Multi-word entries are matched first (the table is
// sorted longest phrase first), so "social media" resolves to its own short
// form rather than a concatenation of per-word substitutions. Words with no
// table entry are returned unchanged, in order.
func (t *Tables) AbbreviateTokens(phrase string) []string {
	work := strings.ToLower(phrase)
	marks := make(map[string]string)

	for i, a := range t.Abbreviations {
		if a.re == nil || !a.re.MatchString(work) {
			continue
		}
		mark := fmt.Sprintf("\x00%d\x00", i)
		work = a.re.ReplaceAllString(work, " "+mark+" ")
		marks[mark] = a.Short
	}

	var tokens []string
	for _, field := range strings.Fields(work) {
		if short, ok := marks[field]; ok {
			tokens = append(tokens, short)
			continue
		}
		field = strings.Trim(field, ".,;:!?()[]{}\"'")
		if field != "" {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

// compile sorts the abbreviation table longest-first and builds the
// word-boundary matchers used by AbbreviateTokens.
func (t *Tables) compile() {
	sort.SliceStable(t.Abbreviations, func(i, j int) bool {
		return len(t.Abbreviations[i].Phrase) > len(t.Abbreviations[j].Phrase)
	})
	for i := range t.Abbreviations {
		a := &t.Abbreviations[i]
		a.Phrase = strings.ToLower(a.Phrase)
		a.re = regexp.MustCompile(`\b` + regexp.QuoteMeta(a.Phrase) + `\b`)
	}
}

func abbreviationList(m map[string]string) []Abbreviation {
	list := make([]Abbreviation, 0, len(m))
	for phrase, short := range m {
		list = append(list, Abbreviation{Phrase: strings.ToLower(phrase), Short: short})
	}
	// Deterministic order before the longest-first sort in compile
	sort.Slice(list, func(i, j int) bool { return list[i].Phrase < list[j].Phrase })
	return list
}

func lowerKeys(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}

func wordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	return set
}
