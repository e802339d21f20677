package synthesis

import (
	"strings"
	"testing"

	"stock-image-tagger/internal/config"
	"stock-image-tagger/pkg/models"
)

func loadTables(t *testing.T) *config.Tables {
	t.Helper()
	tables, err := config.LoadTables("")
	if err != nil {
		t.Fatalf("Failed to load default tables: %v", err)
	}
	return tables
}

func TestTitleBuilder_UsesModelTitle(t *testing.T) {
	b := NewTitleBuilder(loadTables(t))

	title := b.Build(&models.AnalysisResult{Title: "Mystic Knight Portrait"}, "img001.jpg")
	if !strings.HasPrefix(title, "Mystic Knight Portrait") {
		t.Errorf("Expected the model title to lead, got %q", title)
	}
	if !strings.Contains(title, " - ") {
		t.Errorf("Expected an appended call to action, got %q", title)
	}
}

func TestTitleBuilder_FallsBackToTerms(t *testing.T) {
	b := NewTitleBuilder(loadTables(t))

	analysis := &models.AnalysisResult{
		Entities: []string{"knight", "horns"},
		Scene:    "fantasy",
	}
	title := b.Build(analysis, "img001.jpg")
	if title == "" {
		t.Fatal("Expected a non-empty title from detected terms")
	}
	lower := strings.ToLower(title)
	for _, term := range []string{"knight", "horns", "fantasy"} {
		if !strings.Contains(lower, term) {
			t.Errorf("Expected title to carry %q, got %q", term, title)
		}
	}
}

func TestTitleBuilder_RejectsOverlongModelTitle(t *testing.T) {
	tables := loadTables(t)
	tables.Limits.MaxTitleWords = 3
	b := NewTitleBuilder(tables)

	analysis := &models.AnalysisResult{
		Title: "one two three four five",
		Scene: "fantasy",
	}
	title := b.Build(analysis, "img001.jpg")
	if strings.Contains(strings.ToLower(title), "one two three four five") {
		t.Errorf("Expected the overlong model title to be rejected, got %q", title)
	}
	if !strings.Contains(strings.ToLower(title), "fantasy") {
		t.Errorf("Expected a terms-derived title, got %q", title)
	}
}

func TestTitleBuilder_DefaultFromFilename(t *testing.T) {
	b := NewTitleBuilder(loadTables(t))

	title := b.Build(nil, "sunset_beach.jpg")
	if !strings.Contains(title, "Sunset Beach Image") {
		t.Errorf("Expected a filename-derived default, got %q", title)
	}
}

func TestTitleBuilder_EnsuresPrefix(t *testing.T) {
	tables := loadTables(t)
	tables.TitlePrefix = "Generative AI"
	b := NewTitleBuilder(tables)

	title := b.Build(&models.AnalysisResult{Title: "Mystic Knight"}, "img.jpg")
	if !strings.HasPrefix(title, "Generative AI ") {
		t.Errorf("Expected the configured prefix, got %q", title)
	}

	// Already-prefixed titles are left alone, case-insensitively.
	title = b.Build(&models.AnalysisResult{Title: "generative ai knight art"}, "img.jpg")
	if strings.Count(strings.ToLower(title), "generative ai") != 1 {
		t.Errorf("Expected no duplicated prefix, got %q", title)
	}
}

func TestTitleBuilder_NeverExceedsLengthLimit(t *testing.T) {
	tables := loadTables(t)
	tables.Limits.MaxTitleLength = 45
	b := NewTitleBuilder(tables)

	analysis := &models.AnalysisResult{
		Title: "A remarkably verbose title about a castle on a hill at dusk",
	}
	title := b.Build(analysis, "img.jpg")
	if len(title) > tables.Limits.MaxTitleLength {
		t.Errorf("Title exceeds limit of %d: %q (%d)", tables.Limits.MaxTitleLength, title, len(title))
	}
	if title == "" {
		t.Error("Expected a non-empty title")
	}
}

func TestTitleBuilder_CallToActionFirstFit(t *testing.T) {
	tables := loadTables(t)
	tables.Limits.MaxTitleLength = 60
	tables.CallToAction = []string{
		"An enormously long phrase that cannot possibly fit in the remaining budget.",
		"Make it yours.",
	}
	b := NewTitleBuilder(tables)

	title := b.Build(&models.AnalysisResult{Title: "Mystic Knight"}, "img.jpg")
	if !strings.HasSuffix(title, " - Make it yours.") {
		t.Errorf("Expected the first phrase that fits, got %q", title)
	}
}

func TestDefaultTitle_EmptyStem(t *testing.T) {
	if title := DefaultTitle("###.jpg"); title != "Untitled Image" {
		t.Errorf("Expected Untitled Image, got %q", title)
	}
}
