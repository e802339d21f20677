package validation

import (
	"strings"
	"testing"

	"stock-image-tagger/internal/config"
	"stock-image-tagger/pkg/models"
)

func testTables(t *testing.T) *config.Tables {
	t.Helper()
	tables, err := config.LoadTables("")
	if err != nil {
		t.Fatalf("Failed to load default tables: %v", err)
	}
	return tables
}

func cleanRecord() *models.MetadataRecord {
	return &models.MetadataRecord{
		OriginalFilename: "dragon.jpg",
		NewFilename:      "Knig_Fant.jpg",
		Title:            "Fantasy Knight",
		Keywords:         []string{"knight", "horns"},
		Description:      "A knight with horns.",
	}
}

func hasIssue(issues []string, substr string) bool {
	for _, issue := range issues {
		if strings.Contains(issue, substr) {
			return true
		}
	}
	return false
}

func TestValidate_CleanRecord(t *testing.T) {
	v := NewRecordValidator(testTables(t))
	if issues := v.Validate(cleanRecord()); len(issues) != 0 {
		t.Errorf("Expected no issues, got %v", issues)
	}
}

func TestValidate_EmptyFields(t *testing.T) {
	v := NewRecordValidator(testTables(t))

	record := cleanRecord()
	record.Title = ""
	record.NewFilename = ""
	issues := v.Validate(record)

	if !hasIssue(issues, "title is empty") {
		t.Errorf("Expected an empty title issue, got %v", issues)
	}
	if !hasIssue(issues, "filename is empty") {
		t.Errorf("Expected an empty filename issue, got %v", issues)
	}
}

func TestValidate_LengthLimits(t *testing.T) {
	tables := testTables(t)
	tables.Limits.MaxTitleLength = 10
	tables.Limits.MaxDescriptionLength = 10
	v := NewRecordValidator(tables)

	record := cleanRecord()
	issues := v.Validate(record)

	if !hasIssue(issues, "title exceeds") {
		t.Errorf("Expected a title length issue, got %v", issues)
	}
	if !hasIssue(issues, "description exceeds") {
		t.Errorf("Expected a description length issue, got %v", issues)
	}
}

func TestValidate_ExtensionChange(t *testing.T) {
	v := NewRecordValidator(testTables(t))

	record := cleanRecord()
	record.NewFilename = "Knig_Fant.png"
	if issues := v.Validate(record); !hasIssue(issues, "extension changed") {
		t.Errorf("Expected an extension issue, got %v", issues)
	}

	// Case differences in the extension are not a change.
	record = cleanRecord()
	record.NewFilename = "Knig_Fant.JPG"
	if issues := v.Validate(record); hasIssue(issues, "extension changed") {
		t.Errorf("Expected no issue for a case-only difference, got %v", issues)
	}
}

func TestValidate_FilenameCollisionAcrossBatch(t *testing.T) {
	v := NewRecordValidator(testTables(t))

	if issues := v.Validate(cleanRecord()); len(issues) != 0 {
		t.Fatalf("Expected the first record to pass, got %v", issues)
	}

	second := cleanRecord()
	second.NewFilename = "KNIG_FANT.jpg"
	if issues := v.Validate(second); !hasIssue(issues, "collides") {
		t.Errorf("Expected a case-insensitive collision issue, got %v", issues)
	}
}

func TestValidate_KeywordHygiene(t *testing.T) {
	v := NewRecordValidator(testTables(t))

	record := cleanRecord()
	record.Keywords = []string{"knight", "Knight", "the"}
	issues := v.Validate(record)

	if !hasIssue(issues, "duplicate keyword") {
		t.Errorf("Expected a duplicate keyword issue, got %v", issues)
	}
	if !hasIssue(issues, "common word") {
		t.Errorf("Expected a stoplist issue, got %v", issues)
	}
}
