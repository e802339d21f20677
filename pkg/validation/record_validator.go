package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"stock-image-tagger/internal/config"
	"stock-image-tagger/pkg/models"
)

// RecordValidator checks a MetadataRecord against the structural invariants
// the synthesis engine promises: length limits, keyword hygiene and
// batch-wide filename uniqueness. It does not judge semantic quality.
type RecordValidator struct {
	tables *config.Tables
	seen   map[string]bool
}

// NewRecordValidator creates a validator scoped to one processing batch.
func NewRecordValidator(tables *config.Tables) *RecordValidator {
	return &RecordValidator{
		tables: tables,
		seen:   make(map[string]bool),
	}
}

// Validate returns a list of invariant violations for the record, empty when
// the record is well-formed. Filenames are remembered across calls so
// uniqueness is checked against every record seen earlier in the batch.
func (v *RecordValidator) Validate(record *models.MetadataRecord) []string {
	var issues []string
	limits := v.tables.Limits

	if record.Title == "" {
		issues = append(issues, "title is empty")
	} else if len(record.Title) > limits.MaxTitleLength {
		issues = append(issues, fmt.Sprintf("title exceeds %d characters (%d)", limits.MaxTitleLength, len(record.Title)))
	}

	if record.NewFilename == "" {
		issues = append(issues, "new filename is empty")
	} else {
		if len(record.NewFilename) > limits.MaxFilenameLength {
			issues = append(issues, fmt.Sprintf("filename exceeds %d characters (%d)", limits.MaxFilenameLength, len(record.NewFilename)))
		}
		oldExt := strings.ToLower(filepath.Ext(record.OriginalFilename))
		newExt := strings.ToLower(filepath.Ext(record.NewFilename))
		if oldExt != newExt {
			issues = append(issues, fmt.Sprintf("extension changed from %q to %q", oldExt, newExt))
		}
		key := strings.ToLower(record.NewFilename)
		if v.seen[key] {
			issues = append(issues, "filename collides with an earlier record: "+record.NewFilename)
		}
		v.seen[key] = true
	}

	issues = append(issues, v.validateKeywords(record.Keywords)...)

	if len(record.Description) > limits.MaxDescriptionLength {
		issues = append(issues, fmt.Sprintf("description exceeds %d characters (%d)", limits.MaxDescriptionLength, len(record.Description)))
	}

	return issues
}

// validateKeywords checks for case-insensitive duplicates and stoplist
// members.
func (v *RecordValidator) validateKeywords(keywords []string) []string {
	var issues []string
	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		key := strings.ToLower(kw)
		if seen[key] {
			issues = append(issues, "duplicate keyword: "+kw)
		}
		seen[key] = true
		if v.tables.IsCommonWord(kw) {
			issues = append(issues, "keyword is a common word: "+kw)
		}
	}
	return issues
}
