package report

import (
	"encoding/csv"
	"os"
	"strings"
	"testing"

	"stock-image-tagger/pkg/models"
)

func TestWriter_WritesHeaderAndRows(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}

	record := &models.MetadataRecord{
		OriginalFilename: "dragon.jpg",
		NewFilename:      "Knig_Fant.jpg",
		Title:            "Fantasy Knight",
		Keywords:         []string{"knight", "horns", "warrior"},
		Description:      "A knight with horns.",
		UseCases:         []string{"Cre", "Edit"},
		Audiences:        []string{"Art"},
		Category:         "Graphics",
	}
	if err := w.Write(record); err != nil {
		t.Fatalf("Failed to write record: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close writer: %v", err)
	}

	file, err := os.Open(w.Path())
	if err != nil {
		t.Fatalf("Failed to open report: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected header plus one row, got %d rows", len(rows))
	}
	if rows[0][0] != "original_filename" || rows[0][len(rows[0])-1] != "error" {
		t.Errorf("Unexpected header: %v", rows[0])
	}
	if rows[1][1] != "Knig_Fant.jpg" {
		t.Errorf("Expected the new filename in column 2, got %q", rows[1][1])
	}
	if rows[1][3] != "knight, horns, warrior" {
		t.Errorf("Expected comma-joined keywords, got %q", rows[1][3])
	}
	if rows[1][5] != "Cre, Edit" {
		t.Errorf("Expected comma-joined use cases, got %q", rows[1][5])
	}
}

func TestWriter_RowIsOnDiskBeforeClose(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	defer w.Close()

	if err := w.Write(&models.MetadataRecord{OriginalFilename: "a.jpg"}); err != nil {
		t.Fatalf("Failed to write record: %v", err)
	}

	// Rows are flushed per write so an interrupted run keeps them.
	data, err := os.ReadFile(w.Path())
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	if !strings.Contains(string(data), "a.jpg") {
		t.Error("Expected the row on disk before Close")
	}
}

func TestWriter_NamesIncludeRunID(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	defer w.Close()

	if w.RunID() == "" {
		t.Error("Expected a non-empty run identifier")
	}
	if !strings.Contains(w.Path(), w.RunID()) {
		t.Errorf("Expected the run identifier in the report name, got %q", w.Path())
	}
	if !strings.Contains(w.Path(), "image_processing_report_") {
		t.Errorf("Unexpected report name: %q", w.Path())
	}
}
