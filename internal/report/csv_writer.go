package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "stock-image-tagger/internal/errors"
	"stock-image-tagger/pkg/models"
)

// columns maps 1:1 onto MetadataRecord fields.
var columns = []string{
	"original_filename",
	"new_filename",
	"title",
	"keywords",
	"description",
	"use_cases",
	"target_audience",
	"category",
	"releases",
	"raw_analysis",
	"error",
}

// Writer streams MetadataRecords into a CSV report. Every row is flushed as
// it is written so an interrupted run keeps all completed records.
type Writer struct {
	file  *os.File
	csv   *csv.Writer
	path  string
	runID string
}

// NewWriter creates the report file in dir, named with a timestamp and a
// short run identifier, and writes the header row.
func NewWriter(dir string) (*Writer, error) {
	runID := strings.Split(uuid.NewString(), "-")[0]
	name := fmt.Sprintf("image_processing_report_%s_%s.csv",
		time.Now().Format("20060102150405"), runID)
	path := filepath.Join(dir, name)

	file, err := os.Create(path)
	if err != nil {
		return nil, apperrors.NewFilesystemError("failed to create report file", err)
	}

	w := &Writer{
		file:  file,
		csv:   csv.NewWriter(file),
		path:  path,
		runID: runID,
	}
	if err := w.csv.Write(columns); err != nil {
		file.Close()
		return nil, apperrors.NewFilesystemError("failed to write report header", err)
	}
	w.csv.Flush()
	return w, w.csv.Error()
}

// Write appends one record as a row and flushes it to disk.
func (w *Writer) Write(record *models.MetadataRecord) error {
	row := []string{
		record.OriginalFilename,
		record.NewFilename,
		record.Title,
		strings.Join(record.Keywords, ", "),
		record.Description,
		strings.Join(record.UseCases, ", "),
		strings.Join(record.Audiences, ", "),
		record.Category,
		record.Releases,
		record.RawAnalysis,
		record.Error,
	}
	if err := w.csv.Write(row); err != nil {
		return apperrors.NewFilesystemError("failed to write report row", err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return apperrors.NewFilesystemError("failed to flush report row", err)
	}
	return nil
}

// Path returns the location of the report file.
func (w *Writer) Path() string {
	return w.path
}

// RunID returns the short identifier embedded in the report filename.
func (w *Writer) RunID() string {
	return w.runID
}

// Close flushes and closes the report file.
func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
