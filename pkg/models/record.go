package models

// MetadataRecord is the final, immutable output for one processed image. One
// record is produced per image regardless of how much of the pipeline
// succeeded; fields that could not be derived from the analysis are filled by
// the fallback generators, and Error describes what went wrong, if anything.
type MetadataRecord struct {
	OriginalFilename string   `json:"original_filename"`
	NewFilename      string   `json:"new_filename"`
	Title            string   `json:"title"`
	Keywords         []string `json:"keywords"`
	Description      string   `json:"description"`
	UseCases         []string `json:"use_cases"`
	Audiences        []string `json:"target_audience"`
	Category         string   `json:"category"`
	Releases         string   `json:"releases"`

	// RawAnalysis is the opaque upstream payload, retained for audit.
	RawAnalysis string `json:"raw_analysis,omitempty"`

	// Error is non-empty when any stage of processing failed. A populated
	// Error never implies missing fields above.
	Error string `json:"error,omitempty"`
}

// Failed reports whether processing of this image ended with an error.
func (r *MetadataRecord) Failed() bool {
	return r.Error != ""
}
