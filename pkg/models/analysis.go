package models

// AnalysisResult represents the structured output of the vision model for a
// single image. The upstream response has no guaranteed schema, so every
// field is optional: an empty value means the model did not provide it, which
// is a normal state rather than an error. Builders check presence and fall
// back on their own defaults.
type AnalysisResult struct {
	// Title is the model-suggested sales title.
	Title string `json:"suggested_title,omitempty"`

	// Description is the plain, factual description of the image.
	Description string `json:"basic_description,omitempty"`

	// PersuasiveDescription is the client-facing description highlighting
	// benefits and potential uses.
	PersuasiveDescription string `json:"persuasive_description,omitempty"`

	// Entities lists the most distinctive elements detected in the image,
	// most impactful first.
	Entities []string `json:"distinctive_elements,omitempty"`

	// Scene is a single label for the overall scene or mood.
	Scene string `json:"scene,omitempty"`

	// Styles lists the key artistic styles.
	Styles []string `json:"key_styles,omitempty"`

	// UseCases and Audiences are model-suggested; the suggester merges them
	// with its own rule table.
	UseCases  []string `json:"suggested_use_cases,omitempty"`
	Audiences []string `json:"suggested_target_audience,omitempty"`

	// Raw retains the unparsed response payload for the audit column of the
	// report. It is set even when the payload could not be decoded.
	Raw string `json:"-"`
}

// HasTitle reports whether the model supplied a usable title.
func (r *AnalysisResult) HasTitle() bool {
	return r != nil && r.Title != ""
}

// HasDescription reports whether any description text is available.
func (r *AnalysisResult) HasDescription() bool {
	return r != nil && (r.Description != "" || r.PersuasiveDescription != "")
}

// IsEmpty reports whether the analysis carries no usable signal at all.
func (r *AnalysisResult) IsEmpty() bool {
	if r == nil {
		return true
	}
	return r.Title == "" && r.Description == "" && r.PersuasiveDescription == "" &&
		len(r.Entities) == 0 && r.Scene == "" && len(r.Styles) == 0
}

// Terms returns the detected entities, scene label and style descriptors as a
// single ordered list, entities first. Safe to call on a nil result.
func (r *AnalysisResult) Terms() []string {
	if r == nil {
		return nil
	}
	terms := make([]string, 0, len(r.Entities)+len(r.Styles)+1)
	terms = append(terms, r.Entities...)
	if r.Scene != "" {
		terms = append(terms, r.Scene)
	}
	terms = append(terms, r.Styles...)
	return terms
}
