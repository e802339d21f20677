package analysis

import (
	"encoding/json"
	"strings"

	"stock-image-tagger/pkg/models"
)

// ParseResponse turns the raw model output into an AnalysisResult. Models
// frequently wrap their JSON in markdown fences despite being told not to, so
// fences are stripped before decoding. A payload that still fails to decode
// is not an error: the result comes back empty with the raw text retained, and
// every downstream builder takes its fallback path.
func ParseResponse(raw string) *models.AnalysisResult {
	text := stripFences(raw)

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return &models.AnalysisResult{Raw: raw}
	}

	result.Raw = raw
	result.Title = strings.TrimSpace(result.Title)
	result.Description = strings.TrimSpace(result.Description)
	result.PersuasiveDescription = strings.TrimSpace(result.PersuasiveDescription)
	result.Scene = strings.TrimSpace(result.Scene)
	result.Entities = trimAll(result.Entities)
	result.Styles = trimAll(result.Styles)
	result.UseCases = trimAll(result.UseCases)
	result.Audiences = trimAll(result.Audiences)
	return &result
}

func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func trimAll(items []string) []string {
	out := items[:0]
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
