package analysis

import "testing"

func TestParseResponse_PlainJSON(t *testing.T) {
	raw := `{"suggested_title": " Mystic Knight ", "scene": "fantasy", "distinctive_elements": ["knight", " horns ", ""]}`

	result := ParseResponse(raw)
	if result.Title != "Mystic Knight" {
		t.Errorf("Expected trimmed title, got %q", result.Title)
	}
	if result.Scene != "fantasy" {
		t.Errorf("Expected scene fantasy, got %q", result.Scene)
	}
	if len(result.Entities) != 2 {
		t.Errorf("Expected blank entities dropped, got %v", result.Entities)
	}
	if result.Raw != raw {
		t.Error("Expected raw payload retained")
	}
}

func TestParseResponse_FencedJSON(t *testing.T) {
	raw := "```json\n{\"suggested_title\": \"Sunset Pier\"}\n```"

	result := ParseResponse(raw)
	if result.Title != "Sunset Pier" {
		t.Errorf("Expected fences stripped before decoding, got title %q", result.Title)
	}
}

func TestParseResponse_BareFence(t *testing.T) {
	raw := "```\n{\"scene\": \"urban\"}\n```"

	result := ParseResponse(raw)
	if result.Scene != "urban" {
		t.Errorf("Expected scene urban, got %q", result.Scene)
	}
}

func TestParseResponse_MalformedPayload(t *testing.T) {
	raw := "I could not produce JSON, sorry."

	result := ParseResponse(raw)
	if result == nil {
		t.Fatal("Expected a result even for a malformed payload")
	}
	if !result.IsEmpty() {
		t.Error("Expected an empty result for a malformed payload")
	}
	if result.Raw != raw {
		t.Error("Expected raw payload retained for the report")
	}
}
