package llm

import "testing"

func TestGeminiModelAliases(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := lookupModel(tt.in, geminiModels); got != tt.want {
			t.Errorf("lookupModel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt":     map[string]any{"type": "string"},
			"attempts":   map[string]any{"type": "integer"},
			"difficulty": map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
			"tags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"prompt", "difficulty"},
	}

	schema := toGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("type = %s, want OBJECT", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("properties = %d, want 4", len(schema.Properties))
	}
	if schema.Properties["prompt"].Type != "STRING" {
		t.Errorf("prompt type = %s, want STRING", schema.Properties["prompt"].Type)
	}
	if schema.Properties["attempts"].Type != "INTEGER" {
		t.Errorf("attempts type = %s, want INTEGER", schema.Properties["attempts"].Type)
	}
	if len(schema.Properties["difficulty"].Enum) != 3 {
		t.Errorf("enum values = %d, want 3", len(schema.Properties["difficulty"].Enum))
	}
	if schema.Properties["tags"].Type != "ARRAY" {
		t.Errorf("tags type = %s, want ARRAY", schema.Properties["tags"].Type)
	}
	if schema.Properties["tags"].Items.Type != "STRING" {
		t.Errorf("tags items type = %s, want STRING", schema.Properties["tags"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Errorf("required = %d, want 2", len(schema.Required))
	}
}
