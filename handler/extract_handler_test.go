package handler

import (
	"encoding/json"
	"testing"
)

func TestWrapRawJSONPassesValidJSON(t *testing.T) {
	raw := `{"Name":"Archicom","City":"Wrocław"}`
	got := wrapRawJSON(raw)
	if string(got) != raw {
		t.Fatalf("valid JSON must pass through untouched, got %q", got)
	}
}

func TestWrapRawJSONWrapsInvalidOutput(t *testing.T) {
	got := wrapRawJSON("Sorry, I could not produce JSON")

	var fallback map[string]string
	if err := json.Unmarshal(got, &fallback); err != nil {
		t.Fatalf("fallback must itself be valid JSON: %v", err)
	}
	if fallback["raw"] != "Sorry, I could not produce JSON" {
		t.Fatalf("fallback must carry the raw text, got %v", fallback)
	}
	if fallback["error"] == "" {
		t.Fatal("fallback must carry an error flag")
	}
}
