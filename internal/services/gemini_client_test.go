package services

import "testing"

func TestExtractJSONStripsFences(t *testing.T) {
	t.Parallel()
	raw := "```json\n{\"title\": \"Keto Omelette\"}\n```"
	got := ExtractJSON(raw)
	if got != `{"title": "Keto Omelette"}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestExtractJSONTrimsSurroundingProse(t *testing.T) {
	t.Parallel()
	raw := "Here is your recipe:\n{\"title\": \"Omelette\", \"macros\": {\"carbs\": 3}}\nEnjoy!"
	got := ExtractJSON(raw)
	if got != `{"title": "Omelette", "macros": {"carbs": 3}}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestExtractJSONPassthrough(t *testing.T) {
	t.Parallel()
	if got := ExtractJSON(`{"ok": true}`); got != `{"ok": true}` {
		t.Fatalf("clean JSON must pass through, got %q", got)
	}
	// Nothing extractable: return the trimmed input for the caller's error.
	if got := ExtractJSON("no json here"); got != "no json here" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}
