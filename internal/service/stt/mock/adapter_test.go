package mock

import (
	"context"
	"testing"

	"call-pipeline-diagnostics/internal/models"
	"call-pipeline-diagnostics/internal/service/stt"
)

func TestAdapter_TranscribeURL(t *testing.T) {
	a := New()

	result, raw, err := a.TranscribeURL(context.Background(), "https://example/audio.mp3", stt.DefaultOptions("nova-3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Transcript() == "" {
		t.Error("expected non-empty transcript")
	}
	if result.DetectedLanguage() == "unknown" {
		t.Error("expected a detected language with DetectLanguage on")
	}
	if len(result.Paragraphs()) == 0 {
		t.Error("expected paragraphs with Paragraphs option on")
	}
	if len(raw) == 0 {
		t.Error("expected raw JSON body")
	}

	// Raw body must round-trip through the shared parser.
	parsed, err := models.ParseTranscriptionResult(raw)
	if err != nil {
		t.Fatalf("raw body does not parse: %v", err)
	}
	if parsed.Transcript() != result.Transcript() {
		t.Error("raw body transcript does not match result")
	}
}

func TestAdapter_OptionsRespected(t *testing.T) {
	a := New()

	opts := stt.Options{Model: "nova-3"} // paragraphs and language detection off
	result, _, err := a.TranscribeFile(context.Background(), "ignored.wav", opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Paragraphs() != nil {
		t.Error("expected no paragraphs when option off")
	}
	if result.DetectedLanguage() != "unknown" {
		t.Errorf("expected unknown language when detection off, got %s", result.DetectedLanguage())
	}
}

func TestAdapter_CyclesThroughCalls(t *testing.T) {
	a := New()

	seen := map[string]bool{}
	for i := 0; i < len(DefaultCalls); i++ {
		result, _, err := a.TranscribeURL(context.Background(), "https://example/a.mp3", stt.DefaultOptions(""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[result.Transcript()] = true
	}
	if len(seen) < 2 {
		t.Errorf("expected adapter to cycle through canned calls, saw %d distinct", len(seen))
	}
}
