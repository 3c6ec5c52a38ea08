package models

import (
	"testing"
)

const sampleResponse = `{
  "metadata": {"request_id": "req-123", "duration": 42.5, "channels": 1},
  "results": {
    "channels": [
      {
        "detected_language": "en",
        "language_confidence": 0.98,
        "alternatives": [
          {
            "transcript": "hello thank you for calling how can I help you today",
            "confidence": 0.93,
            "paragraphs": {
              "transcript": "Speaker 0: hello thank you for calling",
              "paragraphs": [
                {
                  "speaker": 0,
                  "start": 0.1,
                  "end": 3.4,
                  "sentences": [
                    {"text": "hello thank you for calling.", "start": 0.1, "end": 2.0},
                    {"text": "how can I help you today?", "start": 2.1, "end": 3.4}
                  ]
                },
                {
                  "speaker": 1,
                  "start": 3.9,
                  "end": 6.0,
                  "text": "I want to check my account balance.",
                  "sentences": [
                    {"text": "I want to check my account balance.", "start": 3.9, "end": 6.0}
                  ]
                }
              ]
            }
          }
        ]
      }
    ],
    "utterances": [
      {"start": 0.1, "end": 3.4, "confidence": 0.93, "channel": 0, "transcript": "hello thank you for calling", "speaker": 0}
    ]
  }
}`

func TestParseTranscriptionResult(t *testing.T) {
	res, err := ParseTranscriptionResult([]byte(sampleResponse))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	if res.Metadata.RequestID != "req-123" {
		t.Errorf("expected request id 'req-123', got %s", res.Metadata.RequestID)
	}
	if res.DetectedLanguage() != "en" {
		t.Errorf("expected detected language 'en', got %s", res.DetectedLanguage())
	}
	if res.LanguageConfidence() != 0.98 {
		t.Errorf("expected language confidence 0.98, got %f", res.LanguageConfidence())
	}
	if res.Transcript() != "hello thank you for calling how can I help you today" {
		t.Errorf("unexpected transcript: %s", res.Transcript())
	}
	if res.Confidence() != 0.93 {
		t.Errorf("expected confidence 0.93, got %f", res.Confidence())
	}
	if got := len(res.Paragraphs()); got != 2 {
		t.Errorf("expected 2 paragraphs, got %d", got)
	}
}

func TestParseTranscriptionResult_InvalidJSON(t *testing.T) {
	if _, err := ParseTranscriptionResult([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestAccessors_EmptyResponse(t *testing.T) {
	res, err := ParseTranscriptionResult([]byte(`{"results": {"channels": []}}`))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	if res.DetectedLanguage() != "unknown" {
		t.Errorf("expected 'unknown' language for empty response, got %s", res.DetectedLanguage())
	}
	if res.Transcript() != "" {
		t.Errorf("expected empty transcript, got %s", res.Transcript())
	}
	if res.Confidence() != 0 {
		t.Errorf("expected zero confidence, got %f", res.Confidence())
	}
	if res.Paragraphs() != nil {
		t.Error("expected nil paragraphs for empty response")
	}
}

func TestAccessors_NilReceiver(t *testing.T) {
	var res *TranscriptionResult

	if res.DetectedLanguage() != "unknown" {
		t.Error("expected 'unknown' language on nil receiver")
	}
	if res.Transcript() != "" {
		t.Error("expected empty transcript on nil receiver")
	}
	if s := res.Analyze(); s.Channels != 0 {
		t.Error("expected zero structure on nil receiver")
	}
}

func TestParagraph_CombinedText(t *testing.T) {
	tests := []struct {
		name string
		p    Paragraph
		want string
	}{
		{
			name: "text field populated",
			p:    Paragraph{Text: "direct text", Sentences: []Sentence{{Text: "ignored"}}},
			want: "direct text",
		},
		{
			name: "joined from sentences",
			p: Paragraph{Sentences: []Sentence{
				{Text: "first sentence."},
				{Text: "second sentence."},
			}},
			want: "first sentence. second sentence.",
		},
		{
			name: "empty paragraph",
			p:    Paragraph{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.CombinedText(); got != tt.want {
				t.Errorf("CombinedText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnalyze(t *testing.T) {
	res, err := ParseTranscriptionResult([]byte(sampleResponse))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	s := res.Analyze()
	if s.Channels != 1 {
		t.Errorf("expected 1 channel, got %d", s.Channels)
	}
	if s.Alternatives != 1 {
		t.Errorf("expected 1 alternative, got %d", s.Alternatives)
	}
	if s.Paragraphs != 2 {
		t.Errorf("expected 2 paragraphs, got %d", s.Paragraphs)
	}
	if s.Sentences != 3 {
		t.Errorf("expected 3 sentences, got %d", s.Sentences)
	}
	if s.Utterances != 1 {
		t.Errorf("expected 1 utterance, got %d", s.Utterances)
	}
}
