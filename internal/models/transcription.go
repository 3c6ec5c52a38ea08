// Package models defines the data structures the diagnostics read and write:
// the speech-to-text provider's response shape, the pipeline's database rows
// and the transcript event payload.
package models

import (
	"encoding/json"
	"strings"
)

// TranscriptionResult is the provider's prerecorded transcription response.
type TranscriptionResult struct {
	Metadata Metadata `json:"metadata"`
	Results  Results  `json:"results"`
}

// Metadata carries request-level information from the provider.
type Metadata struct {
	RequestID string  `json:"request_id"`
	Duration  float64 `json:"duration"`
	Channels  int     `json:"channels"`
}

// Results holds per-channel recognition results and optional utterances.
type Results struct {
	Channels   []Channel   `json:"channels"`
	Utterances []Utterance `json:"utterances,omitempty"`
}

// Channel is one audio channel's recognition result.
type Channel struct {
	DetectedLanguage   string        `json:"detected_language,omitempty"`
	LanguageConfidence float64       `json:"language_confidence,omitempty"`
	Alternatives       []Alternative `json:"alternatives"`
}

// Alternative is one candidate transcript for a channel.
type Alternative struct {
	Transcript string          `json:"transcript"`
	Confidence float64         `json:"confidence"`
	Paragraphs *ParagraphGroup `json:"paragraphs,omitempty"`
}

// ParagraphGroup wraps the paragraph list inside an alternative.
type ParagraphGroup struct {
	Transcript string      `json:"transcript,omitempty"`
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Paragraph is a speaker-attributed span of the transcript.
type Paragraph struct {
	Sentences []Sentence `json:"sentences"`
	Speaker   int        `json:"speaker"`
	NumWords  int        `json:"num_words,omitempty"`
	Start     float64    `json:"start"`
	End       float64    `json:"end"`
	Text      string     `json:"text,omitempty"`
}

// Sentence is one sentence within a paragraph.
type Sentence struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Utterance is a diarized span of speech.
type Utterance struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
	Channel    int     `json:"channel"`
	Transcript string  `json:"transcript"`
	Speaker    int     `json:"speaker"`
	ID         string  `json:"id,omitempty"`
}

// ParseTranscriptionResult decodes a raw provider response body.
func ParseTranscriptionResult(data []byte) (*TranscriptionResult, error) {
	var res TranscriptionResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// firstChannel returns the first channel, if any.
func (r *TranscriptionResult) firstChannel() *Channel {
	if r == nil || len(r.Results.Channels) == 0 {
		return nil
	}
	return &r.Results.Channels[0]
}

// firstAlternative returns the first alternative of the first channel, if any.
func (r *TranscriptionResult) firstAlternative() *Alternative {
	ch := r.firstChannel()
	if ch == nil || len(ch.Alternatives) == 0 {
		return nil
	}
	return &ch.Alternatives[0]
}

// DetectedLanguage returns the first channel's detected language,
// or "unknown" when the response carries none.
func (r *TranscriptionResult) DetectedLanguage() string {
	if ch := r.firstChannel(); ch != nil && ch.DetectedLanguage != "" {
		return ch.DetectedLanguage
	}
	return "unknown"
}

// LanguageConfidence returns the first channel's language confidence.
func (r *TranscriptionResult) LanguageConfidence() float64 {
	if ch := r.firstChannel(); ch != nil {
		return ch.LanguageConfidence
	}
	return 0
}

// Transcript returns the primary transcript: the first alternative
// of the first channel. Empty string when the response has none.
func (r *TranscriptionResult) Transcript() string {
	if alt := r.firstAlternative(); alt != nil {
		return alt.Transcript
	}
	return ""
}

// Confidence returns the primary transcript's confidence score.
func (r *TranscriptionResult) Confidence() float64 {
	if alt := r.firstAlternative(); alt != nil {
		return alt.Confidence
	}
	return 0
}

// Paragraphs returns the primary alternative's paragraphs, or nil.
func (r *TranscriptionResult) Paragraphs() []Paragraph {
	alt := r.firstAlternative()
	if alt == nil || alt.Paragraphs == nil {
		return nil
	}
	return alt.Paragraphs.Paragraphs
}

// CombinedText returns the paragraph's text, joining the sentence texts
// when the provider did not populate the paragraph-level text field.
func (p Paragraph) CombinedText() string {
	if p.Text != "" {
		return p.Text
	}
	parts := make([]string, 0, len(p.Sentences))
	for _, s := range p.Sentences {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " ")
}

// Structure summarizes the shape of a response for diagnostics output.
type Structure struct {
	Channels     int `json:"channels"`
	Alternatives int `json:"alternatives"`
	Paragraphs   int `json:"paragraphs"`
	Sentences    int `json:"sentences"`
	Utterances   int `json:"utterances"`
}

// Analyze walks the response and counts its nested structures.
func (r *TranscriptionResult) Analyze() Structure {
	var s Structure
	if r == nil {
		return s
	}
	s.Channels = len(r.Results.Channels)
	s.Utterances = len(r.Results.Utterances)
	for _, ch := range r.Results.Channels {
		s.Alternatives += len(ch.Alternatives)
		for _, alt := range ch.Alternatives {
			if alt.Paragraphs == nil {
				continue
			}
			s.Paragraphs += len(alt.Paragraphs.Paragraphs)
			for _, p := range alt.Paragraphs.Paragraphs {
				s.Sentences += len(p.Sentences)
			}
		}
	}
	return s
}
