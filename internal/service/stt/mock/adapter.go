// Package mock provides a canned transcription adapter for running the
// diagnostics without provider credentials or network access.
package mock

import (
	"context"
	"encoding/json"
	"sync"

	"call-pipeline-diagnostics/internal/models"
	"call-pipeline-diagnostics/internal/service/stt"
)

// SimulatedCall is one canned call transcript served by the adapter.
type SimulatedCall struct {
	Transcript string
	Language   string
	Confidence float64
	Speakers   []string // per-paragraph speaker lines, alternating agent/caller
}

// DefaultCalls provides sample call transcripts for simulation.
var DefaultCalls = []SimulatedCall{
	{
		Transcript: "thank you for calling how can I help you today I would like to open an investment account",
		Language:   "en",
		Confidence: 0.94,
		Speakers: []string{
			"thank you for calling how can I help you today",
			"I would like to open an investment account",
		},
	},
	{
		Transcript: "hello I am calling about the lease agreement for the equipment yes let me pull that up",
		Language:   "en",
		Confidence: 0.91,
		Speakers: []string{
			"hello I am calling about the lease agreement for the equipment",
			"yes let me pull that up",
		},
	},
	{
		Transcript: "can you confirm my last payment was received it was posted yesterday",
		Language:   "en",
		Confidence: 0.97,
		Speakers: []string{
			"can you confirm my last payment was received",
			"it was posted yesterday",
		},
	},
}

// Adapter implements stt.Transcriber with canned responses, cycling
// through DefaultCalls across invocations.
type Adapter struct{}

var (
	callCounter int
	counterMu   sync.Mutex
)

// New creates a new mock adapter.
func New() *Adapter {
	return &Adapter{}
}

func nextCall() SimulatedCall {
	counterMu.Lock()
	defer counterMu.Unlock()
	c := DefaultCalls[callCounter%len(DefaultCalls)]
	callCounter++
	return c
}

// TranscribeFile returns a canned result; the path is only logged by callers.
func (a *Adapter) TranscribeFile(ctx context.Context, path string, opts stt.Options) (*models.TranscriptionResult, []byte, error) {
	return a.respond(opts)
}

// TranscribeURL returns a canned result for any URL.
func (a *Adapter) TranscribeURL(ctx context.Context, audioURL string, opts stt.Options) (*models.TranscriptionResult, []byte, error) {
	return a.respond(opts)
}

func (a *Adapter) respond(opts stt.Options) (*models.TranscriptionResult, []byte, error) {
	call := nextCall()

	alt := models.Alternative{
		Transcript: call.Transcript,
		Confidence: call.Confidence,
	}
	if opts.Paragraphs {
		group := &models.ParagraphGroup{}
		var offset float64
		for i, text := range call.Speakers {
			group.Paragraphs = append(group.Paragraphs, models.Paragraph{
				Speaker: i % 2,
				Start:   offset,
				End:     offset + 2,
				Sentences: []models.Sentence{
					{Text: text, Start: offset, End: offset + 2},
				},
			})
			offset += 2.5
		}
		alt.Paragraphs = group
	}

	ch := models.Channel{Alternatives: []models.Alternative{alt}}
	if opts.DetectLanguage {
		ch.DetectedLanguage = call.Language
		ch.LanguageConfidence = 0.99
	}

	result := &models.TranscriptionResult{
		Metadata: models.Metadata{RequestID: "mock-request", Channels: 1},
		Results:  models.Results{Channels: []models.Channel{ch}},
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, nil, err
	}
	return result, raw, nil
}
