// Package stt defines the interface for prerecorded speech-to-text providers.
package stt

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"call-pipeline-diagnostics/internal/models"
)

// Options are the transcription features requested from the provider.
type Options struct {
	Model          string
	Punctuate      bool
	Diarize        bool
	Paragraphs     bool
	Utterances     bool
	SmartFormat    bool
	DetectLanguage bool
}

// DefaultOptions returns the feature set the pipeline transcribes with.
func DefaultOptions(model string) Options {
	return Options{
		Model:          model,
		Punctuate:      true,
		Diarize:        true,
		Paragraphs:     true,
		Utterances:     true,
		SmartFormat:    true,
		DetectLanguage: true,
	}
}

// Query encodes the options as provider query parameters.
func (o Options) Query() url.Values {
	q := url.Values{}
	if o.Model != "" {
		q.Set("model", o.Model)
	}
	q.Set("punctuate", strconv.FormatBool(o.Punctuate))
	q.Set("diarize", strconv.FormatBool(o.Diarize))
	q.Set("paragraphs", strconv.FormatBool(o.Paragraphs))
	q.Set("utterances", strconv.FormatBool(o.Utterances))
	q.Set("smart_format", strconv.FormatBool(o.SmartFormat))
	q.Set("detect_language", strconv.FormatBool(o.DetectLanguage))
	return q
}

// Transcriber transcribes prerecorded audio, either uploaded from a local
// file or fetched by the provider from a URL. Implementations return the
// parsed result along with the raw response body so callers can persist
// the full provider response.
type Transcriber interface {
	TranscribeFile(ctx context.Context, path string, opts Options) (*models.TranscriptionResult, []byte, error)
	TranscribeURL(ctx context.Context, audioURL string, opts Options) (*models.TranscriptionResult, []byte, error)
}

// Methods selectable via the TRANSCRIPTION_METHOD environment variable.
const (
	MethodREST     = "rest"     // upload local file bytes over REST
	MethodShortcut = "shortcut" // hand the provider a storage SAS URL
	MethodMock     = "mock"     // canned offline responses
)

// NormalizeMethod maps a configured method name to one of the supported
// methods. "sdk" is kept as an alias for the REST upload path.
func NormalizeMethod(method string) (string, error) {
	switch method {
	case MethodREST, "sdk", "":
		return MethodREST, nil
	case MethodShortcut:
		return MethodShortcut, nil
	case MethodMock:
		return MethodMock, nil
	default:
		return "", fmt.Errorf("unknown transcription method %q", method)
	}
}
