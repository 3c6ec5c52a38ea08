// transcribe runs a one-shot transcription against the speech-to-text
// provider. The path taken is selected by TRANSCRIPTION_METHOD:
//
//	rest (or sdk)  upload a local audio file's bytes
//	shortcut       generate a SAS URL for a blob and hand it to the provider
//	mock           canned offline responses
//
// The full provider response is saved as JSON next to a structure summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"call-pipeline-diagnostics/internal/app"
	"call-pipeline-diagnostics/internal/models"
	"call-pipeline-diagnostics/internal/observability/metrics"
	"call-pipeline-diagnostics/internal/service/stt"
	"call-pipeline-diagnostics/internal/service/stt/deepgram"
	"call-pipeline-diagnostics/internal/service/stt/mock"
	"call-pipeline-diagnostics/internal/storage"
)

// defaultBlob is a sample recording known to exist in the source container.
const defaultBlob = "agricultural_leasing_(ijarah)_normal.mp3"

func main() {
	outputDir := flag.String("output", "direct_test_results", "directory for saved provider responses")
	flag.Parse()

	target := defaultBlob
	if flag.NArg() > 0 {
		target = flag.Arg(0)
	}

	a := app.New("transcribe")
	logger := a.Logger

	method, err := stt.NormalizeMethod(a.Cfg.Transcription.Method)
	if err != nil {
		logger.Error().Err(err).Msg("Bad transcription method")
		os.Exit(1)
	}

	opts := stt.DefaultOptions(a.Cfg.Transcription.Model)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	logger.Info().
		Str("method", method).
		Str("target", target).
		Str("model", opts.Model).
		Msg("Starting transcription")

	start := time.Now()
	result, raw, err := run(ctx, a, method, target, opts)
	metrics.DefaultMetrics.RecordTranscription(method, err, time.Since(start).Seconds())
	if err != nil {
		logger.Error().Err(err).Msg("Transcription failed")
		os.Exit(1)
	}

	logger.Info().
		Str("detectedLanguage", result.DetectedLanguage()).
		Float64("languageConfidence", result.LanguageConfidence()).
		Float64("confidence", result.Confidence()).
		Msg("Transcription result")

	transcript := result.Transcript()
	if len(transcript) > 500 {
		fmt.Printf("\nTranscript:\n%s...\n", transcript[:500])
	} else {
		fmt.Printf("\nTranscript:\n%s\n", transcript)
	}

	s := result.Analyze()
	fmt.Printf("\nResponse structure: channels=%d alternatives=%d paragraphs=%d sentences=%d utterances=%d\n",
		s.Channels, s.Alternatives, s.Paragraphs, s.Sentences, s.Utterances)

	outPath, err := saveResponse(*outputDir, target, raw)
	if err != nil {
		logger.Error().Err(err).Msg("Saving response failed")
		os.Exit(1)
	}
	logger.Info().Str("path", outPath).Msg("Full response saved")
}

// run dispatches the transcription to the configured method.
func run(ctx context.Context, a *app.Application, method, target string, opts stt.Options) (*models.TranscriptionResult, []byte, error) {
	switch method {
	case stt.MethodMock:
		return mock.New().TranscribeURL(ctx, target, opts)

	case stt.MethodShortcut:
		svc, err := storage.NewService(a.Cfg.Storage.ConnectionString)
		if err != nil {
			return nil, nil, err
		}
		sasURL, err := svc.ReadSASURL(a.Cfg.Storage.SourceContainer, target, a.Cfg.Storage.SASExpiry)
		if err != nil {
			return nil, nil, err
		}
		client := deepgram.New(a.Cfg.Transcription.BaseURL, a.Cfg.Transcription.APIKey)
		return client.TranscribeURL(ctx, sasURL, opts)

	default: // rest
		client := deepgram.New(a.Cfg.Transcription.BaseURL, a.Cfg.Transcription.APIKey)
		return client.TranscribeFile(ctx, target, opts)
	}
}

// saveResponse writes the raw provider response under dir, named after
// the audio target.
func saveResponse(dir, target string, raw []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	base := filepath.Base(target)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	outPath := filepath.Join(dir, base+"_result.json")

	if err := os.WriteFile(outPath, raw, 0o644); err != nil {
		return "", err
	}
	return outPath, nil
}
