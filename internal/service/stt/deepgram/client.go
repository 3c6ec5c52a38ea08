// Package deepgram provides a Deepgram prerecorded transcription client.
package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"call-pipeline-diagnostics/internal/models"
	"call-pipeline-diagnostics/internal/service/stt"
)

const listenPath = "/v1/listen"

// Client implements stt.Transcriber against the Deepgram REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a Deepgram client. baseURL defaults to the public API host
// when empty.
func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = "https://api.deepgram.com"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

// mimeTypeFor maps an audio filename to the upload content type.
func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return "audio/mp3"
	case ".ogg":
		return "audio/ogg"
	case ".flac":
		return "audio/flac"
	default:
		return "audio/wav"
	}
}

// TranscribeFile uploads a local audio file to the provider.
func (c *Client) TranscribeFile(ctx context.Context, path string, opts stt.Options) (*models.TranscriptionResult, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("stat audio file: %w", err)
	}

	contentType := mimeTypeFor(path)
	log.Info().
		Str("file", path).
		Str("contentType", contentType).
		Int64("fileSize", info.Size()).
		Msg("Transcribing local file")

	return c.listen(ctx, f, contentType, opts)
}

// TranscribeURL asks the provider to fetch and transcribe hosted audio,
// typically a storage SAS URL.
func (c *Client) TranscribeURL(ctx context.Context, audioURL string, opts stt.Options) (*models.TranscriptionResult, []byte, error) {
	payload, err := json.Marshal(map[string]string{"url": audioURL})
	if err != nil {
		return nil, nil, err
	}

	log.Info().Msg("Transcribing hosted audio by URL")
	return c.listen(ctx, bytes.NewReader(payload), "application/json", opts)
}

// listen performs the POST against /v1/listen and decodes the response.
func (c *Client) listen(ctx context.Context, body io.Reader, contentType string, opts stt.Options) (*models.TranscriptionResult, []byte, error) {
	u := c.baseURL + listenPath + "?" + opts.Query().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, body)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read transcription response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, raw, fmt.Errorf("transcription failed: status %d: %s", resp.StatusCode, snippet(raw))
	}

	result, err := models.ParseTranscriptionResult(raw)
	if err != nil {
		return nil, raw, fmt.Errorf("decode transcription response: %w", err)
	}

	log.Info().
		Dur("elapsed", time.Since(start)).
		Str("detectedLanguage", result.DetectedLanguage()).
		Float64("languageConfidence", result.LanguageConfidence()).
		Int("transcriptLength", len(result.Transcript())).
		Msg("Transcription completed")

	return result, raw, nil
}

// snippet truncates an error body for logging.
func snippet(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
