// Package smoke exercises the transcription HTTP API's direct endpoints
// and validates the response contract.
package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Endpoint paths under test.
const (
	PathTranscribe   = "/direct/transcribe"
	PathTranscribeV2 = "/direct/transcribe_v2"
)

// Request is the JSON payload both endpoints accept.
type Request struct {
	Filename string `json:"filename"`
	FileID   string `json:"fileid"`
}

// DBStorage reports how the API persisted the transcript.
type DBStorage struct {
	Success             bool `json:"success"`
	ParagraphsProcessed int  `json:"paragraphs_processed"`
}

// Response is the JSON body both endpoints return. FileSize is only
// populated by the v2 endpoint.
type Response struct {
	Success          bool       `json:"success"`
	Transcript       string     `json:"transcript"`
	TranscriptLength int        `json:"transcript_length"`
	FileSize         int64      `json:"file_size,omitempty"`
	DBStorage        *DBStorage `json:"db_storage,omitempty"`
	Error            string     `json:"error,omitempty"`
}

// Validate checks the response contract. requireFileSize applies the
// additional v2 assertion that the blob's size was read.
func (r *Response) Validate(requireFileSize bool) error {
	var problems []string
	if !r.Success {
		problems = append(problems, fmt.Sprintf("success is false (error: %s)", r.Error))
	}
	if r.TranscriptLength <= 0 {
		problems = append(problems, "transcript_length is not positive")
	}
	switch {
	case r.DBStorage == nil:
		problems = append(problems, "db_storage missing")
	case !r.DBStorage.Success:
		problems = append(problems, "db_storage.success is false")
	case r.DBStorage.ParagraphsProcessed <= 0:
		problems = append(problems, "db_storage.paragraphs_processed is not positive")
	}
	if requireFileSize && r.FileSize <= 0 {
		problems = append(problems, "file_size is missing or zero")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// Client issues smoke requests against the API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a smoke test client for the API at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Transcribe posts to the v1 endpoint.
func (c *Client) Transcribe(ctx context.Context, filename, fileID string) (*Response, error) {
	return c.post(ctx, PathTranscribe, filename, fileID)
}

// TranscribeV2 posts to the v2 endpoint.
func (c *Client) TranscribeV2(ctx context.Context, filename, fileID string) (*Response, error) {
	return c.post(ctx, PathTranscribeV2, filename, fileID)
}

func (c *Client) post(ctx context.Context, path, filename, fileID string) (*Response, error) {
	payload, err := json.Marshal(Request{Filename: filename, FileID: fileID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, truncate(body))
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	return &out, nil
}

func truncate(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}

// Outcome is one endpoint's result in a comparison run.
type Outcome struct {
	Response *Response
	Elapsed  time.Duration
	Err      error
}

// Passed reports whether the endpoint satisfied its contract.
func (o Outcome) Passed(requireFileSize bool) bool {
	if o.Err != nil || o.Response == nil {
		return false
	}
	return o.Response.Validate(requireFileSize) == nil
}

// Comparison holds the outcomes of hitting both endpoint versions with
// the same payload.
type Comparison struct {
	V1 Outcome
	V2 Outcome
}

// Compare runs the same request against v1 and v2 and reports both
// outcomes with per-endpoint timing.
func (c *Client) Compare(ctx context.Context, filename, fileID string) Comparison {
	var cmp Comparison

	start := time.Now()
	cmp.V1.Response, cmp.V1.Err = c.Transcribe(ctx, filename, fileID)
	cmp.V1.Elapsed = time.Since(start)

	start = time.Now()
	cmp.V2.Response, cmp.V2.Err = c.TranscribeV2(ctx, filename, fileID+"_v2")
	cmp.V2.Elapsed = time.Since(start)

	log.Info().
		Bool("v1Passed", cmp.V1.Passed(false)).
		Bool("v2Passed", cmp.V2.Passed(true)).
		Dur("v1Elapsed", cmp.V1.Elapsed).
		Dur("v2Elapsed", cmp.V2.Elapsed).
		Msg("Endpoint comparison finished")
	return cmp
}
