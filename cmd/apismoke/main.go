// apismoke posts a known recording to the transcription API's direct
// endpoints and checks the response contract. Modes: v1, v2, or compare
// (both endpoints with the same payload, timed side by side).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"call-pipeline-diagnostics/internal/app"
	"call-pipeline-diagnostics/internal/smoke"
)

// defaultFilename is a recording known to exist in the source container.
const defaultFilename = "business_investment_account_(mudarabah)_neutral.mp3"

func main() {
	mode := flag.String("mode", "compare", "which endpoints to hit: v1, v2 or compare")
	filename := flag.String("filename", defaultFilename, "blob name the API should transcribe")
	flag.Parse()

	a := app.New("apismoke")
	logger := a.Logger

	client := smoke.NewClient(a.Cfg.API.BaseURL, a.Cfg.API.Timeout)
	fileID := fmt.Sprintf("smoke_%d", time.Now().Unix())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	logger.Info().
		Str("api", a.Cfg.API.BaseURL).
		Str("mode", *mode).
		Str("filename", *filename).
		Str("fileid", fileID).
		Msg("Starting API smoke test")

	switch *mode {
	case "v1":
		runOne(ctx, a, client.Transcribe, *filename, fileID, false)
	case "v2":
		runOne(ctx, a, client.TranscribeV2, *filename, fileID, true)
	case "compare":
		runCompare(ctx, a, client, *filename, fileID)
	default:
		logger.Error().Str("mode", *mode).Msg("Unknown mode")
		os.Exit(2)
	}
}

func runOne(ctx context.Context, a *app.Application, call func(context.Context, string, string) (*smoke.Response, error), filename, fileID string, requireFileSize bool) {
	start := time.Now()
	resp, err := call(ctx, filename, fileID)
	elapsed := time.Since(start)
	if err != nil {
		a.Logger.Error().Err(err).Dur("elapsed", elapsed).Msg("Request failed")
		os.Exit(1)
	}

	report(resp, elapsed)

	if err := resp.Validate(requireFileSize); err != nil {
		a.Logger.Error().Err(err).Msg("Response contract violated")
		os.Exit(1)
	}
	a.Logger.Info().Dur("elapsed", elapsed).Msg("Smoke test passed")
}

func runCompare(ctx context.Context, a *app.Application, client *smoke.Client, filename, fileID string) {
	cmp := client.Compare(ctx, filename, fileID)

	fmt.Println("=== /direct/transcribe ===")
	reportOutcome(cmp.V1)
	fmt.Println("\n=== /direct/transcribe_v2 ===")
	reportOutcome(cmp.V2)

	v1OK := cmp.V1.Passed(false)
	v2OK := cmp.V2.Passed(true)
	fmt.Printf("\nv1: %s  v2: %s\n", verdict(v1OK), verdict(v2OK))

	if !v1OK || !v2OK {
		os.Exit(1)
	}
	a.Logger.Info().Msg("Both endpoints passed")
}

func reportOutcome(o smoke.Outcome) {
	if o.Err != nil {
		fmt.Printf("request failed after %s: %v\n", o.Elapsed.Round(time.Millisecond), o.Err)
		return
	}
	report(o.Response, o.Elapsed)
}

func report(resp *smoke.Response, elapsed time.Duration) {
	fmt.Printf("elapsed: %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("success: %v\n", resp.Success)
	fmt.Printf("transcript_length: %d\n", resp.TranscriptLength)
	if resp.FileSize > 0 {
		fmt.Printf("file_size: %d\n", resp.FileSize)
	}
	if resp.DBStorage != nil {
		fmt.Printf("db_storage: success=%v paragraphs=%d\n",
			resp.DBStorage.Success, resp.DBStorage.ParagraphsProcessed)
	}
	if resp.Error != "" {
		fmt.Printf("error: %s\n", resp.Error)
	}
	if resp.Transcript != "" {
		t := resp.Transcript
		if len(t) > 200 {
			t = t[:200] + "..."
		}
		fmt.Printf("transcript head: %s\n", t)
	}
}

func verdict(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}
