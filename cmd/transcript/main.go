// transcript prints the stored transcript for a file identifier: the
// asset row, then its paragraphs with speaker labels, and optionally
// the per-paragraph sentence rows.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"call-pipeline-diagnostics/internal/app"
	"call-pipeline-diagnostics/internal/database"
)

func main() {
	sentences := flag.Bool("sentences", false, "also print the stored sentence rows per paragraph")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: transcript [-sentences] <fileid>")
		os.Exit(2)
	}
	fileID := flag.Arg(0)

	a := app.New("transcript")
	logger := a.Logger

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := database.NewClient(ctx, a.Cfg.Database)
	if err != nil {
		logger.Error().Err(err).Msg("Connection failed")
		os.Exit(1)
	}
	defer client.Close()

	asset, err := client.AssetByFileID(ctx, fileID)
	if err != nil {
		logger.Error().Err(err).Msg("Asset lookup failed")
		os.Exit(1)
	}
	if asset == nil {
		logger.Error().Str("fileid", fileID).Msg("No asset found")
		os.Exit(1)
	}

	fmt.Printf("File: %s (fileid=%s, %d bytes, status=%s)\n",
		asset.Filename, asset.FileID, asset.FileSize, asset.Status)
	if !asset.CreatedAt.IsZero() {
		fmt.Printf("Created: %s\n", asset.CreatedAt.Format(time.RFC3339))
	}

	paragraphs, err := client.ParagraphsByFileID(ctx, fileID)
	if err != nil {
		logger.Error().Err(err).Msg("Paragraph query failed")
		os.Exit(1)
	}
	if len(paragraphs) == 0 {
		logger.Warn().Str("fileid", fileID).Msg("No paragraphs stored for this file")
		os.Exit(1)
	}

	fmt.Printf("\nTranscript (%d paragraphs):\n\n", len(paragraphs))
	for _, p := range paragraphs {
		fmt.Printf("Speaker %d: %s\n", p.Speaker, p.Text)

		if *sentences {
			rows, err := client.SentencesByParagraphID(ctx, p.ID)
			if err != nil {
				logger.Error().Err(err).Int64("paragraph", p.ID).Msg("Sentence query failed")
				os.Exit(1)
			}
			for _, s := range rows {
				fmt.Printf("    [%d] %s\n", s.SentenceIndex, s.Text)
			}
		}
		fmt.Println()
	}

	logger.Info().
		Str("fileid", fileID).
		Int("paragraphs", len(paragraphs)).
		Msg("Transcript printed")
}
