// sasurl generates a read-only SAS URL for a blob in the source container
// and verifies it with a HEAD request.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"call-pipeline-diagnostics/internal/app"
	"call-pipeline-diagnostics/internal/storage"
)

// defaultBlob is a sample recording known to exist in the source container.
const defaultBlob = "agricultural_leasing_(ijarah)_normal.mp3"

func main() {
	flag.Parse()

	blobName := defaultBlob
	if flag.NArg() > 0 {
		blobName = flag.Arg(0)
	}

	a := app.New("sasurl")
	logger := a.Logger

	svc, err := storage.NewService(a.Cfg.Storage.ConnectionString)
	if err != nil {
		logger.Error().Err(err).Msg("Storage client setup failed")
		os.Exit(1)
	}

	container := a.Cfg.Storage.SourceContainer
	logger.Info().
		Str("container", container).
		Str("blob", blobName).
		Msg("Generating SAS URL")

	sasURL, err := svc.ReadSASURL(container, blobName, a.Cfg.Storage.SASExpiry)
	if err != nil {
		logger.Error().Err(err).Msg("SAS generation failed")
		os.Exit(1)
	}
	fmt.Printf("SAS URL: %s\n", sasURL)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	check, err := storage.VerifySASURL(ctx, nil, sasURL)
	if err != nil {
		logger.Error().Err(err).Msg("SAS verification request failed")
		os.Exit(1)
	}

	fmt.Printf("Status: %d\n", check.StatusCode)
	fmt.Printf("Content-Type: %s\n", check.ContentType)
	fmt.Printf("Content-Length: %d bytes\n", check.ContentLength)

	if !check.OK() {
		logger.Error().Int("status", check.StatusCode).Msg("SAS URL is not readable")
		os.Exit(1)
	}
	logger.Info().Msg("SAS URL verified")
}
