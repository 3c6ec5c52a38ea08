// storagecheck inspects the blob storage account: enumerates containers,
// lists blobs in the pipeline's known containers, and optionally inspects
// a single blob or uploads a local file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"call-pipeline-diagnostics/internal/app"
	"call-pipeline-diagnostics/internal/storage"
)

func main() {
	inspect := flag.String("inspect", "", "download a blob from the source container and report its size and header")
	upload := flag.String("upload", "", "upload a local file to the source container")
	container := flag.String("container", "", "override the source container")
	flag.Parse()

	a := app.New("storagecheck")
	logger := a.Logger

	svc, err := storage.NewService(a.Cfg.Storage.ConnectionString)
	if err != nil {
		logger.Error().Err(err).Msg("Storage client setup failed")
		os.Exit(1)
	}

	target := a.Cfg.Storage.SourceContainer
	if *container != "" {
		target = *container
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch {
	case *inspect != "":
		if err := inspectBlob(ctx, svc, target, *inspect); err != nil {
			logger.Error().Err(err).Msg("Blob inspection failed")
			os.Exit(1)
		}
	case *upload != "":
		if err := uploadFile(ctx, svc, target, *upload); err != nil {
			logger.Error().Err(err).Msg("Upload failed")
			os.Exit(1)
		}
	default:
		if err := listAccount(ctx, a, svc); err != nil {
			logger.Error().Err(err).Msg("Account listing failed")
			os.Exit(1)
		}
	}
}

// listAccount enumerates all containers and samples the known ones.
func listAccount(ctx context.Context, a *app.Application, svc *storage.Service) error {
	containers, err := svc.ListContainers(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Containers:")
	for _, c := range containers {
		fmt.Printf("  - %s\n", c.Name)
	}
	fmt.Printf("Total containers found: %d\n", len(containers))

	if len(containers) == 0 {
		fmt.Println("No containers found. Check the connection string and its access rights.")
	}

	present := make(map[string]bool, len(containers))
	for _, c := range containers {
		present[c.Name] = true
	}

	for _, name := range a.Cfg.Storage.KnownContainers {
		if !present[name] {
			fmt.Printf("\nContainer %q does not exist\n", name)
			continue
		}

		blobs, err := svc.ListBlobs(ctx, name, 5)
		if err != nil {
			a.Logger.Error().Err(err).Str("container", name).Msg("Blob listing failed")
			continue
		}

		fmt.Printf("\nFirst blobs in %q:\n", name)
		if len(blobs) == 0 {
			fmt.Printf("  container %q appears to be empty\n", name)
		}
		for i, b := range blobs {
			fmt.Printf("  %d. %s (%d bytes)\n", i+1, b.Name, b.Size)
		}
	}
	return nil
}

// inspectBlob downloads a blob, saves it to the temp dir and prints its
// size and leading header bytes.
func inspectBlob(ctx context.Context, svc *storage.Service, container, blobName string) error {
	data, err := svc.Download(ctx, container, blobName)
	if err != nil {
		return err
	}
	fmt.Printf("Downloaded %d bytes from %s/%s\n", len(data), container, blobName)

	samplePath := filepath.Join(os.TempDir(), filepath.Base(blobName))
	if err := os.WriteFile(samplePath, data, 0o644); err != nil {
		return fmt.Errorf("save sample: %w", err)
	}
	fmt.Printf("Saved sample to %s\n", samplePath)

	header := data
	if len(header) > 20 {
		header = header[:20]
	}
	fmt.Print("File header (hex):")
	for _, b := range header {
		fmt.Printf(" %02x", b)
	}
	fmt.Println()
	return nil
}

// uploadFile pushes a local file into the container, overwriting any
// existing blob with the same name.
func uploadFile(ctx context.Context, svc *storage.Service, container, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read local file: %w", err)
	}

	blobName := filepath.Base(path)
	if err := svc.Upload(ctx, container, blobName, data); err != nil {
		return err
	}
	fmt.Printf("Uploaded %s to %s/%s (%d bytes)\n", path, container, blobName, len(data))

	// Confirm the blob is visible after upload.
	size, err := svc.BlobSize(ctx, container, blobName)
	if err != nil {
		return fmt.Errorf("verify upload: %w", err)
	}
	fmt.Printf("Verified blob size: %d bytes\n", size)
	return nil
}
