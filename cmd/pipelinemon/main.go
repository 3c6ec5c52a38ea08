// pipelinemon is the long-running monitor: it runs the pipeline's
// connectivity checks on an interval and serves /metrics, /healthz and
// /readyz. Readiness reflects the latest round of checks.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"call-pipeline-diagnostics/internal/app"
	"call-pipeline-diagnostics/internal/checks"
	"call-pipeline-diagnostics/internal/database"
	"call-pipeline-diagnostics/internal/events"
	"call-pipeline-diagnostics/internal/observability"
	"call-pipeline-diagnostics/internal/storage"
)

func main() {
	a := app.New("pipelinemon")
	logger := a.Logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checkList := []checks.Check{
		{Name: "database", Timeout: 30 * time.Second, Run: databaseCheck(a)},
		{Name: "storage", Timeout: 30 * time.Second, Run: storageCheck(a)},
		{Name: "api", Timeout: 15 * time.Second, Run: apiCheck(a)},
	}

	var publisher *events.Publisher
	if a.Cfg.Kafka.Enabled {
		publisher = events.New(&events.Config{
			Brokers:   a.Cfg.Kafka.Brokers,
			Topic:     a.Cfg.Kafka.Topic,
			Principal: a.Cfg.Kafka.Principal,
			Enabled:   true,
		})
		defer publisher.Close()
		checkList = append(checkList, checks.Check{
			Name:    "kafka",
			Timeout: 30 * time.Second,
			Run: func(ctx context.Context) error {
				return publisher.PublishProbe(ctx, fmt.Sprintf("diag_probe_%d", time.Now().Unix()))
			},
		})
	}

	runner := checks.NewRunner(checkList)

	server := observability.NewServer(a.Cfg.Observability.MetricsAddr, runner.Healthy)
	server.Start()

	logger.Info().
		Dur("interval", a.Cfg.Observability.CheckInterval).
		Int("checks", len(checkList)).
		Msg("Monitor started")

	runner.Loop(ctx, a.Cfg.Observability.CheckInterval)

	// Context canceled: shut down cleanly.
	logger.Info().Msg("Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown error")
		os.Exit(1)
	}
	logger.Info().Msg("Monitor stopped")
}

// databaseCheck connects to the managed SQL instance and runs a trivial
// query. The connection is opened per round so stale pools cannot mask a
// broken server.
func databaseCheck(a *app.Application) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		client, err := database.NewClient(ctx, a.Cfg.Database)
		if err != nil {
			return err
		}
		defer client.Close()
		_, err = client.Version(ctx)
		return err
	}
}

// storageCheck lists the account's containers and confirms the source
// container is among them.
func storageCheck(a *app.Application) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		svc, err := storage.NewService(a.Cfg.Storage.ConnectionString)
		if err != nil {
			return err
		}
		containers, err := svc.ListContainers(ctx)
		if err != nil {
			return err
		}
		for _, c := range containers {
			if c.Name == a.Cfg.Storage.SourceContainer {
				return nil
			}
		}
		return fmt.Errorf("source container %q not found", a.Cfg.Storage.SourceContainer)
	}
}

// apiCheck verifies the transcription API answers HTTP at all. Any
// response counts as reachable; only transport errors fail the check.
func apiCheck(a *app.Application) func(ctx context.Context) error {
	client := &http.Client{Timeout: 10 * time.Second}
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.Cfg.API.BaseURL+"/", nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("api unreachable: %w", err)
		}
		resp.Body.Close()
		return nil
	}
}
