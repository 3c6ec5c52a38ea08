// eventscheck publishes a marked probe event to the transcript topic to
// verify the Kafka path end to end. With KAFKA_ENABLED unset the publish
// runs in log-only mode, which still exercises serialization and keys.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"call-pipeline-diagnostics/internal/app"
	"call-pipeline-diagnostics/internal/events"
)

func main() {
	fileID := flag.String("fileid", "", "file identifier for the probe event (default diag_probe_<unix>)")
	flag.Parse()

	a := app.New("eventscheck")
	logger := a.Logger

	id := *fileID
	if id == "" {
		id = fmt.Sprintf("diag_probe_%d", time.Now().Unix())
	}

	publisher := events.New(&events.Config{
		Brokers:   a.Cfg.Kafka.Brokers,
		Topic:     a.Cfg.Kafka.Topic,
		Principal: a.Cfg.Kafka.Principal,
		Enabled:   a.Cfg.Kafka.Enabled,
	})
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	start := time.Now()
	if err := publisher.PublishProbe(ctx, id); err != nil {
		logger.Error().Err(err).Str("fileid", id).Msg("Probe publish failed")
		os.Exit(1)
	}

	logger.Info().
		Str("fileid", id).
		Str("topic", a.Cfg.Kafka.Topic).
		Bool("enabled", a.Cfg.Kafka.Enabled).
		Dur("elapsed", time.Since(start)).
		Msg("Probe event published")
}
