// sqlcheck verifies connectivity to the managed SQL instance and inspects
// the pipeline's tables: existence, row counts, column layout and the
// newest asset rows.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"call-pipeline-diagnostics/internal/app"
	"call-pipeline-diagnostics/internal/database"
)

func main() {
	a := app.New("sqlcheck")
	logger := a.Logger

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	logger.Info().
		Str("server", a.Cfg.Database.Server).
		Str("database", a.Cfg.Database.Database).
		Msg("Connecting to managed SQL instance")

	start := time.Now()
	client, err := database.NewClient(ctx, a.Cfg.Database)
	if err != nil {
		logger.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("Connection failed")
		os.Exit(1)
	}
	defer client.Close()
	logger.Info().Dur("elapsed", time.Since(start)).Msg("Connected")

	version, err := client.Version(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Version query failed")
		os.Exit(1)
	}
	logger.Info().Str("version", head(version, 50)).Msg("Server version")

	tableCount, err := client.TableCount(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Table count query failed")
		os.Exit(1)
	}
	logger.Info().Int("tables", tableCount).Msg("Base tables in database")

	failed := false
	for _, table := range []string{database.AssetTable, database.ParagraphTable, database.SentenceTable} {
		exists, err := client.TableExists(ctx, table)
		if err != nil {
			logger.Error().Err(err).Str("table", table).Msg("Existence check failed")
			failed = true
			continue
		}
		if !exists {
			logger.Warn().Str("table", table).Msg("Table does not exist")
			continue
		}

		count, err := client.RowCount(ctx, table)
		if err != nil {
			logger.Error().Err(err).Str("table", table).Msg("Row count failed")
			failed = true
			continue
		}
		logger.Info().Str("table", table).Int64("rows", count).Msg("Table present")
	}

	// Column layout of the asset table, in declared order.
	cols, err := client.Columns(ctx, database.AssetTable)
	if err != nil {
		logger.Error().Err(err).Msg("Column query failed")
		os.Exit(1)
	}
	fmt.Printf("\n%s columns:\n", database.AssetTable)
	for i, col := range cols {
		nullable := "NOT NULL"
		if col.Nullable {
			nullable = "NULL"
		}
		fmt.Printf("  %2d. %-20s %-12s %s\n", i+1, col.Name, col.DataType, nullable)
	}

	// Sample the newest rows for a quick eyeball.
	assets, err := client.RecentAssets(ctx, 5)
	if err != nil {
		logger.Error().Err(err).Msg("Sample row query failed")
		os.Exit(1)
	}
	fmt.Printf("\nNewest %d assets:\n", len(assets))
	for _, asset := range assets {
		fmt.Printf("  id=%d fileid=%s filename=%s size=%d status=%s\n",
			asset.ID, asset.FileID, asset.Filename, asset.FileSize, asset.Status)
	}

	if failed {
		os.Exit(1)
	}
	logger.Info().Msg("SQL check completed")
}

func head(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
