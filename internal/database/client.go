// Package database provides the managed SQL client used by the
// diagnostics to inspect the pipeline's asset and transcript tables.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/microsoft/go-mssqldb"

	"call-pipeline-diagnostics/internal/config"
	"call-pipeline-diagnostics/internal/models"
)

// Table names owned by the pipeline.
const (
	AssetTable     = "rdt_assets"
	ParagraphTable = "rdt_paragraphs"
	SentenceTable  = "rdt_sentences"
)

// Client wraps a database/sql handle to the managed SQL instance.
type Client struct {
	db *sql.DB
}

// DSN builds the sqlserver connection URL for the configured instance.
func DSN(cfg config.DatabaseConfig) string {
	u := &url.URL{
		Scheme: "sqlserver",
		Host:   fmt.Sprintf("%s:%d", cfg.Server, cfg.Port),
	}
	if cfg.User != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	q := url.Values{}
	q.Set("database", cfg.Database)
	u.RawQuery = q.Encode()
	return u.String()
}

// NewClient opens and pings a connection to the managed SQL instance.
func NewClient(ctx context.Context, cfg config.DatabaseConfig) (*Client, error) {
	db, err := sql.Open("sqlserver", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Client{db: db}, nil
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.db.Close()
}

// Version returns the server's @@VERSION string.
func (c *Client) Version(ctx context.Context) (string, error) {
	var version string
	if err := c.db.QueryRowContext(ctx, "SELECT @@VERSION").Scan(&version); err != nil {
		return "", fmt.Errorf("query version: %w", err)
	}
	return version, nil
}

// TableExists reports whether a base table is present in the database.
func (c *Client) TableExists(ctx context.Context, table string) (bool, error) {
	const query = `
		SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_TYPE = 'BASE TABLE' AND TABLE_NAME = @p1`

	var count int
	if err := c.db.QueryRowContext(ctx, query, table).Scan(&count); err != nil {
		return false, fmt.Errorf("check table %s: %w", table, err)
	}
	return count > 0, nil
}

// TableCount returns the number of base tables in the database.
func (c *Client) TableCount(ctx context.Context) (int, error) {
	const query = `
		SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_TYPE = 'BASE TABLE'`

	var count int
	if err := c.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count tables: %w", err)
	}
	return count, nil
}

// Columns returns a table's columns in ordinal order, as declared.
func (c *Client) Columns(ctx context.Context, table string) ([]models.TableColumn, error) {
	const query = `
		SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_NAME = @p1
		ORDER BY ORDINAL_POSITION`

	rows, err := c.db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("query columns of %s: %w", table, err)
	}
	defer rows.Close()

	var cols []models.TableColumn
	for rows.Next() {
		var col models.TableColumn
		var nullable string
		if err := rows.Scan(&col.Name, &col.DataType, &nullable); err != nil {
			return nil, fmt.Errorf("scan column row: %w", err)
		}
		col.Nullable = nullable == "YES"
		cols = append(cols, col)
	}
	return cols, rows.Err()
}

// RowCount returns the number of rows in a table. The table name is
// restricted to the pipeline's known tables to keep identifiers out of
// user control.
func (c *Client) RowCount(ctx context.Context, table string) (int64, error) {
	switch table {
	case AssetTable, ParagraphTable, SentenceTable:
	default:
		return 0, fmt.Errorf("row count not supported for table %q", table)
	}

	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if err := c.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rows in %s: %w", table, err)
	}
	return count, nil
}
