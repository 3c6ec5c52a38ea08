package database

import (
	"context"
	"strings"
	"testing"

	"call-pipeline-diagnostics/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Server:   "callcenter1.database.windows.net",
		Port:     1433,
		Database: "call",
		User:     "diag",
		Password: "p@ss;word",
	}

	dsn := DSN(cfg)

	if !strings.HasPrefix(dsn, "sqlserver://diag:") {
		t.Errorf("expected sqlserver scheme with user, got %s", dsn)
	}
	if !strings.Contains(dsn, "callcenter1.database.windows.net:1433") {
		t.Errorf("expected host:port in DSN, got %s", dsn)
	}
	if !strings.Contains(dsn, "database=call") {
		t.Errorf("expected database query param, got %s", dsn)
	}
	if strings.Contains(dsn, "p@ss;word") {
		t.Errorf("expected password to be URL-escaped, got %s", dsn)
	}
}

func TestDSN_NoCredentials(t *testing.T) {
	cfg := config.DatabaseConfig{
		Server:   "localhost",
		Port:     1433,
		Database: "call",
	}

	dsn := DSN(cfg)

	if strings.Contains(dsn, "@localhost") && strings.Contains(dsn, "://:") {
		t.Errorf("expected no userinfo without credentials, got %s", dsn)
	}
	if !strings.HasPrefix(dsn, "sqlserver://localhost:1433") {
		t.Errorf("expected bare host DSN, got %s", dsn)
	}
}

func TestRowCount_RejectsUnknownTable(t *testing.T) {
	c := &Client{}

	if _, err := c.RowCount(context.Background(), "users; DROP TABLE rdt_assets"); err == nil {
		t.Error("expected error for unknown table name")
	}
	if _, err := c.RowCount(context.Background(), "sysobjects"); err == nil {
		t.Error("expected error for non-pipeline table")
	}
}
