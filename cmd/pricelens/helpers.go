package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/rowanfields/pricelens/internal/engine"
	"github.com/rowanfields/pricelens/internal/ingest"
	"github.com/rowanfields/pricelens/internal/model"
	"github.com/rowanfields/pricelens/internal/storage"
)

func databasePath() (string, error) {
	if path := viper.GetString("database.path"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "pricelens", "sessions.db"), nil
}

// openStore opens and migrates the session database.
func openStore(ctx context.Context) (*storage.SQLiteStore, error) {
	path, err := databasePath()
	if err != nil {
		return nil, err
	}
	store, err := storage.NewSQLiteStore(path)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// loadSession assembles the engine session for a named review session:
// the stored threshold, override map, and bulk-accept set.
func loadSession(ctx context.Context, store *storage.SQLiteStore, name string) (*storage.SessionRecord, engine.Session, error) {
	record, err := store.GetSession(ctx, name)
	if err != nil {
		return nil, engine.Session{}, err
	}

	session := engine.NewSession(record.Threshold)
	session.Overrides, err = store.GetOverrides(ctx, record.ID)
	if err != nil {
		return nil, engine.Session{}, err
	}

	accepted, err := store.GetAcceptedItems(ctx, record.ID)
	if err != nil {
		return nil, engine.Session{}, err
	}
	for _, code := range accepted {
		session.Accept(code)
	}

	return record, session, nil
}

// loadInputs reads and parses the invoice and catalog CSV files.
func loadInputs(invoicePath, catalogPath string) ([]model.InvoiceRow, []model.CatalogEntry, error) {
	header, records, err := ingest.ReadCSV(invoicePath)
	if err != nil {
		return nil, nil, err
	}
	rows := ingest.ParseInvoiceRows(header, records)

	header, records, err = ingest.ReadCSV(catalogPath)
	if err != nil {
		return nil, nil, err
	}
	entries := ingest.ParseCatalogEntries(header, records)

	return rows, entries, nil
}

func parseReferenceDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reference date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}
