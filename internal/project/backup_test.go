package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BarCut/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultPricePerKg = 5.1
	cfg.Theme = "dark"
	catalog := model.DefaultCatalog()

	if err := ExportAllData(path, cfg, catalog); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.DefaultPricePerKg != 5.1 {
		t.Errorf("expected DefaultPricePerKg=5.1, got %f", backup.Config.DefaultPricePerKg)
	}
	if backup.Config.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", backup.Config.Theme)
	}
	if len(backup.Catalog.Entries) != len(catalog.Entries) {
		t.Errorf("expected %d catalog entries, got %d", len(catalog.Entries), len(backup.Catalog.Entries))
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"config":{}}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestImportAllDataNilCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	data := []byte(`{"version":"1.0.0","config":{"recent_jobs":null},"catalog":{"entries":null}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentJobs == nil || backup.Catalog.Entries == nil {
		t.Error("collections should not be nil after import")
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	if _, err := ImportAllData("/nonexistent/backup.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
