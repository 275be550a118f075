package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/BarCut/internal/model"
)

// DefaultCatalogPath returns the default file path for the profile catalog.
// This is located at ~/.barcut/catalog.json.
func DefaultCatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "catalog.json")
}

// SaveCatalog writes the catalog to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveCatalog(path string, c model.Catalog) error {
	return writeJSON(path, c)
}

// LoadCatalog reads the catalog from the specified JSON file.
// If the file does not exist, it returns the default catalog and saves it.
func LoadCatalog(path string) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c := model.DefaultCatalog()
			if saveErr := SaveCatalog(path, c); saveErr != nil {
				return c, saveErr
			}
			return c, nil
		}
		return model.Catalog{}, err
	}
	var c model.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return model.Catalog{}, err
	}
	if c.Entries == nil {
		c.Entries = []model.CatalogEntry{}
	}
	return c, nil
}

// LoadOrCreateCatalog loads the catalog from the default path.
// If the file does not exist, it creates one with default entries.
func LoadOrCreateCatalog() (model.Catalog, string, error) {
	path := DefaultCatalogPath()
	c, err := LoadCatalog(path)
	return c, path, err
}

// ImportCatalog merges the catalog in path into existing. Entries whose
// code is already present are skipped.
func ImportCatalog(path string, existing model.Catalog) (model.Catalog, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, 0, err
	}
	var imported model.Catalog
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, 0, err
	}

	codes := make(map[string]bool, len(existing.Entries))
	for _, e := range existing.Entries {
		codes[strings.ToUpper(e.Code)] = true
	}

	added := 0
	for _, e := range imported.Entries {
		key := strings.ToUpper(e.Code)
		if e.Code == "" || codes[key] {
			continue
		}
		existing.Entries = append(existing.Entries, e)
		codes[key] = true
		added++
	}
	return existing, added, nil
}
