// Package catalog provides the catalog data collaborators: a JSON file loader
// for seed data and a SQLite-backed store the search index loads from.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vapex/aromasearch/internal/models"
)

// LoadFile reads a catalog JSON file. Missing optional fields decode to their
// zero values; records are not validated here, the index skips unusable ones.
func LoadFile(path string) (*models.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var catalog models.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	return &catalog, nil
}
