package storage

import (
	"encoding/csv"
	"fmt"
	"os"

	"zillow-scraper/models"
)

// CSVWriter exports listings as a CSV table with a header row of field
// names. Photo URLs share one cell, joined with ", ".
type CSVWriter struct{}

func (CSVWriter) Format() string   { return "csv" }
func (CSVWriter) FileName() string { return CSVFileName }

// Export creates no file when there are no listings.
func (CSVWriter) Export(listings []*models.Listing, path string) (bool, error) {
	if len(listings) == 0 {
		return false, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(models.FieldNames); err != nil {
		return false, fmt.Errorf("csv: write header: %w", err)
	}
	for _, l := range listings {
		if err := w.Write(l.Values()); err != nil {
			return false, fmt.Errorf("csv: write row %s: %w", l.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return false, fmt.Errorf("csv: flush: %w", err)
	}
	return true, f.Close()
}
