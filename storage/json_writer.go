package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"zillow-scraper/models"
)

// JSONWriter exports listings as an indented JSON array.
type JSONWriter struct{}

func (JSONWriter) Format() string   { return "json" }
func (JSONWriter) FileName() string { return JSONFileName }

// Export always creates the file; zero listings produce "[]".
// Non-ASCII text and HTML characters are written as-is.
func (JSONWriter) Export(listings []*models.Listing, path string) (bool, error) {
	if listings == nil {
		listings = []*models.Listing{}
	}

	f, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("json: create file %q: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(listings); err != nil {
		return false, fmt.Errorf("json: encode listings: %w", err)
	}
	if err := w.Flush(); err != nil {
		return false, fmt.Errorf("json: write %q: %w", path, err)
	}
	return true, f.Close()
}
