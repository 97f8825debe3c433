package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"zillow-scraper/models"
	"zillow-scraper/utils"
)

// Fixed output file names, one per format.
const (
	JSONFileName = "zillow_listings.json"
	CSVFileName  = "zillow_listings.csv"
	HTMLFileName = "zillow_listings.html"
)

// exporters lists the supported formats in the order they are written.
var exporters = []ListingExporter{
	&JSONWriter{},
	&CSVWriter{},
	&HTMLWriter{},
}

// SupportedFormats returns the sorted names of every export format.
func SupportedFormats() []string {
	names := make([]string, 0, len(exporters))
	for _, e := range exporters {
		names = append(names, e.Format())
	}
	slices.Sort(names)
	return names
}

// ErrNoFormats is returned when the format list is empty or blank.
var ErrNoFormats = errors.New("no export formats requested")

// UnsupportedFormatError is returned when a requested export format is not
// one of SupportedFormats.
type UnsupportedFormatError struct {
	Unsupported []string
	Supported   []string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format(s): %s. Supported formats: %s",
		strings.Join(e.Unsupported, ", "), strings.Join(e.Supported, ", "))
}

// ValidateFormats normalizes format names (trimmed, lower-case, without
// duplicates or blanks) and rejects any that are not supported. At least
// one format is required.
func ValidateFormats(formats []string) ([]string, error) {
	supported := SupportedFormats()
	seen := make(map[string]struct{}, len(formats))
	var normalized, unsupported []string

	for _, f := range formats {
		name := strings.ToLower(strings.TrimSpace(f))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		if slices.Contains(supported, name) {
			normalized = append(normalized, name)
		} else {
			unsupported = append(unsupported, name)
		}
	}

	if len(unsupported) > 0 {
		slices.Sort(unsupported)
		return nil, &UnsupportedFormatError{Unsupported: unsupported, Supported: supported}
	}
	if len(normalized) == 0 {
		return nil, ErrNoFormats
	}
	return normalized, nil
}

// ExportListings writes listings to outputDir in every requested format and
// returns the paths of the files it created, in json, csv, html order.
// Formats are validated before anything touches the filesystem. Each format
// is written by its own worker.
func ExportListings(listings []*models.Listing, outputDir string, formats []string, logger *utils.Logger) ([]string, error) {
	if logger == nil {
		logger = utils.Discard()
	}
	logger = logger.With("exporter")

	requested, err := ValidateFormats(formats)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("export: create output dir %q: %w", outputDir, err)
	}

	type outcome struct {
		format  string
		path    string
		created bool
		err     error
	}
	var jobs []*outcome
	pool := utils.NewWorkerPool(len(exporters))
	for _, e := range exporters {
		e := e // per-iteration copy for the worker closure (go < 1.22 loop semantics)
		if !slices.Contains(requested, e.Format()) {
			continue
		}
		o := &outcome{format: strings.ToUpper(e.Format()), path: filepath.Join(outputDir, e.FileName())}
		jobs = append(jobs, o)
		logger.Debug("Exporting %d listings to %s: %s", len(listings), o.format, o.path)
		pool.Submit(func() {
			o.created, o.err = e.Export(listings, o.path)
		})
	}
	pool.Wait()

	var written []string
	for _, o := range jobs {
		if o.err != nil {
			return written, o.err
		}
		if !o.created {
			logger.Warn("No listings to export to %s.", o.format)
			continue
		}
		logger.Info("Exported %s data to %s", o.format, o.path)
		written = append(written, o.path)
	}
	return written, nil
}
