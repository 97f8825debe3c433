package services

import (
	"fmt"

	"zillow-scraper/models"
	"zillow-scraper/utils"
)

// Diagnostic records why one input item was skipped.
type Diagnostic struct {
	Index int
	Err   error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("item %d: %v", d.Index, d.Err)
}

// ParseResult partitions a batch into normalized listings and skipped items.
type ParseResult struct {
	Listings    []*models.Listing
	Skipped     int
	Diagnostics []Diagnostic
}

// ParseListings normalizes every item of a raw batch, keeping input order.
// Items that are not objects, or that fail normalization, are counted as
// skipped and never abort the batch.
func ParseListings(raw []any, logger *utils.Logger) ParseResult {
	if logger == nil {
		logger = utils.Discard()
	}
	tagged := logger.With("parser")
	result := ParseResult{Listings: make([]*models.Listing, 0, len(raw))}

	for i, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			tagged.Debug("Skipping non-object listing at %d: %#v", i, item)
			result.skip(i, fmt.Errorf("expected an object, got %s", kindOf(item)))
			continue
		}

		listing, err := NormalizeListing(obj, logger)
		if err != nil {
			tagged.Warn("Skipping listing %d due to parse error: %v", i, err)
			result.skip(i, err)
			continue
		}
		result.Listings = append(result.Listings, listing)
	}

	tagged.Info("Parsed %d listings (%d skipped)", len(result.Listings), result.Skipped)
	return result
}

func (r *ParseResult) skip(index int, err error) {
	r.Skipped++
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Index: index, Err: err})
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return "number"
}
