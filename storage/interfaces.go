package storage

import "zillow-scraper/models"

// ListingExporter is the interface every export format must satisfy.
// Export writes listings to path and reports whether a file was created.
type ListingExporter interface {
	Format() string
	FileName() string
	Export(listings []*models.Listing, path string) (bool, error)
}
