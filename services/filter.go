package services

import (
	"zillow-scraper/geo"
	"zillow-scraper/models"
	"zillow-scraper/utils"
)

// FilterByRadius keeps listings within radiusKm of the center, boundary
// included, in input order. Listings without both coordinates are dropped.
func FilterByRadius(listings []*models.Listing, centerLat, centerLon, radiusKm float64, logger *utils.Logger) []*models.Listing {
	if logger == nil {
		logger = utils.Discard()
	}
	logger = logger.With("filter")
	box := geo.BoundingBox(centerLat, centerLon, radiusKm)
	logger.Debug("Search envelope lat [%.4f, %.4f] lon [%.4f, %.4f]",
		box.MinLat, box.MaxLat, box.MinLon, box.MaxLon)

	result := make([]*models.Listing, 0, len(listings))
	for _, l := range listings {
		if !l.HasCoordinates() {
			continue
		}
		lat, lon := *l.Latitude, *l.Longitude
		if !box.Contains(lat, lon) {
			continue
		}
		if geo.DistanceKm(centerLat, centerLon, lat, lon) <= radiusKm {
			result = append(result, l)
		}
	}

	logger.Info("Filtered %d listings within %.2f km of (%.4f, %.4f)",
		len(result), radiusKm, centerLat, centerLon)
	return result
}
