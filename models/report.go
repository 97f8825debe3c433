package models

// InsightReport holds summary figures computed over a set of listings.
type InsightReport struct {
	TotalListings     int
	PricedListings    int
	WithCoordinates   int
	AveragePrice      float64
	MinPrice          int64
	MaxPrice          int64
	MostExpensive     *Listing
	ListingsByType    map[string]int
	AverageBedrooms   float64
	AveragePricePerSq float64
}
