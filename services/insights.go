package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"zillow-scraper/models"
	"zillow-scraper/utils"
)

const unknownHomeType = "UNKNOWN"

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	if logger == nil {
		logger = utils.Discard()
	}
	return &InsightService{logger: logger.With("insights")}
}

func (s *InsightService) Generate(listings []*models.Listing) *models.InsightReport {
	report := &models.InsightReport{
		ListingsByType: make(map[string]int),
	}

	if len(listings) == 0 {
		return report
	}

	report.TotalListings = len(listings)

	var (
		priceTotal  float64
		bedTotal    int64
		bedCount    int
		perSqTotal  float64
		perSqCount  int
		initialized bool
	)

	for _, l := range listings {
		if l.HasCoordinates() {
			report.WithCoordinates++
		}
		homeType := unknownHomeType
		if l.HomeType != nil {
			homeType = *l.HomeType
		}
		report.ListingsByType[homeType]++

		if l.Bedrooms != nil {
			bedTotal += *l.Bedrooms
			bedCount++
		}

		if l.Price == nil || *l.Price <= 0 {
			continue
		}
		price := *l.Price
		report.PricedListings++
		priceTotal += float64(price)

		if !initialized || price < report.MinPrice {
			report.MinPrice = price
		}
		if !initialized || price > report.MaxPrice {
			report.MaxPrice = price
			report.MostExpensive = l
		}
		initialized = true

		if l.Area != nil && *l.Area > 0 {
			perSqTotal += float64(price) / float64(*l.Area)
			perSqCount++
		}
	}

	if report.PricedListings > 0 {
		report.AveragePrice = round2(priceTotal / float64(report.PricedListings))
	}
	if bedCount > 0 {
		report.AverageBedrooms = round2(float64(bedTotal) / float64(bedCount))
	}
	if perSqCount > 0 {
		report.AveragePricePerSq = round2(perSqTotal / float64(perSqCount))
	}

	s.logger.Debug("%d of %d listings carry a usable price",
		report.PricedListings, report.TotalListings)
	return report
}

func (s *InsightService) Print(w io.Writer, r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  LISTING SUMMARY\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Listings          : \033[1m%d\033[0m\n", r.TotalListings)
	fmt.Fprintf(w, "  With coordinates  : \033[1m%d\033[0m\n", r.WithCoordinates)
	if r.AverageBedrooms > 0 {
		fmt.Fprintf(w, "  Average bedrooms  : \033[1m%.2f\033[0m\n", r.AverageBedrooms)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Price Statistics\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if r.PricedListings > 0 {
		fmt.Fprintf(w, "  Average price : \033[1;32m$%.2f\033[0m\n", r.AveragePrice)
		fmt.Fprintf(w, "  Minimum price : \033[1;32m$%d\033[0m\n", r.MinPrice)
		fmt.Fprintf(w, "  Maximum price : \033[1;32m$%d\033[0m\n", r.MaxPrice)
		if r.AveragePricePerSq > 0 {
			fmt.Fprintf(w, "  Price / area  : \033[1;32m$%.2f\033[0m\n", r.AveragePricePerSq)
		}
	} else {
		fmt.Fprintf(w, "  No price data available\n")
	}
	fmt.Fprintln(w)

	if r.MostExpensive != nil {
		fmt.Fprintf(w, "\033[1;33m  Most Expensive Listing\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		address := "(no address)"
		if r.MostExpensive.Address != nil {
			address = *r.MostExpensive.Address
		}
		fmt.Fprintf(w, "  %s\n", truncate(address, 50))
		fmt.Fprintf(w, "  ID    : %s\n", r.MostExpensive.ID)
		fmt.Fprintf(w, "  Price : \033[1;31m$%d\033[0m\n", *r.MostExpensive.Price)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\033[1;33m  Listings by Home Type\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.ListingsByType) == 0 {
		fmt.Fprintf(w, "  No listings\n")
	} else {
		type typeCount struct {
			homeType string
			count    int
		}
		var types []typeCount
		for t, cnt := range r.ListingsByType {
			types = append(types, typeCount{t, cnt})
		}
		sort.Slice(types, func(i, j int) bool {
			if types[i].count != types[j].count {
				return types[i].count > types[j].count
			}
			return types[i].homeType < types[j].homeType
		})
		for _, tc := range types {
			bar := strings.Repeat("█", min(tc.count, 40))
			fmt.Fprintf(w, "  %-30s %s (%d)\n", truncate(tc.homeType, 28), bar, tc.count)
		}
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
