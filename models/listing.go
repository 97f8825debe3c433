package models

import (
	"strconv"
	"strings"
)

// Listing is the normalized, strictly-typed record for one property listing.
// Optional fields are nil when the source did not provide a usable value.
// A Listing is built once by the normalizer and treated as read-only after.
type Listing struct {
	ID             string   `json:"id"`
	Price          *int64   `json:"price"`
	Address        *string  `json:"address"`
	HomeType       *string  `json:"home_type"`
	EstimatedValue *int64   `json:"estimated_value"`
	EstimatedRent  *int64   `json:"estimated_rent"`
	Bedrooms       *int64   `json:"bedrooms"`
	Bathrooms      *float64 `json:"bathrooms"`
	Area           *int64   `json:"area"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	BrokerName     *string  `json:"broker_name"`
	PhotoURLs      []string `json:"photo_urls"`
	DetailURL      *string  `json:"detail_url"`
	DatePosted     *string  `json:"date_posted"`
	StatusText     *string  `json:"status_text"`
}

// FieldNames lists the exported field names in declaration order.
var FieldNames = []string{
	"id",
	"price",
	"address",
	"home_type",
	"estimated_value",
	"estimated_rent",
	"bedrooms",
	"bathrooms",
	"area",
	"latitude",
	"longitude",
	"broker_name",
	"photo_urls",
	"detail_url",
	"date_posted",
	"status_text",
}

// HasCoordinates reports whether both latitude and longitude are set.
func (l *Listing) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// Values renders every field as text in FieldNames order. Absent fields are
// empty strings; photo URLs are joined with ", ".
func (l *Listing) Values() []string {
	return []string{
		l.ID,
		formatInt(l.Price),
		formatString(l.Address),
		formatString(l.HomeType),
		formatInt(l.EstimatedValue),
		formatInt(l.EstimatedRent),
		formatInt(l.Bedrooms),
		formatFloat(l.Bathrooms),
		formatInt(l.Area),
		formatFloat(l.Latitude),
		formatFloat(l.Longitude),
		formatString(l.BrokerName),
		strings.Join(l.PhotoURLs, ", "),
		formatString(l.DetailURL),
		formatString(l.DatePosted),
		formatString(l.StatusText),
	}
}

func formatInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
