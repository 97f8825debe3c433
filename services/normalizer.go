package services

import (
	"errors"
	"slices"

	"zillow-scraper/models"
	"zillow-scraper/utils"
)

// ErrMissingIdentity is returned when a raw listing has no usable zpid/id.
var ErrMissingIdentity = errors.New("listing is missing 'zpid' or 'id' field")

// fieldPath addresses a raw value, either a top-level key or a nested one.
type fieldPath []string

// homeInfo addresses the alternate API shape that nests listing details
// under hdpData.homeInfo.
func homeInfo(key string) fieldPath {
	return fieldPath{"hdpData", "homeInfo", key}
}

// NormalizeListing builds a Listing from one raw search-result object.
//
// Each field is resolved on its own from an ordered list of source paths:
// the first present value wins and is then coerced to the field's type. A
// value that cannot be coerced leaves the field nil. Only a missing
// identity rejects the whole object.
func NormalizeListing(raw map[string]any, logger *utils.Logger) (*models.Listing, error) {
	if logger == nil {
		logger = utils.Discard()
	}
	r := &resolver{raw: raw, logger: logger.With("normalizer")}

	id, ok := r.identity()
	if !ok {
		return nil, ErrMissingIdentity
	}
	r.id = id

	lat, lon := r.coordinates()

	return &models.Listing{
		ID:             id,
		Price:          r.price("price", fieldPath{"price"}, fieldPath{"unformattedPrice"}),
		Address:        r.text("address", fieldPath{"address"}, homeInfo("formattedAddress")),
		HomeType:       r.text("home_type", fieldPath{"homeType"}, homeInfo("homeType")),
		EstimatedValue: r.price("estimated_value", fieldPath{"zestimate"}, homeInfo("zestimate")),
		EstimatedRent:  r.price("estimated_rent", fieldPath{"rentZestimate"}, homeInfo("rentZestimate")),
		Bedrooms:       r.count("bedrooms", fieldPath{"beds"}, homeInfo("bedrooms")),
		Bathrooms:      r.float("bathrooms", fieldPath{"baths"}, homeInfo("bathrooms")),
		Area:           r.area("area", fieldPath{"area"}, homeInfo("livingArea")),
		Latitude:       lat,
		Longitude:      lon,
		BrokerName:     r.text("broker_name", fieldPath{"brokerName"}, fieldPath{"brokerNameText"}),
		PhotoURLs:      r.photos(),
		DetailURL:      r.text("detail_url", fieldPath{"detailUrl"}, fieldPath{"detailUrlPath"}),
		DatePosted:     r.scalar("date_posted", fieldPath{"datePosted"}, fieldPath{"timeOnZillow"}),
		StatusText:     r.text("status_text", fieldPath{"statusText"}, fieldPath{"statusType"}),
	}, nil
}

// resolver holds one raw object while its fields are resolved.
type resolver struct {
	raw    map[string]any
	logger *utils.Logger
	id     string
}

// identity returns the first of zpid or id that renders as non-blank text.
// Unlike other fields, an unusable zpid falls through to id.
func (r *resolver) identity() (string, bool) {
	for _, key := range []string{"zpid", "id"} {
		if id, ok := scalarText(r.raw[key]); ok {
			return id, true
		}
	}
	return "", false
}

// first returns the first present value along paths, or nil.
func (r *resolver) first(paths ...fieldPath) any {
	for _, p := range paths {
		if v := lookup(r.raw, p...); present(v) {
			return v
		}
	}
	return nil
}

func (r *resolver) dropped(field string, v any) {
	r.logger.Debug("%s: could not parse %s from %#v", r.id, field, v)
}

func (r *resolver) price(field string, paths ...fieldPath) *int64 {
	return resolveWith(r, field, parsePrice, paths)
}

func (r *resolver) count(field string, paths ...fieldPath) *int64 {
	return resolveWith(r, field, parseCount, paths)
}

func (r *resolver) area(field string, paths ...fieldPath) *int64 {
	return resolveWith(r, field, parseArea, paths)
}

func (r *resolver) float(field string, paths ...fieldPath) *float64 {
	return resolveWith(r, field, parseFloat, paths)
}

func (r *resolver) text(field string, paths ...fieldPath) *string {
	return resolveWith(r, field, textValue, paths)
}

func (r *resolver) scalar(field string, paths ...fieldPath) *string {
	return resolveWith(r, field, scalarText, paths)
}

// resolveWith picks the first present value and coerces it with parse.
func resolveWith[T any](r *resolver, field string, parse func(any) (T, bool), paths []fieldPath) *T {
	v := r.first(paths...)
	if v == nil {
		return nil
	}
	out, ok := parse(v)
	if !ok {
		r.dropped(field, v)
		return nil
	}
	return &out
}

// coordinates resolves latitude and longitude as a pair, from the latLong
// object or from the nested homeInfo fields. If either value is present
// but unparseable both are dropped.
func (r *resolver) coordinates() (*float64, *float64) {
	var latRaw, lonRaw any
	if src := lookup(r.raw, "latLong"); present(src) {
		m, ok := src.(map[string]any)
		if !ok {
			r.dropped("latLong", src)
			return nil, nil
		}
		latRaw, lonRaw = m["latitude"], m["longitude"]
	} else {
		latRaw = lookup(r.raw, homeInfo("latitude")...)
		lonRaw = lookup(r.raw, homeInfo("longitude")...)
	}

	lat, latOK := optionalFloat(latRaw)
	lon, lonOK := optionalFloat(lonRaw)
	if !latOK || !lonOK {
		r.dropped("coordinates", []any{latRaw, lonRaw})
		return nil, nil
	}
	return lat, lon
}

// optionalFloat parses v unless it is null; ok is false only on a parse
// failure.
func optionalFloat(v any) (*float64, bool) {
	if v == nil {
		return nil, true
	}
	f, ok := parseFloat(v)
	if !ok {
		return nil, false
	}
	return &f, true
}

// photos collects image URLs from a list of strings or of {url|src}
// objects, then puts imgSrc first unless it is already listed.
func (r *resolver) photos() []string {
	urls := make([]string, 0)

	if list, ok := r.first(fieldPath{"photos"}, fieldPath{"photoUrls"}).([]any); ok {
		for _, item := range list {
			switch p := item.(type) {
			case string:
				if p != "" {
					urls = append(urls, p)
				}
			case map[string]any:
				if u, ok := textValue(firstPresent(p["url"], p["src"])); ok {
					urls = append(urls, u)
				}
			}
		}
	}

	if primary, ok := textValue(lookup(r.raw, "imgSrc")); ok && !slices.Contains(urls, primary) {
		urls = append([]string{primary}, urls...)
	}
	return urls
}

func firstPresent(values ...any) any {
	for _, v := range values {
		if present(v) {
			return v
		}
	}
	return nil
}
