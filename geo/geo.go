// Package geo holds distance and envelope math over decimal-degree
// coordinates.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by every computation here.
const EarthRadiusKm = 6371.0

const (
	minLat = -90.0
	maxLat = 90.0
	minLon = -180.0
	maxLon = 180.0
)

// DistanceKm returns the great-circle distance in kilometers between two
// points using the haversine formula.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := radians(lat1)
	lat2Rad := radians(lat2)
	dLat := lat2Rad - lat1Rad
	dLon := radians(lon2) - radians(lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Box is a latitude/longitude envelope in decimal degrees.
type Box struct {
	MinLat, MinLon float64
	MaxLat, MaxLon float64
}

// Contains reports whether the point lies inside the box, edges included.
func (b Box) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lon >= b.MinLon && lon <= b.MaxLon
}

// BoundingBox returns an envelope around (lat, lon) that contains every
// point within radiusKm of it. The box is coarse: it is only meant to
// discard far-away points cheaply before an exact DistanceKm check.
//
// Longitude span follows the bounding-coordinates method
// (asin(sin(d)/cos(lat))). If the circle reaches a pole or crosses the
// antimeridian the longitude range opens to [-180, 180].
func BoundingBox(lat, lon, radiusKm float64) Box {
	if radiusKm < 0 {
		radiusKm = 0
	}
	angular := radiusKm / EarthRadiusKm
	// Pad by a hair so points exactly on the circle survive rounding.
	const pad = 1e-9

	dLat := degrees(angular) + pad
	box := Box{
		MinLat: lat - dLat,
		MaxLat: lat + dLat,
		MinLon: minLon,
		MaxLon: maxLon,
	}

	if box.MinLat <= minLat || box.MaxLat >= maxLat {
		box.MinLat = math.Max(box.MinLat, minLat)
		box.MaxLat = math.Min(box.MaxLat, maxLat)
		return box
	}

	ratio := math.Sin(angular) / math.Cos(radians(lat))
	if ratio >= 1 {
		return box
	}
	dLon := degrees(math.Asin(ratio)) + pad
	if lon-dLon < minLon || lon+dLon > maxLon {
		return box
	}
	box.MinLon = lon - dLon
	box.MaxLon = lon + dLon
	return box
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
