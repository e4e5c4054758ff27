package geo

import "dinescout-engine/internal/domain"

// Scored pairs a restaurant with its distance from the user. DistanceM is
// meaningful only when HasDistance is set; restaurants without coordinates
// keep HasDistance false.
type Scored struct {
	Restaurant  domain.Restaurant
	DistanceM   float64
	HasDistance bool
}

// WithDistance attaches the haversine distance from (lat, lng) to every
// restaurant that has coordinates. Restaurants without coordinates pass
// through with HasDistance false rather than failing the batch.
func WithDistance(records []domain.Restaurant, lat, lng float64) []Scored {
	out := make([]Scored, 0, len(records))
	for _, r := range records {
		s := Scored{Restaurant: r}
		if r.Coords != nil {
			s.DistanceM = HaversineM(lat, lng, r.Coords.Lat, r.Coords.Lng)
			s.HasDistance = true
		}
		out = append(out, s)
	}
	return out
}

// FilterRadius keeps restaurants proven to be within radiusM of (lat, lng).
// Restaurants without coordinates cannot be proven inside the circle and are
// dropped. A caller with no user location should skip calling this at all:
// geographic constraints are always optional.
func FilterRadius(records []domain.Restaurant, lat, lng, radiusM float64) []Scored {
	scored := WithDistance(records, lat, lng)
	out := scored[:0]
	for _, s := range scored {
		if s.HasDistance && s.DistanceM <= radiusM {
			out = append(out, s)
		}
	}
	return out
}
