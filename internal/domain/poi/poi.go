package poi

// POI is a point of interest near a content item.
type POI struct {
	Name       string  `json:"name"`
	Latitude   float64 `json:"lat"`
	Longitude  float64 `json:"lon"`
	DistanceKm float64 `json:"distance_km"`
}

// Query locates POIs around a point within a country scope.
type Query struct {
	CountryTagID int64
	Latitude     float64
	Longitude    float64
	RadiusKm     float64
	Limit        int
}
