package models

// GeoCode is the coordinate pair the model is asked to emit.
type GeoCode struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Summary is the canonical, validated shape of a model response.
type Summary struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Location    *string  `json:"location"`
	GeoCode     *GeoCode `json:"geocode"`
}

// LocationText returns the location, or an empty string when unset.
func (s Summary) LocationText() string {
	if s.Location == nil {
		return ""
	}
	return *s.Location
}

type ExtractedMetadata struct {
	Description  string
	ThumbnailURL string
	MediaURL     string // og:video, may be empty
	Fallback     bool   // Description is the placeholder literal
}
