package models

// GeoPoint is the Parse GeoPoint wire type.
type GeoPoint struct {
	Type      string  `json:"__type"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewGeoPoint(lat, lng float64) *GeoPoint {
	return &GeoPoint{Type: "GeoPoint", Latitude: lat, Longitude: lng}
}

// FileRef points at an uploaded thumbnail.
type FileRef struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// FilePointer is the Parse File field value.
type FilePointer struct {
	Type string `json:"__type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// StoredRecord is one aRM_ReelsData row.
type StoredRecord struct {
	Username     string       `json:"username"`
	IGLink       string       `json:"ig_link"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Tags         []string     `json:"tags"`
	Location     string       `json:"location"`
	GeoCode      *GeoPoint    `json:"geocode"`
	ThumbnailURL string       `json:"thumbnail_url"`
	Thumbnail    *FilePointer `json:"thumbnail,omitempty"`
	MediaURL     string       `json:"media_url,omitempty"`
}
