package reel

import (
	"strconv"
	"strings"

	"github.com/Vovarama1992/reels-analyzer/internal/models"
)

// LocationText is the human readable place: the summary location, else the
// coordinates as "lat,lng", else empty.
func LocationText(s models.Summary) string {
	if loc := s.LocationText(); loc != "" {
		return loc
	}
	if s.GeoCode != nil {
		return formatCoord(s.GeoCode.Lat) + "," + formatCoord(s.GeoCode.Lng)
	}
	return ""
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BuildRecord assembles the flat row sent to the remote class. The thumbnail
// file field is attached later, once the relay has produced one.
func BuildRecord(user, link string, s models.Summary, thumbnailURL, mediaURL, mediaPrefix string) *models.StoredRecord {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}

	rec := &models.StoredRecord{
		Username:     user,
		IGLink:       link,
		Title:        s.Title,
		Description:  s.Description,
		Tags:         tags,
		Location:     LocationText(s),
		ThumbnailURL: thumbnailURL,
	}
	if s.GeoCode != nil {
		rec.GeoCode = models.NewGeoPoint(s.GeoCode.Lat, s.GeoCode.Lng)
	}
	if AllowedMediaURL(mediaURL, mediaPrefix) {
		rec.MediaURL = mediaURL
	}
	return rec
}

// AllowedMediaURL reports whether u is served from the allow-listed CDN.
func AllowedMediaURL(u, prefix string) bool {
	return u != "" && prefix != "" && strings.HasPrefix(u, prefix)
}

func AttachThumbnail(rec *models.StoredRecord, ref *models.FileRef) {
	if ref == nil || ref.Name == "" {
		return
	}
	rec.Thumbnail = &models.FilePointer{Type: "File", Name: ref.Name, URL: ref.URL}
}
