package reel

import (
	"encoding/json"
	"testing"

	"github.com/Vovarama1992/reels-analyzer/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cdn = "https://scontent.cdninstagram.com/"

func strPtr(s string) *string { return &s }

func TestBuildRecordWithGeoPoint(t *testing.T) {
	s := models.Summary{
		Title:       "Sunset",
		Description: "Beach",
		Tags:        []string{"bali"},
		Location:    strPtr("Bali"),
		GeoCode:     &models.GeoCode{Lat: -8.5, Lng: 115.25},
	}

	rec := BuildRecord("alice", "https://instagram.com/p/ABC", s, "https://img/1.jpg", "", cdn)

	assert.Equal(t, "alice", rec.Username)
	assert.Equal(t, "https://instagram.com/p/ABC", rec.IGLink)
	assert.Equal(t, "Bali", rec.Location)
	require.NotNil(t, rec.GeoCode)
	assert.Equal(t, "GeoPoint", rec.GeoCode.Type)
	assert.Equal(t, -8.5, rec.GeoCode.Latitude)
	assert.Equal(t, 115.25, rec.GeoCode.Longitude)
	assert.Equal(t, "https://img/1.jpg", rec.ThumbnailURL)
	assert.Nil(t, rec.Thumbnail)
}

func TestBuildRecordSynthesizesLocation(t *testing.T) {
	s := models.Summary{Title: "x", Tags: []string{}, GeoCode: &models.GeoCode{Lat: 22.123, Lng: 114.456}}

	rec := BuildRecord("u", "l", s, "", "", cdn)
	assert.Equal(t, "22.123,114.456", rec.Location)
}

func TestBuildRecordNoGeoSerializesNull(t *testing.T) {
	s, err := ParseSummary(`{"title":"x","tags":["a"],"geocode":"Hong Kong"}`)
	require.NoError(t, err)

	rec := BuildRecord("u", "l", s, "t", "", cdn)
	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Contains(t, out, "geocode")
	assert.Nil(t, out["geocode"])
	assert.Equal(t, "Hong Kong", out["location"])
	assert.NotContains(t, out, "thumbnail")
	assert.NotContains(t, out, "media_url")
	assert.Equal(t, "t", out["thumbnail_url"])
}

func TestBuildRecordMediaURLAllowList(t *testing.T) {
	s := models.Summary{Title: "x", Tags: []string{}}

	ok := BuildRecord("u", "l", s, "", cdn+"v/t50/clip.mp4", cdn)
	assert.Equal(t, cdn+"v/t50/clip.mp4", ok.MediaURL)

	blocked := BuildRecord("u", "l", s, "", "https://evil.example.com/clip.mp4", cdn)
	assert.Empty(t, blocked.MediaURL)
}

func TestAttachThumbnail(t *testing.T) {
	rec := &models.StoredRecord{}

	AttachThumbnail(rec, nil)
	assert.Nil(t, rec.Thumbnail)

	AttachThumbnail(rec, &models.FileRef{Name: "abc_thumbnail.jpg", URL: "https://files/abc_thumbnail.jpg"})
	require.NotNil(t, rec.Thumbnail)
	assert.Equal(t, "File", rec.Thumbnail.Type)
	assert.Equal(t, "abc_thumbnail.jpg", rec.Thumbnail.Name)
}

func TestFormatConfirmation(t *testing.T) {
	s := models.Summary{Title: "Sunset in Bali", Tags: []string{"bali", "sunset"}, Location: strPtr("Ubud")}

	got := FormatConfirmation(s, "https://instagram.com/p/ABC")
	want := "🚀 Saved!\n📍 Sunset in Bali\n🌍 Location: Ubud\n📄 Tags: #bali, #sunset\n📷 [View Post](https://instagram.com/p/ABC)"
	assert.Equal(t, want, got)
}

func TestFormatConfirmationCoordinates(t *testing.T) {
	s := models.Summary{Title: "T", Tags: nil, GeoCode: &models.GeoCode{Lat: 1.5, Lng: 2}}

	got := FormatConfirmation(s, "l")
	assert.Contains(t, got, "🌍 Location: 1.5,2\n")
	assert.Contains(t, got, "📄 Tags: \n")
}
