package infra

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHTML(t *testing.T, contentType, body string, status int) (*httptest.Server, *http.Header) {
	t.Helper()
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestOGExtractorCapturesTags(t *testing.T) {
	page := `<html><head>
		<meta property="og:description" content="first">
		<meta property="og:image" content="https://cdn.example.com/a.jpg">
		<meta property="og:description" content="Sunset at Uluwatu">
		<meta property="og:video" content="https://scontent.cdninstagram.com/v.mp4">
		<meta name="description" content="ignored">
	</head><body></body></html>`
	srv, headers := serveHTML(t, "text/html; charset=utf-8", page, http.StatusOK)

	meta, err := NewOGExtractor(srv.Client()).Extract(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Sunset at Uluwatu", meta.Description)
	assert.Equal(t, "https://cdn.example.com/a.jpg", meta.ThumbnailURL)
	assert.Equal(t, "https://scontent.cdninstagram.com/v.mp4", meta.MediaURL)
	assert.False(t, meta.Fallback)
	assert.Contains(t, headers.Get("User-Agent"), "Mozilla/5.0")
	assert.NotEmpty(t, headers.Get("Accept-Language"))
}

func TestOGExtractorFallback(t *testing.T) {
	srv, _ := serveHTML(t, "text/html", `<html><head><meta property="og:image" content="x.jpg"></head></html>`, http.StatusOK)

	meta, err := NewOGExtractor(srv.Client()).Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, FallbackDescription, meta.Description)
	assert.True(t, meta.Fallback)
	assert.Equal(t, "x.jpg", meta.ThumbnailURL)
}

func TestOGExtractorEmptyDescriptionIsNotFallback(t *testing.T) {
	srv, _ := serveHTML(t, "text/html", `<meta property="og:description" content="">`, http.StatusOK)

	meta, err := NewOGExtractor(srv.Client()).Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "", meta.Description)
	assert.False(t, meta.Fallback)
}

func TestOGExtractorConvertsCharset(t *testing.T) {
	// "Café" in ISO-8859-1
	page := "<meta property=\"og:description\" content=\"Caf\xe9\">"
	srv, _ := serveHTML(t, "text/html; charset=iso-8859-1", page, http.StatusOK)

	meta, err := NewOGExtractor(srv.Client()).Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Café", meta.Description)
}

func TestOGExtractorParsesBlockedPages(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusTooManyRequests} {
		page := `<html><head><meta property="og:image" content="https://cdn.example.com/wall.jpg"></head><body>Log in</body></html>`
		srv, _ := serveHTML(t, "text/html", page, status)

		meta, err := NewOGExtractor(srv.Client()).Extract(context.Background(), srv.URL)
		require.NoError(t, err, status)
		assert.Equal(t, FallbackDescription, meta.Description)
		assert.True(t, meta.Fallback)
		assert.Equal(t, "https://cdn.example.com/wall.jpg", meta.ThumbnailURL)
	}
}

func TestOGExtractorNetworkError(t *testing.T) {
	srv, _ := serveHTML(t, "text/html", "", http.StatusOK)
	srv.Close()

	_, err := NewOGExtractor(http.DefaultClient).Extract(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestOGExtractorBoundsPageSize(t *testing.T) {
	page := `<html><head><meta property="og:image" content="early.jpg"></head><body>` +
		strings.Repeat("x", maxPageBytes) +
		`<meta property="og:description" content="too late"></body></html>`
	srv, _ := serveHTML(t, "text/html", page, http.StatusOK)

	meta, err := NewOGExtractor(srv.Client()).Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "early.jpg", meta.ThumbnailURL)
	assert.Equal(t, FallbackDescription, meta.Description)
}
