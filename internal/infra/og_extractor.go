package infra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Vovarama1992/reels-analyzer/internal/models"
	"github.com/Vovarama1992/reels-analyzer/internal/ports"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// FallbackDescription is used when a page has no og:description tag.
const FallbackDescription = "Instagram Reel with no public caption available."

// maxPageBytes bounds how much of a page is parsed.
const maxPageBytes = 5 << 20

const desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

type OGExtractor struct {
	client *http.Client
}

func NewOGExtractor(client *http.Client) ports.MetadataExtractor {
	return &OGExtractor{client: client}
}

func (e *OGExtractor) Extract(ctx context.Context, link string) (models.ExtractedMetadata, error) {
	var meta models.ExtractedMetadata

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return meta, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", desktopUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := e.client.Do(req)
	if err != nil {
		return meta, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	// Blocked or login-walled pages still carry HTML, so every status is
	// parsed and a missing og:description falls back to the placeholder.
	body, err := charset.NewReader(io.LimitReader(resp.Body, maxPageBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return meta, fmt.Errorf("decode charset: %w", err)
	}

	doc, err := html.Parse(body)
	if err != nil {
		return meta, fmt.Errorf("parse html: %w", err)
	}

	found := false
	walkMeta(doc, func(property, content string) {
		switch property {
		case "og:description":
			meta.Description = content
			found = true
		case "og:image":
			meta.ThumbnailURL = content
		case "og:video", "og:video:secure_url":
			meta.MediaURL = content
		}
	})

	if !found {
		meta.Description = FallbackDescription
		meta.Fallback = true
	}
	return meta, nil
}

// walkMeta visits every meta element in document order, so later tags
// overwrite earlier ones.
func walkMeta(n *html.Node, fn func(property, content string)) {
	if n.Type == html.ElementNode && n.Data == "meta" {
		var property, content string
		for _, attr := range n.Attr {
			switch strings.ToLower(attr.Key) {
			case "property":
				property = strings.TrimSpace(attr.Val)
			case "content":
				content = attr.Val
			}
		}
		if property != "" {
			fn(property, content)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkMeta(c, fn)
	}
}
