package stations

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Vovarama1992/reels-analyzer/internal/domain/reel"
	"github.com/Vovarama1992/reels-analyzer/internal/models"
	"github.com/Vovarama1992/reels-analyzer/internal/ports"
	"go.uber.org/zap"
)

const thumbnailName = "thumbnail.jpg"

// Thumbnail relay outcomes reported to metrics.
const (
	ThumbSkipped   = "skipped"
	ThumbBadStatus = "bad_status"
	ThumbFailed    = "failed"
	ThumbUploaded  = "uploaded"
)

type S4Thumbnail struct {
	client   *http.Client
	files    ports.FileStore
	metrics  ports.Metrics
	maxSide  int
	maxBytes  int64
	maxPixels int64
	log       *zap.SugaredLogger
}

func NewS4Thumbnail(
	client *http.Client,
	files ports.FileStore,
	metrics ports.Metrics,
	maxSide int,
	maxBytes int64,
	maxPixels int64,
	log *zap.SugaredLogger,
) *S4Thumbnail {
	return &S4Thumbnail{
		client:   client,
		files:    files,
		metrics:  metrics,
		maxSide:  maxSide,
		maxBytes:  maxBytes,
		maxPixels: maxPixels,
		log:      log,
	}
}

// Run is best effort: every failure is logged and reported as a nil
// reference so the record is still saved.
func (s *S4Thumbnail) Run(ctx context.Context, imageURL string) *models.FileRef {
	if imageURL == "" {
		s.metrics.ThumbnailResult(ThumbSkipped)
		return nil
	}

	ref, result, err := s.relay(ctx, imageURL)
	s.metrics.ThumbnailResult(result)
	if err != nil {
		s.log.Warnf("[S4][FAIL] result=%s url=%q err=%v", result, trim(imageURL, 180), err)
		return nil
	}

	s.log.Infof("[S4][OK] name=%s", ref.Name)
	return ref
}

func (s *S4Thumbnail) relay(ctx context.Context, imageURL string) (ref *models.FileRef, result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			ref, result, err = nil, ThumbFailed, fmt.Errorf("panic: %v", r)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, ThumbFailed, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, ThumbFailed, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ThumbBadStatus, fmt.Errorf("image http %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, ThumbFailed, fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ThumbFailed, fmt.Errorf("image exceeds %d bytes", s.maxBytes)
	}

	jpg, size, err := reel.PrepareThumbnail(data, s.maxSide, s.maxPixels)
	if err != nil {
		return nil, ThumbFailed, err
	}
	s.log.Debugf("[S4][RESIZED] %dx%d bytes=%d", size.X, size.Y, len(jpg))

	ref, err = s.files.UploadFile(ctx, thumbnailName, "image/jpeg", jpg)
	if err != nil {
		return nil, ThumbFailed, fmt.Errorf("upload thumbnail: %w", err)
	}
	if ref == nil || ref.Name == "" {
		return nil, ThumbFailed, fmt.Errorf("upload returned no file name")
	}
	return ref, ThumbUploaded, nil
}
