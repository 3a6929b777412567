package ports

import (
	"context"

	"github.com/Vovarama1992/reels-analyzer/internal/models"
)

type MetadataExtractor interface {
	Extract(ctx context.Context, link string) (models.ExtractedMetadata, error)
}
