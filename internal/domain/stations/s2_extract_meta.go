package stations

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/reels-analyzer/internal/models"
	"github.com/Vovarama1992/reels-analyzer/internal/ports"
	"go.uber.org/zap"
)

type S2ExtractMeta struct {
	extractor ports.MetadataExtractor
	log       *zap.SugaredLogger
}

func NewS2ExtractMeta(extractor ports.MetadataExtractor, log *zap.SugaredLogger) *S2ExtractMeta {
	return &S2ExtractMeta{extractor: extractor, log: log}
}

func (s *S2ExtractMeta) Run(ctx context.Context, link string) (models.ExtractedMetadata, error) {
	s.log.Infof("[S2][START] link=%s", link)

	meta, err := s.extractor.Extract(ctx, link)
	if err != nil {
		s.log.Errorf("[S2][ERR] link=%s err=%v", link, err)
		return models.ExtractedMetadata{}, fmt.Errorf("extract metadata: %w", err)
	}

	if meta.Fallback {
		s.log.Warnf("[S2][FALLBACK] link=%s no og:description", link)
	}
	s.log.Infof("[S2][OK] desc=%q image=%t media=%t",
		trim(meta.Description, 120), meta.ThumbnailURL != "", meta.MediaURL != "")
	return meta, nil
}
