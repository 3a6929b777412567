package stations

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/Vovarama1992/reels-analyzer/internal/domain/reel"
	"github.com/Vovarama1992/reels-analyzer/internal/models"
	"github.com/Vovarama1992/reels-analyzer/internal/ports"
	"go.uber.org/zap"
)

// trim cuts s to at most max bytes without splitting a rune.
func trim(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max] + "…"
}

type S3Summarize struct {
	llm ports.SummaryGenerator
	log *zap.SugaredLogger
}

func NewS3Summarize(llm ports.SummaryGenerator, log *zap.SugaredLogger) *S3Summarize {
	return &S3Summarize{llm: llm, log: log}
}

// Run returns the validated summary and the raw model content. The raw
// content is also returned alongside parse errors.
func (s *S3Summarize) Run(ctx context.Context, description string) (models.Summary, string, error) {
	s.log.Infof("[S3][IN] %q", trim(description, 180))

	raw, err := s.llm.Complete(ctx, description)
	if err != nil {
		s.log.Errorf("[S3][ERR] %v", err)
		return models.Summary{}, "", fmt.Errorf("llm completion: %w", err)
	}
	s.log.Debugf("[S3][RAW] %q", trim(raw, 400))

	summary, err := reel.ParseSummary(raw)
	if err != nil {
		s.log.Warnf("[S3][PARSE-FAIL] %v raw=%q", err, trim(raw, 220))
		return models.Summary{}, raw, err
	}

	s.log.Infof("[S3][OK] title=%q tags=%d geo=%t", summary.Title, len(summary.Tags), summary.GeoCode != nil)
	return summary, raw, nil
}
