package stations

import (
	"github.com/Vovarama1992/reels-analyzer/internal/domain/reel"
	"go.uber.org/zap"
)

type S1NormalizeLink struct {
	log *zap.SugaredLogger
}

func NewS1NormalizeLink(log *zap.SugaredLogger) *S1NormalizeLink {
	return &S1NormalizeLink{log: log}
}

func (s *S1NormalizeLink) Run(raw string) string {
	link := reel.NormalizeLink(raw)
	if link == "" {
		s.log.Warnf("[S1][EMPTY] raw=%q", trim(raw, 180))
	} else {
		s.log.Debugf("[S1][OK] link=%s", link)
	}
	return link
}
