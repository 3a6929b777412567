package stations

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/reels-analyzer/internal/models"
	"github.com/Vovarama1992/reels-analyzer/internal/ports"
	"go.uber.org/zap"
)

type S5Persist struct {
	records ports.RecordStore
	log     *zap.SugaredLogger
}

func NewS5Persist(records ports.RecordStore, log *zap.SugaredLogger) *S5Persist {
	return &S5Persist{records: records, log: log}
}

// Run relays the remote status and body without interpreting them.
func (s *S5Persist) Run(ctx context.Context, rec *models.StoredRecord) (int, string, error) {
	s.log.Infof("[S5][START] user=%q link=%s thumb=%t", rec.Username, rec.IGLink, rec.Thumbnail != nil)

	status, body, err := s.records.CreateRecord(ctx, rec)
	if err != nil {
		s.log.Errorf("[S5][ERR] %v", err)
		return 0, "", fmt.Errorf("create record: %w", err)
	}

	if status/100 != 2 {
		s.log.Warnf("[S5][REMOTE] status=%d body=%q", status, trim(body, 220))
	} else {
		s.log.Infof("[S5][OK] status=%d", status)
	}
	return status, body, nil
}
