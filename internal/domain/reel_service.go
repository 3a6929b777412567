package domain

import (
	"context"
	"net/http"
	"time"

	"github.com/Vovarama1992/reels-analyzer/internal/domain/reel"
	"github.com/Vovarama1992/reels-analyzer/internal/domain/stations"
	"github.com/Vovarama1992/reels-analyzer/internal/models"
	"github.com/Vovarama1992/reels-analyzer/internal/ports"
	"go.uber.org/zap"
)

type ReelServiceConfig struct {
	MediaURLPrefix   string
	MaxThumbnailSide int
	MaxImageBytes    int64
	MaxImagePixels   int64
}

type ReelService struct {
	s1 *stations.S1NormalizeLink
	s2 *stations.S2ExtractMeta
	s3 *stations.S3Summarize
	s4 *stations.S4Thumbnail
	s5 *stations.S5Persist

	journal     ports.Journal
	metrics     ports.Metrics
	mediaPrefix string
	log         *zap.SugaredLogger
	events      chan ports.SavedEvent
}

// NewReelService wires the five stations. journal may be nil.
func NewReelService(
	cfg ReelServiceConfig,
	extractor ports.MetadataExtractor,
	llm ports.SummaryGenerator,
	files ports.FileStore,
	records ports.RecordStore,
	journal ports.Journal,
	metrics ports.Metrics,
	client *http.Client,
	log *zap.SugaredLogger,
) *ReelService {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if cfg.MaxThumbnailSide <= 0 {
		cfg.MaxThumbnailSide = reel.DefaultMaxSide
	}
	if cfg.MaxImageBytes <= 0 {
		cfg.MaxImageBytes = 10 << 20
	}
	if cfg.MaxImagePixels <= 0 {
		cfg.MaxImagePixels = reel.DefaultMaxPixels
	}

	return &ReelService{
		s1:          stations.NewS1NormalizeLink(log),
		s2:          stations.NewS2ExtractMeta(extractor, log),
		s3:          stations.NewS3Summarize(llm, log),
		s4:          stations.NewS4Thumbnail(client, files, metrics, cfg.MaxThumbnailSide, cfg.MaxImageBytes, cfg.MaxImagePixels, log),
		s5:          stations.NewS5Persist(records, log),
		journal:     journal,
		metrics:     metrics,
		mediaPrefix: cfg.MediaURLPrefix,
		log:         log,
		events:      make(chan ports.SavedEvent, 100),
	}
}

func (m *ReelService) Events() <-chan ports.SavedEvent { return m.events }

// ========================================================================
// ANALYZE
// ========================================================================
func (m *ReelService) Analyze(ctx context.Context, in ports.AnalyzeInput) (*ports.AnalyzeResult, error) {
	link := m.s1.Run(in.Link)

	start := time.Now()
	meta, err := m.s2.Run(ctx, link)
	m.metrics.ObserveStage("extract", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	summary, raw, err := m.s3.Run(ctx, meta.Description)
	m.metrics.ObserveStage("summarize", time.Since(start), err)
	if err != nil {
		return &ports.AnalyzeResult{Link: link, Metadata: meta, Raw: raw}, err
	}

	return &ports.AnalyzeResult{
		Link:     link,
		Summary:  summary,
		Metadata: meta,
		Raw:      raw,
	}, nil
}

// ========================================================================
// SAVE
// ========================================================================
func (m *ReelService) Save(ctx context.Context, in ports.SaveInput) (*ports.PersistResult, error) {
	summary, err := reel.ParseSummaryJSON(in.Summary)
	if err != nil {
		m.log.Warnf("[SAVE][REJECT] user=%q err=%v", in.User, err)
		return nil, err
	}
	return m.persist(ctx, in.User, in.Link, summary, in.ThumbnailURL, in.MediaURL)
}

// ========================================================================
// ANALYZE + SAVE
// ========================================================================
func (m *ReelService) AnalyzeSave(ctx context.Context, in ports.AnalyzeInput) (*ports.AnalyzeSaveResult, error) {
	analysis, err := m.Analyze(ctx, in)
	if err != nil {
		return &ports.AnalyzeSaveResult{Analysis: analysis}, err
	}

	res, err := m.persist(ctx, in.User, analysis.Link, analysis.Summary,
		analysis.Metadata.ThumbnailURL, analysis.Metadata.MediaURL)
	if err != nil {
		return &ports.AnalyzeSaveResult{Analysis: analysis}, err
	}

	return &ports.AnalyzeSaveResult{
		Analysis: analysis,
		Persist:  res,
		Message:  reel.FormatConfirmation(analysis.Summary, analysis.Link),
	}, nil
}

// ========================================================================
// PERSIST
// ========================================================================
func (m *ReelService) persist(
	ctx context.Context,
	user, link string,
	summary models.Summary,
	thumbnailURL, mediaURL string,
) (*ports.PersistResult, error) {
	rec := reel.BuildRecord(user, link, summary, thumbnailURL, mediaURL, m.mediaPrefix)

	start := time.Now()
	ref := m.s4.Run(ctx, thumbnailURL)
	m.metrics.ObserveStage("thumbnail", time.Since(start), nil)
	reel.AttachThumbnail(rec, ref)

	start = time.Now()
	status, body, err := m.s5.Run(ctx, rec)
	m.metrics.ObserveStage("persist", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if status/100 == 2 {
		m.afterSave(ctx, rec, status)
	}

	return &ports.PersistResult{Status: status, Body: body, Thumbnail: ref}, nil
}

func (m *ReelService) afterSave(ctx context.Context, rec *models.StoredRecord, status int) {
	if m.journal != nil {
		err := m.journal.Append(ctx, &models.JournalEntry{
			Username:     rec.Username,
			IGLink:       rec.IGLink,
			Title:        rec.Title,
			RemoteStatus: status,
		})
		if err != nil {
			m.log.Warnf("[JOURNAL][FAIL] user=%q err=%v", rec.Username, err)
		}
	}

	ev := ports.SavedEvent{
		Username: rec.Username,
		IGLink:   rec.IGLink,
		Title:    rec.Title,
		Status:   status,
	}
	select {
	case m.events <- ev:
	default:
		m.log.Warnf("[EVENTS][DROP] user=%q buffer full", rec.Username)
	}
}

// NopMetrics discards measurements.
type NopMetrics struct{}

func (NopMetrics) ObserveStage(string, time.Duration, error) {}
func (NopMetrics) ThumbnailResult(string)                     {}
