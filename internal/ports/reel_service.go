package ports

import (
	"context"
	"encoding/json"

	"github.com/Vovarama1992/reels-analyzer/internal/models"
)

type AnalyzeInput struct {
	Link string
	User string
}

type AnalyzeResult struct {
	Link     string // normalized
	Summary  models.Summary
	Metadata models.ExtractedMetadata
	Raw      string // model content as received
}

type SaveInput struct {
	User         string
	Link         string
	Summary      json.RawMessage
	ThumbnailURL string
	MediaURL     string
}

type PersistResult struct {
	Status    int
	Body      string
	Thumbnail *models.FileRef
}

type AnalyzeSaveResult struct {
	Analysis *AnalyzeResult
	Persist  *PersistResult
	Message  string
}

// SavedEvent is published after the remote store accepted a record.
type SavedEvent struct {
	Username string `json:"username"`
	IGLink   string `json:"ig_link"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
}

type ReelProcessor interface {
	Analyze(ctx context.Context, in AnalyzeInput) (*AnalyzeResult, error)
	Save(ctx context.Context, in SaveInput) (*PersistResult, error)
	AnalyzeSave(ctx context.Context, in AnalyzeInput) (*AnalyzeSaveResult, error)
	Events() <-chan SavedEvent
}
