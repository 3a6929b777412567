package ports

import (
	"context"

	"github.com/Vovarama1992/reels-analyzer/internal/models"
)

type Journal interface {
	Append(ctx context.Context, entry *models.JournalEntry) error
	ListByUser(ctx context.Context, username string, limit int) ([]models.JournalEntry, error)
}
