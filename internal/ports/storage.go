package ports

import (
	"context"

	"github.com/Vovarama1992/reels-analyzer/internal/models"
)

// FileStore uploads a thumbnail and returns a reference usable as a File field.
type FileStore interface {
	UploadFile(ctx context.Context, name, contentType string, data []byte) (*models.FileRef, error)
}

// RecordStore creates one object in the remote class and relays the raw reply.
type RecordStore interface {
	CreateRecord(ctx context.Context, record *models.StoredRecord) (status int, body string, err error)
}
