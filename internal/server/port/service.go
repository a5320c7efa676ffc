package port

import (
	"context"

	"github.com/anthanhphan/go-fileshare/internal/server/domain"
)

// FileService defines the business logic behind the HTTP API.
type FileService interface {
	// CreateFile generates a file ID and stores the upload.
	CreateFile(ctx context.Context, in domain.NewFile) (*domain.FileRecord, error)

	// GetFile returns the stored record.
	GetFile(ctx context.Context, fileID string) (*domain.FileRecord, error)

	// MarkDownloaded records one completed download.
	MarkDownloaded(ctx context.Context, fileID string) error

	// GetFileMetrics returns download statistics for a file.
	GetFileMetrics(ctx context.Context, fileID string) (*domain.FileMetrics, error)

	// OpenContent returns a streaming decoder over the stored payload.
	OpenContent(ctx context.Context, fileID string) (*domain.FileRecord, *domain.Content, error)
}
