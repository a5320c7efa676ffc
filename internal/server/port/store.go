package port

import (
	"context"
	"errors"

	"github.com/anthanhphan/go-fileshare/internal/server/domain"
)

var (
	ErrFileNotFound = errors.New("file not found")
)

//go:generate mockgen -destination=../service/mocks/store_mock.go -package=mocks -source=store.go

// FileStore defines the record storage used by the file service.
type FileStore interface {
	// CreateFile assigns the next sequence id and inserts the record keyed by FileID.
	// An existing record with the same FileID is overwritten.
	CreateFile(ctx context.Context, in domain.NewFile) (*domain.FileRecord, error)

	// GetFile returns a copy of the record, or ErrFileNotFound.
	GetFile(ctx context.Context, fileID string) (*domain.FileRecord, error)

	// MarkAsDownloaded sets the downloaded flag. Unknown ids are a no-op.
	MarkAsDownloaded(ctx context.Context, fileID string) error

	// IncrementDownloadCount bumps the download counter. Unknown ids are a no-op.
	IncrementDownloadCount(ctx context.Context, fileID string) error

	// GetFileMetrics returns the aggregate view, or ErrFileNotFound.
	GetFileMetrics(ctx context.Context, fileID string) (*domain.FileMetrics, error)
}

// IDGenerator produces public file identifiers.
type IDGenerator interface {
	NewFileID() string
}
