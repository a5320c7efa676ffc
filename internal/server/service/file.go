package service

import (
	"context"
	"fmt"

	"github.com/anthanhphan/go-fileshare/internal/server/domain"
	"github.com/anthanhphan/go-fileshare/internal/server/port"
	"github.com/anthanhphan/gosdk/logger"
)

// FileServiceImpl implements the file-sharing use cases over a FileStore.
type FileServiceImpl struct {
	store port.FileStore
	ids   port.IDGenerator
}

// Ensure FileServiceImpl implements port.FileService.
var _ port.FileService = (*FileServiceImpl)(nil)

// NewFileService wires the service to its store and file id generator.
func NewFileService(store port.FileStore, ids port.IDGenerator) *FileServiceImpl {
	return &FileServiceImpl{
		store: store,
		ids:   ids,
	}
}

// CreateFile assigns a fresh public file id and persists the upload.
// Any FileID already set on the input is replaced.
func (s *FileServiceImpl) CreateFile(ctx context.Context, in domain.NewFile) (*domain.FileRecord, error) {
	in.FileID = s.ids.NewFileID()

	rec, err := s.store.CreateFile(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create file %s: %w", in.FileID, err)
	}

	filesCreatedTotal.Inc()
	declaredBytesTotal.Add(float64(rec.FileSize))
	logger.Infow("File stored",
		"file_id", rec.FileID,
		"id", rec.ID,
		"file_size", rec.FileSize,
		"mime_type", rec.MimeType,
	)
	return rec, nil
}

func (s *FileServiceImpl) GetFile(ctx context.Context, fileID string) (*domain.FileRecord, error) {
	return s.store.GetFile(ctx, fileID)
}

// MarkDownloaded flags the record and bumps its counter. Both calls are
// no-ops for unknown ids, so this never reports a miss.
func (s *FileServiceImpl) MarkDownloaded(ctx context.Context, fileID string) error {
	if err := s.store.MarkAsDownloaded(ctx, fileID); err != nil {
		return fmt.Errorf("mark downloaded %s: %w", fileID, err)
	}
	if err := s.store.IncrementDownloadCount(ctx, fileID); err != nil {
		return fmt.Errorf("increment download count %s: %w", fileID, err)
	}

	downloadsNotifiedTotal.Inc()
	logger.Debugw("Download recorded", "file_id", fileID)
	return nil
}

func (s *FileServiceImpl) GetFileMetrics(ctx context.Context, fileID string) (*domain.FileMetrics, error) {
	return s.store.GetFileMetrics(ctx, fileID)
}

// OpenContent resolves the record and opens a decoder over its data URI.
func (s *FileServiceImpl) OpenContent(ctx context.Context, fileID string) (*domain.FileRecord, *domain.Content, error) {
	rec, err := s.store.GetFile(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}

	content, err := domain.OpenDataURI(rec.Content)
	if err != nil {
		return nil, nil, fmt.Errorf("open content %s: %w", fileID, err)
	}
	if rec.MimeType != "" {
		content.MimeType = rec.MimeType
	}
	return rec, content, nil
}
