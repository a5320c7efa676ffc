package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthanhphan/go-fileshare/internal/server/domain"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/gabriel-vasile/mimetype"
)

var ErrFileTooLarge = errors.New("file exceeds upload limit")

// UploadResult is the stored record plus its share link.
type UploadResult struct {
	File     *domain.FileRecord
	ShareURL string
}

// Uploader reads local files and submits them as data URIs.
type Uploader struct {
	api        *Client
	uploaderID string
	maxSize    int64
	now        func() time.Time
}

type UploaderOption func(*Uploader)

// WithMaxSize rejects files larger than n bytes before reading them.
func WithMaxSize(n int64) UploaderOption {
	return func(u *Uploader) { u.maxSize = n }
}

func NewUploader(api *Client, uploaderID string, opts ...UploaderOption) *Uploader {
	u := &Uploader{
		api:        api,
		uploaderID: uploaderID,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Uploader) Upload(ctx context.Context, path string) (*UploadResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if u.maxSize > 0 && info.Size() > u.maxSize {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrFileTooLarge, info.Size(), u.maxSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	mimeType := mimetype.Detect(data).String()
	baseType, _, _ := strings.Cut(mimeType, ";")

	rec, err := u.api.CreateFile(ctx, CreateFileRequest{
		FileName:   filepath.Base(path),
		FileSize:   int64(len(data)),
		MimeType:   mimeType,
		Content:    domain.EncodeDataURI(baseType, data),
		UploaderID: u.uploaderID,
		UploadTime: u.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", path, err)
	}

	logger.Infow("File uploaded", "file_id", rec.FileID, "file_name", rec.FileName, "file_size", rec.FileSize)
	return &UploadResult{
		File:     rec,
		ShareURL: u.api.ShareURL(rec.FileID),
	}, nil
}
