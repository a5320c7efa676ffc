package redisstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/anthanhphan/go-fileshare/internal/server/domain"
	"github.com/anthanhphan/go-fileshare/internal/server/port"
	"github.com/anthanhphan/go-fileshare/pkg/idgen"
	"github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "fileshare:"

const (
	fieldID            = "id"
	fieldFileID        = "fileId"
	fieldFileName      = "fileName"
	fieldFileSize      = "fileSize"
	fieldMimeType      = "mimeType"
	fieldContent       = "content"
	fieldUploaderID    = "uploaderId"
	fieldUploadTime    = "uploadTime"
	fieldDownloaded    = "downloaded"
	fieldDownloadCount = "downloadCount"
	fieldDownloadedAt  = "downloadedAt"
)

// markScript sets the downloaded flag once and only for existing records.
var markScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
if redis.call('HGET', KEYS[1], 'downloaded') ~= '1' then
	redis.call('HSET', KEYS[1], 'downloaded', '1', 'downloadedAt', ARGV[1])
end
return 1
`)

// incrScript bumps the counter only for existing records.
var incrScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
return redis.call('HINCRBY', KEYS[1], 'downloadCount', 1)
`)

// Store persists records as Redis hashes.
type Store struct {
	client redis.UniversalClient
	seq    idgen.Sequence
	prefix string
	now    func() time.Time
}

// Ensure Store implements port.FileStore.
var _ port.FileStore = (*Store)(nil)

// New creates a Redis-backed store. Record ids come from INCR <prefix>seq.
func New(client redis.UniversalClient, prefix string) (*Store, error) {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	seq, err := idgen.NewRedisSequence(client, prefix+"seq")
	if err != nil {
		return nil, err
	}
	return &Store{
		client: client,
		seq:    seq,
		prefix: prefix,
		now:    time.Now,
	}, nil
}

func (s *Store) fileKey(fileID string) string {
	return s.prefix + "file:" + fileID
}

func (s *Store) CreateFile(ctx context.Context, in domain.NewFile) (*domain.FileRecord, error) {
	id, err := s.seq.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("next sequence: %w", err)
	}
	rec := domain.NewFileRecord(id, in)

	key := s.fileKey(in.FileID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, encodeRecord(rec))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store file %s: %w", in.FileID, err)
	}
	return rec, nil
}

func (s *Store) GetFile(ctx context.Context, fileID string) (*domain.FileRecord, error) {
	fields, err := s.client.HGetAll(ctx, s.fileKey(fileID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load file %s: %w", fileID, err)
	}
	if len(fields) == 0 {
		return nil, port.ErrFileNotFound
	}
	return decodeRecord(fields)
}

func (s *Store) MarkAsDownloaded(ctx context.Context, fileID string) error {
	at := s.now().UTC().Format(time.RFC3339Nano)
	if err := markScript.Run(ctx, s.client, []string{s.fileKey(fileID)}, at).Err(); err != nil {
		return fmt.Errorf("mark downloaded %s: %w", fileID, err)
	}
	return nil
}

func (s *Store) IncrementDownloadCount(ctx context.Context, fileID string) error {
	if err := incrScript.Run(ctx, s.client, []string{s.fileKey(fileID)}).Err(); err != nil {
		return fmt.Errorf("increment download count %s: %w", fileID, err)
	}
	return nil
}

func (s *Store) GetFileMetrics(ctx context.Context, fileID string) (*domain.FileMetrics, error) {
	rec, err := s.GetFile(ctx, fileID)
	if err != nil {
		return nil, err
	}
	return rec.Metrics(), nil
}

func encodeRecord(rec *domain.FileRecord) map[string]interface{} {
	fields := map[string]interface{}{
		fieldID:            rec.ID,
		fieldFileID:        rec.FileID,
		fieldFileName:      rec.FileName,
		fieldFileSize:      rec.FileSize,
		fieldMimeType:      rec.MimeType,
		fieldContent:       rec.Content,
		fieldUploaderID:    rec.UploaderID,
		fieldUploadTime:    rec.UploadTime,
		fieldDownloaded:    boolField(rec.Downloaded),
		fieldDownloadCount: rec.DownloadCount,
	}
	if rec.DownloadedAt != nil {
		fields[fieldDownloadedAt] = rec.DownloadedAt.UTC().Format(time.RFC3339Nano)
	}
	return fields
}

func decodeRecord(fields map[string]string) (*domain.FileRecord, error) {
	id, err := strconv.ParseInt(fields[fieldID], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", fieldID, err)
	}
	size, err := strconv.ParseInt(fields[fieldFileSize], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", fieldFileSize, err)
	}
	count := int64(0)
	if v, ok := fields[fieldDownloadCount]; ok && v != "" {
		if count, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("decode %s: %w", fieldDownloadCount, err)
		}
	}

	rec := &domain.FileRecord{
		ID:            id,
		FileID:        fields[fieldFileID],
		FileName:      fields[fieldFileName],
		FileSize:      size,
		MimeType:      fields[fieldMimeType],
		Content:       fields[fieldContent],
		UploaderID:    fields[fieldUploaderID],
		UploadTime:    fields[fieldUploadTime],
		Downloaded:    fields[fieldDownloaded] == "1",
		DownloadCount: count,
	}
	if v := fields[fieldDownloadedAt]; v != "" {
		at, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", fieldDownloadedAt, err)
		}
		rec.DownloadedAt = &at
	}
	return rec, nil
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
