package memstore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/anthanhphan/go-fileshare/internal/server/domain"
	"github.com/anthanhphan/go-fileshare/internal/server/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFile(fileID string) domain.NewFile {
	return domain.NewFile{
		FileID:     fileID,
		FileName:   "a.txt",
		FileSize:   10,
		MimeType:   "text/plain",
		Content:    "data:text/plain;base64,aGVsbG8gd29ybGQ=",
		UploaderID: "up_ab12cd",
		UploadTime: "2024-01-01T00:00:00Z",
	}
}

func TestStore_CreateFile(t *testing.T) {
	s := New(4)
	ctx := context.Background()

	rec, err := s.CreateFile(ctx, sampleFile("abc123"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, "abc123", rec.FileID)
	assert.False(t, rec.Downloaded)
	assert.Equal(t, int64(0), rec.DownloadCount)

	second, err := s.CreateFile(ctx, sampleFile("def456"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, 2, s.Len())
}

func TestStore_CreateFileOverwritesOnCollision(t *testing.T) {
	s := New(4)
	ctx := context.Background()

	_, err := s.CreateFile(ctx, sampleFile("abc123"))
	require.NoError(t, err)
	require.NoError(t, s.IncrementDownloadCount(ctx, "abc123"))

	in := sampleFile("abc123")
	in.FileName = "b.txt"
	_, err = s.CreateFile(ctx, in)
	require.NoError(t, err)

	got, err := s.GetFile(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "b.txt", got.FileName)
	assert.Equal(t, int64(2), got.ID)
	assert.Equal(t, int64(0), got.DownloadCount)
	assert.Equal(t, 1, s.Len())
}

func TestStore_GetFileUnknown(t *testing.T) {
	s := New(4)
	_, err := s.GetFile(context.Background(), "nope00")
	assert.ErrorIs(t, err, port.ErrFileNotFound)

	_, err = s.GetFileMetrics(context.Background(), "nope00")
	assert.ErrorIs(t, err, port.ErrFileNotFound)
}

func TestStore_GetFileReturnsCopy(t *testing.T) {
	s := New(4)
	ctx := context.Background()
	_, err := s.CreateFile(ctx, sampleFile("abc123"))
	require.NoError(t, err)

	got, err := s.GetFile(ctx, "abc123")
	require.NoError(t, err)
	got.DownloadCount = 99

	again, err := s.GetFile(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, int64(0), again.DownloadCount)
}

func TestStore_MutationsOnUnknownAreNoop(t *testing.T) {
	s := New(4)
	ctx := context.Background()

	assert.NoError(t, s.MarkAsDownloaded(ctx, "nope00"))
	assert.NoError(t, s.IncrementDownloadCount(ctx, "nope00"))
	assert.Equal(t, 0, s.Len())
}

func TestStore_DownloadBookkeeping(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New(4, WithClock(func() time.Time { return at }))
	ctx := context.Background()
	_, err := s.CreateFile(ctx, sampleFile("abc123"))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, s.MarkAsDownloaded(ctx, "abc123"))
		require.NoError(t, s.IncrementDownloadCount(ctx, "abc123"))
	}

	got, err := s.GetFile(ctx, "abc123")
	require.NoError(t, err)
	assert.True(t, got.Downloaded)
	assert.Equal(t, int64(2), got.DownloadCount)

	m, err := s.GetFileMetrics(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, int64(2), m.TotalDownloads)
	require.NotNil(t, m.DownloadTime)
	assert.Equal(t, "2024-03-01T12:00:00Z", *m.DownloadTime)
	assert.Equal(t, "2024-01-01T00:00:00Z", m.UploadTime)
}

func TestStore_ConcurrentIncrements(t *testing.T) {
	s := New(8)
	ctx := context.Background()
	ids := make([]string, 10)
	for i := range ids {
		ids[i] = fmt.Sprintf("file%02d", i)
		_, err := s.CreateFile(ctx, sampleFile(ids[i]))
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		for j := 0; j < 100; j++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				_ = s.IncrementDownloadCount(ctx, id)
			}(id)
		}
	}
	wg.Wait()

	for _, id := range ids {
		got, err := s.GetFile(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(100), got.DownloadCount, id)
	}
}
