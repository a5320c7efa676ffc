package redisstore

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/anthanhphan/go-fileshare/internal/server/domain"
	"github.com/anthanhphan/go-fileshare/internal/server/port"
	"github.com/anthanhphan/go-fileshare/pkg/idgen"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFieldsRoundTrip(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := &domain.FileRecord{
		ID:            7,
		FileID:        "abc123",
		FileName:      "a.txt",
		FileSize:      10,
		MimeType:      "text/plain",
		Content:       "data:text/plain;base64,aGk=",
		UploaderID:    "up_ab12cd",
		UploadTime:    "2024-01-01T00:00:00Z",
		Downloaded:    true,
		DownloadCount: 3,
		DownloadedAt:  &at,
	}

	// Redis returns every hash value as a string.
	raw := make(map[string]string)
	for k, v := range encodeRecord(rec) {
		switch val := v.(type) {
		case string:
			raw[k] = val
		case int64:
			raw[k] = strconv.FormatInt(val, 10)
		default:
			t.Fatalf("unexpected field type %T for %s", v, k)
		}
	}

	got, err := decodeRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestDecodeRecord_BadNumber(t *testing.T) {
	_, err := decodeRecord(map[string]string{fieldID: "x", fieldFileSize: "1"})
	assert.Error(t, err)
}

// newTestStore connects to FILESHARE_TEST_REDIS_ADDR and isolates keys under a
// random prefix.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv("FILESHARE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("FILESHARE_TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	prefix := "fileshare-test:" + idgen.ShortID() + ":"
	s, err := New(client, prefix)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := client.Keys(ctx, prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
	})
	return s
}

func TestStore_Integration(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec, err := s.CreateFile(ctx, domain.NewFile{
		FileID:     "abc123",
		FileName:   "a.txt",
		FileSize:   10,
		MimeType:   "text/plain",
		Content:    "data:text/plain;base64,aGk=",
		UploaderID: "up_ab12cd",
		UploadTime: "2024-01-01T00:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.ID)
	assert.False(t, rec.Downloaded)

	_, err = s.GetFile(ctx, "nope00")
	assert.ErrorIs(t, err, port.ErrFileNotFound)
	require.NoError(t, s.MarkAsDownloaded(ctx, "nope00"))
	require.NoError(t, s.IncrementDownloadCount(ctx, "nope00"))
	_, err = s.GetFile(ctx, "nope00")
	assert.ErrorIs(t, err, port.ErrFileNotFound)

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
	assert.NotNil(t, m.DownloadTime)
}
