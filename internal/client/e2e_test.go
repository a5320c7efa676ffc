package client

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	httpHandler "github.com/anthanhphan/go-fileshare/internal/server/adapter/inbound/http"
	"github.com/anthanhphan/go-fileshare/internal/server/adapter/outbound/memstore"
	"github.com/anthanhphan/go-fileshare/internal/server/config"
	"github.com/anthanhphan/go-fileshare/internal/server/service"
	"github.com/anthanhphan/go-fileshare/pkg/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRealServer(t *testing.T) *Client {
	t.Helper()
	svc := service.NewFileService(memstore.New(4), idgen.ShortIDGenerator{})
	srv := httptest.NewServer(httpHandler.NewServer(config.DefaultConfig(), svc).Handler())
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	require.NoError(t, err)
	return c
}

func TestEndToEnd_UploadDownloadMetrics(t *testing.T) {
	api := newRealServer(t)
	ctx := context.Background()

	uploaderID := idgen.UploaderID()
	data := []byte("the quick brown fox jumps over the lazy dog\n")
	res, err := NewUploader(api, uploaderID).Upload(ctx, writeTempFile(t, "fox.txt", data))
	require.NoError(t, err)
	assert.Regexp(t, `^[a-z0-9]{6}$`, res.File.FileID)
	assert.Equal(t, int64(1), res.File.ID)
	assert.Zero(t, res.File.DownloadCount)
	assert.False(t, res.File.Downloaded)

	outDir := t.TempDir()
	d := NewDownloader(api, outDir, WithChunkSize(8))
	path, err := d.New(res.File.FileID, nil).Start(ctx)
	require.NoError(t, err)
	d.Close()

	assert.Equal(t, filepath.Join(outDir, "fox.txt"), path)
	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, saved)

	rec, err := api.GetFile(ctx, res.File.FileID)
	require.NoError(t, err)
	assert.True(t, rec.Downloaded)
	assert.Equal(t, int64(1), rec.DownloadCount)
	assert.True(t, IsOwner(rec, uploaderID))

	m, err := api.GetFileMetrics(ctx, rec.FileID, uploaderID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.TotalDownloads)
	assert.NotNil(t, m.DownloadTime)

	_, err = api.GetFileMetrics(ctx, rec.FileID, "up_zz99zz")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)
}

func TestEndToEnd_CancelLeavesCountUnchanged(t *testing.T) {
	api := newRealServer(t)
	ctx := context.Background()

	res, err := NewUploader(api, idgen.UploaderID()).Upload(ctx, writeTempFile(t, "a.bin", make([]byte, 4096)))
	require.NoError(t, err)

	d := NewDownloader(api, t.TempDir(), WithChunkSize(16))
	var dl *Download
	dl = d.New(res.File.FileID, func(p Progress) {
		if p.State == StateInProgress && p.Received > 0 {
			dl.Cancel()
		}
	})
	_, err = dl.Start(ctx)
	assert.ErrorIs(t, err, ErrCancelled)
	d.Close()

	assert.Equal(t, int64(0), dl.Progress().Received)
	rec, err := api.GetFile(ctx, res.File.FileID)
	require.NoError(t, err)
	assert.Zero(t, rec.DownloadCount)
	assert.False(t, rec.Downloaded)
}

func TestEndToEnd_UnknownFile(t *testing.T) {
	api := newRealServer(t)
	ctx := context.Background()

	_, err := api.GetFile(ctx, "zzzzzz")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = api.OpenContent(ctx, "zzzzzz")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, api.NotifyDownloaded(ctx, "zzzzzz"))
}
