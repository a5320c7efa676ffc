package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/anthanhphan/go-fileshare/internal/server/domain"
	"github.com/anthanhphan/gosdk/logger"
)

const (
	DefaultChunkSize     = 64 * 1024
	defaultNotifyTimeout = 10 * time.Second
)

var (
	ErrCancelled        = errors.New("download cancelled")
	ErrAlreadyRunning   = errors.New("download already in progress")
	ErrAlreadyCompleted = errors.New("download already completed")
)

// State is the lifecycle of a single download attempt.
type State int

const (
	StateIdle State = iota
	StateInProgress
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Progress is a point-in-time view of a download.
type Progress struct {
	FileID   string
	State    State
	Received int64
	Total    int64
	Percent  float64
	Paused   bool
}

// ProgressFunc is called from the downloading goroutine after every chunk and
// on every terminal transition. It must not block for long.
type ProgressFunc func(Progress)

// Downloader creates downloads that share an output directory and a
// background notifier.
type Downloader struct {
	api       *Client
	outDir    string
	chunkSize int
	notifier  *notifier
}

type DownloaderOption func(*downloaderOptions)

type downloaderOptions struct {
	chunkSize     int
	notifyTimeout time.Duration
}

// WithChunkSize sets the read buffer size.
func WithChunkSize(n int) DownloaderOption {
	return func(o *downloaderOptions) { o.chunkSize = n }
}

// WithNotifyTimeout bounds each downloaded notification request.
func WithNotifyTimeout(d time.Duration) DownloaderOption {
	return func(o *downloaderOptions) { o.notifyTimeout = d }
}

func NewDownloader(api *Client, outDir string, opts ...DownloaderOption) *Downloader {
	o := downloaderOptions{
		chunkSize:     DefaultChunkSize,
		notifyTimeout: defaultNotifyTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.chunkSize <= 0 {
		o.chunkSize = DefaultChunkSize
	}

	return &Downloader{
		api:       api,
		outDir:    outDir,
		chunkSize: o.chunkSize,
		notifier:  newNotifier(api, 1, 16, o.notifyTimeout),
	}
}

// Close waits for pending downloaded notifications. Completed downloads after
// Close are saved but not reported.
func (d *Downloader) Close() {
	d.notifier.close()
}

// New prepares a download of fileID in the idle state.
func (d *Downloader) New(fileID string, onProgress ProgressFunc) *Download {
	return &Download{
		d:          d,
		fileID:     fileID,
		onProgress: onProgress,
		gate:       newPauseGate(),
		state:      StateIdle,
	}
}

// Download is one file transfer. Start runs it; Pause, Resume and Cancel may
// be called from other goroutines while it runs.
type Download struct {
	d          *Downloader
	fileID     string
	onProgress ProgressFunc
	gate       *pauseGate

	mu       sync.Mutex
	state    State
	cancel   context.CancelFunc
	received int64
	total    int64
	record   *domain.FileRecord
	path     string
	// committed is set just before the file is renamed into place; Cancel
	// is a no-op from then on.
	committed bool

	afterCommit func()
}

// Start downloads the file into the output directory and returns the saved
// path. Failed or cancelled downloads may be started again from zero.
func (dl *Download) Start(ctx context.Context) (string, error) {
	dl.mu.Lock()
	switch dl.state {
	case StateInProgress:
		dl.mu.Unlock()
		return "", ErrAlreadyRunning
	case StateCompleted:
		path := dl.path
		dl.mu.Unlock()
		return path, ErrAlreadyCompleted
	}
	ctx, cancel := context.WithCancel(ctx)
	dl.state = StateInProgress
	dl.cancel = cancel
	dl.received = 0
	dl.committed = false
	dl.mu.Unlock()
	defer cancel()

	dl.gate.resume()

	path, err := dl.run(ctx)
	return dl.finish(ctx, path, err)
}

// Pause stops consuming further chunks. The connection stays open.
func (dl *Download) Pause() bool {
	if dl.State() != StateInProgress {
		return false
	}
	return dl.gate.pause()
}

// Resume continues a paused download.
func (dl *Download) Resume() bool {
	return dl.gate.resume()
}

// Cancel aborts an in-progress download. It reports whether there was one.
func (dl *Download) Cancel() bool {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	if dl.state != StateInProgress || dl.cancel == nil || dl.committed {
		return false
	}
	dl.cancel()
	return true
}

func (dl *Download) State() State {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	return dl.state
}

// Record returns the file metadata fetched by the last attempt, if any.
func (dl *Download) Record() *domain.FileRecord {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	return dl.record.Clone()
}

func (dl *Download) Progress() Progress {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	return dl.progressLocked()
}

func (dl *Download) progressLocked() Progress {
	p := Progress{
		FileID:   dl.fileID,
		State:    dl.state,
		Received: dl.received,
		Total:    dl.total,
		Percent:  percent(dl.received, dl.total),
		Paused:   dl.gate.isPaused(),
	}
	if dl.state == StateCompleted {
		p.Percent = 100
	}
	return p
}

func (dl *Download) run(ctx context.Context) (string, error) {
	rec, err := dl.d.api.GetFile(ctx, dl.fileID)
	if err != nil {
		return "", err
	}
	dl.mu.Lock()
	dl.record = rec
	dl.total = rec.FileSize
	dl.mu.Unlock()

	body, err := dl.d.api.OpenContent(ctx, dl.fileID)
	if err != nil {
		return "", err
	}
	defer body.Close()

	tmp, err := os.CreateTemp(dl.d.outDir, ".fileshare-*.part")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	saved := false
	defer func() {
		if !saved {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	buf := make([]byte, dl.d.chunkSize)
	for {
		if err := dl.gate.wait(ctx); err != nil {
			return "", err
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		n, readErr := body.Read(buf)
		if n > 0 {
			if _, err := tmp.Write(buf[:n]); err != nil {
				return "", fmt.Errorf("write temp file: %w", err)
			}
			dl.advance(int64(n))
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return "", readErr
		}
	}

	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	dl.mu.Lock()
	if err := ctx.Err(); err != nil {
		dl.mu.Unlock()
		return "", err
	}
	dl.committed = true
	dl.mu.Unlock()

	dest := filepath.Join(dl.d.outDir, localName(rec.FileName, dl.fileID))
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("save %s: %w", dest, err)
	}
	saved = true
	if dl.afterCommit != nil {
		dl.afterCommit()
	}
	return dest, nil
}

func (dl *Download) advance(n int64) {
	dl.mu.Lock()
	dl.received += n
	p := dl.progressLocked()
	dl.mu.Unlock()

	dl.emit(p)
}

func (dl *Download) finish(ctx context.Context, path string, err error) (string, error) {
	dl.mu.Lock()
	switch {
	case err == nil:
		dl.state = StateCompleted
		dl.path = path
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		dl.state = StateCancelled
		dl.received = 0
		err = ErrCancelled
	default:
		dl.state = StateFailed
	}
	dl.cancel = nil
	p := dl.progressLocked()
	dl.mu.Unlock()

	dl.emit(p)

	switch p.State {
	case StateCompleted:
		logger.Infow("Download completed", "file_id", dl.fileID, "path", path, "bytes", p.Received)
		dl.d.notifier.enqueue(dl.fileID)
		return path, nil
	case StateCancelled:
		logger.Infow("Download cancelled", "file_id", dl.fileID)
		return "", err
	default:
		logger.Warnw("Download failed", "file_id", dl.fileID, "error", err.Error())
		return "", fmt.Errorf("download %s: %w", dl.fileID, err)
	}
}

func (dl *Download) emit(p Progress) {
	if dl.onProgress != nil {
		dl.onProgress(p)
	}
}

// percent is received over total as 0..100. Unknown totals report 0.
func percent(received, total int64) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(received) / float64(total) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// localName keeps only the last path element of the uploader-supplied name.
func localName(fileName, fallback string) string {
	name := filepath.Base(filepath.FromSlash(fileName))
	if name == "." || name == string(filepath.Separator) || name == "" || name == ".." {
		return fallback
	}
	return name
}
