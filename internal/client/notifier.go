package client

import (
	"context"
	"sync"
	"time"

	"github.com/anthanhphan/gosdk/logger"
)

// notifier sends downloaded notifications in the background. Enqueue never
// blocks the download; a full queue drops the notification.
type notifier struct {
	api     *Client
	timeout time.Duration

	jobs   chan string
	closed bool
	mu     sync.RWMutex
	once   sync.Once
	wg     sync.WaitGroup
}

func newNotifier(api *Client, workers, queueSize int, timeout time.Duration) *notifier {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}

	n := &notifier{
		api:     api,
		timeout: timeout,
		jobs:    make(chan string, queueSize),
	}

	for i := 0; i < workers; i++ {
		n.wg.Add(1)
		go func() {
			defer n.wg.Done()
			for fileID := range n.jobs {
				n.send(fileID)
			}
		}()
	}

	return n
}

func (n *notifier) enqueue(fileID string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		logger.Warnw("Downloaded notification dropped, notifier closed", "file_id", fileID)
		return false
	}

	select {
	case n.jobs <- fileID:
		return true
	default:
		logger.Warnw("Downloaded notification dropped, queue full", "file_id", fileID)
		return false
	}
}

func (n *notifier) send(fileID string) {
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	if err := n.api.NotifyDownloaded(ctx, fileID); err != nil {
		logger.Warnw("Downloaded notification failed", "file_id", fileID, "error", err.Error())
		return
	}
	logger.Debugw("Downloaded notification sent", "file_id", fileID)
}

// close stops accepting notifications and waits for queued ones to finish.
func (n *notifier) close() {
	n.once.Do(func() {
		n.mu.Lock()
		n.closed = true
		close(n.jobs)
		n.mu.Unlock()
	})
	n.wg.Wait()
}
