package cachestore

import (
	"context"
	"sync"
	"time"

	"github.com/anthanhphan/go-fileshare/internal/server/domain"
	"github.com/anthanhphan/go-fileshare/internal/server/port"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/spaolacci/murmur3"
)

const stripeCount = 64

var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fileshare_cache_hits_total",
		Help: "Record lookups served from the read cache.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fileshare_cache_misses_total",
		Help: "Record lookups that fell through to the backing store.",
	})
)

// Store is a read-through LRU in front of another FileStore. Every mutation
// evicts the affected entry so reads after a write always hit the backend.
//
// A miss only fills the cache if no mutation touched the key's stripe while
// the backend read was in flight; otherwise the fill may hold a record older
// than the write that evicted it.
type Store struct {
	next    port.FileStore
	cache   *expirable.LRU[string, *domain.FileRecord]
	stripes [stripeCount]stripe
}

type stripe struct {
	mu  sync.Mutex
	gen uint64
}

// Ensure Store implements port.FileStore.
var _ port.FileStore = (*Store)(nil)

func New(next port.FileStore, size int, ttl time.Duration) *Store {
	return &Store{
		next:  next,
		cache: expirable.NewLRU[string, *domain.FileRecord](size, nil, ttl),
	}
}

func (s *Store) stripeFor(fileID string) *stripe {
	return &s.stripes[murmur3.Sum32([]byte(fileID))%stripeCount]
}

// invalidate evicts fileID and fails any fill that started before it.
func (s *Store) invalidate(fileID string) {
	st := s.stripeFor(fileID)
	st.mu.Lock()
	st.gen++
	s.cache.Remove(fileID)
	st.mu.Unlock()
}

func (s *Store) CreateFile(ctx context.Context, in domain.NewFile) (*domain.FileRecord, error) {
	defer s.invalidate(in.FileID)
	return s.next.CreateFile(ctx, in)
}

func (s *Store) GetFile(ctx context.Context, fileID string) (*domain.FileRecord, error) {
	if rec, ok := s.cache.Get(fileID); ok {
		cacheHitsTotal.Inc()
		return rec.Clone(), nil
	}
	cacheMissesTotal.Inc()

	st := s.stripeFor(fileID)
	st.mu.Lock()
	gen := st.gen
	st.mu.Unlock()

	rec, err := s.next.GetFile(ctx, fileID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	if st.gen == gen {
		s.cache.Add(fileID, rec.Clone())
	}
	st.mu.Unlock()
	return rec, nil
}

func (s *Store) MarkAsDownloaded(ctx context.Context, fileID string) error {
	defer s.invalidate(fileID)
	return s.next.MarkAsDownloaded(ctx, fileID)
}

func (s *Store) IncrementDownloadCount(ctx context.Context, fileID string) error {
	defer s.invalidate(fileID)
	return s.next.IncrementDownloadCount(ctx, fileID)
}

// GetFileMetrics always reads through; metrics are owner-only and low volume.
func (s *Store) GetFileMetrics(ctx context.Context, fileID string) (*domain.FileMetrics, error) {
	return s.next.GetFileMetrics(ctx, fileID)
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	return s.cache.Len()
}
