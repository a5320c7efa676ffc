package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/anthanhphan/go-fileshare/internal/server/domain"
	"github.com/anthanhphan/go-fileshare/internal/server/port"
	"github.com/anthanhphan/go-fileshare/pkg/idgen"
	"github.com/spaolacci/murmur3"
)

const DefaultShards = 16

// Store keeps records in memory, striped over shards by murmur3(fileID).
type Store struct {
	shards []*shard
	seq    idgen.Sequence
	now    func() time.Time
}

type shard struct {
	mu    sync.RWMutex
	files map[string]*domain.FileRecord
}

// Ensure Store implements port.FileStore.
var _ port.FileStore = (*Store)(nil)

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the time source used for download timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithSequence overrides the record id source.
func WithSequence(seq idgen.Sequence) Option {
	return func(s *Store) { s.seq = seq }
}

// New creates an empty store with the given number of shards.
func New(shards int, opts ...Option) *Store {
	if shards <= 0 {
		shards = DefaultShards
	}
	s := &Store{
		shards: make([]*shard, shards),
		seq:    idgen.NewAtomicSequence(),
		now:    time.Now,
	}
	for i := range s.shards {
		s.shards[i] = &shard{files: make(map[string]*domain.FileRecord)}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) shardFor(fileID string) *shard {
	h := murmur3.Sum32([]byte(fileID))
	return s.shards[h%uint32(len(s.shards))]
}

func (s *Store) CreateFile(ctx context.Context, in domain.NewFile) (*domain.FileRecord, error) {
	id, err := s.seq.Next(ctx)
	if err != nil {
		return nil, err
	}
	rec := domain.NewFileRecord(id, in)

	sh := s.shardFor(in.FileID)
	sh.mu.Lock()
	sh.files[in.FileID] = rec
	sh.mu.Unlock()

	return rec.Clone(), nil
}

func (s *Store) GetFile(_ context.Context, fileID string) (*domain.FileRecord, error) {
	sh := s.shardFor(fileID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	rec, ok := sh.files[fileID]
	if !ok {
		return nil, port.ErrFileNotFound
	}
	return rec.Clone(), nil
}

func (s *Store) MarkAsDownloaded(_ context.Context, fileID string) error {
	s.update(fileID, func(rec *domain.FileRecord) {
		rec.MarkDownloaded(s.now())
	})
	return nil
}

func (s *Store) IncrementDownloadCount(_ context.Context, fileID string) error {
	s.update(fileID, func(rec *domain.FileRecord) {
		rec.DownloadCount++
	})
	return nil
}

func (s *Store) GetFileMetrics(_ context.Context, fileID string) (*domain.FileMetrics, error) {
	sh := s.shardFor(fileID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	rec, ok := sh.files[fileID]
	if !ok {
		return nil, port.ErrFileNotFound
	}
	return rec.Metrics(), nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		n += len(sh.files)
		sh.mu.RUnlock()
	}
	return n
}

// update applies fn under the shard lock; misses are ignored.
func (s *Store) update(fileID string, fn func(*domain.FileRecord)) {
	sh := s.shardFor(fileID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if rec, ok := sh.files[fileID]; ok {
		fn(rec)
	}
}
