package searchsync

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"userinfo-service/internal/domain/userinfo"
)

const drainTimeout = 5 * time.Second

type op uint8

const (
	opIndex op = iota + 1
	opRemove
)

type job struct {
	op     op
	id     userinfo.ID
	entity *userinfo.UserInfo
}

// Loader reads the current row from the primary store.
type Loader interface {
	FindByID(ctx context.Context, id userinfo.ID) (*userinfo.UserInfo, error)
}

// Syncer applies index writes on a single worker goroutine so that writes
// for the same id reach the index in the order they were queued.
type Syncer struct {
	index   userinfo.SearchIndex
	store   Loader
	log     *zap.Logger
	gauge   prometheus.Gauge
	in      chan job
	done    chan struct{}
	mu      sync.RWMutex
	stopped bool
	pending atomic.Int64
}

func New(
	index userinfo.SearchIndex,
	store Loader,
	logger *zap.Logger,
	gauge prometheus.Gauge,
	bufferSize int,
) *Syncer {
	return &Syncer{
		index: index,
		store: store,
		log:   logger,
		gauge: gauge,
		in:    make(chan job, bufferSize),
		done:  make(chan struct{}),
	}
}

func (s *Syncer) Index(ctx context.Context, u *userinfo.UserInfo) {
	if !u.HasID() {
		return
	}
	snapshot := *u
	s.enqueue(ctx, job{op: opIndex, id: u.ID, entity: &snapshot})
}

func (s *Syncer) Remove(ctx context.Context, id userinfo.ID) {
	s.enqueue(ctx, job{op: opRemove, id: id})
}

func (s *Syncer) Pending() int64 { return s.pending.Load() }

// enqueue holds the read lock across the send so that stop cannot complete,
// and the final drain cannot start, while a send is in flight.
func (s *Syncer) enqueue(ctx context.Context, j job) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.stopped {
		s.log.Warn("search sync stopped, dropping write", zap.Int64("id", j.id))
		return
	}

	s.track(1)
	select {
	case s.in <- j:
	case <-s.done:
		s.track(-1)
		s.log.Warn("search sync stopped, dropping write", zap.Int64("id", j.id))
	case <-ctx.Done():
		s.track(-1)
		s.log.Warn("search sync enqueue abandoned", zap.Int64("id", j.id), zap.Error(ctx.Err()))
	}
}

// Worker applies queued writes until ctx is done, then drains what is left
// within drainTimeout.
func (s *Syncer) Worker(ctx context.Context) {
	s.log.Info("starting search sync worker")

	defer func() {
		s.log.Info("search sync worker gracefully stopped", zap.Int64("pending", s.Pending()))
	}()

	for {
		select {
		case j := <-s.in:
			s.apply(ctx, j)
		case <-ctx.Done():
			s.stop()
			s.drain()
			return
		}
	}
}

// stop wakes blocked senders, then waits for in-flight sends to land in the
// buffer before refusing new ones.
func (s *Syncer) stop() {
	close(s.done)
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
}

func (s *Syncer) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case j := <-s.in:
			s.apply(ctx, j)
		default:
			return
		}
	}
}

func (s *Syncer) apply(ctx context.Context, j job) {
	defer s.track(-1)

	switch j.op {
	case opIndex:
		u, ok := s.current(ctx, j)
		if !ok {
			return
		}
		if err := s.index.Index(ctx, u); err != nil {
			// alert
			s.log.Error("search index write failed", zap.Int64("id", j.id), zap.Error(err))
		}
	case opRemove:
		if err := s.index.DeleteByID(ctx, j.id); err != nil {
			s.log.Error("search index delete failed", zap.Int64("id", j.id), zap.Error(err))
		}
	}
}

// current prefers the stored row over the queued snapshot; a row deleted
// since the write was queued must not be resurrected in the index.
func (s *Syncer) current(ctx context.Context, j job) (*userinfo.UserInfo, bool) {
	if s.store == nil {
		return j.entity, true
	}

	u, err := s.store.FindByID(ctx, j.id)
	switch {
	case errors.Is(err, userinfo.ErrNotFound):
		s.log.Debug("row gone before indexing, skipping", zap.Int64("id", j.id))
		return nil, false
	case err != nil:
		s.log.Warn("store re-read failed, indexing queued snapshot", zap.Int64("id", j.id), zap.Error(err))
		return j.entity, true
	}

	return u, true
}

func (s *Syncer) track(delta int64) {
	s.pending.Add(delta)
	if s.gauge != nil {
		s.gauge.Add(float64(delta))
	}
}
