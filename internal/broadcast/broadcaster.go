// Package broadcast fans record updates out to live subscribers.
package broadcast

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/urlboard/urlboard/internal/record"
)

// Config controls per-subscriber buffering for the Broadcaster.
//   - BufferSize: capacity of each subscriber's channel (default 64).
//   - Logger: optional structured logger used for warnings.
type Config struct {
	BufferSize int
	Logger     *zap.Logger
}

const (
	defaultBufferSize = 64
	dropLogInterval   = 5 * time.Second
)

// Broadcaster maintains an explicit subscriber set and delivers every
// published record to each subscriber in publication order. Publish never
// blocks; a subscriber that cannot keep up has events dropped with a
// rate-limited warning. It is safe for concurrent use.
type Broadcaster struct {
	cfg         Config
	logger      *zap.Logger
	dropLimiter rateLimiter
	dropped     atomic.Int64
	closed      atomic.Bool

	mu   sync.Mutex
	subs map[uuid.UUID]*Subscriber
}

// Subscriber is one attached listener. Events arrive on C until Unsubscribe
// or Broadcaster Close, after which C is closed.
type Subscriber struct {
	id uuid.UUID
	ch chan record.Record
}

// C returns the subscriber's delivery channel.
func (s *Subscriber) C() <-chan record.Record {
	return s.ch
}

// New constructs a Broadcaster ready to accept subscribers.
func New(cfg Config) *Broadcaster {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultBufferSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Broadcaster{
		cfg:         cfg,
		logger:      logger,
		dropLimiter: rateLimiter{interval: dropLogInterval},
		subs:        make(map[uuid.UUID]*Subscriber),
	}
}

// Subscribe attaches a new subscriber. It receives every record published
// after this call.
func (b *Broadcaster) Subscribe() *Subscriber {
	sub := &Subscriber{
		id: uuid.New(),
		ch: make(chan record.Record, b.cfg.BufferSize),
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed.Load() {
		close(sub.ch)
		return sub
	}
	b.subs[sub.id] = sub
	return sub
}

// Unsubscribe detaches exactly the given subscriber and closes its channel.
// Other subscribers are unaffected. Detaching twice is a no-op.
func (b *Broadcaster) Unsubscribe(sub *Subscriber) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[sub.id]; !ok {
		return
	}
	delete(b.subs, sub.id)
	close(sub.ch)
}

// Publish delivers rec to every current subscriber. Holding the lock across
// the sends keeps delivery in publication order on each channel.
func (b *Broadcaster) Publish(rec record.Record) {
	if b == nil || b.closed.Load() {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		select {
		case sub.ch <- rec:
		default:
			b.dropped.Add(1)
			if b.dropLimiter.Allow(time.Now()) {
				count := b.dropped.Swap(0)
				b.logger.Warn("record updates dropped for slow subscriber",
					zap.String("subscriber", sub.id.String()),
					zap.Int64("dropped", count),
				)
			}
		}
	}
}

// SubscriberCount reports how many subscribers are attached.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close detaches every subscriber and rejects further publishes. Safe to call
// multiple times.
func (b *Broadcaster) Close() {
	if !b.closed.CompareAndSwap(false, true) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, sub := range b.subs {
		delete(b.subs, id)
		close(sub.ch)
	}
}

type rateLimiter struct {
	interval time.Duration
	last     atomic.Int64
}

func (r *rateLimiter) Allow(now time.Time) bool {
	if r == nil || r.interval <= 0 {
		return true
	}
	nano := now.UnixNano()
	last := r.last.Load()
	if nano-last < r.interval.Nanoseconds() {
		return false
	}
	return r.last.CompareAndSwap(last, nano)
}
