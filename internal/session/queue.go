package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// DefaultQueueSize is the event buffer used when NewQueue is given size <= 0.
const DefaultQueueSize = 64

// Producer is an asynchronous event source. Run emits events until ctx is
// cancelled or the source fails.
type Producer interface {
	Name() string
	Run(ctx context.Context, emit func(Event)) error
}

// Queue fans events from any number of producers into one channel.
type Queue struct {
	events chan Event
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
	logger *slog.Logger
}

// NewQueue creates a Queue with the given buffer size.
func NewQueue(size int, logger *slog.Logger) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{
		events: make(chan Event, size),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Events returns the channel consumed by the Router.
func (q *Queue) Events() <-chan Event {
	return q.events
}

// Push enqueues an event. It blocks while the buffer is full and drops the
// event once the queue is closed. Safe for concurrent use.
func (q *Queue) Push(ev Event) {
	select {
	case <-q.done:
		return
	default:
	}

	select {
	case q.events <- ev:
	case <-q.done:
	}
}

// Attach runs p in its own goroutine. When p returns, a ProducerStopped
// event is queued unless the stop was caused by cancellation.
func (q *Queue) Attach(ctx context.Context, p Producer) {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()

		q.logger.Debug("event source started", "producer", p.Name())
		err := p.Run(ctx, q.Push)
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return
		}
		q.Push(ProducerStopped{Name: p.Name(), Err: err})
	}()
}

// Close stops accepting events and waits for attached producers to return.
// Producers must observe their context; Close does not cancel it.
func (q *Queue) Close() {
	q.once.Do(func() { close(q.done) })
	q.wg.Wait()
}

// Ticker emits TimerTick events at a fixed period.
type Ticker struct {
	period time.Duration
	reset  chan time.Duration
	now    func() time.Time
}

// MinTickPeriod is the shortest accepted clock period.
const MinTickPeriod = 50 * time.Millisecond

// NewTicker creates a Ticker. Periods below MinTickPeriod are raised to it.
func NewTicker(period time.Duration) *Ticker {
	return &Ticker{
		period: max(period, MinTickPeriod),
		reset:  make(chan time.Duration, 1),
		now:    time.Now,
	}
}

// Name implements Producer.
func (t *Ticker) Name() string { return "clock" }

// SetPeriod changes the tick period of a running ticker.
func (t *Ticker) SetPeriod(period time.Duration) {
	period = max(period, MinTickPeriod)
	select {
	case <-t.reset:
	default:
	}
	t.reset <- period
}

// Run implements Producer.
func (t *Ticker) Run(ctx context.Context, emit func(Event)) error {
	ticker := time.NewTicker(t.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case period := <-t.reset:
			t.period = period
			ticker.Reset(period)
		case <-ticker.C:
			emit(TimerTick{At: t.now()})
		}
	}
}
