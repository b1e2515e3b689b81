package circuit_breaker

import (
	"errors"
	"sync"
	"time"
)

type Status uint8

const (
	Closed   Status = 1
	Open     Status = 2
	HalfOpen Status = 3
)

func (s Status) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

var ErrOpenCB = errors.New("circuit breaker is open")

type CircuitBreaker interface {
	Call(service func() error) error
	State() Status
	Reset()
}

type Option func(cb *circuitBreaker)

// WithStateChange registers a hook run after every transition, outside the lock.
func WithStateChange(fn func(from, to Status)) Option {
	return func(cb *circuitBreaker) {
		cb.onChange = fn
	}
}

func WithClock(now func() time.Time) Option {
	return func(cb *circuitBreaker) {
		cb.now = now
	}
}

// window is a ring of the outcomes of the last calls.
type window struct {
	failed   []bool
	pos      int
	failures int
}

func (w *window) record(failed bool) {
	if w.failed[w.pos] {
		w.failures--
	}
	if failed {
		w.failures++
	}
	w.failed[w.pos] = failed
	w.pos = (w.pos + 1) % len(w.failed)
}

func (w *window) ratio() float64 {
	return float64(w.failures) / float64(len(w.failed))
}

func (w *window) clear() {
	for i := range w.failed {
		w.failed[i] = false
	}
	w.pos, w.failures = 0, 0
}

type circuitBreaker struct {
	mu     sync.Mutex
	state  Status
	window window
	// failure ratio in the window that opens the breaker
	threshold float64
	// how long the breaker stays open before letting a trial call through
	cooldown time.Duration
	openedAt time.Time
	// consecutive half-open successes needed to close
	recovery  int
	successes int

	now      func() time.Time
	onChange func(from, to Status)
}

func New(recordLength int, timeout time.Duration, percentile float64, recoveryRequests int, opts ...Option) CircuitBreaker {
	if recordLength <= 0 {
		recordLength = 1
	}
	cb := &circuitBreaker{
		state:     Closed,
		window:    window{failed: make([]bool, recordLength)},
		threshold: percentile,
		cooldown:  timeout,
		recovery:  recoveryRequests,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(cb)
	}
	return cb
}

func (cb *circuitBreaker) Call(service func() error) error {
	if err := cb.before(); err != nil {
		return err
	}
	err := service()
	cb.after(err)
	return err
}

func (cb *circuitBreaker) before() error {
	cb.mu.Lock()
	if cb.state != Open {
		cb.mu.Unlock()
		return nil
	}
	if cb.now().Sub(cb.openedAt) <= cb.cooldown {
		cb.mu.Unlock()
		return ErrOpenCB
	}
	from := cb.transition(HalfOpen)
	cb.mu.Unlock()
	cb.notify(from, HalfOpen)
	return nil
}

func (cb *circuitBreaker) after(err error) {
	cb.mu.Lock()
	cb.window.record(err != nil)

	from, to := cb.state, cb.state
	switch cb.state {
	case HalfOpen:
		if err != nil {
			to = Open
		} else if cb.successes++; cb.successes >= cb.recovery {
			to = Closed
		}
	case Closed:
		if cb.window.ratio() >= cb.threshold {
			to = Open
		}
	}
	if to != from {
		cb.transition(to)
	}
	cb.mu.Unlock()
	cb.notify(from, to)
}

// transition must be called with mu held.
func (cb *circuitBreaker) transition(to Status) Status {
	from := cb.state
	cb.state = to
	cb.successes = 0
	switch to {
	case Open:
		cb.openedAt = cb.now()
	case Closed:
		cb.window.clear()
	}
	return from
}

func (cb *circuitBreaker) notify(from, to Status) {
	if from != to && cb.onChange != nil {
		cb.onChange(from, to)
	}
}

func (cb *circuitBreaker) State() Status {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *circuitBreaker) Reset() {
	cb.mu.Lock()
	from := cb.transition(Closed)
	cb.mu.Unlock()
	cb.notify(from, Closed)
}
