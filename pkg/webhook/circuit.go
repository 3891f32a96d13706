package webhook

import (
	"fmt"
	"sync"
	"time"
)

// BreakerState is the position of a Breaker.
type BreakerState int

const (
	StateClosed BreakerState = iota
	StateOpen
	StateHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	}
	return fmt.Sprintf("BreakerState(%d)", int(s))
}

// BreakerSettings tune a Breaker. Zero fields take the defaults noted.
type BreakerSettings struct {
	// FailureThreshold consecutive failures open the breaker. Default 5.
	FailureThreshold int
	// SuccessThreshold probe successes close it again. Default 2.
	SuccessThreshold int
	// OpenTimeout is how long it stays open before probing. Default 30s.
	OpenTimeout time.Duration
	// MaxProbes caps concurrent requests while half-open. Default 1.
	MaxProbes int
}

func (s BreakerSettings) withDefaults() BreakerSettings {
	if s.FailureThreshold <= 0 {
		s.FailureThreshold = 5
	}
	if s.SuccessThreshold <= 0 {
		s.SuccessThreshold = 2
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = 30 * time.Second
	}
	if s.MaxProbes <= 0 {
		s.MaxProbes = 1
	}
	return s
}

// Breaker stops traffic to an endpoint that keeps failing. Safe for
// concurrent use.
type Breaker struct {
	mu  sync.Mutex
	cfg BreakerSettings
	now func() time.Time

	state      BreakerState
	generation uint64
	failures   int
	successes  int
	probes     int
	openedAt   time.Time
}

// NewBreaker creates a closed Breaker.
func NewBreaker(s BreakerSettings) *Breaker {
	return &Breaker{cfg: s.withDefaults(), now: time.Now}
}

// SetClock replaces the time source. Intended for tests.
func (b *Breaker) SetClock(now func() time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if now != nil {
		b.now = now
	}
}

// Acquire asks to send one request. On success the caller must call done
// exactly once with the outcome. Outcomes reported after the breaker has
// changed state are ignored.
func (b *Breaker) Acquire() (done func(ok bool), err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.advance()
	switch b.state {
	case StateOpen:
		return nil, ErrCircuitOpen
	case StateHalfOpen:
		if b.probes >= b.cfg.MaxProbes {
			return nil, ErrCircuitOpen
		}
		b.probes++
	}

	gen := b.generation
	var once sync.Once
	return func(ok bool) {
		once.Do(func() { b.report(gen, ok) })
	}, nil
}

// State returns the current state.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance()
	return b.state
}

// Reset closes the breaker.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.moveTo(StateClosed)
}

func (b *Breaker) report(gen uint64, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.generation {
		return
	}
	switch b.state {
	case StateClosed:
		if ok {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.moveTo(StateOpen)
		}
	case StateHalfOpen:
		b.probes--
		if !ok {
			b.moveTo(StateOpen)
			return
		}
		b.successes++
		if b.successes >= b.cfg.SuccessThreshold {
			b.moveTo(StateClosed)
		}
	}
}

// advance must be called with the lock held.
func (b *Breaker) advance() {
	if b.state == StateOpen && !b.now().Before(b.openedAt.Add(b.cfg.OpenTimeout)) {
		b.moveTo(StateHalfOpen)
	}
}

// moveTo must be called with the lock held.
func (b *Breaker) moveTo(s BreakerState) {
	b.state = s
	b.generation++
	b.failures, b.successes, b.probes = 0, 0, 0
	if s == StateOpen {
		b.openedAt = b.now()
	}
}

// BreakerSet hands out one Breaker per endpoint.
type BreakerSet struct {
	cfg BreakerSettings
	m   sync.Map // endpoint -> *Breaker
}

// NewBreakerSet creates a set whose breakers share s.
func NewBreakerSet(s BreakerSettings) *BreakerSet {
	return &BreakerSet{cfg: s}
}

// Get returns the breaker for endpoint, creating it on first use.
func (bs *BreakerSet) Get(endpoint string) *Breaker {
	if b, ok := bs.m.Load(endpoint); ok {
		return b.(*Breaker)
	}
	b, _ := bs.m.LoadOrStore(endpoint, NewBreaker(bs.cfg))
	return b.(*Breaker)
}

// States reports every known endpoint's state.
func (bs *BreakerSet) States() map[string]BreakerState {
	out := make(map[string]BreakerState)
	bs.m.Range(func(k, v any) bool {
		out[k.(string)] = v.(*Breaker).State()
		return true
	})
	return out
}
