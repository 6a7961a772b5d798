package chat

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// FetchFunc is the unit of work a Poller repeats. initial is true only for
// the first invocation, where the caller may want a visible loading state.
type FetchFunc func(ctx context.Context, initial bool) error

// Poller invokes a fetch on a fixed cadence. Ticks that fire while the view
// is not visible are dropped, not deferred; overlapping invocations are
// suppressed by a single-flight guard (dropped, never queued); Resume
// triggers one immediate invocation when visibility returns. Fetch errors
// never stop the schedule.
type Poller struct {
	interval time.Duration
	visible  func() bool
	fetch    FetchFunc

	cancel   context.CancelFunc
	wake     chan struct{}
	done     chan struct{}
	inFlight atomic.Bool
	started  bool
	stopOnce sync.Once
}

// NewPoller builds a poller. visible may be nil, in which case the view
// counts as always visible.
func NewPoller(interval time.Duration, visible func() bool, fetch FetchFunc) *Poller {
	if visible == nil {
		visible = func() bool { return true }
	}
	return &Poller{
		interval: interval,
		visible:  visible,
		fetch:    fetch,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Start runs the fetch once synchronously with the loading flag, then
// schedules background ticks. The error from the initial fetch is returned
// so the caller can surface it; the schedule starts either way, so the next
// tick retries naturally. Start must be called at most once.
func (p *Poller) Start(ctx context.Context) error {
	if p.started {
		panic("chat: poller started twice")
	}
	p.started = true

	ctx, p.cancel = context.WithCancel(ctx)

	err := p.fetch(ctx, true)

	go p.run(ctx)
	return err
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		case <-p.wake:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	if ctx.Err() != nil || !p.visible() {
		return
	}
	if !p.inFlight.CompareAndSwap(false, true) {
		// previous fetch still running; drop this tick
		return
	}
	go func() {
		defer p.inFlight.Store(false)
		_ = p.fetch(ctx, false)
	}()
}

// Resume signals that visibility returned; the poller fires one immediate
// invocation instead of waiting out the current interval. Safe to call at
// any time; redundant signals collapse.
func (p *Poller) Resume() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Stop cancels the schedule. Idempotent; after Stop no further invocation
// is started and any in-flight fetch sees a cancelled context.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		if p.cancel != nil {
			p.cancel()
		}
	})
}
