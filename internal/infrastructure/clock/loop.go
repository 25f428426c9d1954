package clock

import (
	"context"
	"sync"
	"time"

	"kashbill/internal/ports/output"
)

var _ output.Scheduler = (*Loop)(nil)

// Loop is a single-goroutine event loop. Timer callbacks and posted work run
// one at a time inside Run, so code driven by a Loop needs no locking.
type Loop struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once

	mu     sync.Mutex
	timers map[*loopTimer]struct{}
}

// NewLoop returns a loop with a buffered work queue.
func NewLoop() *Loop {
	return &Loop{
		queue:  make(chan func(), 64),
		done:   make(chan struct{}),
		timers: map[*loopTimer]struct{}{},
	}
}

// Post enqueues fn to run on the loop. Work posted after Run returned is
// dropped.
func (l *Loop) Post(fn func()) {
	select {
	case l.queue <- fn:
	case <-l.done:
	}
}

// AfterFunc schedules fn on the loop after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) output.Timer {
	t := &loopTimer{loop: l}
	l.mu.Lock()
	l.timers[t] = struct{}{}
	l.mu.Unlock()
	t.timer = time.AfterFunc(d, func() {
		l.forget(t)
		l.Post(func() {
			if t.claim() {
				fn()
			}
		})
	})
	return t
}

// Pending reports how many timers are armed and not yet fired or stopped.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

func (l *Loop) forget(t *loopTimer) {
	l.mu.Lock()
	delete(l.timers, t)
	l.mu.Unlock()
}

// Run executes queued work until ctx is done. Timers still armed when Run
// returns are stopped.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.done) })
	defer l.stopAll()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

func (l *Loop) stopAll() {
	l.mu.Lock()
	timers := make([]*loopTimer, 0, len(l.timers))
	for t := range l.timers {
		timers = append(timers, t)
	}
	l.mu.Unlock()
	for _, t := range timers {
		t.Stop()
	}
}

type loopTimer struct {
	loop  *Loop
	timer *time.Timer

	mu   sync.Mutex
	dead bool
}

// Stop also cancels a callback that already fired but is still queued.
func (t *loopTimer) Stop() bool {
	t.mu.Lock()
	wasDead := t.dead
	t.dead = true
	t.mu.Unlock()
	t.loop.forget(t)
	t.timer.Stop()
	return !wasDead
}

// claim marks the timer as run; false means it was stopped first.
func (t *loopTimer) claim() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dead {
		return false
	}
	t.dead = true
	return true
}
