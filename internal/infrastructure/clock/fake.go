package clock

import (
	"sort"
	"time"

	"kashbill/internal/ports/output"
)

var _ output.Scheduler = (*Fake)(nil)

// Fake is a manual scheduler for tests. Callbacks run synchronously inside
// Advance, in deadline order (ties in scheduling order).
type Fake struct {
	now    time.Duration
	seq    uint64
	timers []*fakeTimer
}

func NewFake() *Fake {
	return &Fake{}
}

type fakeTimer struct {
	at      time.Duration
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// AfterFunc arms fn to run once the fake clock has advanced by d.
func (f *Fake) AfterFunc(d time.Duration, fn func()) output.Timer {
	if d < 0 {
		d = 0
	}
	f.seq++
	t := &fakeTimer{at: f.now + d, seq: f.seq, fn: fn}
	f.timers = append(f.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every timer that comes due,
// including timers armed by callbacks fired during the same Advance.
func (f *Fake) Advance(d time.Duration) {
	target := f.now + d
	for {
		next := f.nextDue(target)
		if next == nil {
			break
		}
		f.now = next.at
		next.fired = true
		next.fn()
	}
	f.now = target
}

func (f *Fake) nextDue(limit time.Duration) *fakeTimer {
	live := f.timers[:0]
	for _, t := range f.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	f.timers = live
	sort.SliceStable(f.timers, func(i, j int) bool {
		if f.timers[i].at != f.timers[j].at {
			return f.timers[i].at < f.timers[j].at
		}
		return f.timers[i].seq < f.timers[j].seq
	})
	if len(f.timers) == 0 || f.timers[0].at > limit {
		return nil
	}
	return f.timers[0]
}

// Pending counts armed timers.
func (f *Fake) Pending() int {
	n := 0
	for _, t := range f.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Now is the elapsed fake time.
func (f *Fake) Now() time.Duration {
	return f.now
}
