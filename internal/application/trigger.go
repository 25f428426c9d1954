package application

import (
	"time"

	"kashbill/internal/ports/output"
)

// DefaultTriggerDelay is how long a momentary highlight stays on.
const DefaultTriggerDelay = 150 * time.Millisecond

// MomentaryTrigger holds a single "active" slot that resets itself shortly
// after each activation. Only the latest activation's reset is honored.
// Like NavigationController it must be driven from the scheduler's thread.
type MomentaryTrigger struct {
	scheduler  output.Scheduler
	delay      time.Duration
	onChange   func(active string)
	active     string
	timer      output.Timer
	generation uint64
}

// NewMomentaryTrigger builds an inactive trigger. onChange may be nil.
func NewMomentaryTrigger(scheduler output.Scheduler, delay time.Duration, onChange func(active string)) *MomentaryTrigger {
	if delay <= 0 {
		delay = DefaultTriggerDelay
	}
	return &MomentaryTrigger{scheduler: scheduler, delay: delay, onChange: onChange}
}

// Trigger activates id and (re)arms the reset.
func (t *MomentaryTrigger) Trigger(id string) {
	if t.timer != nil {
		t.timer.Stop()
	}
	t.generation++
	gen := t.generation
	t.set(id)
	t.timer = t.scheduler.AfterFunc(t.delay, func() {
		if gen != t.generation {
			return
		}
		t.timer = nil
		t.set("")
	})
}

// Active returns the active identifier, or "" when none.
func (t *MomentaryTrigger) Active() string {
	return t.active
}

func (t *MomentaryTrigger) set(id string) {
	t.active = id
	if t.onChange != nil {
		t.onChange(id)
	}
}
