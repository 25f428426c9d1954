package output

import "time"

// Timer is a pending scheduled callback.
type Timer interface {
	// Stop prevents the callback from running if it has not been dispatched
	// yet. It reports whether the call stopped the timer.
	Stop() bool
}

// Scheduler runs callbacks after a delay on the caller's logical thread of
// execution: implementations must never run two callbacks concurrently with
// each other or with the code that scheduled them.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}
