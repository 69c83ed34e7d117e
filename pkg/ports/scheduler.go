package ports

import "time"

// Timer is a pending scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer before it fired.
	Stop() bool
}

// Scheduler provides the guide's suspension points. Callbacks may run on any
// goroutine; the controller serializes them itself.
type Scheduler interface {
	// AfterFunc runs fn once d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer

	// NextFrame runs fn at the host's next paint opportunity.
	NextFrame(fn func())
}
