// Package clock provides ports.Scheduler implementations: a wall-clock one
// for live hosts and a manually advanced one for simulations and tests.
package clock

import (
	"sort"
	"sync"
	"time"

	"github.com/aretw0/waypoint/pkg/ports"
)

// DefaultFrameInterval approximates one paint at 60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// Real schedules callbacks on the wall clock via time.AfterFunc.
type Real struct {
	frame time.Duration
}

// Option configures a Real scheduler.
type Option func(*Real)

// WithFrameInterval sets the delay used to emulate the next paint.
func WithFrameInterval(d time.Duration) Option {
	return func(r *Real) {
		r.frame = d
	}
}

// NewReal creates a wall-clock scheduler.
func NewReal(opts ...Option) *Real {
	r := &Real{frame: DefaultFrameInterval}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AfterFunc implements ports.Scheduler.
func (r *Real) AfterFunc(d time.Duration, fn func()) ports.Timer {
	return time.AfterFunc(d, fn)
}

// NextFrame implements ports.Scheduler.
func (r *Real) NextFrame(fn func()) {
	time.AfterFunc(r.frame, fn)
}

// Manual is a virtual-time scheduler. Nothing runs until the owner calls
// Frame, Advance or Drain; callbacks run on the caller's goroutine.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*manualTimer
	frames []func()
}

type manualTimer struct {
	m       *Manual
	due     time.Duration
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

// Stop implements ports.Timer.
func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.m.remove(t)
	return true
}

// NewManual creates a virtual-time scheduler starting at zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc implements ports.Scheduler.
func (m *Manual) AfterFunc(d time.Duration, fn func()) ports.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{m: m, due: m.now + d, seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].due == m.timers[j].due {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].due < m.timers[j].due
	})
	return t
}

// NextFrame implements ports.Scheduler.
func (m *Manual) NextFrame(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames = append(m.frames, fn)
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of queued frames and timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.frames) + len(m.timers)
}

// Frame runs the frame callbacks queued so far. Callbacks queued while
// running wait for the next frame. It returns how many ran.
func (m *Manual) Frame() int {
	m.mu.Lock()
	frames := m.frames
	m.frames = nil
	m.mu.Unlock()

	for _, fn := range frames {
		fn()
	}
	return len(frames)
}

// Advance runs one frame, then moves virtual time forward by d, firing due
// timers in order. It returns the number of callbacks run.
func (m *Manual) Advance(d time.Duration) int {
	ran := m.Frame()

	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		t := m.popDue(target)
		if t == nil {
			break
		}
		t.fn()
		ran++
	}

	m.mu.Lock()
	if m.now < target {
		m.now = target
	}
	m.mu.Unlock()
	return ran
}

// Drain runs frames and timers until nothing is pending, jumping virtual time
// to each next deadline. The loop is bounded by limit callbacks; it returns
// the number run.
func (m *Manual) Drain(limit int) int {
	ran := 0
	for ran < limit {
		if n := m.Frame(); n > 0 {
			ran += n
			continue
		}
		m.mu.Lock()
		if len(m.timers) == 0 {
			m.mu.Unlock()
			return ran
		}
		next := m.timers[0].due
		m.mu.Unlock()

		t := m.popDue(next)
		if t == nil {
			continue
		}
		t.fn()
		ran++
	}
	return ran
}

func (m *Manual) popDue(limit time.Duration) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.timers) == 0 || m.timers[0].due > limit {
		return nil
	}
	t := m.timers[0]
	m.timers = m.timers[1:]
	t.fired = true
	if t.due > m.now {
		m.now = t.due
	}
	return t
}

func (m *Manual) remove(t *manualTimer) {
	for i, cand := range m.timers {
		if cand == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}
