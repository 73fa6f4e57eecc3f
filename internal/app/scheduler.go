package app

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs callbacks after a delay. The driver never touches wall-clock
// timers directly so tests can substitute a virtual clock.
type Scheduler interface {
	Now() time.Time
	Schedule(delay time.Duration, fn func()) Timer
}

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the callback; it reports false if it already fired or was stopped.
	Stop() bool
}

type realScheduler struct{}

// NewRealScheduler schedules on the runtime timer heap.
func NewRealScheduler() Scheduler { return realScheduler{} }

func (realScheduler) Now() time.Time { return time.Now() }

func (realScheduler) Schedule(delay time.Duration, fn func()) Timer {
	return time.AfterFunc(delay, fn)
}

// VirtualScheduler is a manually advanced clock. Callbacks run synchronously
// on the goroutine calling Advance, in due order.
type VirtualScheduler struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*virtualTimer
}

type virtualTimer struct {
	owner *VirtualScheduler
	due   time.Time
	seq   uint64
	fn    func()
	done  bool
}

// NewVirtualScheduler starts the clock at start.
func NewVirtualScheduler(start time.Time) *VirtualScheduler {
	return &VirtualScheduler{now: start}
}

func (v *VirtualScheduler) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

func (v *VirtualScheduler) Schedule(delay time.Duration, fn func()) Timer {
	v.mu.Lock()
	defer v.mu.Unlock()
	if delay < 0 {
		delay = 0
	}
	v.seq++
	t := &virtualTimer{owner: v, due: v.now.Add(delay), seq: v.seq, fn: fn}
	v.timers = append(v.timers, t)
	return t
}

// Pending reports how many callbacks are still armed.
func (v *VirtualScheduler) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.timers)
}

// Advance moves the clock forward by d, firing every callback that becomes due,
// including ones scheduled by callbacks during the advance.
func (v *VirtualScheduler) Advance(d time.Duration) {
	v.mu.Lock()
	target := v.now.Add(d)
	v.mu.Unlock()

	for {
		v.mu.Lock()
		next := v.popDueLocked(target)
		if next == nil {
			v.now = target
			v.mu.Unlock()
			return
		}
		v.now = next.due
		v.mu.Unlock()
		next.fn()
	}
}

func (v *VirtualScheduler) popDueLocked(target time.Time) *virtualTimer {
	if len(v.timers) == 0 {
		return nil
	}
	sort.Slice(v.timers, func(i, j int) bool {
		if !v.timers[i].due.Equal(v.timers[j].due) {
			return v.timers[i].due.Before(v.timers[j].due)
		}
		return v.timers[i].seq < v.timers[j].seq
	})
	first := v.timers[0]
	if first.due.After(target) {
		return nil
	}
	v.timers = v.timers[1:]
	first.done = true
	return first
}

func (t *virtualTimer) Stop() bool {
	v := t.owner
	v.mu.Lock()
	defer v.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	for i, other := range v.timers {
		if other == t {
			v.timers = append(v.timers[:i], v.timers[i+1:]...)
			break
		}
	}
	return true
}
