// timer.go
// Purpose: One-shot countdown in lab timer ticks, polled by the event source.
package elevfsm

import (
	"time"

	"lift/common"
)

type Timer struct {
	now    func() time.Time
	end    time.Time
	active bool
}

func NewTimer() *Timer {
	return &Timer{now: time.Now}
}

// Start (re)arms the timer to expire ticks * TickDuration from now.
func (t *Timer) Start(ticks uint32) {
	t.end = t.now().Add(time.Duration(ticks) * common.TickDuration)
	t.active = true
}

func (t *Timer) Stop() {
	t.active = false
}

func (t *Timer) TimedOut() bool {
	return t.active && t.now().After(t.end)
}

