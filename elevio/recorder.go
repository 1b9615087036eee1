package elevio

import (
	"fmt"
	"sync"

	"lift/common"
)

// Recorder is an actuator and timer service that remembers every call as a
// short text line, in order. Meant for tests and dry runs.
type Recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *Recorder) record(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *Recorder) SetDoor(d common.Door) { r.record("door %s", common.DoorToString(d)) }

func (r *Recorder) SetMotor(m common.Motor) { r.record("motor %s", common.MotorToString(m)) }

func (r *Recorder) ShowState(label string) { r.record("show %s", label) }

func (r *Recorder) ShowException(level common.ExceptionLevel, msg string) {
	r.record("exception %s %q", common.LevelToString(level), msg)
}

func (r *Recorder) Start(ticks uint32) { r.record("timer %d", ticks) }

// Calls returns a copy of everything recorded so far.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
