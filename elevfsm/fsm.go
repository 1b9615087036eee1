package elevfsm

import (
	"log"

	"lift/common"
)

// TimerService arms the one-shot safety countdown. Its expiry comes back to
// the FSM as an EV_TIMEOUT event through the event source.
type TimerService interface {
	Start(ticks uint32)
}

// Fsm is one elevator car. It is not safe for concurrent use; drive it from a
// single loop.
type Fsm struct {
	state State
	out   common.Actuator
	timer TimerService
}

func New(out common.Actuator, timer TimerService) *Fsm {
	return &Fsm{state: FLOOR0_CLOSED, out: out, timer: timer}
}

// Init puts the car in its power-on state: no fault shown, door closed,
// FLOOR0_CLOSED on the display. Call once before the first HandleEvent.
func (f *Fsm) Init() {
	f.out.ShowException(common.NORMAL, "")
	f.out.SetDoor(common.DOOR_CLOSE)
	f.out.ShowState(TEXT_F0_CLOSED)
	f.state = FLOOR0_CLOSED
	log.Printf("FSM: init (state=%s)", f.state)
}

func (f *Fsm) State() State {
	return f.state
}

// HandleEvent runs the transition defined for the current state and e and
// reports whether there was one. Undefined pairs are dropped without any
// output.
func (f *Fsm) HandleEvent(e common.Event) bool {
	t, ok := Lookup(f.state, e)
	if !ok {
		return false
	}

	for _, eff := range t.Effects {
		f.apply(eff)
	}

	log.Printf("FSM: %s --%s--> %s", f.state, e, t.Next)
	f.state = t.Next
	return true
}

func (f *Fsm) apply(eff Effect) {
	switch eff.Kind {
	case EK_Door:
		f.out.SetDoor(eff.Door)
	case EK_Motor:
		f.out.SetMotor(eff.Motor)
	case EK_Label:
		f.out.ShowState(eff.Label)
	case EK_Timer:
		f.timer.Start(eff.Ticks)
	}
}
