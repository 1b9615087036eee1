package elevio

import (
	"log"

	"lift/common"
)

// Expirer is the polled side of a one-shot timer.
type Expirer interface {
	TimedOut() bool
	Stop()
}

// EventQueue is the controller's event source. Producers on any goroutine
// Push; the control loop polls with TryNextEvent. An expired timer shows up
// as a single EV_TIMEOUT once the queued events before it are drained.
type EventQueue struct {
	ch    chan common.Event
	timer Expirer
}

// NewEventQueue makes a queue holding up to size pending events. timer may
// be nil.
func NewEventQueue(size int, timer Expirer) *EventQueue {
	if size <= 0 {
		size = 1
	}
	return &EventQueue{ch: make(chan common.Event, size), timer: timer}
}

// Push enqueues e without blocking. It reports false if the event was
// dropped because the queue is full. EV_NO_EVENT is never queued.
func (q *EventQueue) Push(e common.Event) bool {
	if e == common.EV_NO_EVENT {
		return true
	}
	select {
	case q.ch <- e:
		return true
	default:
		log.Printf("eventqueue: full, dropping %s", e)
		return false
	}
}

func (q *EventQueue) TryNextEvent() (common.Event, bool) {
	select {
	case e := <-q.ch:
		return e, true
	default:
	}
	if q.timer != nil && q.timer.TimedOut() {
		q.timer.Stop()
		return common.EV_TIMEOUT, true
	}
	return common.EV_NO_EVENT, false
}

// NextEvent is TryNextEvent with the EV_NO_EVENT sentinel instead of a flag.
func (q *EventQueue) NextEvent() common.Event {
	e, _ := q.TryNextEvent()
	return e
}

func (q *EventQueue) Len() int {
	return len(q.ch)
}
