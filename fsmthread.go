package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"lift/common"
	"lift/elevfsm"
)

type eventSource interface {
	TryNextEvent() (common.Event, bool)
}

// fsmThread is the only goroutine that touches the FSM. Every poll it
// dispatches all pending events in arrival order, then checks the motion
// watchdog.
func fsmThread(
	ctx context.Context,
	cfg common.Config,
	fsm *elevfsm.Fsm,
	source eventSource,
	out common.Actuator,
) {
	log.Printf("fsmThread started (poll=%s)", cfg.InputPollRate)

	fsm.Init()
	watchdog := newMotionWatchdog(cfg, out)

	ticker := time.NewTicker(cfg.InputPollRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dispatchPending(fsm, source)
			watchdog.Check(fsm.State(), now)
		}
	}
}

// dispatchPending feeds every queued event to the FSM and returns how many
// there were.
func dispatchPending(fsm *elevfsm.Fsm, source eventSource) int {
	n := 0
	for {
		e, ok := source.TryNextEvent()
		if !ok {
			return n
		}
		if !fsm.HandleEvent(e) {
			log.Printf("fsmThread: %s ignored in %s", e, fsm.State())
		}
		n++
	}
}

// motionWatchdog flags a car that has been moving for too long, which means
// the floor sensor never reported. It only raises the exception display; the
// FSM keeps waiting for the sensor.
type motionWatchdog struct {
	limit time.Duration
	level common.ExceptionLevel
	out   common.Actuator

	moving bool
	since  time.Time
	warned bool
}

func newMotionWatchdog(cfg common.Config, out common.Actuator) *motionWatchdog {
	return &motionWatchdog{limit: cfg.MotionWarn, level: cfg.MotionWarnLevel, out: out}
}

func (w *motionWatchdog) Check(s elevfsm.State, now time.Time) {
	if !s.Moving() {
		if w.warned {
			log.Printf("fsmThread: motion ended in %s, clearing warning", s)
			w.out.ShowException(common.NORMAL, "")
		}
		w.moving = false
		w.warned = false
		return
	}

	if !w.moving {
		w.moving = true
		w.since = now
		return
	}

	if !w.warned && now.Sub(w.since) > w.limit {
		w.warned = true
		msg := fmt.Sprintf("%s for %s without floor sensor", s, now.Sub(w.since).Round(time.Second))
		log.Printf("fsmThread: warning: %s", msg)
		w.out.ShowException(w.level, msg)
	}
}
