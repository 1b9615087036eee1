package elevfsm_test

import (
	"reflect"
	"testing"

	"lift/common"
	"lift/elevfsm"
	"lift/elevio"
)

// pathTo lists the events that take a freshly initialised car to each state.
var pathTo = map[elevfsm.State][]common.Event{
	elevfsm.FLOOR0_CLOSED:    nil,
	elevfsm.FLOOR0_OPENED:    {common.EV_DOOR0_OPEN_REQ},
	elevfsm.WAIT_BEFORE_UP:   {common.EV_BUTTON_F1},
	elevfsm.MOVING_UP:        {common.EV_BUTTON_F1, common.EV_TIMEOUT},
	elevfsm.FLOOR1_CLOSED:    {common.EV_BUTTON_F1, common.EV_TIMEOUT, common.EV_F1_REACHED},
	elevfsm.FLOOR1_OPENED:    {common.EV_BUTTON_F1, common.EV_TIMEOUT, common.EV_F1_REACHED, common.EV_DOOR1_OPEN_REQ},
	elevfsm.WAIT_BEFORE_DOWN: {common.EV_BUTTON_F1, common.EV_TIMEOUT, common.EV_F1_REACHED, common.EV_BUTTON_F0},
	elevfsm.MOVING_DOWN:      {common.EV_BUTTON_F1, common.EV_TIMEOUT, common.EV_F1_REACHED, common.EV_BUTTON_F0, common.EV_TIMEOUT},
}

// newFsmIn returns an FSM sitting in state with an empty recorder.
func newFsmIn(t *testing.T, state elevfsm.State) (*elevfsm.Fsm, *elevio.Recorder) {
	t.Helper()
	rec := &elevio.Recorder{}
	fsm := elevfsm.New(rec, rec)
	fsm.Init()
	for _, e := range pathTo[state] {
		if !fsm.HandleEvent(e) {
			t.Fatalf("setup: %s not handled in %s", e, fsm.State())
		}
	}
	if fsm.State() != state {
		t.Fatalf("setup: got %s, want %s", fsm.State(), state)
	}
	rec.Reset()
	return fsm, rec
}

func countPrefix(calls []string, prefix string) int {
	n := 0
	for _, c := range calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func TestInit(t *testing.T) {
	rec := &elevio.Recorder{}
	fsm := elevfsm.New(rec, rec)
	fsm.Init()

	want := []string{`exception normal ""`, "door close", "show F0_CLOSED"}
	if got := rec.Calls(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Init calls = %q, want %q", got, want)
	}
	if fsm.State() != elevfsm.FLOOR0_CLOSED {
		t.Fatalf("state = %s, want FLOOR0_CLOSED", fsm.State())
	}
}

func TestInitFromAnyState(t *testing.T) {
	for state := range pathTo {
		t.Run(state.String(), func(t *testing.T) {
			fsm, rec := newFsmIn(t, state)
			fsm.Init()

			calls := rec.Calls()
			if n := countPrefix(calls, "show "); n != 1 {
				t.Fatalf("got %d display calls, want 1: %q", n, calls)
			}
			if calls[len(calls)-1] != "show F0_CLOSED" {
				t.Fatalf("last call = %q, want show F0_CLOSED", calls[len(calls)-1])
			}
			if fsm.State() != elevfsm.FLOOR0_CLOSED {
				t.Fatalf("state = %s, want FLOOR0_CLOSED", fsm.State())
			}
		})
	}
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		from  elevfsm.State
		event common.Event
		calls []string
		to    elevfsm.State
	}{
		{elevfsm.FLOOR0_CLOSED, common.EV_DOOR0_OPEN_REQ, []string{"door open", "show F0_OPENED"}, elevfsm.FLOOR0_OPENED},
		{elevfsm.FLOOR0_CLOSED, common.EV_BUTTON_F1, []string{"door lock", "timer 150"}, elevfsm.WAIT_BEFORE_UP},
		{elevfsm.FLOOR0_OPENED, common.EV_DOOR0_CLOSE_REQ, []string{"door close", "show F0_CLOSED"}, elevfsm.FLOOR0_CLOSED},
		{elevfsm.FLOOR1_CLOSED, common.EV_DOOR1_OPEN_REQ, []string{"door open", "show F1_OPENED"}, elevfsm.FLOOR1_OPENED},
		{elevfsm.FLOOR1_CLOSED, common.EV_BUTTON_F0, []string{"door lock", "timer 150"}, elevfsm.WAIT_BEFORE_DOWN},
		{elevfsm.FLOOR1_OPENED, common.EV_DOOR1_CLOSE_REQ, []string{"door close", "show F1_CLOSED"}, elevfsm.FLOOR1_CLOSED},
		{elevfsm.WAIT_BEFORE_UP, common.EV_TIMEOUT, []string{"motor up", "show MOVING_UP"}, elevfsm.MOVING_UP},
		{elevfsm.WAIT_BEFORE_DOWN, common.EV_TIMEOUT, []string{"motor down", "show MOVING_DOWN"}, elevfsm.MOVING_DOWN},
		{elevfsm.MOVING_UP, common.EV_F1_REACHED, []string{"motor off", "door unlock", "show F1_CLOSED"}, elevfsm.FLOOR1_CLOSED},
		{elevfsm.MOVING_DOWN, common.EV_F0_REACHED, []string{"motor off", "door unlock", "show F0_CLOSED"}, elevfsm.FLOOR0_CLOSED},
	}
	if len(tests) != elevfsm.NumTransitions() {
		t.Fatalf("table has %d transitions, test covers %d", elevfsm.NumTransitions(), len(tests))
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"/"+tt.event.String(), func(t *testing.T) {
			fsm, rec := newFsmIn(t, tt.from)
			if !fsm.HandleEvent(tt.event) {
				t.Fatalf("HandleEvent(%s) reported no transition", tt.event)
			}
			if got := rec.Calls(); !reflect.DeepEqual(got, tt.calls) {
				t.Errorf("calls = %q, want %q", got, tt.calls)
			}
			if fsm.State() != tt.to {
				t.Errorf("state = %s, want %s", fsm.State(), tt.to)
			}
		})
	}
}

func TestUndefinedPairsAreIgnored(t *testing.T) {
	defined := 0
	for s := 0; s < elevfsm.N_STATES; s++ {
		state := elevfsm.State(s)
		for e := 0; e < common.N_EVENTS; e++ {
			event := common.Event(e)
			if _, ok := elevfsm.Lookup(state, event); ok {
				defined++
				continue
			}

			fsm, rec := newFsmIn(t, state)
			if fsm.HandleEvent(event) {
				t.Errorf("%s/%s: reported a transition", state, event)
			}
			if fsm.State() != state {
				t.Errorf("%s/%s: state changed to %s", state, event, fsm.State())
			}
			if calls := rec.Calls(); len(calls) != 0 {
				t.Errorf("%s/%s: unexpected calls %q", state, event, calls)
			}
		}
	}
	if defined != 10 {
		t.Fatalf("found %d defined pairs, want 10", defined)
	}
}

func TestWaitThenMoveUp(t *testing.T) {
	fsm, rec := newFsmIn(t, elevfsm.FLOOR0_CLOSED)

	fsm.HandleEvent(common.EV_BUTTON_F1)
	if fsm.State() != elevfsm.WAIT_BEFORE_UP {
		t.Fatalf("state = %s, want WAIT_BEFORE_UP", fsm.State())
	}
	// A second call while waiting changes nothing.
	fsm.HandleEvent(common.EV_BUTTON_F1)
	fsm.HandleEvent(common.EV_TIMEOUT)

	want := []string{"door lock", "timer 150", "motor up", "show MOVING_UP"}
	if got := rec.Calls(); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %q, want %q", got, want)
	}
	if fsm.State() != elevfsm.MOVING_UP {
		t.Fatalf("state = %s, want MOVING_UP", fsm.State())
	}
}

func TestMovingUpIgnoresCallButton(t *testing.T) {
	fsm, rec := newFsmIn(t, elevfsm.MOVING_UP)

	if fsm.HandleEvent(common.EV_BUTTON_F0) {
		t.Fatal("button-floor0 while moving up reported a transition")
	}
	if fsm.State() != elevfsm.MOVING_UP || len(rec.Calls()) != 0 {
		t.Fatalf("state = %s, calls = %q", fsm.State(), rec.Calls())
	}
}

func TestDoorRoundTrip(t *testing.T) {
	fsm, rec := newFsmIn(t, elevfsm.FLOOR0_CLOSED)

	fsm.HandleEvent(common.EV_DOOR0_OPEN_REQ)
	fsm.HandleEvent(common.EV_DOOR0_CLOSE_REQ)

	if fsm.State() != elevfsm.FLOOR0_CLOSED {
		t.Fatalf("state = %s, want FLOOR0_CLOSED", fsm.State())
	}
	want := []string{"door open", "show F0_OPENED", "door close", "show F0_CLOSED"}
	if got := rec.Calls(); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %q, want %q", got, want)
	}
	if n := countPrefix(rec.Calls(), "show "); n != 2 {
		t.Fatalf("got %d display updates, want 2", n)
	}
}

func TestInstancesAreIndependent(t *testing.T) {
	a, _ := newFsmIn(t, elevfsm.FLOOR0_CLOSED)
	b, recB := newFsmIn(t, elevfsm.FLOOR0_CLOSED)

	a.HandleEvent(common.EV_DOOR0_OPEN_REQ)

	if b.State() != elevfsm.FLOOR0_CLOSED {
		t.Fatalf("b moved to %s", b.State())
	}
	if len(recB.Calls()) != 0 {
		t.Fatalf("b got calls %q", recB.Calls())
	}
}
