package elevfsm

import "lift/common"

// SAFETY_DURATION is how long the door stays locked before the motor may
// start, in timer ticks (150 * 10ms = 1.5s).
const SAFETY_DURATION uint32 = 150

type EffectKind int

const (
	EK_Door EffectKind = iota
	EK_Motor
	EK_Label
	EK_Timer
)

// Effect is one actuator or timer command issued during a transition.
// Only the field matching Kind is meaningful.
type Effect struct {
	Kind  EffectKind
	Door  common.Door
	Motor common.Motor
	Label string
	Ticks uint32
}

// Transition is what happens for a defined (state, event) pair: the effects
// in order, then the switch to Next.
type Transition struct {
	Effects []Effect
	Next    State
}

type trigger struct {
	from State
	on   common.Event
}

func door(d common.Door) Effect   { return Effect{Kind: EK_Door, Door: d} }
func motor(m common.Motor) Effect { return Effect{Kind: EK_Motor, Motor: m} }
func show(label string) Effect    { return Effect{Kind: EK_Label, Label: label} }
func startTimer(t uint32) Effect  { return Effect{Kind: EK_Timer, Ticks: t} }

// Every pair missing from this table is ignored by the FSM.
var transitions = map[trigger]Transition{
	{FLOOR0_CLOSED, common.EV_DOOR0_OPEN_REQ}: {
		Effects: []Effect{door(common.DOOR_OPEN), show(TEXT_F0_OPENED)},
		Next:    FLOOR0_OPENED,
	},
	{FLOOR0_CLOSED, common.EV_BUTTON_F1}: {
		Effects: []Effect{door(common.DOOR_LOCK), startTimer(SAFETY_DURATION)},
		Next:    WAIT_BEFORE_UP,
	},
	{FLOOR0_OPENED, common.EV_DOOR0_CLOSE_REQ}: {
		Effects: []Effect{door(common.DOOR_CLOSE), show(TEXT_F0_CLOSED)},
		Next:    FLOOR0_CLOSED,
	},
	{FLOOR1_CLOSED, common.EV_DOOR1_OPEN_REQ}: {
		Effects: []Effect{door(common.DOOR_OPEN), show(TEXT_F1_OPENED)},
		Next:    FLOOR1_OPENED,
	},
	{FLOOR1_CLOSED, common.EV_BUTTON_F0}: {
		Effects: []Effect{door(common.DOOR_LOCK), startTimer(SAFETY_DURATION)},
		Next:    WAIT_BEFORE_DOWN,
	},
	{FLOOR1_OPENED, common.EV_DOOR1_CLOSE_REQ}: {
		Effects: []Effect{door(common.DOOR_CLOSE), show(TEXT_F1_CLOSED)},
		Next:    FLOOR1_CLOSED,
	},
	{WAIT_BEFORE_UP, common.EV_TIMEOUT}: {
		Effects: []Effect{motor(common.MOTOR_UP), show(TEXT_MOVING_UP)},
		Next:    MOVING_UP,
	},
	{WAIT_BEFORE_DOWN, common.EV_TIMEOUT}: {
		Effects: []Effect{motor(common.MOTOR_DOWN), show(TEXT_MOVING_DOWN)},
		Next:    MOVING_DOWN,
	},
	{MOVING_UP, common.EV_F1_REACHED}: {
		Effects: []Effect{motor(common.MOTOR_OFF), door(common.DOOR_UNLOCK), show(TEXT_F1_CLOSED)},
		Next:    FLOOR1_CLOSED,
	},
	{MOVING_DOWN, common.EV_F0_REACHED}: {
		Effects: []Effect{motor(common.MOTOR_OFF), door(common.DOOR_UNLOCK), show(TEXT_F0_CLOSED)},
		Next:    FLOOR0_CLOSED,
	},
}

// Lookup returns the transition defined for (s, e), if any.
func Lookup(s State, e common.Event) (Transition, bool) {
	t, ok := transitions[trigger{from: s, on: e}]
	return t, ok
}

// NumTransitions is the number of defined (state, event) pairs.
func NumTransitions() int {
	return len(transitions)
}
