package elevfsm

// State is the logical position of the car and its door.
type State int

const (
	FLOOR0_CLOSED State = iota
	FLOOR0_OPENED
	FLOOR1_CLOSED
	FLOOR1_OPENED
	MOVING_UP
	MOVING_DOWN
	WAIT_BEFORE_UP
	WAIT_BEFORE_DOWN

	N_STATES = int(WAIT_BEFORE_DOWN) + 1
)

// Display texts, as shown on the panel's LCD.
const (
	TEXT_F0_OPENED   = "F0_OPENED"
	TEXT_F0_CLOSED   = "F0_CLOSED"
	TEXT_F1_OPENED   = "F1_OPENED"
	TEXT_F1_CLOSED   = "F1_CLOSED"
	TEXT_MOVING_UP   = "MOVING_UP"
	TEXT_MOVING_DOWN = "MOVING_DOWN"
)

func (s State) String() string {
	switch s {
	case FLOOR0_CLOSED:
		return "FLOOR0_CLOSED"
	case FLOOR0_OPENED:
		return "FLOOR0_OPENED"
	case FLOOR1_CLOSED:
		return "FLOOR1_CLOSED"
	case FLOOR1_OPENED:
		return "FLOOR1_OPENED"
	case MOVING_UP:
		return "MOVING_UP"
	case MOVING_DOWN:
		return "MOVING_DOWN"
	case WAIT_BEFORE_UP:
		return "WAIT_BEFORE_UP"
	case WAIT_BEFORE_DOWN:
		return "WAIT_BEFORE_DOWN"
	default:
		return "STATE_UNDEFINED"
	}
}

// Moving reports whether the motor is running in this state.
func (s State) Moving() bool {
	return s == MOVING_UP || s == MOVING_DOWN
}
