package common

import "fmt"

// Event is a single input to the car controller. Events are produced by the
// panel (buttons, door requests, shaft sensors) or by the safety timer.
type Event int

const (
	EV_NO_EVENT Event = iota
	EV_BUTTON_F0
	EV_BUTTON_F1
	EV_DOOR0_OPEN_REQ
	EV_DOOR0_CLOSE_REQ
	EV_DOOR1_OPEN_REQ
	EV_DOOR1_CLOSE_REQ
	EV_F0_REACHED
	EV_F1_REACHED
	EV_TIMEOUT

	N_EVENTS = int(EV_TIMEOUT) + 1
)

var eventNames = [N_EVENTS]string{
	EV_NO_EVENT:        "none",
	EV_BUTTON_F0:       "button-floor0",
	EV_BUTTON_F1:       "button-floor1",
	EV_DOOR0_OPEN_REQ:  "door0-open-request",
	EV_DOOR0_CLOSE_REQ: "door0-close-request",
	EV_DOOR1_OPEN_REQ:  "door1-open-request",
	EV_DOOR1_CLOSE_REQ: "door1-close-request",
	EV_F0_REACHED:      "floor0-reached",
	EV_F1_REACHED:      "floor1-reached",
	EV_TIMEOUT:         "timeout",
}

func (e Event) String() string {
	if e < 0 || int(e) >= N_EVENTS {
		return "EV_UNDEFINED"
	}
	return eventNames[e]
}

// ParseEvent maps a wire/console name back to its Event.
func ParseEvent(name string) (Event, error) {
	for i, n := range eventNames {
		if n == name {
			return Event(i), nil
		}
	}
	return EV_NO_EVENT, fmt.Errorf("unknown event %q", name)
}

type Door int

const (
	DOOR_OPEN Door = iota
	DOOR_CLOSE
	DOOR_LOCK
	DOOR_UNLOCK
)

type Motor int

const (
	MOTOR_OFF Motor = iota
	MOTOR_UP
	MOTOR_DOWN
)

type ExceptionLevel int

const (
	NORMAL ExceptionLevel = iota
	WARNING
	FATAL
)

func DoorToString(d Door) string {
	switch d {
	case DOOR_OPEN:
		return "open"
	case DOOR_CLOSE:
		return "close"
	case DOOR_LOCK:
		return "lock"
	case DOOR_UNLOCK:
		return "unlock"
	default:
		return "DOOR_UNDEFINED"
	}
}

func ParseDoor(s string) (Door, error) {
	for d := DOOR_OPEN; d <= DOOR_UNLOCK; d++ {
		if DoorToString(d) == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown door command %q", s)
}

func (d Door) MarshalText() ([]byte, error) {
	if d < DOOR_OPEN || d > DOOR_UNLOCK {
		return nil, fmt.Errorf("door command %d has no name", int(d))
	}
	return []byte(DoorToString(d)), nil
}

func (d *Door) UnmarshalText(b []byte) error {
	v, err := ParseDoor(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func MotorToString(m Motor) string {
	switch m {
	case MOTOR_OFF:
		return "off"
	case MOTOR_UP:
		return "up"
	case MOTOR_DOWN:
		return "down"
	default:
		return "MOTOR_UNDEFINED"
	}
}

func ParseMotor(s string) (Motor, error) {
	for m := MOTOR_OFF; m <= MOTOR_DOWN; m++ {
		if MotorToString(m) == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown motor command %q", s)
}

func (m Motor) MarshalText() ([]byte, error) {
	if m < MOTOR_OFF || m > MOTOR_DOWN {
		return nil, fmt.Errorf("motor command %d has no name", int(m))
	}
	return []byte(MotorToString(m)), nil
}

func (m *Motor) UnmarshalText(b []byte) error {
	v, err := ParseMotor(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func LevelToString(l ExceptionLevel) string {
	switch l {
	case NORMAL:
		return "normal"
	case WARNING:
		return "warning"
	case FATAL:
		return "fatal"
	default:
		return "LEVEL_UNDEFINED"
	}
}

func ParseLevel(s string) (ExceptionLevel, error) {
	for l := NORMAL; l <= FATAL; l++ {
		if LevelToString(l) == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown exception level %q", s)
}

// Levels travel by name, like the door and motor commands, so a status
// heartbeat reads the same as the single-command messages.
func (l ExceptionLevel) MarshalText() ([]byte, error) {
	if l < NORMAL || l > FATAL {
		return nil, fmt.Errorf("exception level %d has no name", int(l))
	}
	return []byte(LevelToString(l)), nil
}

func (l *ExceptionLevel) UnmarshalText(b []byte) error {
	v, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Actuator is everything the controller can drive on the panel: the door,
// the motor and the two display lines. Calls are fire-and-forget.
type Actuator interface {
	SetDoor(d Door)
	SetMotor(m Motor)
	ShowState(label string)
	ShowException(level ExceptionLevel, msg string)
}
