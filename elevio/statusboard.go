package elevio

import (
	"fmt"
	"sync"

	"github.com/tiendc/go-deepcopy"

	"lift/common"
)

// Status is what the panel is currently showing, as far as the controller
// has told it.
type Status struct {
	Door    common.Door           `json:"door"`
	Motor   common.Motor          `json:"motor"`
	Label   string                `json:"label"`
	Level   common.ExceptionLevel `json:"level"`
	Message string                `json:"message"`
	Recent  []string              `json:"recent"`
	Seq     uint64                `json:"seq"`
}

// StatusBoard sits in front of another actuator, forwards every command and
// keeps track of the resulting panel status.
type StatusBoard struct {
	mu     sync.Mutex
	next   common.Actuator
	keep   int
	status Status
}

// NewStatusBoard wraps next and remembers the last keep commands.
func NewStatusBoard(next common.Actuator, keep int) *StatusBoard {
	return &StatusBoard{
		next:   next,
		keep:   keep,
		status: Status{Door: common.DOOR_CLOSE, Motor: common.MOTOR_OFF},
	}
}

func (b *StatusBoard) SetDoor(d common.Door) {
	b.update(func(s *Status) { s.Door = d }, "door "+common.DoorToString(d))
	b.next.SetDoor(d)
}

func (b *StatusBoard) SetMotor(m common.Motor) {
	b.update(func(s *Status) { s.Motor = m }, "motor "+common.MotorToString(m))
	b.next.SetMotor(m)
}

func (b *StatusBoard) ShowState(label string) {
	b.update(func(s *Status) { s.Label = label }, "show "+label)
	b.next.ShowState(label)
}

func (b *StatusBoard) ShowException(level common.ExceptionLevel, msg string) {
	b.update(func(s *Status) {
		s.Level = level
		s.Message = msg
	}, fmt.Sprintf("exception %s %q", common.LevelToString(level), msg))
	b.next.ShowException(level, msg)
}

func (b *StatusBoard) update(change func(*Status), line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	change(&b.status)
	b.status.Seq++
	if b.keep <= 0 {
		return
	}
	b.status.Recent = append(b.status.Recent, line)
	if over := len(b.status.Recent) - b.keep; over > 0 {
		b.status.Recent = append([]string(nil), b.status.Recent[over:]...)
	}
}

// Snapshot returns a copy of the status that shares nothing with the board.
func (b *StatusBoard) Snapshot() (Status, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out Status
	if err := deepcopy.Copy(&out, &b.status); err != nil {
		return Status{}, fmt.Errorf("copy status: %w", err)
	}
	return out, nil
}
