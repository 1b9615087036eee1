package elevnetwork

import (
	"encoding/json"
	"fmt"

	"lift/common"
	"lift/elevio"
)

type MsgKind string

const (
	MK_Event     MsgKind = "event"
	MK_Door      MsgKind = "door"
	MK_Motor     MsgKind = "motor"
	MK_Label     MsgKind = "label"
	MK_Exception MsgKind = "exception"
	MK_Status    MsgKind = "status"
)

// PanelMsg is the JSON body of one frame. Which fields are set depends on
// Kind.
type PanelMsg struct {
	Kind    MsgKind        `json:"kind"`
	Event   string         `json:"event,omitempty"`
	Door    string         `json:"door,omitempty"`
	Motor   string         `json:"motor,omitempty"`
	Label   string         `json:"label,omitempty"`
	Level   string         `json:"level,omitempty"`
	Message string         `json:"message,omitempty"`
	Status  *elevio.Status `json:"status,omitempty"`
}

func EventMsg(e common.Event) PanelMsg {
	return PanelMsg{Kind: MK_Event, Event: e.String()}
}

func DoorMsg(d common.Door) PanelMsg {
	return PanelMsg{Kind: MK_Door, Door: common.DoorToString(d)}
}

func MotorMsg(m common.Motor) PanelMsg {
	return PanelMsg{Kind: MK_Motor, Motor: common.MotorToString(m)}
}

func LabelMsg(label string) PanelMsg {
	return PanelMsg{Kind: MK_Label, Label: label}
}

func ExceptionMsg(level common.ExceptionLevel, msg string) PanelMsg {
	return PanelMsg{Kind: MK_Exception, Level: common.LevelToString(level), Message: msg}
}

func StatusMsg(st elevio.Status) PanelMsg {
	return PanelMsg{Kind: MK_Status, Status: &st}
}

func EncodeMsg(m PanelMsg) ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode %s msg: %w", m.Kind, err)
	}
	return b, nil
}

// DecodeMsg parses one received frame, padding included.
func DecodeMsg(frame []byte) (PanelMsg, error) {
	var m PanelMsg
	if err := json.Unmarshal(common.TrimZeros(frame), &m); err != nil {
		return PanelMsg{}, fmt.Errorf("decode msg: %w", err)
	}
	if m.Kind == "" {
		return PanelMsg{}, fmt.Errorf("decode msg: missing kind")
	}
	return m, nil
}

// ParsedEvent returns the event carried by an MK_Event message.
func (m PanelMsg) ParsedEvent() (common.Event, error) {
	if m.Kind != MK_Event {
		return common.EV_NO_EVENT, fmt.Errorf("not an event msg: %s", m.Kind)
	}
	return common.ParseEvent(m.Event)
}
