package common

import "log"

// PanelOutputDevice drives the panel through plain function hooks. Nil hooks
// are skipped, so a device can implement only the outputs it has.
type PanelOutputDevice struct {
	Door      func(Door)
	Motor     func(Motor)
	Label     func(string)
	Exception func(ExceptionLevel, string)
}

func (d PanelOutputDevice) SetDoor(door Door) {
	if d.Door != nil {
		d.Door(door)
	}
}

func (d PanelOutputDevice) SetMotor(m Motor) {
	if d.Motor != nil {
		d.Motor(m)
	}
}

func (d PanelOutputDevice) ShowState(label string) {
	if d.Label != nil {
		d.Label(label)
	}
}

func (d PanelOutputDevice) ShowException(level ExceptionLevel, msg string) {
	if d.Exception != nil {
		d.Exception(level, msg)
	}
}

// LogOutputDevice returns a device that only logs what it was told to do.
// Used when no panel is connected.
func LogOutputDevice() PanelOutputDevice {
	return PanelOutputDevice{
		Door: func(d Door) {
			log.Printf("panel: door %s", DoorToString(d))
		},
		Motor: func(m Motor) {
			log.Printf("panel: motor %s", MotorToString(m))
		},
		Label: func(label string) {
			log.Printf("panel: display %q", label)
		},
		Exception: func(level ExceptionLevel, msg string) {
			log.Printf("panel: exception %s %q", LevelToString(level), msg)
		},
	}
}
