// common/config.go
package common

import (
	"io"
	"time"
)

// Tick is the time base of the lab's timer peripheral.
const TickDuration = 10 * time.Millisecond

// SignalDuration is the lab's 1 s signalling period, in ticks.
const SignalDuration = 100

const (
	QUIC_FRAME_SIZE = 1024
	DEFAULT_CON     = "lift.con"

	// Commands kept in the status history. A status heartbeat must fit in
	// one frame.
	STATUS_HISTORY = 8
)

type Config struct {
	// Address of the panel emulator. Empty means "log only".
	PanelAddr string

	InputPollRate time.Duration
	MotionWarn    time.Duration
	StatusPeriod  time.Duration
	WriteTimeout  time.Duration

	// Level shown on the panel when a motion phase overruns MotionWarn.
	MotionWarnLevel ExceptionLevel

	// Capacity of the pending event queue.
	EventBuffer int
}

func DefaultConfig() Config {
	return Config{
		PanelAddr:       "",
		InputPollRate:   10 * time.Millisecond,
		MotionWarn:      10 * time.Second,
		StatusPeriod:    SignalDuration * TickDuration,
		WriteTimeout:    200 * time.Millisecond,
		MotionWarnLevel: WARNING,
		EventBuffer:     32,
	}
}

// LoadConfig starts from DefaultConfig and overrides whatever file sets.
func LoadConfig(file string) Config {
	cfg := DefaultConfig()
	vals := newConValues(cfg)
	ConLoad(file, vals.cases()...)
	return vals.apply(cfg)
}

// ReadConfig is LoadConfig for an already open .con stream.
func ReadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	vals := newConValues(cfg)
	if err := ConRead(r, vals.cases()...); err != nil {
		return cfg, err
	}
	return vals.apply(cfg), nil
}

// conValues holds the raw scanf destinations; durations are stored in the
// units the .con keys are named after.
type conValues struct {
	panelAddr       string
	inputPollRateMs int
	motionWarnS     float64
	motionWarnLevel ExceptionLevel
	statusPeriodMs  int
	writeTimeoutMs  int
	eventBuffer     int
}

func newConValues(cfg Config) *conValues {
	return &conValues{
		panelAddr:       cfg.PanelAddr,
		inputPollRateMs: int(cfg.InputPollRate / time.Millisecond),
		motionWarnS:     cfg.MotionWarn.Seconds(),
		motionWarnLevel: cfg.MotionWarnLevel,
		statusPeriodMs:  int(cfg.StatusPeriod / time.Millisecond),
		writeTimeoutMs:  int(cfg.WriteTimeout / time.Millisecond),
		eventBuffer:     cfg.EventBuffer,
	}
}

func (v *conValues) cases() []Case {
	return []Case{
		ConVal("panelAddr", &v.panelAddr, "%s"),
		ConVal("inputPollRate_ms", &v.inputPollRateMs, "%d"),
		ConVal("motionWarn_s", &v.motionWarnS, "%f"),
		ConEnum("motionWarnLevel", &v.motionWarnLevel,
			ConMatch("warning", WARNING),
			ConMatch("fatal", FATAL),
		),
		ConVal("statusPeriod_ms", &v.statusPeriodMs, "%d"),
		ConVal("writeTimeout_ms", &v.writeTimeoutMs, "%d"),
		ConVal("eventBuffer", &v.eventBuffer, "%d"),
	}
}

func (v *conValues) apply(cfg Config) Config {
	cfg.PanelAddr = v.panelAddr
	if v.inputPollRateMs > 0 {
		cfg.InputPollRate = time.Duration(v.inputPollRateMs) * time.Millisecond
	}
	if v.motionWarnS > 0 {
		cfg.MotionWarn = time.Duration(v.motionWarnS * float64(time.Second))
	}
	cfg.MotionWarnLevel = v.motionWarnLevel
	if v.statusPeriodMs > 0 {
		cfg.StatusPeriod = time.Duration(v.statusPeriodMs) * time.Millisecond
	}
	if v.writeTimeoutMs > 0 {
		cfg.WriteTimeout = time.Duration(v.writeTimeoutMs) * time.Millisecond
	}
	if v.eventBuffer > 0 {
		cfg.EventBuffer = v.eventBuffer
	}
	return cfg
}
