package elevnetwork

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	quic "github.com/quic-go/quic-go"

	"lift/common"
	"lift/elevio"
)

const (
	openStreamTimeout = 2 * time.Second
	contextTimeout    = 4 * time.Second
	minBackoff        = 200 * time.Millisecond
	maxBackoff        = 2 * time.Second
)

// EventSink receives the events the panel reports.
type EventSink interface {
	Push(e common.Event) bool
}

// PanelLink is the controller's side of the panel connection. It dials the
// panel, keeps the connection up, pushes received events into a sink and
// sends actuator commands back as frames.
type PanelLink struct {
	addr         string
	frameSize    int
	writeTimeout time.Duration
	quicConf     *quic.Config
	sink         EventSink

	mu     sync.Mutex
	conn   *quic.Conn
	stream *quic.Stream
}

func NewPanelLink(cfg common.Config, sink EventSink) *PanelLink {
	return &PanelLink{
		addr:         cfg.PanelAddr,
		frameSize:    common.QUIC_FRAME_SIZE,
		writeTimeout: cfg.WriteTimeout,
		quicConf:     NewQUICConfig(),
		sink:         sink,
	}
}

// Run keeps the link alive until ctx is cancelled: connect, wait for the
// connection to drop, reconnect.
func (l *PanelLink) Run(ctx context.Context) {
	backoff := minBackoff
	for ctx.Err() == nil {
		log.Printf("panel: dialing %s", l.addr)

		conn, stream, err := l.dialOnce(ctx)
		if err != nil {
			log.Printf("panel: dial %s failed: %v", l.addr, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff = nextBackoff(backoff)
			continue
		}

		backoff = minBackoff
		log.Printf("panel: connected to %s", l.addr)
		l.attach(conn, stream)
		go l.readLoop(ctx, stream)

		select {
		case <-ctx.Done():
			l.detach(conn)
			CloseQUIC(conn, stream, "bye")
			return
		case <-conn.Context().Done():
			l.detach(conn)
			CloseQUIC(conn, stream, "bye")
			log.Printf("panel: connection to %s ended, reconnecting", l.addr)
		}
	}
}

func (l *PanelLink) dialOnce(ctx context.Context) (*quic.Conn, *quic.Stream, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, contextTimeout)
	defer cancel()

	return dialPanel(attemptCtx, l.addr, l.quicConf, l.frameSize)
}

// nextBackoff doubles d, capped at maxBackoff.
func nextBackoff(d time.Duration) time.Duration {
	return min(2*d, maxBackoff)
}

func (l *PanelLink) attach(conn *quic.Conn, st *quic.Stream) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.conn = conn
	l.stream = st
}

func (l *PanelLink) detach(conn *quic.Conn) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.conn == conn {
		l.conn = nil
		l.stream = nil
	}
}

func (l *PanelLink) Connected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stream != nil
}

func (l *PanelLink) readLoop(ctx context.Context, st *quic.Stream) {
	err := ReadFixedFrames(ctx, st, l.frameSize, l.handleFrame)
	if err != nil && ctx.Err() == nil {
		log.Printf("panel: read: %v", err)
	}
}

func (l *PanelLink) handleFrame(frame []byte) {
	msg, err := DecodeMsg(frame)
	if err != nil {
		log.Printf("panel: %v", err)
		return
	}
	if msg.Kind != MK_Event {
		log.Printf("panel: ignoring %s msg from panel", msg.Kind)
		return
	}
	e, err := msg.ParsedEvent()
	if err != nil {
		log.Printf("panel: %v", err)
		return
	}
	l.sink.Push(e)
}

// send writes one message. Commands are fire-and-forget: failures are logged
// and the command is lost.
func (l *PanelLink) send(m PanelMsg) error {
	payload, err := EncodeMsg(m)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stream == nil {
		return fmt.Errorf("not connected")
	}
	if _, err := WriteFixedFrame(l.stream, payload, l.frameSize, l.writeTimeout); err != nil {
		return err
	}
	return nil
}

func (l *PanelLink) sendOrLog(m PanelMsg) {
	if err := l.send(m); err != nil {
		log.Printf("panel: dropping %s msg: %v", m.Kind, err)
	}
}

func (l *PanelLink) SetDoor(d common.Door) { l.sendOrLog(DoorMsg(d)) }

func (l *PanelLink) SetMotor(m common.Motor) { l.sendOrLog(MotorMsg(m)) }

func (l *PanelLink) ShowState(label string) { l.sendOrLog(LabelMsg(label)) }

func (l *PanelLink) ShowException(level common.ExceptionLevel, msg string) {
	l.sendOrLog(ExceptionMsg(level, msg))
}

// SendStatus pushes a status heartbeat to the panel.
func (l *PanelLink) SendStatus(st elevio.Status) error {
	return l.send(StatusMsg(st))
}
