package elevnetwork

import (
	"context"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	quic "github.com/quic-go/quic-go"

	"lift/common"
)

// PanelConn is the panel's end of an accepted controller connection.
type PanelConn struct {
	conn      *quic.Conn
	stream    *quic.Stream
	frameSize int

	mu sync.Mutex
}

// PanelListener is the panel's end of the link. It accepts controllers on
// one UDP address.
type PanelListener struct {
	ln        *quic.Listener
	frameSize int
}

// NewPanelListener binds listenAddr. A ":0" port picks a free one; Addr
// reports it.
func NewPanelListener(listenAddr string) (*PanelListener, error) {
	ln, err := listenQUIC(listenAddr, NewQUICConfig())
	if err != nil {
		return nil, err
	}
	return &PanelListener{ln: ln, frameSize: common.QUIC_FRAME_SIZE}, nil
}

func (pl *PanelListener) Addr() net.Addr {
	return pl.ln.Addr()
}

// Serve accepts controllers until ctx is cancelled, then closes the
// listener. Each controller that completes the hello is passed to handler on
// its own goroutine, and handler owns the connection until it returns.
func (pl *PanelListener) Serve(ctx context.Context, handler func(ctx context.Context, pc *PanelConn)) error {
	defer pl.ln.Close()

	for {
		conn, err := pl.ln.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("quic accept: %w", err)
		}
		go pl.serveConn(ctx, conn, handler)
	}
}

func (pl *PanelListener) serveConn(ctx context.Context, conn *quic.Conn, handler func(ctx context.Context, pc *PanelConn)) {
	st, err := acceptPanel(ctx, conn, pl.frameSize)
	if err != nil {
		log.Printf("panelserver: controller %v dropped: %v", conn.RemoteAddr(), err)
		return
	}

	log.Printf("panelserver: controller connected from %v", conn.RemoteAddr())
	pc := &PanelConn{conn: conn, stream: st, frameSize: pl.frameSize}
	handler(ctx, pc)
	pc.Close()
}

// ListenPanel binds listenAddr and serves controllers until ctx is cancelled.
func ListenPanel(ctx context.Context, listenAddr string, handler func(ctx context.Context, pc *PanelConn)) error {
	pl, err := NewPanelListener(listenAddr)
	if err != nil {
		return err
	}
	return pl.Serve(ctx, handler)
}

// SendEvent reports e to the controller.
func (pc *PanelConn) SendEvent(e common.Event, timeout time.Duration) error {
	payload, err := EncodeMsg(EventMsg(e))
	if err != nil {
		return err
	}
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if _, err := WriteFixedFrame(pc.stream, payload, pc.frameSize, timeout); err != nil {
		return fmt.Errorf("send %s: %w", e, err)
	}
	return nil
}

// ReadCommands hands every message from the controller to handler until the
// connection ends or ctx is cancelled. Undecodable frames are skipped.
func (pc *PanelConn) ReadCommands(ctx context.Context, handler func(PanelMsg)) error {
	return ReadFixedFrames(ctx, pc.stream, pc.frameSize, func(frame []byte) {
		msg, err := DecodeMsg(frame)
		if err != nil {
			log.Printf("panelserver: %v", err)
			return
		}
		handler(msg)
	})
}

func (pc *PanelConn) Done() <-chan struct{} {
	return pc.conn.Context().Done()
}

func (pc *PanelConn) Close() {
	CloseQUIC(pc.conn, pc.stream, "bye")
}
