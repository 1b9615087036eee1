package elevnetwork

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"lift/common"
)

// *quic.Stream and net.Conn both have these.
type readDeadliner interface {
	SetReadDeadline(t time.Time) error
}

type writeDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

func frameSizeOr(frameSize int) int {
	if frameSize <= 0 {
		return common.QUIC_FRAME_SIZE
	}
	return frameSize
}

// readFrame fills frame from r. A positive timeout bounds the read when r
// supports deadlines.
func readFrame(r io.Reader, frame []byte, timeout time.Duration) error {
	if d, ok := r.(readDeadliner); ok && timeout > 0 {
		_ = d.SetReadDeadline(time.Now().Add(timeout))
		defer d.SetReadDeadline(time.Time{})
	}
	_, err := io.ReadFull(r, frame)
	return err
}

// ReadFixedFrames hands each frameSize-byte frame read from r to handler.
// Every frame is a fresh slice the handler may keep. A clean end of stream
// returns nil.
func ReadFixedFrames(
	ctx context.Context,
	r io.Reader,
	frameSize int,
	handler func(frame []byte),
) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	frameSize = frameSizeOr(frameSize)

	for ctx.Err() == nil {
		frame := make([]byte, frameSize)
		err := readFrame(r, frame, 0)
		switch {
		case err == nil:
			handler(frame)
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return nil
		default:
			return fmt.Errorf("read frame: %w", err)
		}
	}
	return nil
}

// WriteFixedFrame zero-pads payload to frameSize and writes it as one frame.
// A positive timeout bounds the write when w supports deadlines.
func WriteFixedFrame(
	w io.Writer,
	payload []byte,
	frameSize int,
	timeout time.Duration,
) (int, error) {
	if w == nil {
		return 0, fmt.Errorf("writer is nil")
	}
	frameSize = frameSizeOr(frameSize)
	if len(payload) > frameSize {
		return 0, fmt.Errorf("payload too large: %d > %d", len(payload), frameSize)
	}

	frame := make([]byte, frameSize)
	copy(frame, payload)

	if d, ok := w.(writeDeadliner); ok && timeout > 0 {
		_ = d.SetWriteDeadline(time.Now().Add(timeout))
		defer d.SetWriteDeadline(time.Time{})
	}

	n, err := w.Write(frame)
	if err == nil && n < frameSize {
		err = io.ErrShortWrite
	}
	if err != nil {
		return n, fmt.Errorf("write frame: %w", err)
	}
	return n, nil
}
