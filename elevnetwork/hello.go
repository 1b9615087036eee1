package elevnetwork

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"
)

const (
	helloMagic   uint32 = 0x4C494654 // "LIFT"
	helloVersion uint32 = 1
	helloTimeout        = 2 * time.Second
)

func encodeHello() []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint32(b[0:4], helloMagic)
	binary.BigEndian.PutUint32(b[4:8], helloVersion)
	return b
}

func decodeHello(frame []byte) error {
	if len(frame) < 8 || binary.BigEndian.Uint32(frame[0:4]) != helloMagic {
		return fmt.Errorf("invalid hello")
	}
	if v := binary.BigEndian.Uint32(frame[4:8]); v != helloVersion {
		return fmt.Errorf("hello version %d, want %d", v, helloVersion)
	}
	return nil
}

// exchangeHello runs the one-frame greeting in both directions. The dialing
// side speaks first.
func exchangeHello(st io.ReadWriter, outbound bool, frameSize int) error {
	if st == nil {
		return fmt.Errorf("stream is nil")
	}
	if outbound {
		if err := writeHelloFrame(st, frameSize); err != nil {
			return fmt.Errorf("send hello: %w", err)
		}
		if err := readHelloFrame(st, frameSize); err != nil {
			return fmt.Errorf("read hello: %w", err)
		}
		return nil
	}

	if err := readHelloFrame(st, frameSize); err != nil {
		return fmt.Errorf("read hello: %w", err)
	}
	if err := writeHelloFrame(st, frameSize); err != nil {
		return fmt.Errorf("send hello: %w", err)
	}
	return nil
}

func readHelloFrame(r io.Reader, frameSize int) error {
	frame := make([]byte, frameSizeOr(frameSize))
	if err := readFrame(r, frame, helloTimeout); err != nil {
		return err
	}
	return decodeHello(frame)
}

func writeHelloFrame(w io.Writer, frameSize int) error {
	_, err := WriteFixedFrame(w, encodeHello(), frameSize, helloTimeout)
	return err
}
