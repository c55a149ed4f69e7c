package transport

import (
	"fmt"

	"github.com/pkg/term"
)

// Serial is a Transport over a serial device node (typically an
// RFCOMM-bound TTY such as /dev/rfcomm0, or a USB serial bridge). Speed
// selection mirrors the teacher's serial_port_open: pass 0 to leave the
// port's current speed alone.
type Serial struct {
	fd *term.Term

	frames chan []byte
	status chan ConnectionStatus
}

// OpenSerial opens devicename in raw mode and, if baud is nonzero, sets
// its speed.
func OpenSerial(devicename string, baud int) (*Serial, error) {
	fd, err := term.Open(devicename, term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("transport: open serial port %s: %w", devicename, err)
	}

	if baud != 0 {
		if err := fd.SetSpeed(baud); err != nil {
			fd.Close()
			return nil, fmt.Errorf("transport: set speed %d on %s: %w", baud, devicename, err)
		}
	}

	s := &Serial{
		fd:     fd,
		frames: make(chan []byte, 64),
		status: make(chan ConnectionStatus, 2),
	}
	s.status <- Connected
	go s.readLoop()
	return s, nil
}

func (s *Serial) readLoop() {
	defer close(s.frames)
	buf := make([]byte, 4096)
	for {
		n, err := s.fd.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			s.frames <- chunk
		}
		if err != nil {
			s.status <- Disconnected
			return
		}
	}
}

func (s *Serial) Write(data []byte) error {
	n, err := s.fd.Write(data)
	if err != nil {
		return fmt.Errorf("transport: write: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("transport: short write: wrote %d of %d bytes", n, len(data))
	}
	return nil
}

func (s *Serial) Frames() <-chan []byte {
	return s.frames
}

func (s *Serial) Status() <-chan ConnectionStatus {
	return s.status
}

func (s *Serial) Close() error {
	return s.fd.Close()
}
