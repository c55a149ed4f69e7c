//go:build linux

package transport

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// RFCOMM is a Transport over a Linux AF_BLUETOOTH RFCOMM socket
// connected directly to a paired headphone's MAC address, bypassing
// the /dev/rfcommN TTY binding the Serial backend expects.
type RFCOMM struct {
	f *os.File

	frames chan []byte
	status chan ConnectionStatus
}

// MAC is a 6-byte Bluetooth device address in the order
// golang.org/x/sys/unix.SockaddrRFCOMM expects.
type MAC [6]byte

// DialRFCOMM opens an RFCOMM socket to mac on the given channel
// (headphone control channels are almost always 1, but the registry
// may discover otherwise).
func DialRFCOMM(mac MAC, channel uint8) (*RFCOMM, error) {
	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_STREAM, unix.BTPROTO_RFCOMM)
	if err != nil {
		return nil, fmt.Errorf("transport: open rfcomm socket: %w", err)
	}

	addr := &unix.SockaddrRFCOMM{Addr: mac, Channel: channel}
	if err := unix.Connect(fd, addr); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("transport: connect rfcomm %x chan %d: %w", mac, channel, err)
	}

	r := &RFCOMM{
		f:      os.NewFile(uintptr(fd), fmt.Sprintf("rfcomm-%x", mac)),
		frames: make(chan []byte, 64),
		status: make(chan ConnectionStatus, 2),
	}
	r.status <- Connected
	go r.readLoop()
	return r, nil
}

func (r *RFCOMM) readLoop() {
	defer close(r.frames)
	buf := make([]byte, 4096)
	for {
		n, err := r.f.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			r.frames <- chunk
		}
		if err != nil {
			r.status <- Disconnected
			return
		}
	}
}

func (r *RFCOMM) Write(data []byte) error {
	_, err := r.f.Write(data)
	if err != nil {
		return fmt.Errorf("transport: rfcomm write: %w", err)
	}
	return nil
}

func (r *RFCOMM) Frames() <-chan []byte {
	return r.frames
}

func (r *RFCOMM) Status() <-chan ConnectionStatus {
	return r.status
}

func (r *RFCOMM) Close() error {
	return r.f.Close()
}
