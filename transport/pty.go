package transport

import (
	"fmt"
	"os"

	"github.com/creack/pty"
)

// OpenPTY opens a fresh pseudo-terminal pair and wraps its master side
// as a Pipe Transport. The returned slave file stands in for the far
// end of a real RFCOMM/serial link — tests write device-side frames to
// it and read host-side frames from it, without needing real Bluetooth
// hardware or a real serial device node.
func OpenPTY() (*Pipe, *os.File, error) {
	master, slave, err := pty.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("transport: open pty: %w", err)
	}
	return NewPipe(master), slave, nil
}
