package transport

import (
	"io"
	"sync"
)

// Pipe is a test-only Transport backed by an in-memory reader/writer
// pair, typically one end of a github.com/creack/pty pseudo-terminal or
// a net.Pipe. It has no notion of real connection loss: Status reports
// Connected once and Disconnected when Close is called.
type Pipe struct {
	rw io.ReadWriteCloser

	frames chan []byte
	status chan ConnectionStatus

	closeOnce sync.Once
	readErr   error
}

// NewPipe wraps rw as a Transport, starting a background reader that
// forwards each successful Read as one delivery on Frames.
func NewPipe(rw io.ReadWriteCloser) *Pipe {
	p := &Pipe{
		rw:     rw,
		frames: make(chan []byte, 64),
		status: make(chan ConnectionStatus, 2),
	}
	p.status <- Connected
	go p.readLoop()
	return p
}

func (p *Pipe) readLoop() {
	defer close(p.frames)
	buf := make([]byte, 4096)
	for {
		n, err := p.rw.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			p.frames <- chunk
		}
		if err != nil {
			p.readErr = err
			p.status <- Disconnected
			return
		}
	}
}

func (p *Pipe) Write(data []byte) error {
	_, err := p.rw.Write(data)
	return err
}

func (p *Pipe) Frames() <-chan []byte {
	return p.frames
}

func (p *Pipe) Status() <-chan ConnectionStatus {
	return p.status
}

func (p *Pipe) Close() error {
	var err error
	p.closeOnce.Do(func() {
		err = p.rw.Close()
	})
	return err
}
