package transport

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeDeliversWritesAsFrames(t *testing.T) {
	a, b := net.Pipe()
	p := NewPipe(a)
	defer p.Close()

	go func() {
		_, _ = b.Write([]byte("hello"))
	}()

	select {
	case chunk := <-p.Frames():
		assert.Equal(t, []byte("hello"), chunk)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame delivery")
	}
}

func TestPipeWriteReachesOtherEnd(t *testing.T) {
	a, b := net.Pipe()
	p := NewPipe(a)
	defer p.Close()

	go func() {
		require.NoError(t, p.Write([]byte("world")))
	}()

	buf := make([]byte, 16)
	n, err := b.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "world", string(buf[:n]))
}

func TestPipeStatusReportsConnectedThenDisconnectedOnClose(t *testing.T) {
	a, b := net.Pipe()
	p := NewPipe(a)
	defer b.Close()

	assert.Equal(t, Connected, <-p.Status())
	require.NoError(t, p.Close())
	b.Close()

	select {
	case status := <-p.Status():
		assert.Equal(t, Disconnected, status)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for disconnected status")
	}
}

func TestOpenPTYRoundTrip(t *testing.T) {
	p, slave, err := OpenPTY()
	if err != nil {
		t.Skipf("pty unavailable in this environment: %v", err)
	}
	defer p.Close()
	defer slave.Close()

	go func() {
		_, _ = slave.Write([]byte("ping"))
	}()

	select {
	case chunk := <-p.Frames():
		assert.Equal(t, []byte("ping"), chunk)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for pty frame delivery")
	}

	require.NoError(t, p.Write([]byte("pong")))
	buf := make([]byte, 16)
	n, err := slave.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(buf[:n]))
}
