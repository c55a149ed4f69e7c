package ioctl

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oppzippy/OpenSCQ30-sub001/transport"
	"github.com/Oppzippy/OpenSCQ30-sub001/wire"
)

// fastRetrySchedule is a much shorter schedule than
// DefaultRetrySchedule, so retry/timeout tests run in milliseconds
// instead of seconds.
var fastRetrySchedule = []time.Duration{20 * time.Millisecond, 20 * time.Millisecond, 20 * time.Millisecond}

// newTestPair returns a Controller wired to one end of an in-memory
// duplex pipe, and the raw net.Conn for the "device" side the test
// drives directly. A nil schedule uses DefaultRetrySchedule.
func newTestPair(t *testing.T, schedule []time.Duration) (*Controller, net.Conn, context.CancelFunc) {
	t.Helper()
	hostConn, deviceConn := net.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	c := New(ctx, transport.NewPipe(hostConn), wire.ChecksumSum8, schedule)
	t.Cleanup(func() {
		cancel()
		c.Close()
		deviceConn.Close()
	})
	return c, deviceConn, cancel
}

func readFrame(t *testing.T, conn net.Conn) wire.Frame {
	t.Helper()
	buf := make([]byte, 4096)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	frame, _, err := wire.Decode(buf[:n], wire.ChecksumSum8)
	require.NoError(t, err)
	return frame
}

func writeFrame(t *testing.T, conn net.Conn, f wire.Frame) {
	t.Helper()
	encoded, err := wire.Encode(f, wire.ChecksumSum8)
	require.NoError(t, err)
	_, err = conn.Write(encoded)
	require.NoError(t, err)
}

func TestSendWithResponseRoundTrip(t *testing.T) {
	c, deviceConn, _ := newTestPair(t, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		req := readFrame(t, deviceConn)
		assert.Equal(t, wire.Command{0x01, 0x01}, req.Command)
		writeFrame(t, deviceConn, wire.Frame{Direction: wire.Inbound, Command: req.Command, Body: []byte{0xAA}})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	resp, err := c.SendWithResponse(ctx, wire.Frame{Direction: wire.Outbound, Command: wire.Command{0x01, 0x01}})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA}, resp.Body)
	<-done
}

func TestSendWithResponseRetriesThenSucceeds(t *testing.T) {
	c, deviceConn, _ := newTestPair(t, fastRetrySchedule)

	writes := 0
	done := make(chan struct{})
	go func() {
		defer close(done)
		// Drop the first two attempts, answer the third.
		for writes < 2 {
			readFrame(t, deviceConn)
			writes++
		}
		req := readFrame(t, deviceConn)
		writes++
		writeFrame(t, deviceConn, wire.Frame{Direction: wire.Inbound, Command: req.Command, Body: []byte{1}})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := c.SendWithResponse(ctx, wire.Frame{Direction: wire.Outbound, Command: wire.Command{0x02, 0x83}})
	require.NoError(t, err)
	<-done
	assert.Equal(t, 3, writes)
}

func TestSendWithResponseTimesOutAfterThreeAttempts(t *testing.T) {
	c, deviceConn, _ := newTestPair(t, fastRetrySchedule)

	var writes int
	var mu sync.Mutex
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			buf := make([]byte, 4096)
			n, err := deviceConn.Read(buf)
			if err != nil {
				return
			}
			if n > 0 {
				mu.Lock()
				writes++
				mu.Unlock()
			}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := c.SendWithResponse(ctx, wire.Frame{Direction: wire.Outbound, Command: wire.Command{0x06, 0x81}})
	assert.ErrorIs(t, err, ErrActionTimedOut)

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, 3, writes)
	mu.Unlock()
}

func TestSendWithResponseDifferentCommandsCompleteOutOfOrder(t *testing.T) {
	c, deviceConn, _ := newTestPair(t, nil)

	reqs := make(chan wire.Frame, 2)
	done := make(chan struct{})
	go func() {
		defer close(done)
		reqs <- readFrame(t, deviceConn)
		reqs <- readFrame(t, deviceConn)
		// Answer the second request's command first.
		first := <-reqs
		second := <-reqs
		writeFrame(t, deviceConn, wire.Frame{Direction: wire.Inbound, Command: second.Command, Body: []byte{2}})
		writeFrame(t, deviceConn, wire.Frame{Direction: wire.Inbound, Command: first.Command, Body: []byte{1}})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	results := make(chan struct {
		cmd  wire.Command
		body []byte
	}, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		resp, err := c.SendWithResponse(ctx, wire.Frame{Direction: wire.Outbound, Command: wire.Command{0x01, 0x01}})
		require.NoError(t, err)
		results <- struct {
			cmd  wire.Command
			body []byte
		}{wire.Command{0x01, 0x01}, resp.Body}
	}()
	go func() {
		defer wg.Done()
		resp, err := c.SendWithResponse(ctx, wire.Frame{Direction: wire.Outbound, Command: wire.Command{0x02, 0x83}})
		require.NoError(t, err)
		results <- struct {
			cmd  wire.Command
			body []byte
		}{wire.Command{0x02, 0x83}, resp.Body}
	}()
	wg.Wait()
	close(results)
	<-done

	var bodies [][]byte
	for r := range results {
		bodies = append(bodies, r.body)
	}
	assert.ElementsMatch(t, [][]byte{{1}, {2}}, bodies)
}

func TestSendWithResponseSameCommandSerializesRequests(t *testing.T) {
	c, deviceConn, _ := newTestPair(t, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 2; i++ {
			req := readFrame(t, deviceConn)
			writeFrame(t, deviceConn, wire.Frame{Direction: wire.Inbound, Command: req.Command, Body: []byte{byte(i)}})
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var order []byte
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			resp, err := c.SendWithResponse(ctx, wire.Frame{Direction: wire.Outbound, Command: wire.Command{0x01, 0x01}})
			require.NoError(t, err)
			mu.Lock()
			order = append(order, resp.Body[0])
			mu.Unlock()
		}()
		time.Sleep(5 * time.Millisecond) // keep request issue order deterministic
	}
	wg.Wait()
	<-done
	assert.Equal(t, []byte{0, 1}, order)
}

func TestUnsolicitedFrameDoesNotConsumeWaitingRequest(t *testing.T) {
	c, deviceConn, _ := newTestPair(t, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		req := readFrame(t, deviceConn)
		// An unsolicited frame on a different command arrives first.
		writeFrame(t, deviceConn, wire.Frame{Direction: wire.Inbound, Command: wire.Command{0x09, 0x09}, Body: []byte{0xFF}})
		writeFrame(t, deviceConn, wire.Frame{Direction: wire.Inbound, Command: req.Command, Body: []byte{0x01}})
	}()

	var unsolicited wire.Frame
	gotUnsolicited := make(chan struct{})
	go func() {
		unsolicited = <-c.Unsolicited()
		close(gotUnsolicited)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	resp, err := c.SendWithResponse(ctx, wire.Frame{Direction: wire.Outbound, Command: wire.Command{0x01, 0x01}})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, resp.Body)

	<-gotUnsolicited
	assert.Equal(t, wire.Command{0x09, 0x09}, unsolicited.Command)
	<-done
}
