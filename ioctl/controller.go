// Package ioctl implements the packet I/O controller: a single reader
// loop over one duplex byte stream, a multi-queue of outstanding
// requests keyed by inbound command id, and a retrying
// send-and-wait-for-response call matching the device's expected ack
// behavior.
package ioctl

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Oppzippy/OpenSCQ30-sub001/transport"
	"github.com/Oppzippy/OpenSCQ30-sub001/wire"
)

// ErrActionTimedOut is returned by SendWithResponse after the retry
// schedule is exhausted with no matching response.
var ErrActionTimedOut = errors.New("ioctl: action timed out")

// DefaultRetrySchedule is the wait-before-resend schedule observed on
// real devices: 500ms, 1s, 1.5s (base 500ms * attempt number), three
// attempts total. config.Default's retry settings reproduce it.
var DefaultRetrySchedule = []time.Duration{
	500 * time.Millisecond,
	1000 * time.Millisecond,
	1500 * time.Millisecond,
}

// RetrySchedule builds an attempts-long schedule of base, 2*base,
// 3*base, ..., the general form of DefaultRetrySchedule.
func RetrySchedule(base time.Duration, attempts int) []time.Duration {
	schedule := make([]time.Duration, attempts)
	for i := range schedule {
		schedule[i] = base * time.Duration(i+1)
	}
	return schedule
}

type request struct {
	outbound wire.Frame
	result   chan result
	started  chan struct{} // closed when this request becomes the active head
}

type result struct {
	frame wire.Frame
	err   error
}

// Controller owns one transport connection and correlates outbound
// requests with inbound responses by command id.
type Controller struct {
	t      transport.Transport
	kind   wire.ChecksumKind
	retry  []time.Duration
	logger *log.Logger

	mu     sync.Mutex
	queues map[wire.Command][]*request
	active map[wire.Command]*request

	unsolicited chan wire.Frame

	closeOnce sync.Once
	done      chan struct{}
}

// New builds a Controller reading frames from t and decoding them with
// kind's checksum discipline, retrying sends on schedule. It starts the
// reader loop immediately and stops it when ctx is done or Close is
// called. A nil or empty schedule falls back to DefaultRetrySchedule.
func New(ctx context.Context, t transport.Transport, kind wire.ChecksumKind, schedule []time.Duration) *Controller {
	if len(schedule) == 0 {
		schedule = DefaultRetrySchedule
	}
	c := &Controller{
		t:           t,
		kind:        kind,
		retry:       schedule,
		logger:      log.Default(),
		queues:      make(map[wire.Command][]*request),
		active:      make(map[wire.Command]*request),
		unsolicited: make(chan wire.Frame, 16),
		done:        make(chan struct{}),
	}
	go c.readLoop(ctx)
	return c
}

// SetLogger replaces the controller's logger, normally
// config.NewLogger's shared instance in place of the package default.
func (c *Controller) SetLogger(logger *log.Logger) {
	c.logger = logger
}

// Unsolicited returns the channel of inbound frames that did not match
// any waiting request.
func (c *Controller) Unsolicited() <-chan wire.Frame {
	return c.unsolicited
}

// Close stops the reader loop and cancels every outstanding request.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// readLoop accumulates raw deliveries into one buffer and repeatedly
// decodes frames from its front, so a frame split across two
// deliveries (S5) is reassembled rather than dropped. Malformed or
// checksum-mismatched frames are logged-and-dropped per §7: the bytes
// Decode reports as consumed are discarded and parsing resumes from
// there, since the device always resends state on its next change.
func (c *Controller) readLoop(ctx context.Context) {
	defer close(c.unsolicited)
	frames := c.t.Frames()
	var buf []byte
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case raw, ok := <-frames:
			if !ok {
				return
			}
			buf = append(buf, raw...)
			for {
				frame, n, err := wire.Decode(buf, c.kind)
				if err == wire.ErrIncomplete {
					break
				}
				if err != nil {
					c.logger.Warn("dropping malformed frame", "err", err, "consumed", n)
					buf = buf[n:]
					continue
				}
				buf = buf[n:]
				c.logger.Debug("received frame", "command", frame.Command, "bytes", len(frame.Body))
				c.deliver(frame)
			}
		}
	}
}

func (c *Controller) deliver(frame wire.Frame) {
	c.mu.Lock()
	active := c.active[frame.Command]
	if active == nil {
		c.mu.Unlock()
		select {
		case c.unsolicited <- frame:
		default:
		}
		return
	}
	delete(c.active, frame.Command)
	c.promoteNextLocked(frame.Command)
	c.mu.Unlock()

	select {
	case active.result <- result{frame: frame}:
	default:
	}
}

// promoteNextLocked must be called with c.mu held. It pops the next
// waiter for cmd, if any, and marks it active by closing its started
// barrier.
func (c *Controller) promoteNextLocked(cmd wire.Command) {
	q := c.queues[cmd]
	if len(q) == 0 {
		return
	}
	next := q[0]
	c.queues[cmd] = q[1:]
	c.active[cmd] = next
	close(next.started)
}

// enqueue registers req on its command's queue. If the queue was
// empty, req becomes immediately active.
func (c *Controller) enqueue(req *request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cmd := req.outbound.Command
	if c.active[cmd] == nil {
		c.active[cmd] = req
		close(req.started)
		return
	}
	c.queues[cmd] = append(c.queues[cmd], req)
}

// cancel removes req from its command's queue (if still waiting) or,
// if it was active, clears the active slot and promotes the next
// waiter.
func (c *Controller) cancel(req *request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cmd := req.outbound.Command
	if c.active[cmd] == req {
		delete(c.active, cmd)
		c.promoteNextLocked(cmd)
		return
	}
	q := c.queues[cmd]
	for i, r := range q {
		if r == req {
			c.queues[cmd] = append(q[:i], q[i+1:]...)
			return
		}
	}
}

// SendWithResponse implements §4.4's algorithm: enqueue on the
// command's queue (requests sharing an inbound command id are
// serialized), wait to become active, write the frame, then retry on
// timeouts per c.retry before returning ErrActionTimedOut.
func (c *Controller) SendWithResponse(ctx context.Context, outbound wire.Frame) (wire.Frame, error) {
	req := &request{
		outbound: outbound,
		result:   make(chan result, 1),
		started:  make(chan struct{}),
	}
	c.enqueue(req)
	defer c.cancel(req)

	select {
	case <-ctx.Done():
		return wire.Frame{}, ctx.Err()
	case <-c.done:
		return wire.Frame{}, fmt.Errorf("ioctl: controller closed")
	case <-req.started:
	}

	encoded, err := wire.Encode(outbound, c.kind)
	if err != nil {
		return wire.Frame{}, err
	}

	for attempt := 0; attempt < len(c.retry); attempt++ {
		if err := c.t.Write(encoded); err != nil {
			return wire.Frame{}, fmt.Errorf("ioctl: write: %w", err)
		}

		timer := time.NewTimer(c.retry[attempt])
		select {
		case res := <-req.result:
			timer.Stop()
			return res.frame, res.err
		case <-ctx.Done():
			timer.Stop()
			return wire.Frame{}, ctx.Err()
		case <-c.done:
			timer.Stop()
			return wire.Frame{}, fmt.Errorf("ioctl: controller closed")
		case <-timer.C:
			c.logger.Warn("no response, retrying", "command", outbound.Command, "attempt", attempt+1)
		}
	}
	c.logger.Error("action timed out", "command", outbound.Command, "attempts", len(c.retry))
	return wire.Frame{}, ErrActionTimedOut
}
