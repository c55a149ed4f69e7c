package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Oppzippy/OpenSCQ30-sub001/ioctl"
	"github.com/Oppzippy/OpenSCQ30-sub001/transport"
)

// PairedDevice associates a MAC with the model used to talk to it.
type PairedDevice struct {
	Name string
	MAC  transport.MAC
	Model DeviceModel
}

// cacheEntry wraps a live Device with a reference count. The registry
// is not a source of truth: a zero-count entry is evicted and its
// transport closed, so a later Acquire for the same MAC reconnects
// fresh rather than resurrecting stale state.
type cacheEntry struct {
	device Device
	refs   int
}

// Registry caches live device handles by MAC so concurrent callers
// acquiring the same physical headset share one connection instead of
// dialing twice.
type Registry struct {
	mu     sync.Mutex
	cache  map[transport.MAC]*cacheEntry
	retry  []time.Duration
	logger *log.Logger
}

// New builds an empty Registry whose dialed controllers retry sends on
// ioctl.DefaultRetrySchedule.
func New() *Registry {
	return NewWithRetrySchedule(ioctl.DefaultRetrySchedule)
}

// NewWithRetrySchedule builds an empty Registry whose dialed
// controllers retry sends on schedule, normally config.Config's
// retry settings via ioctl.RetrySchedule.
func NewWithRetrySchedule(schedule []time.Duration) *Registry {
	return &Registry{cache: make(map[transport.MAC]*cacheEntry), retry: schedule, logger: log.Default()}
}

// SetLogger replaces the registry's logger, normally config.NewLogger's
// shared instance in place of the package default.
func (r *Registry) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// Acquire returns the live Device for paired, dialing it if no cached
// handle exists. Callers must call Release when done with the handle.
func (r *Registry) Acquire(ctx context.Context, paired PairedDevice) (Device, error) {
	r.mu.Lock()
	if entry, ok := r.cache[paired.MAC]; ok {
		entry.refs++
		r.mu.Unlock()
		return entry.device, nil
	}
	r.mu.Unlock()

	r.logger.Debug("dialing device", "mac", fmt.Sprintf("%x", paired.MAC), "model", paired.Model)
	dev, err := dial(ctx, paired.Model, paired.MAC, r.retry, r.logger)
	if err != nil {
		r.logger.Error("dial failed", "mac", fmt.Sprintf("%x", paired.MAC), "err", err)
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.cache[paired.MAC]; ok {
		// lost a race with a concurrent Acquire; keep the winner, close ours.
		entry.refs++
		dev.Close()
		return entry.device, nil
	}
	r.cache[paired.MAC] = &cacheEntry{device: dev, refs: 1}
	return dev, nil
}

// Release drops one reference to mac's cached handle. When the count
// reaches zero the handle is closed and evicted.
func (r *Registry) Release(mac transport.MAC) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.cache[mac]
	if !ok {
		return fmt.Errorf("registry: no cached handle for %x", mac)
	}
	entry.refs--
	if entry.refs > 0 {
		return nil
	}
	delete(r.cache, mac)
	r.logger.Debug("evicting device", "mac", fmt.Sprintf("%x", mac))
	return entry.device.Close()
}

// Len reports how many distinct MACs currently have a live handle, for
// tests and diagnostics.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}
