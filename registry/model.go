// Package registry maps a paired device's model to its packet dialect
// and module set, dials its transport, and caches the resulting live
// device handle by MAC address so repeated lookups for the same
// physical headset share one connection.
package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Oppzippy/OpenSCQ30-sub001/device"
	"github.com/Oppzippy/OpenSCQ30-sub001/ioctl"
	"github.com/Oppzippy/OpenSCQ30-sub001/settings"
	"github.com/Oppzippy/OpenSCQ30-sub001/soundcore/a3933"
	"github.com/Oppzippy/OpenSCQ30-sub001/soundcore/demo"
	"github.com/Oppzippy/OpenSCQ30-sub001/transport"
	"github.com/Oppzippy/OpenSCQ30-sub001/wire"
)

// DeviceModel is the closed enum of known packet dialects/module sets.
// Each variant is backed by exactly one per-model package under
// soundcore/.
type DeviceModel uint16

const (
	DeviceModelDemo DeviceModel = iota
	DeviceModelA3933
)

var deviceModelNames = map[DeviceModel]string{
	DeviceModelDemo:  "demo",
	DeviceModelA3933: "A3933",
}

func (m DeviceModel) String() string {
	if s, ok := deviceModelNames[m]; ok {
		return s
	}
	return "unknown"
}

// DeviceModelFromName looks up a model by its String() name.
func DeviceModelFromName(name string) (DeviceModel, bool) {
	for id, n := range deviceModelNames {
		if n == name {
			return id, true
		}
	}
	return 0, false
}

// Device is the model-agnostic handle presented to callers: the
// type-erased counterpart of device.Device[S], dynamically dispatching
// to whichever concrete model backs a given PairedDevice. This is the
// "OpenSCQ30Device contract" boundary; inside a model, composition
// stays monomorphic (device.Device[S] itself).
type Device interface {
	Categories() []settings.CategoryId
	SettingsInCategory(category settings.CategoryId) []settings.SettingId
	Setting(id settings.SettingId) (settings.Setting, bool, error)
	SetSettingValues(ctx context.Context, fields []device.SettingWrite) error
	WatchForChanges(ctx context.Context) <-chan device.ChangeNotification
	// Close releases the underlying transport and controller.
	Close() error
}

// modelHandle adapts a *device.Device[S] plus the controller and
// transport backing it to the non-generic Device interface.
type modelHandle[S any] struct {
	dev        *device.Device[S]
	controller *ioctl.Controller
	t          transport.Transport
}

func (h *modelHandle[S]) Categories() []settings.CategoryId { return h.dev.Categories() }
func (h *modelHandle[S]) SettingsInCategory(c settings.CategoryId) []settings.SettingId {
	return h.dev.SettingsInCategory(c)
}
func (h *modelHandle[S]) Setting(id settings.SettingId) (settings.Setting, bool, error) {
	return h.dev.Setting(id)
}
func (h *modelHandle[S]) SetSettingValues(ctx context.Context, fields []device.SettingWrite) error {
	return h.dev.SetSettingValues(ctx, fields)
}
func (h *modelHandle[S]) WatchForChanges(ctx context.Context) <-chan device.ChangeNotification {
	return h.dev.WatchForChanges(ctx)
}
func (h *modelHandle[S]) Close() error {
	// controller first: it closes Unsolicited(), which is what makes
	// forwardUnsolicited stop calling dev.HandlePacket, so dev.Close()
	// doesn't race a send against its now-closed command channel.
	if h.controller != nil {
		h.controller.Close()
	}
	h.dev.Close()
	if h.t != nil {
		return h.t.Close()
	}
	return nil
}

// dial opens the transport for model at mac and builds its device,
// returning the type-erased Device handle. logger is shared with the
// controller and device it builds, so every log line for one physical
// connection carries the same sink.
func dial(ctx context.Context, model DeviceModel, mac transport.MAC, retry []time.Duration, logger *log.Logger) (Device, error) {
	switch model {
	case DeviceModelDemo:
		return &modelHandle[demo.State]{
			dev: func() *device.Device[demo.State] {
				d, _ := demo.NewDevice(demo.NewState(), &demo.NoopSender{})
				d.SetLogger(logger)
				return d
			}(),
		}, nil
	case DeviceModelA3933:
		rfcomm, err := transport.DialRFCOMM(mac, 1)
		if err != nil {
			return nil, fmt.Errorf("registry: dial %x: %w", mac, err)
		}
		controller := ioctl.New(ctx, rfcomm, wire.ChecksumSum8, retry)
		controller.SetLogger(logger)
		dev, err := a3933.NewDevice(requestInitialState(ctx, controller), controller)
		if err != nil {
			controller.Close()
			rfcomm.Close()
			return nil, err
		}
		dev.SetLogger(logger)
		go forwardUnsolicited(ctx, controller, dev)
		return &modelHandle[a3933.State]{dev: dev, controller: controller, t: rfcomm}, nil
	default:
		return nil, fmt.Errorf("registry: unknown device model %d", model)
	}
}

// requestInitialState sends the model's state-snapshot request and
// decodes the reply, falling back to a zero-value State (later
// refreshed by an unsolicited snapshot) if the device does not respond
// in time.
func requestInitialState(ctx context.Context, controller *ioctl.Controller) a3933.State {
	reply, err := controller.SendWithResponse(ctx, a3933.RequestStateFrame())
	if err != nil {
		return a3933.State{}
	}
	state, _, ok := a3933.DecodeState(reply.Body)
	if !ok {
		return a3933.State{}
	}
	return state
}

// forwardUnsolicited routes inbound frames the controller did not match
// to a waiting request into the device's packet handlers, per §4's
// "unmatched frames fold into state" contract.
func forwardUnsolicited(ctx context.Context, controller *ioctl.Controller, dev *device.Device[a3933.State]) {
	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-controller.Unsolicited():
			if !ok {
				return
			}
			dev.HandlePacket(frame)
		}
	}
}
