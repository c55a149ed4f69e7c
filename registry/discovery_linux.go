//go:build linux

package registry

import (
	"context"

	"github.com/jochenvg/go-udev"
)

// Discovery enumerates already-bound RFCOMM TTY nodes via udev.
// Bluetooth pairing itself is out of scope: this only surfaces devices
// the OS already knows about (spec.md §1's non-goal on generic
// Bluetooth discovery/pairing).
type Discovery struct {
	u udev.Udev
}

// NewDiscovery builds a Discovery backed by the host's udev database.
func NewDiscovery() *Discovery {
	return &Discovery{u: udev.Udev{}}
}

// DiscoveredNode is one rfcomm TTY node udev currently reports, with
// whatever bluetooth address property it carries (empty if udev did not
// expose one for this node).
type DiscoveredNode struct {
	DevicePath string
	Address    string
}

// Enumerate lists currently present rfcomm TTY nodes.
func (d *Discovery) Enumerate() ([]DiscoveredNode, error) {
	e := d.u.NewEnumerate()
	if err := e.AddMatchSubsystem("tty"); err != nil {
		return nil, err
	}
	if err := e.AddMatchProperty("ID_BUS", "bluetooth"); err != nil {
		return nil, err
	}
	devices, err := e.Devices()
	if err != nil {
		return nil, err
	}

	out := make([]DiscoveredNode, 0, len(devices))
	for _, dev := range devices {
		out = append(out, DiscoveredNode{
			DevicePath: dev.Devnode(),
			Address:    dev.PropertyValue("ID_BUS_ADDRESS"),
		})
	}
	return out, nil
}

// Watch streams rfcomm TTY nodes appearing and disappearing until ctx
// is done. action is "add" or "remove", matching udev's own vocabulary.
func (d *Discovery) Watch(ctx context.Context) (<-chan DiscoveredNode, <-chan string, error) {
	m := d.u.NewMonitorFromNetlink("udev")
	if err := m.FilterAddMatchSubsystem("tty"); err != nil {
		return nil, nil, err
	}

	deviceCh, errCh, err := m.DeviceChan(ctx)
	if err != nil {
		return nil, nil, err
	}

	nodes := make(chan DiscoveredNode)
	actions := make(chan string)
	go func() {
		defer close(nodes)
		defer close(actions)
		for {
			select {
			case <-ctx.Done():
				return
			case dev, ok := <-deviceCh:
				if !ok {
					return
				}
				if dev.PropertyValue("ID_BUS") != "bluetooth" {
					continue
				}
				nodes <- DiscoveredNode{DevicePath: dev.Devnode(), Address: dev.PropertyValue("ID_BUS_ADDRESS")}
				actions <- dev.Action()
			case err, ok := <-errCh:
				if !ok {
					return
				}
				_ = err
			}
		}
	}()
	return nodes, actions, nil
}
