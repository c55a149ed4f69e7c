// Package store implements the persistent store: paired devices,
// per-model custom equalizer profiles, and per-model quick presets,
// held in a single JSON document behind a command-channel goroutine so
// all access is serialized on one owning thread (§5).
package store

import (
	"sort"

	"github.com/Oppzippy/OpenSCQ30-sub001/device"
	"github.com/Oppzippy/OpenSCQ30-sub001/registry"
	"github.com/Oppzippy/OpenSCQ30-sub001/transport"
)

// currentSchemaVersion is bumped whenever document.go's shape changes;
// Open runs every migration between a loaded document's recorded
// version and this one, right after Backend.Load.
const currentSchemaVersion = 1

// CustomEqualizerProfile is a user-named, model-scoped equalizer curve.
type CustomEqualizerProfile struct {
	Name              string  `json:"name"`
	VolumeAdjustments []int16 `json:"volumeAdjustments"`
}

// QuickPresetRecord is a stored QuickPreset plus the model it applies
// to, matching device.QuickPreset's field/enable-flag shape.
type QuickPresetRecord struct {
	Model  registry.DeviceModel `json:"model"`
	Preset device.QuickPreset   `json:"preset"`
}

// PairedDeviceRecord is a stored pairing.
type PairedDeviceRecord struct {
	Name  string               `json:"name"`
	MAC   transport.MAC        `json:"mac"`
	Model registry.DeviceModel `json:"model"`
}

// equalizerProfileSet is one model's saved profiles, kept sorted by
// name for deterministic fetch_all ordering.
type equalizerProfileSet struct {
	Model    registry.DeviceModel     `json:"model"`
	Profiles []CustomEqualizerProfile `json:"profiles"`
}

// Document is the full on-disk shape.
type Document struct {
	SchemaVersion int                    `json:"schemaVersion"`
	PairedDevices []PairedDeviceRecord   `json:"pairedDevices"`
	Equalizers    []equalizerProfileSet  `json:"equalizerProfiles"`
	QuickPresets  []QuickPresetRecord    `json:"quickPresets"`
}

// newDocument builds an empty, current-version Document, the starting
// point for a brand new store file.
func newDocument() Document {
	return Document{SchemaVersion: currentSchemaVersion}
}

func (d *Document) equalizerSet(model registry.DeviceModel) *equalizerProfileSet {
	for i := range d.Equalizers {
		if d.Equalizers[i].Model == model {
			return &d.Equalizers[i]
		}
	}
	d.Equalizers = append(d.Equalizers, equalizerProfileSet{Model: model})
	return &d.Equalizers[len(d.Equalizers)-1]
}

func sortProfileNames(profiles []CustomEqualizerProfile) {
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
}
