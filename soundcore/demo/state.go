// Package demo implements a synthetic Soundcore-dialect model with no
// real wire transport, for exercising the settings/device engine in
// tests and the CLI without a physical headset attached.
package demo

import "github.com/Oppzippy/OpenSCQ30-sub001/structures"

// EqualizerChannels and EqualizerBands describe the demo model's
// equalizer shape: single-channel, 8 tunable bands, no extra bands and
// no hear-ID support, the simplest case the EqualizerModifier supports
// (EqualizerVariantPlain).
const (
	EqualizerChannels = 1
	EqualizerBands    = 8
)

// State is the demo model's full state. It never touches the wire; its
// shape exists purely so the same settings handler / state modifier /
// device.New wiring used by real models can be exercised without
// hardware.
type State struct {
	Battery   structures.BatteryLevel
	Firmware  structures.FirmwareVersion
	Serial    structures.SerialNumber
	SoundModes structures.SoundModes
	Equalizer structures.EqualizerConfiguration
	Buttons   structures.ButtonStatusCollection
}

// NewState builds a demo State with a plausible baseline reading:
// normal ambient mode, a flat equalizer, half battery, all buttons at
// their default action.
func NewState() State {
	return State{
		Battery:  3,
		Firmware: structures.FirmwareVersion{Major: 1, Minor: 0},
		Serial:   structures.SerialNumber("DEMO0000000000"),
		SoundModes: structures.SoundModes{
			AmbientSoundMode: structures.AmbientSoundModeNormal,
		},
		Equalizer: structures.NewCustomEqualizerConfiguration([]structures.VolumeAdjustments{
			structures.NewVolumeAdjustments(make([]int16, EqualizerBands)),
		}),
		Buttons: structures.ButtonStatusCollection{
			LeftDoubleClick:  structures.ButtonStatus{IsTWS: true, TWSConnectedAction: structures.ButtonActionVolumeDown, TWSDisconnectedAction: structures.ButtonActionVolumeDown},
			LeftLongPress:    structures.ButtonStatus{IsTWS: true, TWSConnectedAction: structures.ButtonActionAmbientSoundMode, TWSDisconnectedAction: structures.ButtonActionAmbientSoundMode},
			RightDoubleClick: structures.ButtonStatus{IsTWS: true, TWSConnectedAction: structures.ButtonActionVolumeUp, TWSDisconnectedAction: structures.ButtonActionVolumeUp},
			RightLongPress:   structures.ButtonStatus{IsTWS: true, TWSConnectedAction: structures.ButtonActionVoiceAssistant, TWSDisconnectedAction: structures.ButtonActionVoiceAssistant},
			LeftSingleClick:  structures.ButtonStatus{Enabled: true, Action: structures.ButtonActionPlayPause},
			RightSingleClick: structures.ButtonStatus{Enabled: true, Action: structures.ButtonActionPlayPause},
		},
	}
}
