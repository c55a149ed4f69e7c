package demo

import (
	"context"

	"github.com/Oppzippy/OpenSCQ30-sub001/device"
	"github.com/Oppzippy/OpenSCQ30-sub001/settings"
	"github.com/Oppzippy/OpenSCQ30-sub001/soundcore"
	"github.com/Oppzippy/OpenSCQ30-sub001/structures"
	"github.com/Oppzippy/OpenSCQ30-sub001/wire"
)

// NoopSender is the demo model's PacketSender: there is no real
// transport, so every send is recorded (for tests asserting a modifier
// fired) and immediately "acknowledged" with an empty inbound frame.
type NoopSender struct {
	Sent []wire.Frame
}

func (s *NoopSender) SendWithResponse(ctx context.Context, outbound wire.Frame) (wire.Frame, error) {
	s.Sent = append(s.Sent, outbound)
	return wire.Frame{Direction: wire.Inbound, Command: outbound.Command}, nil
}

func soundModeModifier() soundcore.SoundModeModifier[State] {
	return soundcore.SoundModeModifier[State]{
		Get: func(s *State) structures.SoundModes { return s.SoundModes },
		BuildPacket: func(sm structures.SoundModes) wire.Frame {
			return wire.Frame{Direction: wire.Outbound, Command: soundcore.CmdSetSoundMode, Body: sm.Encode()}
		},
	}
}

func equalizerModifier() soundcore.EqualizerModifier[State] {
	return soundcore.EqualizerModifier[State]{
		Variant:      soundcore.EqualizerVariantPlain,
		GetEqualizer: func(s *State) structures.EqualizerConfiguration { return s.Equalizer },
	}
}

func modules() []device.Module[State] {
	return []device.Module[State]{
		{
			Category: device.CategoryAndHandler{Category: settings.CategorySoundModes, Handler: soundModesHandler{}},
			Modifier: soundModeModifier(),
		},
		{
			Category: device.CategoryAndHandler{Category: settings.CategoryEqualizer, Handler: equalizerHandler{}},
			Modifier: equalizerModifier(),
		},
		{
			Category: device.CategoryAndHandler{Category: settings.CategoryButtonConfiguration, Handler: buttonHandler{}},
		},
		{
			Category: device.CategoryAndHandler{Category: settings.CategoryDeviceInformation, Handler: deviceInfoHandler{}},
		},
	}
}

// NewDevice builds a demo *device.Device seeded with initialState,
// sending through sender (typically a *NoopSender).
func NewDevice(initialState State, sender device.PacketSender) (*device.Device[State], error) {
	return device.New(initialState, sender, modules())
}
