package a3933

import (
	"github.com/Oppzippy/OpenSCQ30-sub001/device"
	"github.com/Oppzippy/OpenSCQ30-sub001/settings"
	"github.com/Oppzippy/OpenSCQ30-sub001/soundcore"
	"github.com/Oppzippy/OpenSCQ30-sub001/structures"
	"github.com/Oppzippy/OpenSCQ30-sub001/wire"
)

// statePacketHandler folds an inbound state-snapshot response into the
// live state, the only unsolicited/response packet this model reacts
// to.
type statePacketHandler struct{}

func (statePacketHandler) HandlePacket(state *State, frame wire.Frame) bool {
	if frame.Command != soundcore.CmdStateSnapshot {
		return false
	}
	decoded, _, ok := DecodeState(frame.Body)
	if !ok {
		return false
	}
	*state = decoded
	return true
}

// soundModeModifier returns the §4.7 modifier wired to State's sound
// modes field.
func soundModeModifier() soundcore.SoundModeModifier[State] {
	return soundcore.SoundModeModifier[State]{
		Get:         func(s *State) structures.SoundModes { return s.SoundModes },
		BuildPacket: SetSoundModeFrame,
	}
}

// equalizerModifier returns the §4.8 modifier wired to State's
// equalizer field. A3933's equalizer write is always the plain 02 83
// packet, with no hear-ID payload: the device carries hear-ID state,
// but (per the original A3933Dispatcher::set_equalizer_configuration)
// that state never rides along on an equalizer write.
func equalizerModifier() soundcore.EqualizerModifier[State] {
	return soundcore.EqualizerModifier[State]{
		Variant:      soundcore.EqualizerVariantPlain,
		GetEqualizer: func(s *State) structures.EqualizerConfiguration { return s.Equalizer },
	}
}

// modules assembles the device's settings-handler/state-modifier/
// packet-handler registration list, in presentation order.
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
			Handler:  statePacketHandler{},
		},
	}
}

// NewDevice builds an A3933 *device.Device seeded with initialState,
// dispatching outbound packets through sender.
func NewDevice(initialState State, sender device.PacketSender) (*device.Device[State], error) {
	return device.New(initialState, sender, modules())
}
