package a3933

import (
	"github.com/Oppzippy/OpenSCQ30-sub001/soundcore"
	"github.com/Oppzippy/OpenSCQ30-sub001/structures"
	"github.com/Oppzippy/OpenSCQ30-sub001/wire"
)

// RequestStateFrame builds the outbound state-snapshot request. Its
// body is empty; the device replies on the same command id with a
// stateBodyLen-byte body parseable by DecodeState.
func RequestStateFrame() wire.Frame {
	return wire.Frame{Direction: wire.Outbound, Command: soundcore.CmdStateSnapshot}
}

// SetSoundModeFrame builds the 06 81 outbound packet for sm.
func SetSoundModeFrame(sm structures.SoundModes) wire.Frame {
	return wire.Frame{Direction: wire.Outbound, Command: soundcore.CmdSetSoundMode, Body: sm.Encode()}
}

