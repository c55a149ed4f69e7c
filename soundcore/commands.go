// Package soundcore holds the packet command constants and the
// model-agnostic state-modifier logic shared by every Soundcore packet
// dialect (§6). Per-model packages (soundcore/a3933, soundcore/demo)
// supply the body layouts and wire these into a device.Device.
package soundcore

import "github.com/Oppzippy/OpenSCQ30-sub001/wire"

// Command families observed across every modeled dialect. The inbound
// response to a request shares its exact command bytes.
var (
	CmdStateSnapshot          = wire.Command{B0: 0x01, B1: 0x01}
	CmdPresetActivation       = wire.Command{B0: 0x02, B1: 0x81}
	CmdSetEqualizer           = wire.Command{B0: 0x02, B1: 0x83}
	CmdSetEqualizerNoHearID   = wire.Command{B0: 0x03, B1: 0x86}
	CmdSetEqualizerWithHearID = wire.Command{B0: 0x03, B1: 0x87}
	CmdSetSoundMode           = wire.Command{B0: 0x06, B1: 0x81}
	CmdSetAmbientCycle        = wire.Command{B0: 0x06, B1: 0x82}
)
