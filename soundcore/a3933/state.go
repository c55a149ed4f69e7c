// Package a3933 implements the Soundcore A3933 family's state snapshot
// layout, outbound command bodies, and device wiring on top of the
// shared soundcore command ids and state modifiers.
package a3933

import "github.com/Oppzippy/OpenSCQ30-sub001/structures"

// EqualizerChannels and EqualizerBands describe the A3933 family's
// equalizer shape: stereo, 10 bands per channel (8 tunable plus 2 opaque
// extra bands carried through unedited).
const (
	EqualizerChannels = 2
	EqualizerBands    = 10
)

// stateBodyLen is the fixed wire length of the state snapshot body,
// derived field-by-field below: 1+1+4+10+16+22+1+48+12+1+4+2+1+1+1+1+1+1+1+3.
const stateBodyLen = 132

// State is the A3933 family's full decoded device state.
type State struct {
	HostDevice   structures.HostDevice
	TWSConnected bool
	Battery      structures.DualBattery
	Firmware     structures.DualFirmwareVersion
	SerialNumber structures.SerialNumber

	Equalizer structures.EqualizerConfiguration
	AgeRange  structures.AgeRange
	HearID    structures.CustomHearId
	Buttons   structures.ButtonStatusCollection

	// AmbientSoundModeCycle is a bitmask of which ambient modes the
	// physical cycling button steps through. Opaque to this layer.
	AmbientSoundModeCycle uint8
	SoundModes            structures.SoundModes

	TouchToneEnabled          bool
	WearDetectionEnabled      bool
	GameModeEnabled           bool
	CaseBattery               structures.BatteryLevel
	DeviceColor               uint8
	WindNoiseDetectionEnabled bool

	// reserved1/reserved2 preserve the runs of unknown bytes observed in
	// every captured snapshot (2 bytes after sound modes, then a lone
	// unknown byte plus 3 trailing unknown bytes at the very end), so a
	// decode-then-encode round trip reproduces the exact frame a real
	// device sent even though their meaning was never identified.
	reserved1 [2]byte
	reserved2 [4]byte
}

// DecodeState parses a full 132-byte A3933 state snapshot body.
func DecodeState(buf []byte) (State, []byte, bool) {
	var s State
	rest := buf
	var ok bool

	s.HostDevice, rest, ok = structures.DecodeHostDevice(rest)
	if !ok {
		return State{}, buf, false
	}
	tws, rest2, ok := takeByte(rest)
	if !ok {
		return State{}, buf, false
	}
	s.TWSConnected = tws != 0
	rest = rest2

	s.Battery, rest, ok = structures.DecodeDualBattery(rest)
	if !ok {
		return State{}, buf, false
	}
	s.Firmware, rest, ok = structures.DecodeDualFirmwareVersion(rest)
	if !ok {
		return State{}, buf, false
	}
	s.SerialNumber, rest, ok = structures.DecodeSerialNumber(rest)
	if !ok {
		return State{}, buf, false
	}
	s.Equalizer, rest, ok = structures.DecodeEqualizerConfiguration(rest, EqualizerChannels, EqualizerBands)
	if !ok {
		return State{}, buf, false
	}
	s.AgeRange, rest, ok = structures.DecodeAgeRange(rest)
	if !ok {
		return State{}, buf, false
	}
	s.HearID, rest, ok = structures.DecodeCustomHearId(rest)
	if !ok {
		return State{}, buf, false
	}
	s.Buttons, rest, ok = structures.DecodeButtonStatusCollection(rest)
	if !ok {
		return State{}, buf, false
	}

	s.AmbientSoundModeCycle, rest, ok = takeByte(rest)
	if !ok {
		return State{}, buf, false
	}
	s.SoundModes, rest, ok = structures.DecodeSoundModes(rest)
	if !ok {
		return State{}, buf, false
	}

	var r1 []byte
	r1, rest, ok = takeN(rest, 2)
	if !ok {
		return State{}, buf, false
	}
	copy(s.reserved1[:], r1)

	var b byte
	b, rest, ok = takeByte(rest)
	if !ok {
		return State{}, buf, false
	}
	s.TouchToneEnabled = b != 0

	b, rest, ok = takeByte(rest)
	if !ok {
		return State{}, buf, false
	}
	s.WearDetectionEnabled = b != 0

	b, rest, ok = takeByte(rest)
	if !ok {
		return State{}, buf, false
	}
	s.GameModeEnabled = b != 0

	b, rest, ok = takeByte(rest)
	if !ok {
		return State{}, buf, false
	}
	s.CaseBattery = structures.BatteryLevel(b)

	// one unknown byte, preserved as part of reserved2 below instead of
	// its own field since its meaning was never observed.
	var unk byte
	unk, rest, ok = takeByte(rest)
	if !ok {
		return State{}, buf, false
	}

	b, rest, ok = takeByte(rest)
	if !ok {
		return State{}, buf, false
	}
	s.DeviceColor = b

	b, rest, ok = takeByte(rest)
	if !ok {
		return State{}, buf, false
	}
	s.WindNoiseDetectionEnabled = b != 0

	var r2 []byte
	r2, rest, ok = takeN(rest, 3)
	if !ok {
		return State{}, buf, false
	}
	s.reserved2[0] = unk
	copy(s.reserved2[1:], r2)

	return s, rest, true
}

// Encode is the exact inverse of DecodeState, always stateBodyLen bytes.
func (s State) Encode() []byte {
	out := make([]byte, 0, stateBodyLen)
	out = append(out, s.HostDevice.Encode()...)
	if s.TWSConnected {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	out = append(out, s.Battery.Encode()...)
	out = append(out, s.Firmware.Encode()...)
	out = append(out, s.SerialNumber.Encode()...)
	out = append(out, s.Equalizer.Encode()...)
	out = append(out, s.AgeRange.Encode()...)
	out = append(out, s.HearID.Encode()...)
	out = append(out, s.Buttons.Encode()...)
	out = append(out, s.AmbientSoundModeCycle)
	out = append(out, s.SoundModes.Encode()...)
	out = append(out, s.reserved1[:]...)
	out = append(out, boolByte(s.TouchToneEnabled))
	out = append(out, boolByte(s.WearDetectionEnabled))
	out = append(out, boolByte(s.GameModeEnabled))
	out = append(out, byte(s.CaseBattery))
	out = append(out, s.reserved2[0])
	out = append(out, s.DeviceColor)
	out = append(out, boolByte(s.WindNoiseDetectionEnabled))
	out = append(out, s.reserved2[1:]...)
	return out
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func takeByte(buf []byte) (byte, []byte, bool) {
	if len(buf) < 1 {
		return 0, buf, false
	}
	return buf[0], buf[1:], true
}

func takeN(buf []byte, n int) ([]byte, []byte, bool) {
	if len(buf) < n {
		return nil, buf, false
	}
	return buf[:n], buf[n:], true
}
