package structures

// HearIDBands is the number of per-channel bands carried in a
// CustomHearId block. Two channels (left/right), ten bands each (eight
// tunable plus the two opaque "extra" bands every 10-band model carries).
const HearIDBands = 10

// CustomHearId is the vendor personalization block: per-channel hear-ID
// volume adjustments measured during the device's fitting test, plus an
// optional custom override and an optional associated preset profile.
type CustomHearId struct {
	IsEnabled bool
	Left      VolumeAdjustments
	Right     VolumeAdjustments
	Time      uint32
	HearIDType uint8
	// CustomLeft/CustomRight are present (HasCustom true) when the user
	// tuned their own hear-ID curve rather than using the measured one.
	HasCustom   bool
	CustomLeft  VolumeAdjustments
	CustomRight VolumeAdjustments
	// PresetProfileID is the preset equalizer profile associated with
	// this hear-ID fit, or nil if none.
	PresetProfileID *uint16
}

const hearIDPresetNoneSentinel = 0xFFFF

// DecodeCustomHearId reads: enabled flag, left+right measured
// adjustments (HearIDBands each), a u32 timestamp, a hear-ID type byte,
// left+right custom adjustments, and a u16 preset profile id
// (hearIDPresetNoneSentinel meaning none). This block is always a fixed
// 48 bytes regardless of whether the fields it carries are meaningful;
// callers consult AgeRange.SupportsHearID to decide whether to parse it
// at all or skip 48 raw bytes.
func DecodeCustomHearId(buf []byte) (CustomHearId, []byte, bool) {
	c := newCursor(buf)
	enabled, ok := c.takeByte()
	if !ok {
		return CustomHearId{}, buf, false
	}
	left, rest, ok := DecodeVolumeAdjustments(c.remaining(), HearIDBands)
	if !ok {
		return CustomHearId{}, buf, false
	}
	c = newCursor(rest)
	right, rest, ok := DecodeVolumeAdjustments(c.remaining(), HearIDBands)
	if !ok {
		return CustomHearId{}, buf, false
	}
	c = newCursor(rest)
	timeVal, ok := c.takeU32LE()
	if !ok {
		return CustomHearId{}, buf, false
	}
	hearIDType, ok := c.takeByte()
	if !ok {
		return CustomHearId{}, buf, false
	}
	customLeft, rest, ok := DecodeVolumeAdjustments(c.remaining(), HearIDBands)
	if !ok {
		return CustomHearId{}, buf, false
	}
	c = newCursor(rest)
	customRight, rest, ok := DecodeVolumeAdjustments(c.remaining(), HearIDBands)
	if !ok {
		return CustomHearId{}, buf, false
	}
	c = newCursor(rest)
	profileRaw, ok := c.takeU16LE()
	if !ok {
		return CustomHearId{}, buf, false
	}

	result := CustomHearId{
		IsEnabled:   enabled != 0,
		Left:        left,
		Right:       right,
		Time:        timeVal,
		HearIDType:  hearIDType,
		HasCustom:   true,
		CustomLeft:  customLeft,
		CustomRight: customRight,
	}
	if profileRaw != hearIDPresetNoneSentinel {
		profile := profileRaw
		result.PresetProfileID = &profile
	}
	return result, c.remaining(), true
}

// Encode is the exact inverse of DecodeCustomHearId, always 48 bytes.
func (h CustomHearId) Encode() []byte {
	out := make([]byte, 0, 48)
	if h.IsEnabled {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	out = append(out, fixedHearIDAdjustments(h.Left)...)
	out = append(out, fixedHearIDAdjustments(h.Right)...)
	out = append(out, byte(h.Time), byte(h.Time>>8), byte(h.Time>>16), byte(h.Time>>24))
	out = append(out, h.HearIDType)
	out = append(out, fixedHearIDAdjustments(h.CustomLeft)...)
	out = append(out, fixedHearIDAdjustments(h.CustomRight)...)
	profile := uint16(hearIDPresetNoneSentinel)
	if h.PresetProfileID != nil {
		profile = *h.PresetProfileID
	}
	out = append(out, byte(profile), byte(profile>>8))
	return out
}

// fixedHearIDAdjustments encodes v at a fixed HearIDBands width: a shorter
// v (including an unset, zero-value one, e.g. absent CustomLeft/CustomRight)
// is padded with zero adjustment and a longer one is truncated, so the
// frame never changes size.
func fixedHearIDAdjustments(v VolumeAdjustments) []byte {
	bands := make([]int16, HearIDBands)
	copy(bands, v.Bands())
	return NewVolumeAdjustments(bands).Encode()
}

// SentinelHearIdBytes returns the fixed-width placeholder used in place
// of a real hear-ID block when the current AgeRange does not support
// hear-ID: every byte 0xFF except the time field, which is zeroed.
func SentinelHearIdBytes() []byte {
	out := make([]byte, 48)
	for i := range out {
		out[i] = 0xFF
	}
	// time field occupies bytes [1+2*HearIDBands : 1+2*HearIDBands+4)
	timeStart := 1 + 2*HearIDBands
	for i := timeStart; i < timeStart+4; i++ {
		out[i] = 0
	}
	return out
}
