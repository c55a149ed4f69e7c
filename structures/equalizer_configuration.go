package structures

// CustomProfileID is the wire profile-id value signaling "this is a
// fully custom configuration, not a built-in preset".
const CustomProfileID uint16 = 0xFEFE

// EqualizerConfiguration is either a named preset profile (plus, on
// 10-band models, the two opaque "extra" bands beyond the preset's
// canonical 8) or a fully custom set of per-channel adjustments.
type EqualizerConfiguration struct {
	preset      *PresetEqualizerProfile
	adjustments []VolumeAdjustments // one per channel, each Bands() long
	bands       int
}

// NewPresetEqualizerConfiguration builds a configuration from a preset
// profile. extraBands supplies, per channel, the values for bands beyond
// the preset's canonical 8 (pass nil/empty slices for an 8-band model).
func NewPresetEqualizerConfiguration(preset PresetEqualizerProfile, extraBands [][]int16) EqualizerConfiguration {
	base := preset.VolumeAdjustments().Bands()
	bands := len(base) + len(extraBands[0])
	adjustments := make([]VolumeAdjustments, len(extraBands))
	for ch, extra := range extraBands {
		full := make([]int16, 0, bands)
		full = append(full, base...)
		full = append(full, extra...)
		adjustments[ch] = NewVolumeAdjustments(full)
	}
	p := preset
	return EqualizerConfiguration{preset: &p, adjustments: adjustments, bands: bands}
}

// NewCustomEqualizerConfiguration builds a fully custom configuration,
// one VolumeAdjustments per channel.
func NewCustomEqualizerConfiguration(adjustments []VolumeAdjustments) EqualizerConfiguration {
	bands := 0
	if len(adjustments) > 0 {
		bands = adjustments[0].Len()
	}
	return EqualizerConfiguration{adjustments: adjustments, bands: bands}
}

// PresetProfile returns the associated preset, if any.
func (e EqualizerConfiguration) PresetProfile() (PresetEqualizerProfile, bool) {
	if e.preset == nil {
		return 0, false
	}
	return *e.preset, true
}

// Channels reports the number of independently stored channels.
func (e EqualizerConfiguration) Channels() int {
	return len(e.adjustments)
}

// Bands reports the number of bands per channel.
func (e EqualizerConfiguration) Bands() int {
	return e.bands
}

// ChannelAdjustments returns the full (base + extra) adjustments for a
// channel.
func (e EqualizerConfiguration) ChannelAdjustments(channel int) VolumeAdjustments {
	return e.adjustments[channel]
}

// ExtraBands returns the bands beyond the first 8 for a channel - the
// opaque, user-uneditable bands 9/10 on 10-band models. Returns an empty
// slice for 8-band models.
func (e EqualizerConfiguration) ExtraBands(channel int) []int16 {
	full := e.adjustments[channel].Bands()
	if len(full) <= 8 {
		return nil
	}
	return full[8:]
}

// Equal reports whether e and other encode to the same wire bytes.
// EqualizerConfiguration carries a slice and a pointer field so it is not
// comparable with ==; state modifiers use Equal to decide whether an
// equalizer write actually needs a packet sent.
func (e EqualizerConfiguration) Equal(other EqualizerConfiguration) bool {
	if e.ProfileID() != other.ProfileID() || e.Channels() != other.Channels() || e.Bands() != other.Bands() {
		return false
	}
	for ch := range e.adjustments {
		a := e.adjustments[ch].Bands()
		b := other.adjustments[ch].Bands()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}

// ProfileID returns the wire profile id: CustomProfileID for a custom
// configuration, or the preset's id otherwise.
func (e EqualizerConfiguration) ProfileID() uint16 {
	if e.preset == nil {
		return CustomProfileID
	}
	return uint16(*e.preset)
}

// DecodeEqualizerConfiguration reads a u16 profile id followed by
// channels*bands wire-encoded adjustment bytes.
func DecodeEqualizerConfiguration(buf []byte, channels, bands int) (EqualizerConfiguration, []byte, bool) {
	c := newCursor(buf)
	profileID, ok := c.takeU16LE()
	if !ok {
		return EqualizerConfiguration{}, buf, false
	}

	adjustments := make([]VolumeAdjustments, channels)
	rest := c.remaining()
	for ch := 0; ch < channels; ch++ {
		var va VolumeAdjustments
		var ok bool
		va, rest, ok = DecodeVolumeAdjustments(rest, bands)
		if !ok {
			return EqualizerConfiguration{}, buf, false
		}
		adjustments[ch] = va
	}

	if preset, isPreset := PresetEqualizerProfileFromID(profileID); isPreset {
		p := preset
		return EqualizerConfiguration{preset: &p, adjustments: adjustments, bands: bands}, rest, true
	}
	return EqualizerConfiguration{adjustments: adjustments, bands: bands}, rest, true
}

// Encode writes the profile id followed by each channel's adjustments,
// in channel order.
func (e EqualizerConfiguration) Encode() []byte {
	out := make([]byte, 0, 2+e.Channels()*e.Bands())
	id := e.ProfileID()
	out = append(out, byte(id), byte(id>>8))
	for _, adj := range e.adjustments {
		out = append(out, adj.Encode()...)
	}
	return out
}
