package soundcore

import (
	"github.com/Oppzippy/OpenSCQ30-sub001/structures"
	"github.com/Oppzippy/OpenSCQ30-sub001/wire"
)

// BuildSetEqualizerBody renders the plain SetEqualizer body: profile id
// followed by each channel's adjustments verbatim.
func BuildSetEqualizerBody(eq structures.EqualizerConfiguration) []byte {
	return eq.Encode()
}

// BuildSetEqualizerWithDrcBody renders the DRC-variant body: profile id
// followed by each channel's first 8 bands passed through
// structures.ApplyDRC, with any extra (9th/10th) bands appended
// unchanged, per §4.8/§4.2.
func BuildSetEqualizerWithDrcBody(eq structures.EqualizerConfiguration) []byte {
	id := eq.ProfileID()
	out := []byte{byte(id), byte(id >> 8)}
	for ch := 0; ch < eq.Channels(); ch++ {
		bands := eq.ChannelAdjustments(ch).Bands()
		var first8 [8]int16
		copy(first8[:], bands[:8])
		drc := structures.ApplyDRC(first8)

		adjusted := make([]int16, 0, len(bands))
		adjusted = append(adjusted, drc[:]...)
		adjusted = append(adjusted, bands[8:]...)
		out = append(out, structures.NewVolumeAdjustments(adjusted).Encode()...)
	}
	return out
}

// BuildSetEqualizerAndCustomHearIdBody renders the hear-ID variant body:
// the equalizer configuration followed by gender/age-range/hear-ID. Per
// §4.8, when ageRange does not support hear-ID every hear-ID substructure
// is replaced with sentinel 0xFF bytes (time zeroed) and gender/age bytes
// are 0xFF.
func BuildSetEqualizerAndCustomHearIdBody(eq structures.EqualizerConfiguration, gender structures.Gender, ageRange structures.AgeRange, hearID structures.CustomHearId) []byte {
	out := append([]byte{}, eq.Encode()...)
	if !ageRange.SupportsHearID() {
		out = append(out, 0xFF, 0xFF)
		out = append(out, structures.SentinelHearIdBytes()...)
		return out
	}
	out = append(out, gender.Encode()...)
	out = append(out, ageRange.Encode()...)
	out = append(out, hearID.Encode()...)
	return out
}

// CommandForEqualizerAndCustomHearId selects 03 86 (no hear-ID support)
// or 03 87 (hear-ID support) based on the current age range.
func CommandForEqualizerAndCustomHearId(ageRange structures.AgeRange) wire.Command {
	if ageRange.SupportsHearID() {
		return CmdSetEqualizerWithHearID
	}
	return CmdSetEqualizerNoHearID
}
