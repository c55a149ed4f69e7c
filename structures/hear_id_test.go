package structures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomHearIdRoundTripWithPreset(t *testing.T) {
	profile := uint16(PresetEqualizerProfileJazz)
	h := CustomHearId{
		IsEnabled:       true,
		Left:            NewVolumeAdjustments([]int16{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}),
		Right:           NewVolumeAdjustments([]int16{-1, -2, -3, -4, -5, -6, -7, -8, -9, -10}),
		Time:            1700000000,
		HearIDType:      1,
		HasCustom:       true,
		CustomLeft:      NewVolumeAdjustments([]int16{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}),
		CustomRight:     NewVolumeAdjustments([]int16{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}),
		PresetProfileID: &profile,
	}
	encoded := h.Encode()
	assert.Len(t, encoded, 48)

	decoded, rest, ok := DecodeCustomHearId(encoded)
	require.True(t, ok)
	assert.Empty(t, rest)
	assert.Equal(t, h.IsEnabled, decoded.IsEnabled)
	assert.Equal(t, h.Left.Bands(), decoded.Left.Bands())
	assert.Equal(t, h.Right.Bands(), decoded.Right.Bands())
	assert.Equal(t, h.Time, decoded.Time)
	require.NotNil(t, decoded.PresetProfileID)
	assert.Equal(t, profile, *decoded.PresetProfileID)
}

func TestCustomHearIdRoundTripNoPreset(t *testing.T) {
	h := CustomHearId{
		Left:        NewVolumeAdjustments(make([]int16, HearIDBands)),
		Right:       NewVolumeAdjustments(make([]int16, HearIDBands)),
		CustomLeft:  NewVolumeAdjustments(make([]int16, HearIDBands)),
		CustomRight: NewVolumeAdjustments(make([]int16, HearIDBands)),
	}
	encoded := h.Encode()
	decoded, _, ok := DecodeCustomHearId(encoded)
	require.True(t, ok)
	assert.Nil(t, decoded.PresetProfileID)
}

func TestSentinelHearIdBytesLength(t *testing.T) {
	s := SentinelHearIdBytes()
	assert.Len(t, s, 48)
	assert.Equal(t, byte(0xFF), s[0])
	timeStart := 1 + 2*HearIDBands
	for i := timeStart; i < timeStart+4; i++ {
		assert.Equal(t, byte(0), s[i])
	}
}

func TestAgeRangeSupportsHearID(t *testing.T) {
	assert.False(t, AgeRange(0).SupportsHearID())
	assert.False(t, AgeRange(17).SupportsHearID())
	assert.True(t, AgeRange(18).SupportsHearID())
	assert.True(t, AgeRange(64).SupportsHearID())
	assert.False(t, AgeRange(65).SupportsHearID())
}
