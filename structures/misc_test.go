package structures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDualBatteryRoundTrip(t *testing.T) {
	b := DualBattery{Left: 4, Right: 5, LeftCharging: true, RightCharging: false}
	decoded, rest, ok := DecodeDualBattery(b.Encode())
	require.True(t, ok)
	assert.Empty(t, rest)
	assert.Equal(t, b, decoded)
}

func TestFirmwareVersionRoundTripAndOrdering(t *testing.T) {
	v := FirmwareVersion{Major: 2, Minor: 61}
	decoded, rest, ok := DecodeFirmwareVersion(v.Encode())
	require.True(t, ok)
	assert.Empty(t, rest)
	assert.Equal(t, v, decoded)
	assert.Equal(t, "02.61", v.String())

	assert.True(t, (FirmwareVersion{Major: 1, Minor: 99}).Less(FirmwareVersion{Major: 2, Minor: 0}))
	assert.True(t, (FirmwareVersion{Major: 2, Minor: 0}).Less(FirmwareVersion{Major: 2, Minor: 61}))
}

func TestDecodeFirmwareVersionRejectsBadSeparator(t *testing.T) {
	_, _, ok := DecodeFirmwareVersion([]byte("02x61"))
	assert.False(t, ok)
}

func TestDualFirmwareVersionValid(t *testing.T) {
	v := FirmwareVersion{Major: 1, Minor: 0}
	assert.True(t, DualFirmwareVersion{Left: &v}.Valid())
	assert.True(t, DualFirmwareVersion{Right: &v}.Valid())
	assert.False(t, DualFirmwareVersion{}.Valid())
}

func TestSerialNumberRoundTripTrimsPadding(t *testing.T) {
	sn := SerialNumber("39392A7FCC2F12AC")
	decoded, rest, ok := DecodeSerialNumber(sn.Encode())
	require.True(t, ok)
	assert.Empty(t, rest)
	assert.Equal(t, sn, decoded)

	short := SerialNumber("ABC")
	decoded, _, ok = DecodeSerialNumber(short.Encode())
	require.True(t, ok)
	assert.Equal(t, short, decoded)
}

func TestSoundModesRoundTripClampsCustomNC(t *testing.T) {
	sm := SoundModes{
		AmbientSoundMode:     AmbientSoundModeNoiseCanceling,
		NoiseCancelingMode:   NoiseCancelingModeOutdoor,
		TransparencyMode:     TransparencyModeVocalMode,
		CustomNoiseCanceling: 99,
	}
	decoded, rest, ok := DecodeSoundModes(sm.Encode())
	require.True(t, ok)
	assert.Empty(t, rest)
	assert.Equal(t, uint8(10), decoded.CustomNoiseCanceling)
	assert.Equal(t, AmbientSoundModeNoiseCanceling, decoded.AmbientSoundMode)
}

func TestHostDeviceRoundTrip(t *testing.T) {
	decoded, rest, ok := DecodeHostDevice(HostDeviceRight.Encode())
	require.True(t, ok)
	assert.Empty(t, rest)
	assert.Equal(t, HostDeviceRight, decoded)

	decoded, _, ok = DecodeHostDevice(HostDeviceLeft.Encode())
	require.True(t, ok)
	assert.Equal(t, HostDeviceLeft, decoded)
}
