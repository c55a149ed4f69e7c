package demo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oppzippy/OpenSCQ30-sub001/device"
	"github.com/Oppzippy/OpenSCQ30-sub001/settings"
	"github.com/Oppzippy/OpenSCQ30-sub001/soundcore"
)

func TestNewDeviceCategoriesInRegistrationOrder(t *testing.T) {
	d, err := NewDevice(NewState(), &NoopSender{})
	require.NoError(t, err)
	assert.Equal(t, []settings.CategoryId{
		settings.CategorySoundModes,
		settings.CategoryEqualizer,
		settings.CategoryButtonConfiguration,
		settings.CategoryDeviceInformation,
	}, d.Categories())
}

func TestNewDeviceAmbientSoundModeWriteSendsPacket(t *testing.T) {
	sender := &NoopSender{}
	d, err := NewDevice(NewState(), sender)
	require.NoError(t, err)

	err = d.SetSettingValues(context.Background(), []device.SettingWrite{
		{ID: settings.SettingIdAmbientSoundMode, Value: settings.NewStringValue("transparency")},
	})
	require.NoError(t, err)
	require.Len(t, sender.Sent, 1)
	assert.Equal(t, soundcore.CmdSetSoundMode, sender.Sent[0].Command)

	setting, ok, err := d.Setting(settings.SettingIdAmbientSoundMode)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "transparency", setting.SelectValue)
}

func TestNewDeviceEqualizerUnchangedSendsNothing(t *testing.T) {
	sender := &NoopSender{}
	d, err := NewDevice(NewState(), sender)
	require.NoError(t, err)

	err = d.SetSettingValues(context.Background(), []device.SettingWrite{
		{ID: settings.SettingIdVolumeAdjustments, Value: settings.NewI16VecValue(make([]int16, EqualizerBands))},
	})
	require.NoError(t, err)
	assert.Empty(t, sender.Sent)
}

func TestNewDeviceEqualizerChangeSendsPlainPacket(t *testing.T) {
	sender := &NoopSender{}
	d, err := NewDevice(NewState(), sender)
	require.NoError(t, err)

	bands := []int16{1, 2, 3, 4, 5, 6, 7, 8}
	err = d.SetSettingValues(context.Background(), []device.SettingWrite{
		{ID: settings.SettingIdVolumeAdjustments, Value: settings.NewI16VecValue(bands)},
	})
	require.NoError(t, err)
	require.Len(t, sender.Sent, 1)
	assert.Equal(t, soundcore.CmdSetEqualizer, sender.Sent[0].Command)
}

func TestNewDeviceDeviceInfoIsReadOnly(t *testing.T) {
	d, err := NewDevice(NewState(), &NoopSender{})
	require.NoError(t, err)

	setting, ok, err := d.Setting(settings.SettingIdSerialNumber)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "DEMO0000000000", setting.InfoValue)
}

func TestNewDeviceButtonsReadBothShapes(t *testing.T) {
	d, err := NewDevice(NewState(), &NoopSender{})
	require.NoError(t, err)

	tws, ok, err := d.Setting(settings.SettingIdLeftDoubleClick)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, settings.SettingKindSelect, tws.Kind)

	single, ok, err := d.Setting(settings.SettingIdLeftSingleClick)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, settings.SettingKindOptionalSelect, single.Kind)
}
