package settings

// SettingId is a closed, append-only enum keyed by its canonical
// camelCase wire name. These names are persisted verbatim inside
// stored quick presets, so existing constants must never be renamed;
// new settings are added as new constants.
type SettingId string

const (
	SettingIdAmbientSoundMode       SettingId = "ambientSoundMode"
	SettingIdTransparencyMode       SettingId = "transparencyMode"
	SettingIdNoiseCancelingMode     SettingId = "noiseCancelingMode"
	SettingIdCustomNoiseCanceling   SettingId = "customNoiseCanceling"

	SettingIdPresetEqualizerProfile SettingId = "presetEqualizerProfile"
	SettingIdVolumeAdjustments      SettingId = "volumeAdjustments"
	SettingIdCustomEqualizerProfile SettingId = "customEqualizerProfile"
	SettingIdImportCustomEqualizerProfiles SettingId = "importCustomEqualizerProfiles"

	SettingIdBatteryLevelLeft     SettingId = "batteryLevelLeft"
	SettingIdBatteryLevelRight    SettingId = "batteryLevelRight"
	SettingIdBatteryChargingLeft  SettingId = "batteryChargingLeft"
	SettingIdBatteryChargingRight SettingId = "batteryChargingRight"
	SettingIdSerialNumber         SettingId = "serialNumber"
	SettingIdFirmwareVersionLeft  SettingId = "firmwareVersionLeft"
	SettingIdFirmwareVersionRight SettingId = "firmwareVersionRight"

	SettingIdLeftDoubleClick  SettingId = "leftDoubleClick"
	SettingIdLeftLongPress    SettingId = "leftLongPress"
	SettingIdRightDoubleClick SettingId = "rightDoubleClick"
	SettingIdRightLongPress   SettingId = "rightLongPress"
	SettingIdLeftSingleClick  SettingId = "leftSingleClick"
	SettingIdRightSingleClick SettingId = "rightSingleClick"
)
