package settings

// CategoryId is the closed enum grouping settings for presentation.
type CategoryId uint8

const (
	CategoryGeneral CategoryId = iota
	CategorySoundModes
	CategoryEqualizer
	CategoryEqualizerImportExport
	CategoryButtonConfiguration
	CategoryDeviceInformation
)

var categoryIdNames = map[CategoryId]string{
	CategoryGeneral:               "general",
	CategorySoundModes:            "soundModes",
	CategoryEqualizer:             "equalizer",
	CategoryEqualizerImportExport: "equalizerImportExport",
	CategoryButtonConfiguration:   "buttonConfiguration",
	CategoryDeviceInformation:     "deviceInformation",
}

func (c CategoryId) String() string {
	if s, ok := categoryIdNames[c]; ok {
		return s
	}
	return "unknown"
}
