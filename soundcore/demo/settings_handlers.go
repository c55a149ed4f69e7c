package demo

import (
	"fmt"

	"github.com/Oppzippy/OpenSCQ30-sub001/settings"
	"github.com/Oppzippy/OpenSCQ30-sub001/structures"
)

func asState(state any) *State {
	return state.(*State)
}

type soundModesHandler struct{}

func (soundModesHandler) SettingIds() []settings.SettingId {
	return []settings.SettingId{settings.SettingIdAmbientSoundMode}
}

func (soundModesHandler) Get(state any, id settings.SettingId) (settings.Setting, bool) {
	s := asState(state)
	names := structures.AmbientSoundModeNames()
	return settings.NewSelect(names, names, s.SoundModes.AmbientSoundMode.String()), true
}

func (soundModesHandler) Set(target any, id settings.SettingId, value settings.Value) error {
	s := asState(target)
	name, err := value.AsString()
	if err != nil {
		return err
	}
	mode, ok := structures.AmbientSoundModeFromName(name)
	if !ok {
		return fmt.Errorf("demo: unknown ambient sound mode %q", name)
	}
	s.SoundModes.AmbientSoundMode = mode
	return nil
}

type equalizerHandler struct{}

func (equalizerHandler) SettingIds() []settings.SettingId {
	return []settings.SettingId{settings.SettingIdVolumeAdjustments}
}

func (equalizerHandler) Get(state any, id settings.SettingId) (settings.Setting, bool) {
	s := asState(state)
	bands := s.Equalizer.ChannelAdjustments(0).Bands()
	return settings.NewEqualizer([]uint16{100, 200, 400, 800, 1600, 3200, 6400, 12800}, 1,
		int16(structures.MinAdjustment), int16(structures.MaxAdjustment), bands), true
}

func (equalizerHandler) Set(target any, id settings.SettingId, value settings.Value) error {
	s := asState(target)
	bands, err := value.AsI16Vec()
	if err != nil {
		return err
	}
	if len(bands) != EqualizerBands {
		return fmt.Errorf("demo: volume adjustments needs %d bands, got %d", EqualizerBands, len(bands))
	}
	s.Equalizer = structures.NewCustomEqualizerConfiguration([]structures.VolumeAdjustments{
		structures.NewVolumeAdjustments(bands),
	})
	return nil
}

type deviceInfoHandler struct{}

func (deviceInfoHandler) SettingIds() []settings.SettingId {
	return []settings.SettingId{
		settings.SettingIdBatteryLevelLeft,
		settings.SettingIdSerialNumber,
		settings.SettingIdFirmwareVersionLeft,
	}
}

func (deviceInfoHandler) Get(state any, id settings.SettingId) (settings.Setting, bool) {
	s := asState(state)
	switch id {
	case settings.SettingIdBatteryLevelLeft:
		return settings.NewInformation(fmt.Sprintf("%d", s.Battery), ""), true
	case settings.SettingIdSerialNumber:
		return settings.NewInformation(string(s.Serial), ""), true
	case settings.SettingIdFirmwareVersionLeft:
		return settings.NewInformation(s.Firmware.String(), ""), true
	default:
		return settings.Setting{}, false
	}
}

func (deviceInfoHandler) Set(target any, id settings.SettingId, value settings.Value) error {
	return fmt.Errorf("demo: %s is read-only", id)
}

type buttonHandler struct{}

func (buttonHandler) SettingIds() []settings.SettingId {
	return []settings.SettingId{
		settings.SettingIdLeftDoubleClick,
		settings.SettingIdLeftLongPress,
		settings.SettingIdRightDoubleClick,
		settings.SettingIdRightLongPress,
		settings.SettingIdLeftSingleClick,
		settings.SettingIdRightSingleClick,
	}
}

func buttonFor(s *State, id settings.SettingId) *structures.ButtonStatus {
	switch id {
	case settings.SettingIdLeftDoubleClick:
		return &s.Buttons.LeftDoubleClick
	case settings.SettingIdLeftLongPress:
		return &s.Buttons.LeftLongPress
	case settings.SettingIdRightDoubleClick:
		return &s.Buttons.RightDoubleClick
	case settings.SettingIdRightLongPress:
		return &s.Buttons.RightLongPress
	case settings.SettingIdLeftSingleClick:
		return &s.Buttons.LeftSingleClick
	case settings.SettingIdRightSingleClick:
		return &s.Buttons.RightSingleClick
	default:
		return nil
	}
}

func (buttonHandler) Get(state any, id settings.SettingId) (settings.Setting, bool) {
	b := buttonFor(asState(state), id)
	if b == nil {
		return settings.Setting{}, false
	}
	names := structures.ButtonActionNames()
	if b.IsTWS {
		return settings.NewSelect(names, names, b.ActiveAction().String()), true
	}
	var value *string
	if b.Enabled {
		name := b.Action.String()
		value = &name
	}
	return settings.NewOptionalSelect(names, names, value), true
}

func (buttonHandler) Set(target any, id settings.SettingId, value settings.Value) error {
	b := buttonFor(asState(target), id)
	if b == nil {
		return settings.ErrNotFound
	}
	if b.IsTWS {
		name, err := value.AsString()
		if err != nil {
			return err
		}
		action, ok := structures.ButtonActionFromName(name)
		if !ok {
			return fmt.Errorf("demo: unknown button action %q", name)
		}
		b.TWSConnectedAction = action
		b.TWSDisconnectedAction = action
		return nil
	}
	name, err := value.AsOptionalString()
	if err != nil {
		return err
	}
	if name == nil {
		b.Enabled = false
		return nil
	}
	action, ok := structures.ButtonActionFromName(*name)
	if !ok {
		return fmt.Errorf("demo: unknown button action %q", *name)
	}
	b.Enabled = true
	b.Action = action
	return nil
}
