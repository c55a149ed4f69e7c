package a3933

import (
	"fmt"

	"github.com/Oppzippy/OpenSCQ30-sub001/settings"
	"github.com/Oppzippy/OpenSCQ30-sub001/structures"
)

func asState(state any) *State {
	return state.(*State)
}

// soundModesHandler surfaces ambient/transparency/noise-canceling mode
// and the custom noise canceling level.
type soundModesHandler struct{}

func (soundModesHandler) SettingIds() []settings.SettingId {
	return []settings.SettingId{
		settings.SettingIdAmbientSoundMode,
		settings.SettingIdTransparencyMode,
		settings.SettingIdNoiseCancelingMode,
		settings.SettingIdCustomNoiseCanceling,
	}
}

func (soundModesHandler) Get(state any, id settings.SettingId) (settings.Setting, bool) {
	s := asState(state)
	switch id {
	case settings.SettingIdAmbientSoundMode:
		names := structures.AmbientSoundModeNames()
		return settings.NewSelect(names, names, s.SoundModes.AmbientSoundMode.String()), true
	case settings.SettingIdTransparencyMode:
		names := structures.TransparencyModeNames()
		return settings.NewSelect(names, names, s.SoundModes.TransparencyMode.String()), true
	case settings.SettingIdNoiseCancelingMode:
		names := structures.NoiseCancelingModeNames()
		return settings.NewSelect(names, names, s.SoundModes.NoiseCancelingMode.String()), true
	case settings.SettingIdCustomNoiseCanceling:
		r := settings.I32Range{Start: 0, End: 10, Step: 1}
		return settings.NewI32Range(r, int32(s.SoundModes.CustomNoiseCanceling)), true
	default:
		return settings.Setting{}, false
	}
}

func (soundModesHandler) Set(target any, id settings.SettingId, value settings.Value) error {
	s := asState(target)
	switch id {
	case settings.SettingIdAmbientSoundMode:
		name, err := value.AsString()
		if err != nil {
			return err
		}
		mode, ok := structures.AmbientSoundModeFromName(name)
		if !ok {
			return fmt.Errorf("a3933: unknown ambient sound mode %q", name)
		}
		s.SoundModes.AmbientSoundMode = mode
		return nil
	case settings.SettingIdTransparencyMode:
		name, err := value.AsString()
		if err != nil {
			return err
		}
		mode, ok := structures.TransparencyModeFromName(name)
		if !ok {
			return fmt.Errorf("a3933: unknown transparency mode %q", name)
		}
		s.SoundModes.TransparencyMode = mode
		return nil
	case settings.SettingIdNoiseCancelingMode:
		name, err := value.AsString()
		if err != nil {
			return err
		}
		mode, ok := structures.NoiseCancelingModeFromName(name)
		if !ok {
			return fmt.Errorf("a3933: unknown noise canceling mode %q", name)
		}
		s.SoundModes.NoiseCancelingMode = mode
		return nil
	case settings.SettingIdCustomNoiseCanceling:
		v, err := value.AsI32()
		if err != nil {
			return err
		}
		if v < 0 || v > 10 {
			return fmt.Errorf("a3933: custom noise canceling %d out of range", v)
		}
		s.SoundModes.CustomNoiseCanceling = uint8(v)
		return nil
	default:
		return settings.ErrNotFound
	}
}

// equalizerHandler surfaces the preset profile and the editable first-8
// bands of volume adjustments, applied identically to both channels.
type equalizerHandler struct{}

func (equalizerHandler) SettingIds() []settings.SettingId {
	return []settings.SettingId{
		settings.SettingIdPresetEqualizerProfile,
		settings.SettingIdVolumeAdjustments,
	}
}

func (equalizerHandler) Get(state any, id settings.SettingId) (settings.Setting, bool) {
	s := asState(state)
	switch id {
	case settings.SettingIdPresetEqualizerProfile:
		names := structures.PresetEqualizerProfileNames()
		var value *string
		if p, ok := s.Equalizer.PresetProfile(); ok {
			name := p.String()
			value = &name
		}
		return settings.NewOptionalSelect(names, names, value), true
	case settings.SettingIdVolumeAdjustments:
		bands := s.Equalizer.ChannelAdjustments(0).Bands()
		first8 := append([]int16(nil), bands[:8]...)
		return settings.NewEqualizer(eqBandHz(), 1, int16(structures.MinAdjustment), int16(structures.MaxAdjustment), first8), true
	default:
		return settings.Setting{}, false
	}
}

func (equalizerHandler) Set(target any, id settings.SettingId, value settings.Value) error {
	s := asState(target)
	switch id {
	case settings.SettingIdPresetEqualizerProfile:
		name, err := value.AsOptionalString()
		if err != nil {
			return err
		}
		if name == nil {
			return fmt.Errorf("a3933: preset equalizer profile cannot be cleared to none")
		}
		profile, ok := structures.PresetEqualizerProfileFromName(*name)
		if !ok {
			return fmt.Errorf("a3933: unknown preset equalizer profile %q", *name)
		}
		extra := [][]int16{s.Equalizer.ExtraBands(0), s.Equalizer.ExtraBands(1)}
		s.Equalizer = structures.NewPresetEqualizerConfiguration(profile, extra)
		return nil
	case settings.SettingIdVolumeAdjustments:
		bands, err := value.AsI16Vec()
		if err != nil {
			return err
		}
		if len(bands) != 8 {
			return fmt.Errorf("a3933: volume adjustments needs 8 bands, got %d", len(bands))
		}
		left := append(append([]int16(nil), bands...), s.Equalizer.ExtraBands(0)...)
		right := append(append([]int16(nil), bands...), s.Equalizer.ExtraBands(1)...)
		s.Equalizer = structures.NewCustomEqualizerConfiguration([]structures.VolumeAdjustments{
			structures.NewVolumeAdjustments(left),
			structures.NewVolumeAdjustments(right),
		})
		return nil
	default:
		return settings.ErrNotFound
	}
}

// eqBandHz returns the 8 tunable band center frequencies, in Hz, shared
// by every Soundcore model observed.
func eqBandHz() []uint16 {
	return []uint16{100, 200, 400, 800, 1600, 3200, 6400, 12800}
}

// buttonHandler surfaces each physical button's configured action.
// TWS-capable buttons (the double-click/long-press pairs) set both the
// connected and disconnected action together to the chosen value; the
// two single-click buttons additionally fold "none" into disabling the
// button.
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
			return fmt.Errorf("a3933: unknown button action %q", name)
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
		return fmt.Errorf("a3933: unknown button action %q", *name)
	}
	b.Enabled = true
	b.Action = action
	return nil
}

// deviceInfoHandler surfaces the read-only identification fields.
type deviceInfoHandler struct{}

func (deviceInfoHandler) SettingIds() []settings.SettingId {
	return []settings.SettingId{
		settings.SettingIdBatteryLevelLeft,
		settings.SettingIdBatteryLevelRight,
		settings.SettingIdBatteryChargingLeft,
		settings.SettingIdBatteryChargingRight,
		settings.SettingIdSerialNumber,
		settings.SettingIdFirmwareVersionLeft,
		settings.SettingIdFirmwareVersionRight,
	}
}

func (deviceInfoHandler) Get(state any, id settings.SettingId) (settings.Setting, bool) {
	s := asState(state)
	switch id {
	case settings.SettingIdBatteryLevelLeft:
		return settings.NewInformation(fmt.Sprintf("%d", s.Battery.Left), ""), true
	case settings.SettingIdBatteryLevelRight:
		return settings.NewInformation(fmt.Sprintf("%d", s.Battery.Right), ""), true
	case settings.SettingIdBatteryChargingLeft:
		return settings.NewInformation(fmt.Sprintf("%t", s.Battery.LeftCharging), ""), true
	case settings.SettingIdBatteryChargingRight:
		return settings.NewInformation(fmt.Sprintf("%t", s.Battery.RightCharging), ""), true
	case settings.SettingIdSerialNumber:
		return settings.NewInformation(string(s.SerialNumber), ""), true
	case settings.SettingIdFirmwareVersionLeft:
		if s.Firmware.Left == nil {
			return settings.NewInformation("", ""), true
		}
		return settings.NewInformation(s.Firmware.Left.String(), ""), true
	case settings.SettingIdFirmwareVersionRight:
		if s.Firmware.Right == nil {
			return settings.NewInformation("", ""), true
		}
		return settings.NewInformation(s.Firmware.Right.String(), ""), true
	default:
		return settings.Setting{}, false
	}
}

func (deviceInfoHandler) Set(target any, id settings.SettingId, value settings.Value) error {
	return fmt.Errorf("a3933: %s is read-only", id)
}
