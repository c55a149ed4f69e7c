package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Oppzippy/OpenSCQ30-sub001/settings"
)

// parseValue converts raw --set text into a settings.Value shaped for
// setting's kind, per the CLI surface's value-parsing table.
func parseValue(setting settings.Setting, raw string) (settings.Value, error) {
	switch setting.Kind {
	case settings.SettingKindToggle:
		switch raw {
		case "true":
			return settings.NewBoolValue(true), nil
		case "false":
			return settings.NewBoolValue(false), nil
		default:
			return settings.Value{}, fmt.Errorf("invalid value: %q is not true or false", raw)
		}

	case settings.SettingKindI32Range:
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return settings.Value{}, fmt.Errorf("invalid value: %q is not an integer", raw)
		}
		v := int32(n)
		if !setting.Range.Contains(v) {
			return settings.Value{}, fmt.Errorf("invalid value: %d out of range [%d,%d] step %d", v, setting.Range.Start, setting.Range.End, setting.Range.Step)
		}
		return settings.NewI32Value(v), nil

	case settings.SettingKindSelect:
		opt, ok := matchOption(setting.Options, raw)
		if !ok {
			return settings.Value{}, fmt.Errorf("invalid value: %q is not one of %v", raw, setting.Options)
		}
		return settings.NewStringValue(opt), nil

	case settings.SettingKindOptionalSelect:
		if raw == "" {
			return settings.NewOptionalStringValue(nil), nil
		}
		opt, ok := matchOption(setting.Options, raw)
		if !ok {
			return settings.Value{}, fmt.Errorf("invalid value: %q is not one of %v", raw, setting.Options)
		}
		return settings.NewOptionalStringValue(&opt), nil

	case settings.SettingKindModifiableSelect:
		switch {
		case strings.HasPrefix(raw, "+"):
			return settings.NewModifiableSelectAdd(raw[1:]), nil
		case strings.HasPrefix(raw, "-"):
			return settings.NewModifiableSelectRemove(raw[1:]), nil
		case strings.HasPrefix(raw, `\`):
			name := raw[1:]
			return settings.NewOptionalStringValue(&name), nil
		default:
			name := raw
			return settings.NewOptionalStringValue(&name), nil
		}

	case settings.SettingKindMultiSelect:
		var values []string
		if raw != "" {
			values = strings.Split(raw, ",")
		}
		return settings.NewStringVecValue(values), nil

	case settings.SettingKindEqualizer:
		parts := strings.Split(raw, ",")
		bands := make([]int16, len(parts))
		for i, p := range parts {
			n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 16)
			if err != nil {
				return settings.Value{}, fmt.Errorf("invalid value: %q is not an integer", p)
			}
			v := int16(n)
			if v < setting.Min || v > setting.Max {
				return settings.Value{}, fmt.Errorf("invalid value: %d out of range [%d,%d]", v, setting.Min, setting.Max)
			}
			bands[i] = v
		}
		return settings.NewI16VecValue(bands), nil

	case settings.SettingKindImportString:
		return settings.NewStringValue(raw), nil

	case settings.SettingKindInformation:
		return settings.Value{}, fmt.Errorf("invalid value: this setting is read-only")

	default:
		return settings.Value{}, fmt.Errorf("invalid value: unsupported setting kind")
	}
}

func matchOption(options []string, raw string) (string, bool) {
	for _, o := range options {
		if strings.EqualFold(o, raw) {
			return o, true
		}
	}
	return "", false
}

// renderSetting renders a setting's current value as plain text, for
// list-settings and exec's observed-value table.
func renderSetting(s settings.Setting) string {
	switch s.Kind {
	case settings.SettingKindToggle:
		return strconv.FormatBool(s.ToggleValue)
	case settings.SettingKindI32Range:
		return strconv.FormatInt(int64(s.RangeValue), 10)
	case settings.SettingKindSelect:
		return s.SelectValue
	case settings.SettingKindOptionalSelect, settings.SettingKindModifiableSelect:
		if s.OptionalValue == nil {
			return ""
		}
		return *s.OptionalValue
	case settings.SettingKindMultiSelect:
		return strings.Join(s.MultiValues, ",")
	case settings.SettingKindEqualizer:
		parts := make([]string, len(s.EqualizerValue))
		for i, v := range s.EqualizerValue {
			parts[i] = strconv.FormatInt(int64(v), 10)
		}
		return strings.Join(parts, ",")
	case settings.SettingKindInformation:
		return s.InfoValue
	case settings.SettingKindImportString:
		return ""
	default:
		return ""
	}
}

// extendedInfo renders a setting's shape (options, range, band layout)
// for list-settings' default, non---no-extended-info output.
func extendedInfo(s settings.Setting) string {
	switch s.Kind {
	case settings.SettingKindI32Range:
		return fmt.Sprintf("range [%d,%d] step %d", s.Range.Start, s.Range.End, s.Range.Step)
	case settings.SettingKindSelect, settings.SettingKindOptionalSelect, settings.SettingKindModifiableSelect, settings.SettingKindMultiSelect:
		return strings.Join(s.Options, ",")
	case settings.SettingKindEqualizer:
		return fmt.Sprintf("%d bands, range [%d,%d]", len(s.BandHz), s.Min, s.Max)
	default:
		return ""
	}
}
