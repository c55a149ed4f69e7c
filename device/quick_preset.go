package device

import (
	"context"

	"github.com/Oppzippy/OpenSCQ30-sub001/settings"
)

// QuickPresetField is one entry in a QuickPreset: a setting write plus
// whether it is currently enabled for activation.
type QuickPresetField struct {
	ID        settings.SettingId
	Value     settings.Value
	IsEnabled bool
}

// QuickPreset names a bundle of setting writes, scoped by device model
// at the store layer (see store.QuickPresets).
type QuickPreset struct {
	Name   string
	Fields []QuickPresetField
}

// ActivateQuickPreset feeds every enabled field into SetSettingValues.
// Per §4.10/S3, a field whose setter fails with an aggregated error does
// not prevent the remaining enabled fields from applying; the returned
// error, if any, aggregates only the failed fields.
func (d *Device[S]) ActivateQuickPreset(ctx context.Context, preset QuickPreset) error {
	var writes []SettingWrite
	for _, f := range preset.Fields {
		if !f.IsEnabled {
			continue
		}
		writes = append(writes, SettingWrite{ID: f.ID, Value: f.Value})
	}
	if len(writes) == 0 {
		return nil
	}
	return d.SetSettingValues(ctx, writes)
}

// MergeQuickPresetUpsert implements §4.10's upsert semantics: when a
// preset of the same name already exists, each incoming field's
// IsEnabled is forced true if it was true in the stored record, so a
// user's enable-toggles survive being overwritten by a re-import or
// re-save. Fields present only in the stored record are dropped;
// fields present only in the incoming record keep their incoming
// IsEnabled, since there is no prior state to preserve.
func MergeQuickPresetUpsert(existing, incoming QuickPreset) QuickPreset {
	enabledByID := make(map[settings.SettingId]bool, len(existing.Fields))
	for _, f := range existing.Fields {
		enabledByID[f.ID] = f.IsEnabled
	}

	merged := QuickPreset{Name: incoming.Name, Fields: make([]QuickPresetField, len(incoming.Fields))}
	for i, f := range incoming.Fields {
		if wasEnabled, existed := enabledByID[f.ID]; existed && wasEnabled {
			f.IsEnabled = true
		}
		merged.Fields[i] = f
	}
	return merged
}
