package structures

// BasicHearId is the reduced hear-ID fit carried by models that never
// exposed a custom-tuned curve: a measured left/right adjustment and the
// timestamp it was recorded at, with no custom override and no
// associated preset. EqualizerModifier synthesizes a full CustomHearId
// from this before sending SetEqualizerAndCustomHearId, since the wire
// body format is shared between both hear-ID variants.
type BasicHearId struct {
	IsEnabled bool
	Left      VolumeAdjustments
	Right     VolumeAdjustments
	Time      uint32
}

// ToCustomHearId synthesizes the CustomHearId payload the wire format
// expects, leaving HearIDType at its zero value and HasCustom/
// PresetProfileID empty since a basic fit never carries either.
func (b BasicHearId) ToCustomHearId() CustomHearId {
	return CustomHearId{
		IsEnabled: b.IsEnabled,
		Left:      b.Left,
		Right:     b.Right,
		Time:      b.Time,
	}
}
