package soundcore

import (
	"context"
	"fmt"

	"github.com/Oppzippy/OpenSCQ30-sub001/device"
	"github.com/Oppzippy/OpenSCQ30-sub001/structures"
	"github.com/Oppzippy/OpenSCQ30-sub001/wire"
)

// EqualizerVariant selects which outbound packet shape a model's
// equalizer modifier uses, per §4.8.
type EqualizerVariant int

const (
	// EqualizerVariantPlain sends SetEqualizer with the adjustments as-is.
	EqualizerVariantPlain EqualizerVariant = iota
	// EqualizerVariantPlainDRC sends SetEqualizer with DRC applied to
	// the first 8 bands of every channel.
	EqualizerVariantPlainDRC
	// EqualizerVariantBasicHearID sends SetEqualizerAndCustomHearId,
	// synthesizing the hear-ID payload from a reduced BasicHearId fit.
	EqualizerVariantBasicHearID
	// EqualizerVariantCustomHearID sends SetEqualizerAndCustomHearId
	// directly from a full CustomHearId.
	EqualizerVariantCustomHearID
)

// EqualizerModifier is the §4.8 state modifier, parametrized over a
// model's state type S via accessor closures, mirroring
// SoundModeModifier's design.
type EqualizerModifier[S any] struct {
	Variant EqualizerVariant

	GetEqualizer func(*S) structures.EqualizerConfiguration

	// GetAgeRange and GetGender are required for the two hear-ID
	// variants; Plain/PlainDRC never call them.
	GetAgeRange func(*S) structures.AgeRange
	GetGender   func(*S) structures.Gender

	// Exactly one of these is set, matching Variant.
	GetBasicHearID  func(*S) structures.BasicHearId
	GetCustomHearID func(*S) structures.CustomHearId
}

// MoveToState sends the equalizer packet appropriate to Variant whenever
// the target equalizer configuration differs from the current one.
// Matching the original reference modifiers, a hear-ID-only change (with
// the equalizer configuration unchanged) does not by itself trigger a
// send here.
func (m EqualizerModifier[S]) MoveToState(ctx context.Context, sender device.PacketSender, current, target *S) error {
	prev := m.GetEqualizer(current)
	next := m.GetEqualizer(target)
	if prev.Equal(next) {
		return nil
	}

	frame, err := m.buildFrame(target, next)
	if err != nil {
		return err
	}
	_, err = sender.SendWithResponse(ctx, frame)
	return err
}

func (m EqualizerModifier[S]) buildFrame(target *S, next structures.EqualizerConfiguration) (wire.Frame, error) {
	switch m.Variant {
	case EqualizerVariantPlain:
		return wire.Frame{Direction: wire.Outbound, Command: CmdSetEqualizer, Body: BuildSetEqualizerBody(next)}, nil
	case EqualizerVariantPlainDRC:
		return wire.Frame{Direction: wire.Outbound, Command: CmdSetEqualizer, Body: BuildSetEqualizerWithDrcBody(next)}, nil
	case EqualizerVariantBasicHearID:
		ageRange := m.GetAgeRange(target)
		hearID := m.GetBasicHearID(target).ToCustomHearId()
		body := BuildSetEqualizerAndCustomHearIdBody(next, m.GetGender(target), ageRange, hearID)
		return wire.Frame{Direction: wire.Outbound, Command: CommandForEqualizerAndCustomHearId(ageRange), Body: body}, nil
	case EqualizerVariantCustomHearID:
		ageRange := m.GetAgeRange(target)
		hearID := m.GetCustomHearID(target)
		body := BuildSetEqualizerAndCustomHearIdBody(next, m.GetGender(target), ageRange, hearID)
		return wire.Frame{Direction: wire.Outbound, Command: CommandForEqualizerAndCustomHearId(ageRange), Body: body}, nil
	default:
		return wire.Frame{}, fmt.Errorf("soundcore: unknown equalizer variant %d", m.Variant)
	}
}
