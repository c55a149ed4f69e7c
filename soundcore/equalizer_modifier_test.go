package soundcore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oppzippy/OpenSCQ30-sub001/device"
	"github.com/Oppzippy/OpenSCQ30-sub001/structures"
	"github.com/Oppzippy/OpenSCQ30-sub001/wire"
)

type eqSender struct {
	frames []wire.Frame
}

func (s *eqSender) SendWithResponse(ctx context.Context, outbound wire.Frame) (wire.Frame, error) {
	s.frames = append(s.frames, outbound)
	return wire.Frame{Direction: wire.Inbound, Command: outbound.Command}, nil
}

type eqState struct {
	eq       structures.EqualizerConfiguration
	ageRange structures.AgeRange
	gender   structures.Gender
	basic    structures.BasicHearId
	custom   structures.CustomHearId
}

func customAdjustments(base int16) structures.VolumeAdjustments {
	bands := make([]int16, 8)
	for i := range bands {
		bands[i] = base
	}
	return structures.NewVolumeAdjustments(bands)
}

func TestEqualizerModifierPlainUnchangedSendsNothing(t *testing.T) {
	eq := structures.NewCustomEqualizerConfiguration([]structures.VolumeAdjustments{customAdjustments(10), customAdjustments(10)})
	m := EqualizerModifier[eqState]{
		Variant:      EqualizerVariantPlain,
		GetEqualizer: func(s *eqState) structures.EqualizerConfiguration { return s.eq },
	}
	current := &eqState{eq: eq}
	target := &eqState{eq: eq}
	sender := &eqSender{}

	err := m.MoveToState(context.Background(), sender, current, target)
	require.NoError(t, err)
	assert.Empty(t, sender.frames)
}

func TestEqualizerModifierPlainSendsSetEqualizer(t *testing.T) {
	current := &eqState{eq: structures.NewCustomEqualizerConfiguration([]structures.VolumeAdjustments{customAdjustments(0), customAdjustments(0)})}
	target := &eqState{eq: structures.NewCustomEqualizerConfiguration([]structures.VolumeAdjustments{customAdjustments(20), customAdjustments(20)})}
	m := EqualizerModifier[eqState]{
		Variant:      EqualizerVariantPlain,
		GetEqualizer: func(s *eqState) structures.EqualizerConfiguration { return s.eq },
	}
	sender := &eqSender{}

	err := m.MoveToState(context.Background(), sender, current, target)
	require.NoError(t, err)
	require.Len(t, sender.frames, 1)
	assert.Equal(t, CmdSetEqualizer, sender.frames[0].Command)
	assert.Equal(t, target.eq.Encode(), sender.frames[0].Body)
}

func TestEqualizerModifierPlainDRCAppliesCompression(t *testing.T) {
	current := &eqState{eq: structures.NewCustomEqualizerConfiguration([]structures.VolumeAdjustments{customAdjustments(0)})}
	target := &eqState{eq: structures.NewCustomEqualizerConfiguration([]structures.VolumeAdjustments{customAdjustments(30)})}
	m := EqualizerModifier[eqState]{
		Variant:      EqualizerVariantPlainDRC,
		GetEqualizer: func(s *eqState) structures.EqualizerConfiguration { return s.eq },
	}
	sender := &eqSender{}

	err := m.MoveToState(context.Background(), sender, current, target)
	require.NoError(t, err)
	require.Len(t, sender.frames, 1)
	assert.Equal(t, CmdSetEqualizer, sender.frames[0].Command)
	// DRC reshapes the body, so it must not equal a plain, unfiltered encode.
	assert.NotEqual(t, target.eq.Encode(), sender.frames[0].Body)
}

func TestEqualizerModifierBasicHearIDSentinelsWhenAgeRangeUnsupported(t *testing.T) {
	current := &eqState{eq: structures.NewCustomEqualizerConfiguration([]structures.VolumeAdjustments{customAdjustments(0), customAdjustments(0)})}
	target := &eqState{
		eq:       structures.NewCustomEqualizerConfiguration([]structures.VolumeAdjustments{customAdjustments(10), customAdjustments(10)}),
		ageRange: 10, // below hearIDMinAge
		gender:   structures.GenderMale,
		basic:    structures.BasicHearId{IsEnabled: true, Left: customAdjustments(5), Right: customAdjustments(5), Time: 123},
	}
	m := EqualizerModifier[eqState]{
		Variant:        EqualizerVariantBasicHearID,
		GetEqualizer:   func(s *eqState) structures.EqualizerConfiguration { return s.eq },
		GetAgeRange:    func(s *eqState) structures.AgeRange { return s.ageRange },
		GetGender:      func(s *eqState) structures.Gender { return s.gender },
		GetBasicHearID: func(s *eqState) structures.BasicHearId { return s.basic },
	}
	sender := &eqSender{}

	err := m.MoveToState(context.Background(), sender, current, target)
	require.NoError(t, err)
	require.Len(t, sender.frames, 1)
	assert.Equal(t, CmdSetEqualizerNoHearID, sender.frames[0].Command)

	body := sender.frames[0].Body
	eqLen := len(target.eq.Encode())
	require.Len(t, body, eqLen+2+48)
	assert.Equal(t, []byte{0xFF, 0xFF}, body[eqLen:eqLen+2])
	assert.Equal(t, structures.SentinelHearIdBytes(), body[eqLen+2:])
}

func TestEqualizerModifierCustomHearIDSupportedAgeRange(t *testing.T) {
	current := &eqState{eq: structures.NewCustomEqualizerConfiguration([]structures.VolumeAdjustments{customAdjustments(0), customAdjustments(0)})}
	target := &eqState{
		eq:       structures.NewCustomEqualizerConfiguration([]structures.VolumeAdjustments{customAdjustments(10), customAdjustments(10)}),
		ageRange: 30,
		gender:   structures.GenderFemale,
		custom:   structures.CustomHearId{IsEnabled: true, Left: customAdjustments(1), Right: customAdjustments(1), Time: 999, HasCustom: true, CustomLeft: customAdjustments(2), CustomRight: customAdjustments(2)},
	}
	m := EqualizerModifier[eqState]{
		Variant:         EqualizerVariantCustomHearID,
		GetEqualizer:    func(s *eqState) structures.EqualizerConfiguration { return s.eq },
		GetAgeRange:     func(s *eqState) structures.AgeRange { return s.ageRange },
		GetGender:       func(s *eqState) structures.Gender { return s.gender },
		GetCustomHearID: func(s *eqState) structures.CustomHearId { return s.custom },
	}
	sender := &eqSender{}

	err := m.MoveToState(context.Background(), sender, current, target)
	require.NoError(t, err)
	require.Len(t, sender.frames, 1)
	assert.Equal(t, CmdSetEqualizerWithHearID, sender.frames[0].Command)

	body := sender.frames[0].Body
	eqLen := len(target.eq.Encode())
	assert.Equal(t, target.gender.Encode()[0], body[eqLen])
	assert.Equal(t, target.ageRange.Encode()[0], body[eqLen+1])
	assert.Equal(t, target.custom.Encode(), body[eqLen+2:])
}

var _ device.PacketSender = (*eqSender)(nil)
