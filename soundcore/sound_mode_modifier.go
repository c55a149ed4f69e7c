package soundcore

import (
	"context"

	"github.com/Oppzippy/OpenSCQ30-sub001/device"
	"github.com/Oppzippy/OpenSCQ30-sub001/structures"
	"github.com/Oppzippy/OpenSCQ30-sub001/wire"
)

// SoundModeModifier is the §4.7 state modifier, parametrized over a
// model's state type S via plain accessor functions rather than an
// interface, so a model package can wire it up with closures over its
// own struct fields.
type SoundModeModifier[S any] struct {
	Get func(*S) structures.SoundModes

	// BuildPacket renders one SetSoundMode outbound frame for the given
	// sound-modes value.
	BuildPacket func(structures.SoundModes) wire.Frame
}

// MoveToState implements the firmware-quirk-aware algorithm from §4.7:
// changing noise_canceling_mode while ambient_sound_mode is not
// NoiseCanceling leaves the device internally pinned to NC. The
// modifier compensates by pinning ambient to NoiseCanceling for two
// sends (one with the stale NC sub-mode, one with the new one) before
// finishing with the caller's actually-requested ambient mode, if that
// differs from NoiseCanceling.
func (m SoundModeModifier[S]) MoveToState(ctx context.Context, sender device.PacketSender, current, target *S) error {
	prev := m.Get(current)
	next := m.Get(target)
	if prev == next {
		return nil
	}

	send := func(sm structures.SoundModes) error {
		_, err := sender.SendWithResponse(ctx, m.BuildPacket(sm))
		return err
	}

	if prev.AmbientSoundMode != structures.AmbientSoundModeNoiseCanceling && prev.NoiseCancelingMode != next.NoiseCancelingMode {
		pinnedStale := prev
		pinnedStale.AmbientSoundMode = structures.AmbientSoundModeNoiseCanceling
		if err := send(pinnedStale); err != nil {
			return err
		}

		pinnedNew := next
		pinnedNew.AmbientSoundMode = structures.AmbientSoundModeNoiseCanceling
		if err := send(pinnedNew); err != nil {
			return err
		}

		if next.AmbientSoundMode != structures.AmbientSoundModeNoiseCanceling {
			if err := send(next); err != nil {
				return err
			}
		}
	} else {
		if err := send(next); err != nil {
			return err
		}
	}

	return nil
}
