package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Oppzippy/OpenSCQ30-sub001/device"
	"github.com/Oppzippy/OpenSCQ30-sub001/registry"
	"github.com/Oppzippy/OpenSCQ30-sub001/transport"
)

// command is a typed unit of work against the owning goroutine's
// Document, with an embedded reply slot. Every public Store method
// builds one of these and blocks on its reply channel, so all access to
// the document is serialized through a single goroutine per §5's
// "its own thread, exclusive ownership of the connection" model (a
// goroutine behind a channel is the direct Go analogue of a dedicated
// OS thread here; no component needs true OS-thread pinning).
type command struct {
	run   func(*Document) (any, error)
	reply chan result
}

type result struct {
	value any
	err   error
}

// Store owns the document and the goroutine serializing access to it.
type Store struct {
	backend  Backend
	commands chan command
	done     chan struct{}
	logger   *log.Logger
}

// Open loads backend's document (running any pending migrations) and
// starts the owning goroutine.
func Open(backend Backend) (*Store, error) {
	doc, err := backend.Load()
	if err != nil {
		return nil, err
	}
	applyMigrations(&doc)

	s := &Store{
		backend:  backend,
		commands: make(chan command),
		done:     make(chan struct{}),
		logger:   log.Default(),
	}
	go s.run(doc)
	return s, nil
}

// SetLogger replaces the store's logger, normally config.NewLogger's
// shared instance in place of the package default.
func (s *Store) SetLogger(logger *log.Logger) {
	s.logger = logger
}

func (s *Store) run(doc Document) {
	defer close(s.done)
	for cmd := range s.commands {
		value, err := cmd.run(&doc)
		cmd.reply <- result{value: value, err: err}
	}
}

// Close stops the owning goroutine. Pending commands already submitted
// complete before it exits.
func (s *Store) Close() {
	close(s.commands)
	<-s.done
}

// submit runs fn against the live document on the owning goroutine and
// returns its typed result.
func submit[T any](ctx context.Context, s *Store, fn func(*Document) (T, error)) (T, error) {
	var zero T
	reply := make(chan result, 1)
	cmd := command{
		run: func(d *Document) (any, error) {
			v, err := fn(d)
			return v, err
		},
		reply: reply,
	}
	select {
	case s.commands <- cmd:
	case <-ctx.Done():
		return zero, ctx.Err()
	}
	select {
	case r := <-reply:
		if r.err != nil {
			return zero, r.err
		}
		return r.value.(T), nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// persist saves the live document through the backend, called at the
// end of every mutating command so a crash never loses an
// already-acknowledged write.
func (s *Store) persist(d *Document) error {
	if err := s.backend.Save(*d); err != nil {
		s.logger.Error("persist failed", "err", err)
		return err
	}
	return nil
}

// FetchAllEqualizerProfiles implements §4.9's fetch_all, names sorted.
func (s *Store) FetchAllEqualizerProfiles(ctx context.Context, model registry.DeviceModel) ([]CustomEqualizerProfile, error) {
	return submit(ctx, s, func(d *Document) ([]CustomEqualizerProfile, error) {
		set := d.equalizerSet(model)
		out := make([]CustomEqualizerProfile, len(set.Profiles))
		copy(out, set.Profiles)
		return out, nil
	})
}

// UpsertEqualizerProfile implements §4.9's upsert: insert or replace by
// name.
func (s *Store) UpsertEqualizerProfile(ctx context.Context, model registry.DeviceModel, profile CustomEqualizerProfile) error {
	_, err := submit(ctx, s, func(d *Document) (struct{}, error) {
		set := d.equalizerSet(model)
		for i := range set.Profiles {
			if set.Profiles[i].Name == profile.Name {
				set.Profiles[i] = profile
				sortProfileNames(set.Profiles)
				return struct{}{}, s.persist(d)
			}
		}
		set.Profiles = append(set.Profiles, profile)
		sortProfileNames(set.Profiles)
		return struct{}{}, s.persist(d)
	})
	return err
}

// DeleteEqualizerProfile implements §4.9's delete by name.
func (s *Store) DeleteEqualizerProfile(ctx context.Context, model registry.DeviceModel, name string) error {
	_, err := submit(ctx, s, func(d *Document) (struct{}, error) {
		set := d.equalizerSet(model)
		for i := range set.Profiles {
			if set.Profiles[i].Name == name {
				set.Profiles = append(set.Profiles[:i], set.Profiles[i+1:]...)
				return struct{}{}, s.persist(d)
			}
		}
		return struct{}{}, nil
	})
	return err
}

// ImportEqualizerProfiles implements §4.9's import: for each incoming
// profile, if its name collides with an existing one and overwrite is
// false, append " (2)", " (3)", ... until unique, then upsert.
func (s *Store) ImportEqualizerProfiles(ctx context.Context, model registry.DeviceModel, incoming []CustomEqualizerProfile, overwrite bool) ([]CustomEqualizerProfile, error) {
	return submit(ctx, s, func(d *Document) ([]CustomEqualizerProfile, error) {
		set := d.equalizerSet(model)
		imported := make([]CustomEqualizerProfile, 0, len(incoming))
		for _, profile := range incoming {
			name := profile.Name
			if !overwrite {
				name = uniqueName(set.Profiles, name)
			}
			profile.Name = name
			upsertInPlace(set, profile)
			imported = append(imported, profile)
		}
		sortProfileNames(set.Profiles)
		return imported, s.persist(d)
	})
}

func upsertInPlace(set *equalizerProfileSet, profile CustomEqualizerProfile) {
	for i := range set.Profiles {
		if set.Profiles[i].Name == profile.Name {
			set.Profiles[i] = profile
			return
		}
	}
	set.Profiles = append(set.Profiles, profile)
}

func uniqueName(existing []CustomEqualizerProfile, name string) string {
	taken := make(map[string]bool, len(existing))
	for _, p := range existing {
		taken[p.Name] = true
	}
	if !taken[name] {
		return name
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", name, n)
		if !taken[candidate] {
			return candidate
		}
	}
}

// SelectForCurrentAdjustments implements §4.9's CustomEqualizerProfile
// ModifiableSelect projection: sorted option names, plus the name of
// whichever stored profile's adjustments equal current, if any.
func SelectForCurrentAdjustments(profiles []CustomEqualizerProfile, current []int16) (options []string, value *string) {
	options = make([]string, len(profiles))
	for i, p := range profiles {
		options[i] = p.Name
		if value == nil && equalBands(p.VolumeAdjustments, current) {
			name := p.Name
			value = &name
		}
	}
	sort.SliceStable(options, func(i, j int) bool {
		return strings.ToLower(options[i]) < strings.ToLower(options[j])
	})
	return options, value
}

func equalBands(a, b []int16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FetchQuickPresets implements §4.10's listing.
func (s *Store) FetchQuickPresets(ctx context.Context, model registry.DeviceModel) ([]device.QuickPreset, error) {
	return submit(ctx, s, func(d *Document) ([]device.QuickPreset, error) {
		var out []device.QuickPreset
		for _, r := range d.QuickPresets {
			if r.Model == model {
				out = append(out, r.Preset)
			}
		}
		return out, nil
	})
}

// UpsertQuickPreset implements §4.10's upsert-preserving-enabled-flags
// semantics via device.MergeQuickPresetUpsert.
func (s *Store) UpsertQuickPreset(ctx context.Context, model registry.DeviceModel, preset device.QuickPreset) error {
	_, err := submit(ctx, s, func(d *Document) (struct{}, error) {
		for i := range d.QuickPresets {
			if d.QuickPresets[i].Model == model && d.QuickPresets[i].Preset.Name == preset.Name {
				d.QuickPresets[i].Preset = device.MergeQuickPresetUpsert(d.QuickPresets[i].Preset, preset)
				return struct{}{}, s.persist(d)
			}
		}
		d.QuickPresets = append(d.QuickPresets, QuickPresetRecord{Model: model, Preset: preset})
		return struct{}{}, s.persist(d)
	})
	return err
}

// DeleteQuickPreset removes the named preset for model, if present.
func (s *Store) DeleteQuickPreset(ctx context.Context, model registry.DeviceModel, name string) error {
	_, err := submit(ctx, s, func(d *Document) (struct{}, error) {
		for i := range d.QuickPresets {
			if d.QuickPresets[i].Model == model && d.QuickPresets[i].Preset.Name == name {
				d.QuickPresets = append(d.QuickPresets[:i], d.QuickPresets[i+1:]...)
				return struct{}{}, s.persist(d)
			}
		}
		return struct{}{}, nil
	})
	return err
}

// FetchPairedDevices lists every stored pairing.
func (s *Store) FetchPairedDevices(ctx context.Context) ([]PairedDeviceRecord, error) {
	return submit(ctx, s, func(d *Document) ([]PairedDeviceRecord, error) {
		out := make([]PairedDeviceRecord, len(d.PairedDevices))
		copy(out, d.PairedDevices)
		return out, nil
	})
}

// UpsertPairedDevice inserts or replaces a pairing by MAC.
func (s *Store) UpsertPairedDevice(ctx context.Context, rec PairedDeviceRecord) error {
	_, err := submit(ctx, s, func(d *Document) (struct{}, error) {
		for i := range d.PairedDevices {
			if d.PairedDevices[i].MAC == rec.MAC {
				d.PairedDevices[i] = rec
				return struct{}{}, s.persist(d)
			}
		}
		d.PairedDevices = append(d.PairedDevices, rec)
		return struct{}{}, s.persist(d)
	})
	return err
}

// DeletePairedDevice removes a stored pairing by MAC, if present.
func (s *Store) DeletePairedDevice(ctx context.Context, mac transport.MAC) error {
	_, err := submit(ctx, s, func(d *Document) (struct{}, error) {
		for i := range d.PairedDevices {
			if d.PairedDevices[i].MAC == mac {
				d.PairedDevices = append(d.PairedDevices[:i], d.PairedDevices[i+1:]...)
				return struct{}{}, s.persist(d)
			}
		}
		return struct{}{}, nil
	})
	return err
}
