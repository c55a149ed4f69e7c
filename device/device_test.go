package device

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oppzippy/OpenSCQ30-sub001/settings"
	"github.com/Oppzippy/OpenSCQ30-sub001/wire"
)

type fakeState struct {
	toggleA bool
	toggleB bool
	moved   bool
}

type fakeSender struct{}

func (fakeSender) SendWithResponse(ctx context.Context, outbound wire.Frame) (wire.Frame, error) {
	return wire.Frame{}, nil
}

type toggleAHandler struct{}

func (toggleAHandler) SettingIds() []settings.SettingId {
	return []settings.SettingId{settings.SettingIdAmbientSoundMode}
}
func (toggleAHandler) Get(state any, id settings.SettingId) (settings.Setting, bool) {
	return settings.NewToggle(state.(*fakeState).toggleA), true
}
func (toggleAHandler) Set(target any, id settings.SettingId, value settings.Value) error {
	b, err := value.AsBool()
	if err != nil {
		return err
	}
	target.(*fakeState).toggleA = b
	return nil
}

type toggleBHandler struct{}

func (toggleBHandler) SettingIds() []settings.SettingId {
	return []settings.SettingId{settings.SettingIdTransparencyMode}
}
func (toggleBHandler) Get(state any, id settings.SettingId) (settings.Setting, bool) {
	return settings.NewToggle(state.(*fakeState).toggleB), true
}
func (toggleBHandler) Set(target any, id settings.SettingId, value settings.Value) error {
	// Always rejects, to exercise aggregated-failure behavior.
	return errors.New("rejected for test")
}

type recordingModifier struct {
	calls int
}

func (m *recordingModifier) MoveToState(ctx context.Context, sender PacketSender, current, target *fakeState) error {
	m.calls++
	target.moved = true
	return nil
}

func buildDevice(t *testing.T) (*Device[fakeState], *recordingModifier) {
	t.Helper()
	modifier := &recordingModifier{}
	modules := []Module[fakeState]{
		{Category: CategoryAndHandler{Category: settings.CategorySoundModes, Handler: toggleAHandler{}}, Modifier: modifier},
		{Category: CategoryAndHandler{Category: settings.CategorySoundModes, Handler: toggleBHandler{}}},
	}
	d, err := New(fakeState{}, fakeSender{}, modules)
	require.NoError(t, err)
	return d, modifier
}

func TestDeviceSetSettingValuesAppliesAndRunsModifiers(t *testing.T) {
	d, modifier := buildDevice(t)
	ctx := context.Background()

	err := d.SetSettingValues(ctx, []SettingWrite{
		{ID: settings.SettingIdAmbientSoundMode, Value: settings.NewBoolValue(true)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, modifier.calls)
	assert.True(t, d.State().toggleA)
	assert.True(t, d.State().moved)
}

func TestDeviceSetSettingValuesAggregatesPartialFailure(t *testing.T) {
	d, _ := buildDevice(t)
	ctx := context.Background()

	err := d.SetSettingValues(ctx, []SettingWrite{
		{ID: settings.SettingIdAmbientSoundMode, Value: settings.NewBoolValue(true)},
		{ID: settings.SettingIdTransparencyMode, Value: settings.NewBoolValue(true)},
	})
	require.Error(t, err)
	var agg *AggregateError
	require.ErrorAs(t, err, &agg)
	require.Len(t, agg.Failures, 1)
	assert.Equal(t, settings.SettingIdTransparencyMode, agg.Failures[0].ID)
	// The field that succeeded still took effect.
	assert.True(t, d.State().toggleA)
}

func TestDeviceWatchForChangesReceivesNotification(t *testing.T) {
	d, _ := buildDevice(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := d.WatchForChanges(ctx)
	err := d.SetSettingValues(ctx, []SettingWrite{
		{ID: settings.SettingIdAmbientSoundMode, Value: settings.NewBoolValue(true)},
	})
	require.NoError(t, err)

	select {
	case n := <-ch:
		assert.Equal(t, []settings.SettingId{settings.SettingIdAmbientSoundMode}, n.SettingIds)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

func TestMergeQuickPresetUpsertPreservesEnabledFlags(t *testing.T) {
	existing := QuickPreset{
		Name: "P",
		Fields: []QuickPresetField{
			{ID: "a", IsEnabled: true},
			{ID: "b", IsEnabled: false},
		},
	}
	incoming := QuickPreset{
		Name: "P",
		Fields: []QuickPresetField{
			{ID: "a", IsEnabled: false},
			{ID: "b", IsEnabled: false},
			{ID: "c", IsEnabled: true},
		},
	}
	merged := MergeQuickPresetUpsert(existing, incoming)
	byID := map[settings.SettingId]bool{}
	for _, f := range merged.Fields {
		byID[f.ID] = f.IsEnabled
	}
	assert.Equal(t, map[settings.SettingId]bool{"a": true, "b": false, "c": true}, byID)
}

type panickingModifier struct{}

func (panickingModifier) MoveToState(ctx context.Context, sender PacketSender, current, target *fakeState) error {
	panic("boom")
}

// TestDeviceRecoversModifierPanic covers the actor's panic-recovery
// boundary: a modifier that panics must not take the device down, and
// the device must still answer later calls.
func TestDeviceRecoversModifierPanic(t *testing.T) {
	modules := []Module[fakeState]{
		{Category: CategoryAndHandler{Category: settings.CategorySoundModes, Handler: toggleAHandler{}}, Modifier: panickingModifier{}},
	}
	d, err := New(fakeState{}, fakeSender{}, modules)
	require.NoError(t, err)
	ctx := context.Background()

	err = d.SetSettingValues(ctx, []SettingWrite{
		{ID: settings.SettingIdAmbientSoundMode, Value: settings.NewBoolValue(true)},
	})
	require.Error(t, err)

	// the actor is still alive and serving other commands
	_, ok, err := d.Setting(settings.SettingIdAmbientSoundMode)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestActivateQuickPresetSkipsDisabledFields(t *testing.T) {
	d, modifier := buildDevice(t)
	ctx := context.Background()

	err := d.ActivateQuickPreset(ctx, QuickPreset{
		Name: "P",
		Fields: []QuickPresetField{
			{ID: settings.SettingIdAmbientSoundMode, Value: settings.NewBoolValue(true), IsEnabled: true},
			{ID: settings.SettingIdTransparencyMode, Value: settings.NewBoolValue(true), IsEnabled: false},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, modifier.calls)
	assert.True(t, d.State().toggleA)
}
