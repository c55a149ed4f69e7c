package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oppzippy/OpenSCQ30-sub001/transport"
)

func demoPaired(mac byte) PairedDevice {
	return PairedDevice{Name: "Demo", MAC: transport.MAC{mac, 0, 0, 0, 0, 0}, Model: DeviceModelDemo}
}

func TestRegistryAcquireCachesByMAC(t *testing.T) {
	r := New()
	ctx := context.Background()

	d1, err := r.Acquire(ctx, demoPaired(1))
	require.NoError(t, err)
	d2, err := r.Acquire(ctx, demoPaired(1))
	require.NoError(t, err)

	assert.Same(t, d1, d2)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryReleaseEvictsAtZeroRefs(t *testing.T) {
	r := New()
	ctx := context.Background()

	_, err := r.Acquire(ctx, demoPaired(2))
	require.NoError(t, err)
	_, err = r.Acquire(ctx, demoPaired(2))
	require.NoError(t, err)
	require.Equal(t, 1, r.Len())

	require.NoError(t, r.Release(transport.MAC{2, 0, 0, 0, 0, 0}))
	assert.Equal(t, 1, r.Len())

	require.NoError(t, r.Release(transport.MAC{2, 0, 0, 0, 0, 0}))
	assert.Equal(t, 0, r.Len())
}

func TestRegistryReleaseUnknownMACErrors(t *testing.T) {
	r := New()
	err := r.Release(transport.MAC{9, 9, 9, 9, 9, 9})
	assert.Error(t, err)
}

func TestRegistryDistinctMACsGetDistinctHandles(t *testing.T) {
	r := New()
	ctx := context.Background()

	d1, err := r.Acquire(ctx, demoPaired(1))
	require.NoError(t, err)
	d2, err := r.Acquire(ctx, demoPaired(2))
	require.NoError(t, err)

	assert.NotSame(t, d1, d2)
	assert.Equal(t, 2, r.Len())
}

func TestDeviceModelNameRoundTrip(t *testing.T) {
	for _, m := range []DeviceModel{DeviceModelDemo, DeviceModelA3933} {
		name := m.String()
		got, ok := DeviceModelFromName(name)
		require.True(t, ok)
		assert.Equal(t, m, got)
	}
}
