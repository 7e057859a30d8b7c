package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundcore-oss/soundcore-go/presets"
	"github.com/soundcore-oss/soundcore-go/transport"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutAndGetRoundTrips(t *testing.T) {
	s := newTestStore(t)
	serviceUUID := transport.MustParseUUID("0000a930-0000-1000-8000-00805f9b34fb")

	rec := presets.Record{
		ServiceUUID: serviceUUID,
		Kind:        presets.KindCustomEqualizer,
		Name:        "bass-boost",
		Payload:     []byte{1, 2, 3, 4},
		UpdatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.Put(context.Background(), rec))

	got, err := s.Get(context.Background(), serviceUUID, presets.KindCustomEqualizer, "bass-boost")
	require.NoError(t, err)
	assert.Equal(t, rec.Payload, got.Payload)
	assert.Equal(t, rec.Name, got.Name)
}

func TestGetMissingReturnsErrNotFound(t *testing.T) {
	s := newTestStore(t)
	serviceUUID := transport.MustParseUUID("0000a930-0000-1000-8000-00805f9b34fb")
	_, err := s.Get(context.Background(), serviceUUID, presets.KindQuickPreset, "nope")
	assert.ErrorIs(t, err, presets.ErrNotFound)
}

func TestPutOverwritesExistingRecord(t *testing.T) {
	s := newTestStore(t)
	serviceUUID := transport.MustParseUUID("0000a930-0000-1000-8000-00805f9b34fb")

	first := presets.Record{ServiceUUID: serviceUUID, Kind: presets.KindQuickPreset, Name: "commute", Payload: []byte("v1")}
	second := first
	second.Payload = []byte("v2")

	require.NoError(t, s.Put(context.Background(), first))
	require.NoError(t, s.Put(context.Background(), second))

	got, err := s.Get(context.Background(), serviceUUID, presets.KindQuickPreset, "commute")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got.Payload)
}

func TestListReturnsOnlyMatchingKind(t *testing.T) {
	s := newTestStore(t)
	serviceUUID := transport.MustParseUUID("0000a930-0000-1000-8000-00805f9b34fb")

	require.NoError(t, s.Put(context.Background(), presets.Record{ServiceUUID: serviceUUID, Kind: presets.KindQuickPreset, Name: "a", Payload: []byte("x")}))
	require.NoError(t, s.Put(context.Background(), presets.Record{ServiceUUID: serviceUUID, Kind: presets.KindCustomEqualizer, Name: "b", Payload: []byte("y")}))

	list, err := s.List(context.Background(), serviceUUID, presets.KindQuickPreset)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].Name)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	serviceUUID := transport.MustParseUUID("0000a930-0000-1000-8000-00805f9b34fb")

	require.NoError(t, s.Delete(context.Background(), serviceUUID, presets.KindQuickPreset, "missing"))

	require.NoError(t, s.Put(context.Background(), presets.Record{ServiceUUID: serviceUUID, Kind: presets.KindQuickPreset, Name: "a", Payload: []byte("x")}))
	require.NoError(t, s.Delete(context.Background(), serviceUUID, presets.KindQuickPreset, "a"))

	_, err := s.Get(context.Background(), serviceUUID, presets.KindQuickPreset, "a")
	assert.ErrorIs(t, err, presets.ErrNotFound)
}
