package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundcore-oss/soundcore-go/transport"
	"github.com/soundcore-oss/soundcore-go/wire"
)

// fakeConnection is a minimal, hand-written transport.Connection double: the
// interface's channel-returning methods don't fit testify/mock's call-based
// API well (spec SPEC_FULL.md §9.4 notes the teacher reaches for a hand
// written fake in exactly this situation, platforms/bleclient/helpers_test.go).
type fakeConnection struct {
	mac     transport.MAC
	service transport.UUID

	inbound chan transport.Frame
	status  chan transport.ConnectionStatus

	writes chan []byte
}

func newFakeConnection(service transport.UUID) *fakeConnection {
	return &fakeConnection{
		mac:     transport.MAC{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF},
		service: service,
		inbound: make(chan transport.Frame, 16),
		status:  make(chan transport.ConnectionStatus, 4),
		writes:  make(chan []byte, 16),
	}
}

func (f *fakeConnection) Name() string                { return "fake-a3930" }
func (f *fakeConnection) MACAddress() transport.MAC   { return f.mac }
func (f *fakeConnection) ServiceUUID() transport.UUID { return f.service }

func (f *fakeConnection) ConnectionStatus(ctx context.Context) <-chan transport.ConnectionStatus {
	return f.status
}

func (f *fakeConnection) WriteWithResponse(ctx context.Context, data []byte) error {
	f.writes <- data
	return nil
}

func (f *fakeConnection) WriteWithoutResponse(ctx context.Context, data []byte) error {
	f.writes <- data
	return nil
}

func (f *fakeConnection) InboundPackets() <-chan transport.Frame { return f.inbound }

func (f *fakeConnection) Close(ctx context.Context) error {
	close(f.inbound)
	return nil
}

func a3930StateUpdateFrame(t *testing.T, modes wire.SoundModes) transport.Frame {
	t.Helper()
	var body []byte
	body = append(body, 4, 1)
	body = append(body, []byte("01.23")...)
	body = append(body, []byte("A3930SERIALNUM01")...)
	body = append(body, 0x00, 0x00)
	body = append(body, 120, 120, 120, 120, 120, 120, 120, 120)
	body = append(body, modes.Byte())
	return transport.Frame{Data: wire.EncodePacket(wire.HeaderInboundStateUpdate, body)}
}

func a3930SoundModesUpdateFrame(modes wire.SoundModes) transport.Frame {
	return transport.Frame{Data: wire.EncodePacket(wire.HeaderInboundSoundModesUpdate, []byte{modes.Byte()})}
}

func newTestSession(t *testing.T) (*DeviceSession, *fakeConnection) {
	t.Helper()
	conn := newFakeConnection(transport.MustParseUUID("0000a930-0000-1000-8000-00805f9b34fb"))
	conn.inbound <- a3930StateUpdateFrame(t, wire.SoundModes{})
	conn.status <- transport.StatusConnected

	sess, err := New(context.Background(), conn, WithStateTimeout(time.Second), WithCommandTimeout(50*time.Millisecond), WithRetries(1))
	require.NoError(t, err)
	<-conn.writes // the request-state write New sends during init
	t.Cleanup(func() {
		_ = sess.Close(context.Background())
	})
	return sess, conn
}

func TestNewAcquiresInitialState(t *testing.T) {
	sess, _ := newTestSession(t)
	st := sess.State()
	assert.Equal(t, "A3930", st.ProfileName)
	require.NotNil(t, st.SoundModes)
	assert.Equal(t, wire.AmbientNormal, st.SoundModes.Ambient)
}

func TestNewFailsWithoutRegisteredProfile(t *testing.T) {
	conn := newFakeConnection(transport.MustParseUUID("00000000-0000-1000-8000-00805f9b34fb"))
	_, err := New(context.Background(), conn, WithStateTimeout(50*time.Millisecond))
	assert.Error(t, err)
}

func TestPumpAppliesInboundSoundModesUpdate(t *testing.T) {
	sess, conn := newTestSession(t)
	sub := sess.Subscribe()
	defer sess.Unsubscribe(sub)

	want := wire.SoundModes{Ambient: wire.AmbientNoiseCanceling}
	conn.inbound <- a3930SoundModesUpdateFrame(want)

	select {
	case st := <-sub:
		require.NotNil(t, st.SoundModes)
		assert.Equal(t, want, *st.SoundModes)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for state update")
	}
}

func TestSetSoundModesSucceedsOnEcho(t *testing.T) {
	sess, conn := newTestSession(t)

	want := wire.SoundModes{Ambient: wire.AmbientTransparency}
	done := make(chan error, 1)
	go func() {
		done <- sess.SetSoundModes(context.Background(), SetSoundModesInput{
			Ambient: want.Ambient,
		})
	}()

	select {
	case data := <-conn.writes:
		header, _, err := wire.DecodePacket(data)
		require.NoError(t, err)
		assert.Equal(t, wire.HeaderSetSoundModes, header)
	case <-time.After(time.Second):
		t.Fatal("command was never written")
	}

	conn.inbound <- a3930SoundModesUpdateFrame(want)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("command never completed")
	}
}

func TestSetSoundModesTimesOutWithoutEcho(t *testing.T) {
	sess, _ := newTestSession(t)

	err := sess.SetSoundModes(context.Background(), SetSoundModesInput{Ambient: wire.AmbientTransparency})
	require.Error(t, err)
	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, StateErrorCommandTimeout, stateErr.Code)
}

func TestSetSoundModesTypeTwoRejectsUnsupportedFeature(t *testing.T) {
	sess, _ := newTestSession(t)
	err := sess.SetSoundModesTypeTwo(context.Background(), SetSoundModesInput{})
	require.Error(t, err)
	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, StateErrorUnsupportedFeature, stateErr.Code)
}

func TestSetSoundModesRejectsInvalidInput(t *testing.T) {
	sess, _ := newTestSession(t)
	err := sess.SetSoundModes(context.Background(), SetSoundModesInput{CustomNoiseCanceling: 200})
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestDisconnectCancelsPendingCommand(t *testing.T) {
	sess, conn := newTestSession(t)

	done := make(chan error, 1)
	go func() {
		done <- sess.SetSoundModes(context.Background(), SetSoundModesInput{Ambient: wire.AmbientTransparency})
	}()

	<-conn.writes
	conn.status <- transport.StatusDisconnected

	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDisconnected)
	case <-time.After(time.Second):
		t.Fatal("command never observed disconnect")
	}
}

func TestDoneClosesOnDisconnect(t *testing.T) {
	sess, conn := newTestSession(t)
	conn.status <- transport.StatusDisconnected

	select {
	case <-sess.Done():
	case <-time.After(time.Second):
		t.Fatal("session never tore down after disconnect")
	}
}
