package registry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundcore-oss/soundcore-go/transport"
	"github.com/soundcore-oss/soundcore-go/wire"
)

// fakeConnection mirrors session package's hand-written transport.Connection
// double; the channel-returning methods of transport.Connection don't fit
// testify/mock's call-based API.
type fakeConnection struct {
	mac     transport.MAC
	service transport.UUID
	inbound chan transport.Frame
	status  chan transport.ConnectionStatus

	closeOnce sync.Once
	closed    chan struct{}
}

func newFakeConnection(mac transport.MAC, service transport.UUID) *fakeConnection {
	return &fakeConnection{
		mac:     mac,
		service: service,
		inbound: make(chan transport.Frame, 4),
		status:  make(chan transport.ConnectionStatus, 4),
		closed:  make(chan struct{}),
	}
}

func (f *fakeConnection) Name() string                { return "fake" }
func (f *fakeConnection) MACAddress() transport.MAC   { return f.mac }
func (f *fakeConnection) ServiceUUID() transport.UUID { return f.service }
func (f *fakeConnection) ConnectionStatus(ctx context.Context) <-chan transport.ConnectionStatus {
	return f.status
}
func (f *fakeConnection) WriteWithResponse(ctx context.Context, data []byte) error    { return nil }
func (f *fakeConnection) WriteWithoutResponse(ctx context.Context, data []byte) error { return nil }
func (f *fakeConnection) InboundPackets() <-chan transport.Frame                      { return f.inbound }
func (f *fakeConnection) Close(ctx context.Context) error {
	f.closeOnce.Do(func() {
		close(f.inbound)
		close(f.closed)
	})
	return nil
}

func a3930InitialFrame() transport.Frame {
	var body []byte
	body = append(body, 4, 1)
	body = append(body, []byte("01.23")...)
	body = append(body, []byte("A3930SERIALNUM01")...)
	body = append(body, 0x00, 0x00)
	body = append(body, 120, 120, 120, 120, 120, 120, 120, 120)
	body = append(body, 0x00)
	return transport.Frame{Data: wire.EncodePacket(wire.HeaderInboundStateUpdate, body)}
}

// fakeTransportRegistry hands out fakeConnections keyed by MAC, recording how
// many times Connection was called per MAC so tests can assert caching.
type fakeTransportRegistry struct {
	mu    sync.Mutex
	calls map[transport.MAC]int
	conns map[transport.MAC]*fakeConnection
}

func newFakeTransportRegistry() *fakeTransportRegistry {
	return &fakeTransportRegistry{
		calls: make(map[transport.MAC]int),
		conns: make(map[transport.MAC]*fakeConnection),
	}
}

func (r *fakeTransportRegistry) ListDescriptors(ctx context.Context) ([]transport.Descriptor, error) {
	return []transport.Descriptor{{Name: "fake", MAC: transport.MAC{0x01}}}, nil
}

func (r *fakeTransportRegistry) Connection(ctx context.Context, mac transport.MAC) (transport.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[mac]++
	conn := newFakeConnection(mac, transport.MustParseUUID("0000a930-0000-1000-8000-00805f9b34fb"))
	conn.inbound <- a3930InitialFrame()
	r.conns[mac] = conn
	return conn, nil
}

func TestConnectionCachesLiveSession(t *testing.T) {
	transportReg := newFakeTransportRegistry()
	reg := New(transportReg)

	mac := transport.MAC{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}

	sess1, err := reg.Connection(context.Background(), mac)
	require.NoError(t, err)
	sess2, err := reg.Connection(context.Background(), mac)
	require.NoError(t, err)

	assert.Same(t, sess1, sess2)
	assert.Equal(t, 1, transportReg.calls[mac])

	require.NoError(t, reg.Close(context.Background()))
}

func TestConnectionReopensAfterTeardown(t *testing.T) {
	transportReg := newFakeTransportRegistry()
	reg := New(transportReg)

	mac := transport.MAC{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}

	sess1, err := reg.Connection(context.Background(), mac)
	require.NoError(t, err)

	transportReg.mu.Lock()
	conn := transportReg.conns[mac]
	transportReg.mu.Unlock()
	conn.status <- transport.StatusDisconnected

	select {
	case <-sess1.Done():
	case <-time.After(time.Second):
		t.Fatal("session never tore down")
	}

	// Give evictOnTeardown a chance to run before reconnecting.
	require.Eventually(t, func() bool {
		reg.mu.Lock()
		defer reg.mu.Unlock()
		_, ok := reg.sessions[mac]
		return !ok
	}, time.Second, 10*time.Millisecond)

	sess2, err := reg.Connection(context.Background(), mac)
	require.NoError(t, err)
	assert.NotSame(t, sess1, sess2)
	assert.Equal(t, 2, transportReg.calls[mac])

	require.NoError(t, reg.Close(context.Background()))
}

func TestListDescriptorsDelegatesToTransport(t *testing.T) {
	transportReg := newFakeTransportRegistry()
	reg := New(transportReg)

	descriptors, err := reg.ListDescriptors(context.Background())
	require.NoError(t, err)
	assert.Len(t, descriptors, 1)
}
