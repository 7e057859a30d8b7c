// Package transport defines the capability set a platform Bluetooth LE
// adapter must implement for this module's core to drive a device, and the
// small set of wire-identifier types (MAC, UUID, ConnectionStatus) shared
// across every other package.
package transport

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// MAC is a 6-byte Bluetooth device address.
type MAC [6]byte

// String renders the canonical colon-separated hex form.
func (m MAC) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", m[0], m[1], m[2], m[3], m[4], m[5])
}

// Windows64 packs the address into the low 48 bits of a big-endian uint64,
// the form used at the Windows transport boundary (spec §6: "A byte-packed
// Windows u64 MAC form ... big-endian 6 bytes placed in the low 48 bits of a
// u64"). This is a pure data-layout conversion; it does not talk to any
// Windows API.
func (m MAC) Windows64() uint64 {
	var buf [8]byte
	copy(buf[2:], m[:])
	return binary.BigEndian.Uint64(buf[:])
}

// MACFromWindows64 unpacks the low 48 bits of a Windows-form uint64 back
// into a MAC.
func MACFromWindows64(v uint64) MAC {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	var m MAC
	copy(m[:], buf[2:])
	return m
}

// UUID wraps google/uuid for the 128-bit service/characteristic identifiers
// this module compares and looks up profiles by.
type UUID struct {
	uuid.UUID
}

// ParseUUID parses a UUID string, returning a wrapped transport.UUID.
func ParseUUID(s string) (UUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("transport: invalid UUID %q: %w", s, err)
	}
	return UUID{UUID: u}, nil
}

// MustParseUUID panics on malformed input; for use with compile-time-known
// service UUID constants in the profile registry.
func MustParseUUID(s string) UUID {
	u, err := ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return u
}

// ConnectionStatus is the lifecycle state of a transport connection.
type ConnectionStatus int

const (
	StatusConnecting ConnectionStatus = iota
	StatusConnected
	StatusDisconnected
)

func (s ConnectionStatus) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Frame is one already-reassembled inbound notification (spec §4.7: "the
// core assumes one notification = one wire frame").
type Frame struct {
	Data []byte
}

// Connection is the capability set a platform adapter exposes for a single
// connected device (spec §4.7). Implementations live outside this module;
// none is included here.
type Connection interface {
	Name() string
	MACAddress() MAC
	ServiceUUID() UUID

	// ConnectionStatus returns a channel that receives every status
	// transition, starting with the current status.
	ConnectionStatus(ctx context.Context) <-chan ConnectionStatus

	WriteWithResponse(ctx context.Context, data []byte) error
	WriteWithoutResponse(ctx context.Context, data []byte) error

	// InboundPackets returns the channel of reassembled notification frames.
	// The channel is closed when the connection is closed.
	InboundPackets() <-chan Frame

	Close(ctx context.Context) error
}

// Descriptor identifies a connectable device without requiring a live
// connection, as returned by ConnectionRegistry.ListDescriptors.
type Descriptor struct {
	Name string
	MAC  MAC
}

// ConnectionRegistry is the transport-level capability a platform adapter
// exposes for discovering and opening connections to already-paired devices
// (spec §4.6: "the registry delegates all transport work to an injected
// ConnectionRegistry implementation").
type ConnectionRegistry interface {
	ListDescriptors(ctx context.Context) ([]Descriptor, error)
	Connection(ctx context.Context, mac MAC) (Connection, error)
}
