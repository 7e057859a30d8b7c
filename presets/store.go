// Package presets defines the consumed persistence port of spec §6: quick
// presets and custom equalizer profiles are persisted by a host application
// through this interface, never owned by the core. The core treats stored
// records as opaque blobs keyed by the service UUID of the owning device
// model.
package presets

import (
	"context"
	"time"

	"github.com/soundcore-oss/soundcore-go/transport"
)

// Kind distinguishes the two record shapes spec §6/§3 names.
type Kind int

const (
	KindQuickPreset Kind = iota
	KindCustomEqualizer
)

func (k Kind) String() string {
	switch k {
	case KindQuickPreset:
		return "quick_preset"
	case KindCustomEqualizer:
		return "custom_equalizer"
	default:
		return "unknown"
	}
}

// Record is one stored preset or custom EQ profile. Payload is opaque to the
// core: callers are expected to serialize/deserialize it themselves (e.g. a
// marshaled wire.EqualizerConfiguration or a host-defined quick-preset
// format); the Store only persists and retrieves bytes by key.
type Record struct {
	ServiceUUID transport.UUID
	Kind        Kind
	Name        string
	Payload     []byte
	UpdatedAt   time.Time
}

// Store is the port a host application implements to persist quick presets
// and custom equalizer profiles (spec §6: "Persistent state (consumed, not
// owned)"). The core never imports a concrete Store implementation.
type Store interface {
	// List returns every record of kind stored for serviceUUID.
	List(ctx context.Context, serviceUUID transport.UUID, kind Kind) ([]Record, error)
	// Get returns the record named name for serviceUUID/kind, or ErrNotFound.
	Get(ctx context.Context, serviceUUID transport.UUID, kind Kind, name string) (Record, error)
	// Put creates or overwrites a record.
	Put(ctx context.Context, rec Record) error
	// Delete removes a record; it is not an error if none exists.
	Delete(ctx context.Context, serviceUUID transport.UUID, kind Kind, name string) error
}

// ErrNotFound is returned by Store.Get when no matching record exists.
var ErrNotFound = notFoundError{}

type notFoundError struct{}

func (notFoundError) Error() string { return "presets: record not found" }
