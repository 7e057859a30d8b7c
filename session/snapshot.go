package session

import (
	"go.uber.org/atomic"

	"github.com/soundcore-oss/soundcore-go/state"
)

// snapshotCell is the single-slot "latest DeviceState" cell of spec §5: the
// pump task is the only writer, readers take a wait-free point-in-time copy.
// Backed by go.uber.org/atomic.Pointer rather than sync/atomic.Pointer[T] for
// the same reason the examples pack reaches for it here — see DESIGN.md.
type snapshotCell struct {
	ptr atomic.Pointer[state.DeviceState]
}

func newSnapshotCell(initial state.DeviceState) *snapshotCell {
	c := &snapshotCell{}
	c.ptr.Store(&initial)
	return c
}

// Load returns the most recently published snapshot.
func (c *snapshotCell) Load() state.DeviceState {
	return *c.ptr.Load()
}

// Store publishes a new snapshot, to be called only from the inbound pump.
func (c *snapshotCell) Store(s state.DeviceState) {
	c.ptr.Store(&s)
}
