// Package session implements the device session lifecycle of spec §4.5: init
// against a freshly opened Connection, a steady-state inbound pump and
// command serializer running concurrently, and a clean teardown on
// disconnect.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/soundcore-oss/soundcore-go/internal/logx"
	"github.com/soundcore-oss/soundcore-go/profile"
	"github.com/soundcore-oss/soundcore-go/state"
	"github.com/soundcore-oss/soundcore-go/transport"
	"github.com/soundcore-oss/soundcore-go/wire"
)

// DeviceSession owns one opened transport.Connection for the lifetime of the
// connection, applying inbound state-update packets and serializing outbound
// commands against the profile selected for the connection's service UUID.
type DeviceSession struct {
	conn    transport.Connection
	profile profile.DeviceProfile
	opts    options
	log     logrus.FieldLogger

	snapshot  *snapshotCell
	stateFeed *broadcaster[state.DeviceState]
	statusFeed *broadcaster[transport.ConnectionStatus]

	cmdMu sync.Mutex // single command slot (spec §4.5, §5: "the session holds a single command slot")

	ctx       context.Context
	cancel    context.CancelFunc
	group     *errgroup.Group
	closeOnce sync.Once
}

// New opens a DeviceSession against conn: subscribes to inbound frames,
// requests the initial device state, and once acquired starts the steady
// state pump and status watcher. Returns once the first DeviceState is
// available or stateTimeout has elapsed on the first attempt and each of
// stateRetries retries (spec
// §4.5 step 1: "Await the first state-update packet (<=timeout T1=5s, retry
// x3)").
func New(ctx context.Context, conn transport.Connection, opts ...Option) (*DeviceSession, error) {
	o := defaultOptions()
	for _, apply := range opts {
		apply(&o)
	}

	p, ok := profile.Lookup(conn.ServiceUUID())
	if !ok {
		return nil, fmt.Errorf("session: no device profile registered for service %s", conn.ServiceUUID())
	}

	log := o.log
	if log == nil {
		log = logx.Named("session").WithField("model", p.Model).WithField("mac", conn.MACAddress().String())
	}

	sessCtx, cancel := context.WithCancel(ctx)
	group, groupCtx := errgroup.WithContext(sessCtx)

	s := &DeviceSession{
		conn:       conn,
		profile:    p,
		opts:       o,
		log:        log,
		stateFeed:  newBroadcaster[state.DeviceState](),
		statusFeed: newBroadcaster[transport.ConnectionStatus](),
		ctx:        sessCtx,
		cancel:     cancel,
		group:      group,
	}

	initial, err := s.acquireInitialState(sessCtx)
	if err != nil {
		cancel()
		return nil, err
	}
	s.snapshot = newSnapshotCell(initial)

	group.Go(func() error { return s.pumpInbound(groupCtx) })
	group.Go(func() error { return s.watchConnectionStatus(groupCtx) })

	return s, nil
}

func (s *DeviceSession) acquireInitialState(ctx context.Context) (state.DeviceState, error) {
	frames := s.conn.InboundPackets()

	var lastErr error
attemptLoop:
	for attempt := 0; attempt <= s.opts.stateRetries; attempt++ {
		if err := s.conn.WriteWithResponse(ctx, wire.EncodeRequestState()); err != nil {
			lastErr = err
			continue
		}

		deadline := time.NewTimer(s.opts.stateTimeout)
		for {
			select {
			case <-ctx.Done():
				deadline.Stop()
				return state.DeviceState{}, ctx.Err()
			case <-deadline.C:
				lastErr = newTimeoutError(s.profile.Model, "init")
				continue attemptLoop
			case frame, ok := <-frames:
				if !ok {
					deadline.Stop()
					return state.DeviceState{}, ErrDisconnected
				}
				header, body, err := wire.DecodePacket(frame.Data)
				if err != nil {
					s.log.WithError(err).Debug("discarding malformed frame during init")
					continue
				}
				if header != wire.HeaderInboundStateUpdate {
					continue
				}
				pkt, err := s.profile.StateUpdateParser(body)
				if err != nil {
					s.log.WithError(err).Debug("discarding unparseable state-update during init")
					continue
				}
				deadline.Stop()
				return s.profile.InitialState(pkt), nil
			}
		}
	}
	if lastErr == nil {
		lastErr = newTimeoutError(s.profile.Model, "init")
	}
	return state.DeviceState{}, lastErr
}

// pumpInbound is the inbound pump task of spec §4.5 step 2: validates and
// dispatches every inbound frame that passes envelope validation, storing and
// publishing the state Dispatch returns for it; for an unknown header or a
// malformed payload that is the unchanged current state. Never blocks on
// outbound work.
func (s *DeviceSession) pumpInbound(ctx context.Context) error {
	frames := s.conn.InboundPackets()
	for {
		select {
		case <-ctx.Done():
			return nil
		case frame, ok := <-frames:
			if !ok {
				return nil
			}
			header, body, err := wire.DecodePacket(frame.Data)
			if err != nil {
				s.log.WithError(err).Debug("dropping malformed inbound frame")
				continue
			}
			current := s.snapshot.Load()
			next := s.profile.Dispatch(header, body, current)
			s.snapshot.Store(next)
			s.stateFeed.Publish(next)
		}
	}
}

// watchConnectionStatus forwards ConnectionStatus transitions onto the
// session's broadcast and cancels the session on Disconnected (spec §4.5
// step 3).
func (s *DeviceSession) watchConnectionStatus(ctx context.Context) error {
	statuses := s.conn.ConnectionStatus(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case st, ok := <-statuses:
			if !ok {
				return nil
			}
			s.statusFeed.Publish(st)
			if st == transport.StatusDisconnected {
				s.log.Info("connection disconnected, tearing down session")
				s.cancel()
				return nil
			}
		}
	}
}

// State returns the most recently applied DeviceState.
func (s *DeviceSession) State() state.DeviceState { return s.snapshot.Load() }

// Model returns the session's device profile model name.
func (s *DeviceSession) Model() string { return s.profile.Model }

// MAC returns the underlying connection's device address.
func (s *DeviceSession) MAC() transport.MAC { return s.conn.MACAddress() }

// Subscribe returns a channel receiving every DeviceState published after
// this call. Callers must Unsubscribe when done.
func (s *DeviceSession) Subscribe() chan state.DeviceState { return s.stateFeed.Subscribe() }

// Unsubscribe releases a channel returned by Subscribe.
func (s *DeviceSession) Unsubscribe(ch chan state.DeviceState) { s.stateFeed.Unsubscribe(ch) }

// SubscribeStatus returns a channel receiving every ConnectionStatus
// transition published after this call.
func (s *DeviceSession) SubscribeStatus() chan transport.ConnectionStatus {
	return s.statusFeed.Subscribe()
}

// UnsubscribeStatus releases a channel returned by SubscribeStatus.
func (s *DeviceSession) UnsubscribeStatus(ch chan transport.ConnectionStatus) {
	s.statusFeed.Unsubscribe(ch)
}

// Done returns a channel closed once the session has torn down, either
// because the connection disconnected or Close was called.
func (s *DeviceSession) Done() <-chan struct{} { return s.ctx.Done() }

// Close cancels the session's tasks and closes the underlying connection.
// Pending commands observe ErrDisconnected.
func (s *DeviceSession) Close(ctx context.Context) error {
	var closeErr error
	s.closeOnce.Do(func() {
		s.cancel()
		_ = s.group.Wait()
		s.stateFeed.Close()
		s.statusFeed.Close()
		closeErr = s.conn.Close(ctx)
	})
	return closeErr
}
