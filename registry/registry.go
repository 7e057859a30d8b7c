// Package registry implements the device registry of spec §4.6: it exposes
// the set of connectable devices and maintains a MAC-keyed cache of live
// sessions so repeated lookups for the same device return the same session
// rather than opening a second connection underneath it.
package registry

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/soundcore-oss/soundcore-go/internal/logx"
	"github.com/soundcore-oss/soundcore-go/metrics"
	"github.com/soundcore-oss/soundcore-go/session"
	"github.com/soundcore-oss/soundcore-go/transport"
)

type options struct {
	log            logrus.FieldLogger
	sessionOptions []session.Option
}

// Option configures a DeviceRegistry at construction time.
type Option func(*options)

// WithLogger overrides the logger the registry reports diagnostics through.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.log = l }
}

// WithSessionOptions forwards options to every session.New call the registry
// makes when opening a new connection.
func WithSessionOptions(sessOpts ...session.Option) Option {
	return func(o *options) { o.sessionOptions = append(o.sessionOptions, sessOpts...) }
}

// DeviceRegistry exposes the set of connectable devices through an injected
// transport.ConnectionRegistry and caches one live session per MAC address
// (spec §4.6: "Maintains a ... map from MAC to live session so repeated calls
// return the same session"), adapted from the teacher's
// bluetooth/resource_manager.go ResourceManager (mutex-guarded map keyed by
// ID, background cleanup of resources that have gone inactive).
type DeviceRegistry struct {
	transport transport.ConnectionRegistry
	opts      options
	log       logrus.FieldLogger

	mu       sync.Mutex
	sessions map[transport.MAC]*session.DeviceSession
}

// New builds a DeviceRegistry delegating transport work to the given
// transport.ConnectionRegistry.
func New(transportRegistry transport.ConnectionRegistry, opts ...Option) *DeviceRegistry {
	o := options{}
	for _, apply := range opts {
		apply(&o)
	}
	log := o.log
	if log == nil {
		log = logx.Named("registry")
	}
	return &DeviceRegistry{
		transport: transportRegistry,
		opts:      o,
		log:       log,
		sessions:  make(map[transport.MAC]*session.DeviceSession),
	}
}

// ListDescriptors returns every device the injected transport registry
// currently reports as connectable.
func (r *DeviceRegistry) ListDescriptors(ctx context.Context) ([]transport.Descriptor, error) {
	return r.transport.ListDescriptors(ctx)
}

// Connection returns the live session for mac, opening and caching a new one
// through the injected transport registry if none is cached yet or the
// cached one has torn down (spec §4.6: "connection(mac) -> optional
// Arc<Session>").
func (r *DeviceRegistry) Connection(ctx context.Context, mac transport.MAC) (*session.DeviceSession, error) {
	r.mu.Lock()
	var hadTornDownEntry bool
	if sess, ok := r.sessions[mac]; ok {
		if !isTornDown(sess) {
			r.mu.Unlock()
			return sess, nil
		}
		delete(r.sessions, mac)
		hadTornDownEntry = true
	}
	r.mu.Unlock()

	conn, err := r.transport.Connection(ctx, mac)
	if err != nil {
		return nil, err
	}

	sess, err := session.New(ctx, conn, r.opts.sessionOptions...)
	if err != nil {
		return nil, err
	}

	if hadTornDownEntry {
		metrics.IncReconnect(sess.Model())
	}

	r.mu.Lock()
	if existing, ok := r.sessions[mac]; ok && !isTornDown(existing) {
		r.mu.Unlock()
		_ = sess.Close(ctx)
		return existing, nil
	}
	r.sessions[mac] = sess
	metrics.ActiveSessions.Set(float64(len(r.sessions)))
	r.mu.Unlock()

	go r.evictOnTeardown(mac, sess)

	return sess, nil
}

func isTornDown(sess *session.DeviceSession) bool {
	select {
	case <-sess.Done():
		return true
	default:
		return false
	}
}

// evictOnTeardown removes sess from the cache once it tears down, so the
// next Connection call for mac opens a fresh one instead of handing back a
// dead session (spec §4.6's cache is for *live* sessions only).
func (r *DeviceRegistry) evictOnTeardown(mac transport.MAC, sess *session.DeviceSession) {
	<-sess.Done()
	r.mu.Lock()
	if r.sessions[mac] == sess {
		delete(r.sessions, mac)
		metrics.ActiveSessions.Set(float64(len(r.sessions)))
	}
	r.mu.Unlock()
	r.log.WithField("mac", mac.String()).Debug("evicted torn-down session from registry cache")
}

// Close tears down every cached session.
func (r *DeviceRegistry) Close(ctx context.Context) error {
	r.mu.Lock()
	sessions := make([]*session.DeviceSession, 0, len(r.sessions))
	for _, sess := range r.sessions {
		sessions = append(sessions, sess)
	}
	r.sessions = make(map[transport.MAC]*session.DeviceSession)
	metrics.ActiveSessions.Set(0)
	r.mu.Unlock()

	var firstErr error
	for _, sess := range sessions {
		if err := sess.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
