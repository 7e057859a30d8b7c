package session

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Default timeouts from spec §4.5: T1 for initial state acquisition, T2 for
// a single command's ack wait.
const (
	DefaultStateTimeout   = 5 * time.Second
	DefaultCommandTimeout = 500 * time.Millisecond
	DefaultRetries        = 2
	DefaultStateRetries   = 3
)

type options struct {
	stateTimeout   time.Duration
	commandTimeout time.Duration
	retries        int
	stateRetries   int
	log            logrus.FieldLogger
}

func defaultOptions() options {
	return options{
		stateTimeout:   DefaultStateTimeout,
		commandTimeout: DefaultCommandTimeout,
		retries:        DefaultRetries,
		stateRetries:   DefaultStateRetries,
	}
}

// Option configures a DeviceSession at construction time, following the
// teacher's bleclient.WithScanTimeout/bluetooth.WithScanTimeout applier idiom.
type Option func(*options)

// WithStateTimeout overrides T1, the deadline for acquiring the device's
// first state-update packet during Init.
func WithStateTimeout(d time.Duration) Option {
	return func(o *options) { o.stateTimeout = d }
}

// WithCommandTimeout overrides T2, the deadline for a single command's ack
// wait before it is retried.
func WithCommandTimeout(d time.Duration) Option {
	return func(o *options) { o.commandTimeout = d }
}

// WithRetries overrides the number of command retries attempted after the
// first timeout (spec §4.5: "retry x2").
func WithRetries(n int) Option {
	return func(o *options) { o.retries = n }
}

// WithLogger overrides the logger a session reports diagnostics through.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.log = l }
}
