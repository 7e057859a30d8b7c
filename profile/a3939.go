package profile

import "github.com/soundcore-oss/soundcore-go/transport"

// A3939 shares the A3933 wire dialect exactly (spec §4.4: "A3933/A3939"),
// differing only in its advertised service UUID.
var a3939ServiceUUID = transport.MustParseUUID("0000a939-0000-1000-8000-00805f9b34fb")

var a3939Profile = DeviceProfile{
	Model:                  "A3939",
	ServiceUUID:            a3939ServiceUUID,
	FeatureFlags:           a3933Profile.FeatureFlags,
	NumberOfEqualizerBands: a3933Profile.NumberOfEqualizerBands,
	StateUpdateParser:      parseA3933StateUpdate,
	CommandEncoders:        a3933CommandEncoders,
	InboundDispatch:        a3933Profile.InboundDispatch,
}
